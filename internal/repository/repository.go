package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Precipitate-AI/epic/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateOrder  = errors.New("order with this id already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type ProductRepository interface {
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	// TransitionOrderStatus moves a PENDING order to the given terminal
	// status. The update is conditional on the current status, so concurrent
	// or repeated webhook deliveries cannot overwrite a terminal state.
	// Returns whether the transition was applied and the status the order
	// holds after the call.
	TransitionOrderStatus(ctx context.Context, id string, target domain.OrderStatus) (bool, domain.OrderStatus, error)
	RecordStatusConflict(ctx context.Context, id string, current, attempted domain.OrderStatus) error
}

// OrderEvent is an outbox row recording an order status change (or a
// conflicting-transition anomaly) for asynchronous publishing.
type OrderEvent struct {
	ID          int64
	OrderID     string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type EventRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OrderEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}
