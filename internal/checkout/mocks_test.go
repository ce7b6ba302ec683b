package checkout

import (
	"context"
	"errors"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/gateway"
)

// MockCatalog implements CatalogReader for testing
type MockCatalog struct {
	Products map[string]*domain.Product
	Err      error
}

func (m *MockCatalog) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var products []*domain.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	CreatedOrder *domain.Order // captures the order passed to CreateOrder
	CreateErr    error
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedOrder = order
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, _ string) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (m *MockOrderRepository) TransitionOrderStatus(_ context.Context, _ string, _ domain.OrderStatus) (bool, domain.OrderStatus, error) {
	return false, "", errors.New("not implemented")
}

func (m *MockOrderRepository) RecordStatusConflict(_ context.Context, _ string, _, _ domain.OrderStatus) error {
	return nil
}

// MockGateway implements PaymentGateway for testing
type MockGateway struct {
	Session *gateway.Session
	Request *gateway.SessionRequest // captures the last session request
	Err     error
}

func (m *MockGateway) CreateSession(_ context.Context, req *gateway.SessionRequest) (*gateway.Session, error) {
	m.Request = req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

func validCustomer() domain.CustomerDetails {
	return domain.CustomerDetails{
		CustomerName:    "Ayu Lestari",
		CustomerEmail:   "ayu@example.com",
		CustomerPhone:   "+628123456789",
		ShippingAddress: "Jl. Melati No. 5",
		City:            "Bandung",
		Province:        "West Java",
		PostalCode:      "40111",
	}
}

func newTestService(cat *MockCatalog, orders *MockOrderRepository, gw *MockGateway) *Service {
	return NewService(cat, orders, gw)
}
