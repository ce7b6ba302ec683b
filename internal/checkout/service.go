package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/gateway"
	"github.com/Precipitate-AI/epic/internal/repository"
	"github.com/google/uuid"
)

// maxItemLabelLen is the gateway's hard limit on item display names.
// Anything longer is rejected by the provider, so names are truncated
// unconditionally before the session request is built.
const maxItemLabelLen = 50

type CatalogReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, req *gateway.SessionRequest) (*gateway.Session, error)
}

type Request struct {
	CartItems       []domain.CartItem
	CustomerDetails domain.CustomerDetails
}

type Result struct {
	OrderID     string
	Token       string
	RedirectURL string
}

type Service struct {
	catalog CatalogReader
	orders  repository.OrderRepository
	gateway PaymentGateway
}

func NewService(catalog CatalogReader, orders repository.OrderRepository, gw PaymentGateway) *Service {
	return &Service{
		catalog: catalog,
		orders:  orders,
		gateway: gw,
	}
}

// Checkout validates the submitted cart, re-verifies every line price
// against the catalog, persists a PENDING order with server prices, and
// requests a hosted payment session. If the session request fails the order
// stays PENDING for manual reconciliation.
func (s *Service) Checkout(ctx context.Context, req *Request) (*Result, error) {
	if violations := validateRequest(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	ids := make([]string, len(req.CartItems))
	for i, item := range req.CartItems {
		ids[i] = item.ProductID
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Price integrity check runs against current catalog state before
	// anything is persisted. A missing product counts as a mismatch.
	var total int64
	orderItems := make([]domain.OrderItem, len(req.CartItems))
	sessionItems := make([]gateway.SessionItem, len(req.CartItems))
	for i, item := range req.CartItems {
		product, ok := byID[item.ProductID]
		if !ok || product.Price != item.Price {
			return nil, &PriceMismatchError{ProductID: item.ProductID, Name: item.Name}
		}

		total += product.Price * int64(item.Quantity)

		orderItems[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
			Image:       item.Image,
			Variants:    item.SelectedVariants,
		}
		sessionItems[i] = gateway.SessionItem{
			ID:       item.ID,
			Name:     truncateLabel(product.Name),
			Price:    product.Price,
			Quantity: item.Quantity,
		}
	}

	order := &domain.Order{
		ID:          newOrderID(),
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
		Customer:    req.CustomerDetails,
		Items:       orderItems,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, &gateway.SessionRequest{
		TransactionDetails: gateway.TransactionDetails{
			OrderID:     order.ID,
			GrossAmount: total,
		},
		ItemDetails: sessionItems,
		CustomerDetails: gateway.SessionCustomer{
			FirstName: req.CustomerDetails.CustomerName,
			Email:     req.CustomerDetails.CustomerEmail,
			Phone:     req.CustomerDetails.CustomerPhone,
			ShippingAddress: gateway.ShippingAddress{
				Address:    req.CustomerDetails.ShippingAddress,
				City:       req.CustomerDetails.City,
				PostalCode: req.CustomerDetails.PostalCode,
			},
		},
	})
	if err != nil {
		// Order is already persisted and stays PENDING. Surface the id so
		// operators can reconcile or expire it.
		log.Printf("payment session failed, order %s left PENDING: %v", order.ID, err)
		return nil, &GatewayError{OrderID: order.ID, Err: err}
	}

	return &Result{
		OrderID:     order.ID,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
	}, nil
}

// newOrderID combines a millisecond timestamp with a random suffix so ids
// sort roughly by creation time and do not collide across concurrent
// requests.
func newOrderID() string {
	return fmt.Sprintf("EPIC-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= maxItemLabelLen {
		return name
	}
	return string(runes[:47]) + "..."
}
