package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/repository"
	"github.com/go-chi/chi/v5"
)

type OrderReader interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderReader
	timeout time.Duration
}

func NewOrdersHandler(orders OrderReader, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type OrderItemDTO struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Price       int64             `json:"price"`
	Quantity    int               `json:"quantity"`
	Image       string            `json:"image"`
	Variants    map[string]string `json:"variants"`
}

type OrderResponseDTO struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	TotalAmount int64          `json:"total_amount"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   string         `json:"created_at"`
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("request %s: get order error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Image:       item.Image,
			Variants:    item.Variants,
		})
	}

	respondJSON(w, http.StatusOK, OrderResponseDTO{
		ID:          order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	})
}
