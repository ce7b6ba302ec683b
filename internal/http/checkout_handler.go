package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Precipitate-AI/epic/internal/checkout"
	"github.com/Precipitate-AI/epic/internal/domain"
)

type CheckoutService interface {
	Checkout(ctx context.Context, req *checkout.Request) (*checkout.Result, error)
}

type CheckoutHandler struct {
	svc     CheckoutService
	timeout time.Duration
}

func NewCheckoutHandler(svc CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	CartItems       []domain.CartItem      `json:"cartItems"`
	CustomerDetails domain.CustomerDetails `json:"customerDetails"`
}

type CheckoutResponseDTO struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.svc.Checkout(ctx, &checkout.Request{
		CartItems:       req.CartItems,
		CustomerDetails: req.CustomerDetails,
	})
	if err != nil {
		handleCheckoutError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID:     result.OrderID,
		Token:       result.Token,
		RedirectURL: result.RedirectURL,
	})
}

func handleCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid input",
			Code:    "validation_failed",
			Details: validationErr.Violations,
		})
		return
	}

	var priceErr *checkout.PriceMismatchError
	if errors.As(err, &priceErr) {
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:   "price verification failed",
			Code:    "price_mismatch",
			Details: map[string]string{"product_id": priceErr.ProductID, "name": priceErr.Name},
		})
		return
	}

	var gatewayErr *checkout.GatewayError
	if errors.As(err, &gatewayErr) {
		log.Printf("request %s: gateway error: %v", getRequestID(r.Context()), err)
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "payment session could not be created",
			Code:    "gateway_error",
			Details: map[string]string{"order_id": gatewayErr.OrderID},
		})
		return
	}

	log.Printf("request %s: checkout error: %v", getRequestID(r.Context()), err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
