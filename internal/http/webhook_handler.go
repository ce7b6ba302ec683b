package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Precipitate-AI/epic/internal/repository"
	"github.com/Precipitate-AI/epic/internal/webhook"
)

type WebhookReconciler interface {
	Process(ctx context.Context, n *webhook.Notification) (*webhook.Outcome, error)
}

type WebhookHandler struct {
	reconciler WebhookReconciler
	timeout    time.Duration
}

func NewWebhookHandler(reconciler WebhookReconciler, timeout time.Duration) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		timeout:    timeout,
	}
}

type WebhookRequestDTO struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
}

type WebhookResponseDTO struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// POST /api/v1/webhook/payment
//
// The gateway retries until it gets a 2xx, so every successfully processed
// notification is acknowledged, duplicates and ignored statuses included.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req WebhookRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	outcome, err := h.reconciler.Process(ctx, &webhook.Notification{
		OrderID:           req.OrderID,
		StatusCode:        req.StatusCode,
		GrossAmount:       req.GrossAmount,
		TransactionStatus: req.TransactionStatus,
		SignatureKey:      r.Header.Get("X-Signature-Key"),
	})
	if err != nil {
		handleWebhookError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, WebhookResponseDTO{
		Message: "webhook processed",
		OrderID: outcome.OrderID,
		Status:  string(outcome.Status),
	})
}

func handleWebhookError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, webhook.ErrInvalidSignature) {
		log.Printf("request %s: rejected webhook with invalid signature", getRequestID(r.Context()))
		respondError(w, http.StatusForbidden, "invalid_signature", "invalid signature key")
		return
	}

	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}

	log.Printf("request %s: webhook error: %v", getRequestID(r.Context()), err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
