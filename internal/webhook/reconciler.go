package webhook

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/repository"
)

// ErrInvalidSignature means the notification's signature does not match the
// recomputed digest. The notification is rejected before any lookup.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Notification is the gateway's asynchronous report of a transaction
// outcome. GrossAmount stays a string because it participates byte-for-byte
// in the signature digest.
type Notification struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	TransactionStatus string
	SignatureKey      string
}

type Outcome struct {
	OrderID string
	Status  domain.OrderStatus
	// Applied is true when this delivery actually changed the order.
	// Duplicate deliveries and unknown transaction states are acknowledged
	// with Applied false.
	Applied bool
}

type Reconciler struct {
	orders    repository.OrderRepository
	serverKey string
}

func NewReconciler(orders repository.OrderRepository, serverKey string) *Reconciler {
	return &Reconciler{
		orders:    orders,
		serverKey: serverKey,
	}
}

// Process verifies and applies one gateway notification. Signature
// verification is the sole authenticity guarantee on this path, so it runs
// before any state is read.
func (r *Reconciler) Process(ctx context.Context, n *Notification) (*Outcome, error) {
	if !r.verifySignature(n) {
		return nil, ErrInvalidSignature
	}

	order, err := r.orders.GetOrderByID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	target, known := mapTransactionStatus(n.TransactionStatus)
	if !known {
		// Intermediate or unknown state. Acknowledge without touching the
		// order, but leave a trace for operators.
		log.Printf("webhook for order %s reported unhandled transaction_status %q, ignoring",
			n.OrderID, n.TransactionStatus)
		return &Outcome{OrderID: order.ID, Status: order.Status, Applied: false}, nil
	}

	applied, current, err := r.orders.TransitionOrderStatus(ctx, n.OrderID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to transition order %s: %w", n.OrderID, err)
	}

	if !applied && current != target {
		// A terminal status already disagrees with this notification.
		// Financial state must not regress silently, so flag it instead of
		// overwriting.
		log.Printf("ANOMALY: webhook tried to move order %s from %s to %s, keeping %s",
			n.OrderID, current, target, current)
		if e2 := r.orders.RecordStatusConflict(ctx, n.OrderID, current, target); e2 != nil {
			log.Printf("failed to record status conflict for order %s: %v", n.OrderID, e2)
		}
		return &Outcome{OrderID: order.ID, Status: current, Applied: false}, nil
	}

	if !applied {
		log.Printf("duplicate webhook for order %s, status already %s", n.OrderID, current)
	} else {
		log.Printf("order %s status updated to %s", n.OrderID, target)
	}

	return &Outcome{OrderID: order.ID, Status: current, Applied: applied}, nil
}

// verifySignature recomputes SHA-512(order_id + status_code + gross_amount +
// server_key) and compares it in constant time with the supplied hex digest.
func (r *Reconciler) verifySignature(n *Notification) bool {
	h := sha512.New()
	fmt.Fprintf(h, "%s%s%s%s", n.OrderID, n.StatusCode, n.GrossAmount, r.serverKey)
	expected := hex.EncodeToString(h.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}

func mapTransactionStatus(status string) (domain.OrderStatus, bool) {
	switch status {
	case "capture", "settlement":
		return domain.OrderStatusSuccess, true
	case "expire", "cancel", "deny":
		return domain.OrderStatusFailure, true
	default:
		return "", false
	}
}
