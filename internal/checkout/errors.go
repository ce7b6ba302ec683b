package checkout

import (
	"fmt"
	"strings"
)

// Violation is one field-level problem in a checkout request.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every structural problem in the request at once so
// the client can fix them in a single round trip.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "invalid checkout request: " + strings.Join(msgs, "; ")
}

// PriceMismatchError means a line item's claimed price disagrees with the
// current catalog price, or the product no longer exists. The order is never
// created in either case.
type PriceMismatchError struct {
	ProductID string
	Name      string
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price verification failed for product %q (%s)", e.Name, e.ProductID)
}

// GatewayError means the payment session request failed after the order was
// already persisted. The order stays PENDING; OrderID lets operators
// reconcile it.
type GatewayError struct {
	OrderID string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment session failed for order %s: %v", e.OrderID, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
