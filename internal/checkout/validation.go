package checkout

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/Precipitate-AI/epic/internal/domain"
)

func validateRequest(req *Request) []Violation {
	var violations []Violation

	if len(req.CartItems) == 0 {
		violations = append(violations, Violation{
			Field:   "cartItems",
			Message: "must contain at least one item",
		})
	}

	for i, item := range req.CartItems {
		prefix := fmt.Sprintf("cartItems[%d]", i)
		if item.ProductID == "" {
			violations = append(violations, Violation{
				Field:   prefix + ".productId",
				Message: "must not be empty",
			})
		}
		if item.Quantity < 1 {
			violations = append(violations, Violation{
				Field:   prefix + ".quantity",
				Message: "must be at least 1",
			})
		}
	}

	violations = append(violations, validateCustomer(&req.CustomerDetails)...)
	return violations
}

func validateCustomer(c *domain.CustomerDetails) []Violation {
	var violations []Violation

	required := []struct {
		field string
		value string
	}{
		{"customerDetails.customerName", c.CustomerName},
		{"customerDetails.customerPhone", c.CustomerPhone},
		{"customerDetails.shippingAddress", c.ShippingAddress},
		{"customerDetails.city", c.City},
		{"customerDetails.province", c.Province},
		{"customerDetails.postalCode", c.PostalCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			violations = append(violations, Violation{
				Field:   f.field,
				Message: "must not be empty",
			})
		}
	}

	if strings.TrimSpace(c.CustomerEmail) == "" {
		violations = append(violations, Violation{
			Field:   "customerDetails.customerEmail",
			Message: "must not be empty",
		})
	} else if _, err := mail.ParseAddress(c.CustomerEmail); err != nil {
		violations = append(violations, Violation{
			Field:   "customerDetails.customerEmail",
			Message: "must be a valid email address",
		})
	}

	return violations
}
