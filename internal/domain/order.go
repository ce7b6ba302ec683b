package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusSuccess OrderStatus = "SUCCESS"
	OrderStatusFailure OrderStatus = "FAILURE"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusFailure
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a snapshot of a product line frozen at order-creation time.
// Price here is the server-verified unit price, never the client's claim.
type OrderItem struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Price       int64             `json:"price"`
	Quantity    int               `json:"quantity"`
	Image       string            `json:"image"`
	Variants    map[string]string `json:"variants"`
}

type CustomerDetails struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	Province        string `json:"province"`
	PostalCode      string `json:"postalCode"`
}

// Order is created once by checkout in PENDING status and mutated exactly
// once more by the webhook reconciler, to a terminal status.
type Order struct {
	ID          string
	Status      OrderStatus
	TotalAmount int64
	Customer    CustomerDetails
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
