package domain

import "time"

// Variant is one named dimension of a product (e.g. Color) with a concrete
// value (e.g. Sand). A product may list the same dimension several times,
// once per available value.
type Variant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is a catalog record. Prices are whole currency units, no minor
// units. Products are read-only from the storefront's point of view.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"created_at"`
}
