package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CartItem is a client-side line item. Name, image and price are snapshots
// taken at add-time for display only; checkout re-verifies price against the
// catalog and never trusts these fields.
type CartItem struct {
	ID               string            `json:"id"`
	ProductID        string            `json:"productId"`
	Name             string            `json:"name"`
	Image            string            `json:"image"`
	Price            int64             `json:"price"`
	SelectedVariants map[string]string `json:"selectedVariants"`
	Quantity         int               `json:"quantity"`
}

// LineKey derives the deterministic identity of a cart line from the product
// and its variant assignments. Variant dimensions are sorted so the same
// selection always yields the same key, letting re-adds increment quantity
// instead of duplicating the line.
func LineKey(productID string, variants map[string]string) string {
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s:%s", k, variants[k]))
	}
	return fmt.Sprintf("%s-%s", productID, strings.Join(pairs, "-"))
}
