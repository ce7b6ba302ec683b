package cart

import (
	"encoding/json"
	"log"

	"github.com/Precipitate-AI/epic/internal/domain"
)

// Store is the client-side shopping cart. Line identity is the deterministic
// key of product + variant selection, so adding the same combination twice
// increments quantity instead of creating a second line. Item prices here are
// display snapshots only; checkout re-verifies against the catalog.
type Store struct {
	storage Storage
	items   []domain.CartItem
}

func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok := s.storage.Get()
	if !ok {
		return
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Printf("cart storage holds invalid data, starting empty: %v", err)
		s.items = nil
	}
}

func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("failed to persist cart: %v", err)
		return
	}
	s.storage.Set(data)
}

// AddItem inserts the item with quantity 1, or bumps quantity when the same
// product/variant combination is already in the cart. The item's ID field is
// overwritten with the derived line key.
func (s *Store) AddItem(item domain.CartItem) {
	item.ID = domain.LineKey(item.ProductID, item.SelectedVariants)

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	s.persist()
}

func (s *Store) IncreaseQuantity(itemID string) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}
}

// DecreaseQuantity drops quantity by one, removing the line entirely when it
// would reach zero.
func (s *Store) DecreaseQuantity(itemID string) {
	for i := range s.items {
		if s.items[i].ID != itemID {
			continue
		}
		if s.items[i].Quantity > 1 {
			s.items[i].Quantity--
			s.persist()
		} else {
			s.RemoveItem(itemID)
		}
		return
	}
}

func (s *Store) RemoveItem(itemID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist()
}

func (s *Store) Clear() {
	s.items = nil
	s.storage.Clear()
}

func (s *Store) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}
