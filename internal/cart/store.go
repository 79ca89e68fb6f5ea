package cart

import (
	"context"
	"sync"

	"github.com/Dowody/rw-sub000/internal/model"
)

// Persister writes a user's full cart to durable storage and reads it
// back. The store calls Save synchronously on every mutation.
type Persister interface {
	Save(ctx context.Context, authID int64, items []model.CartItem) error
	Load(ctx context.Context, authID int64) ([]model.CartItem, error)
	Delete(ctx context.Context, authID int64) error
}

// Store holds per-user carts in memory and mirrors every change to the
// Persister. A cart is rehydrated from storage on first access, or
// starts empty. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	carts   map[int64][]model.CartItem
	persist Persister
}

func NewStore(p Persister) *Store {
	return &Store{
		carts:   make(map[int64][]model.CartItem),
		persist: p,
	}
}

// load returns the in-memory cart for authID, rehydrating from the
// persister the first time. Caller must hold s.mu.
func (s *Store) load(ctx context.Context, authID int64) []model.CartItem {
	if items, ok := s.carts[authID]; ok {
		return items
	}
	items, err := s.persist.Load(ctx, authID)
	if err != nil || items == nil {
		items = []model.CartItem{}
	}
	s.carts[authID] = items
	return items
}

// Add appends the item, or increments quantity when an entry with the
// same id already exists.
func (s *Store) Add(ctx context.Context, authID int64, item model.CartItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx, authID)
	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	s.carts[authID] = items
	return s.persist.Save(ctx, authID, items)
}

// Remove deletes the entry with the given id; no-op when absent.
func (s *Store) Remove(ctx context.Context, authID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx, authID)
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.carts[authID] = out
	return s.persist.Save(ctx, authID, out)
}

// UpdateQuantity sets the quantity for an entry. A quantity of zero or
// less removes the entry entirely.
func (s *Store) UpdateQuantity(ctx context.Context, authID int64, id string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, authID, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx, authID)
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			break
		}
	}
	s.carts[authID] = items
	return s.persist.Save(ctx, authID, items)
}

// Clear empties the cart and removes it from durable storage.
func (s *Store) Clear(ctx context.Context, authID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[authID] = []model.CartItem{}
	return s.persist.Delete(ctx, authID)
}

// Items returns a copy of the cart's current entries.
func (s *Store) Items(ctx context.Context, authID int64) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx, authID)
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

// TotalPrice sums price*quantity over all entries.
func (s *Store) TotalPrice(ctx context.Context, authID int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.load(ctx, authID) {
		total += it.Subtotal()
	}
	return total
}
