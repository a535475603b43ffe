package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"concert-storefront/internal/models"
	"concert-storefront/internal/storage"
)

// CartService holds the line items the user intends to purchase. Items
// are keyed by the (event, ticket category) pair; at most one line item
// exists per key, and a present item always has quantity >= 1. Every
// mutation persists the full item list.
type CartService struct {
	mu    sync.Mutex
	store storage.Store
	items []models.CartItem
}

// NewCartService creates a cart service and restores any persisted cart
// from a prior run
func NewCartService(store storage.Store) *CartService {
	s := &CartService{store: store}
	s.restore()
	return s
}

func (s *CartService) restore() {
	data, err := s.store.Load(context.Background(), storage.CartKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Printf("Cart: failed to restore persisted cart: %v", err)
		}
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Cart: discarding unreadable cart snapshot: %v", err)
		return
	}

	s.items = items
}

// AddItem adds a line item. When an item with the same key already
// exists its quantity is incremented by the added quantity; otherwise
// the item is appended. Stock limits are the caller's concern.
func (s *CartService) AddItem(ctx context.Context, item models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Matches(item.EventID, item.TicketCategoryID) {
			s.items[i].Quantity += item.Quantity
			return s.persist(ctx)
		}
	}

	s.items = append(s.items, item)
	return s.persist(ctx)
}

// RemoveItem deletes the line item for the key. Removing an absent key
// is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, eventID, ticketCategoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, eventID, ticketCategoryID)
}

func (s *CartService) removeLocked(ctx context.Context, eventID, ticketCategoryID string) error {
	for i := range s.items {
		if s.items[i].Matches(eventID, ticketCategoryID) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing line item. A
// quantity of zero or less removes the item. Setting quantity on a key
// that is not in the cart is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, eventID, ticketCategoryID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, eventID, ticketCategoryID)
	}

	for i := range s.items {
		if s.items[i].Matches(eventID, ticketCategoryID) {
			s.items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart unconditionally
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// Items returns an independent snapshot of the current line items
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.CloneItems(s.items)
}

// TotalPrice returns the sum of price times quantity over all line
// items. Pure query.
func (s *CartService) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.items {
		total += s.items[i].Subtotal()
	}
	return total
}

// TotalItemCount returns the sum of quantities over all line items.
// Pure query.
func (s *CartService) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.items {
		count += s.items[i].Quantity
	}
	return count
}

// persist writes the full item list. Callers must hold s.mu.
func (s *CartService) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.store.Save(ctx, storage.CartKey, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
