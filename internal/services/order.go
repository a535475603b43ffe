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

	"github.com/jonboulle/clockwork"
)

// OrderService is the append-only ledger of checkout attempts. Orders
// are held newest-first, are never deleted, and only change through
// UpdateStatus. Line items are copied in and copied out, so the ledger
// never shares state with the live cart or with callers.
type OrderService struct {
	mu     sync.Mutex
	store  storage.Store
	clock  clockwork.Clock
	orders []*models.Order // newest first
}

// NewOrderService creates an order service and restores the persisted
// ledger from a prior run
func NewOrderService(store storage.Store, clock clockwork.Clock) *OrderService {
	s := &OrderService{store: store, clock: clock}
	s.restore()
	return s
}

func (s *OrderService) restore() {
	data, err := s.store.Load(context.Background(), storage.OrderKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Printf("Orders: failed to restore persisted orders: %v", err)
		}
		return
	}

	var orders []*models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("Orders: discarding unreadable order snapshot: %v", err)
		return
	}

	s.orders = orders
}

// CreateOrder creates a pending order from a cart snapshot. The line
// items are copied by value, the order number and redemption token are
// freshly generated, and the order is inserted at the head of the
// ledger. Empty line items or a non-positive total fail with
// ErrInvalidOrder.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []models.CartItem, totalAmount int, paymentMethod string) (*models.Order, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "owning user id is required")
	}

	if paymentMethod == "" {
		return nil, models.NewValidationError("payment_method", "payment method is required")
	}

	if len(items) == 0 || totalAmount <= 0 {
		return nil, models.ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	// Re-roll on the unlikely order number collision
	id := models.GenerateOrderNumber(now)
	for s.findLocked(id) != nil {
		id = models.GenerateOrderNumber(now)
	}

	order := &models.Order{
		ID:            id,
		UserID:        userID,
		Items:         models.CloneItems(items),
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		Status:        models.OrderPending,
		CreatedAt:     now,
		QRCode:        models.GenerateRedemptionToken(),
	}

	s.orders = append([]*models.Order{order}, s.orders...)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	log.Printf("Orders: created order %s for user %s (%d items, total %d)",
		order.ID, userID, order.ItemCount(), totalAmount)

	return order.Clone(), nil
}

// GetOrderByID returns a copy of the matching order. Pure query.
func (s *OrderService) GetOrderByID(orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(orderID)
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrOrderNotFound)
	}

	return order.Clone(), nil
}

// GetUserOrders returns copies of all orders owned by the user,
// preserving the ledger's newest-first ordering. Pure query.
func (s *OrderService) GetUserOrders(userID string) []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			result = append(result, order.Clone())
		}
	}
	return result
}

// ListOrders returns copies of the whole ledger, newest first
func (s *OrderService) ListOrders() []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		result = append(result, order.Clone())
	}
	return result
}

// UpdateStatus applies a status transition. Setting a status the order
// already has is an idempotent success; in particular a repeated paid
// transition never moves PaidAt. Transitions out of a terminal state
// fail with ErrInvalidStatusTransition, and an unknown order id fails
// with ErrOrderNotFound.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	switch status {
	case models.OrderPending, models.OrderPaid, models.OrderCancelled:
	default:
		return models.NewValidationError("status", "invalid order status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(orderID)
	if order == nil {
		return fmt.Errorf("order %s: %w", orderID, models.ErrOrderNotFound)
	}

	if order.Status == status {
		return nil
	}

	if !order.CanTransitionTo(status) {
		return fmt.Errorf("order %s is %s: %w", orderID, order.Status, models.ErrInvalidStatusTransition)
	}

	order.Status = status
	if status == models.OrderPaid && order.PaidAt == nil {
		paidAt := s.clock.Now()
		order.PaidAt = &paidAt
	}

	return s.persist(ctx)
}

// findLocked returns the live ledger entry for the id. Callers must
// hold s.mu and must not leak the pointer outside the lock.
func (s *OrderService) findLocked(orderID string) *models.Order {
	for _, order := range s.orders {
		if order.ID == orderID {
			return order
		}
	}
	return nil
}

// persist writes the full ledger. Callers must hold s.mu.
func (s *OrderService) persist(ctx context.Context) error {
	data, err := json.Marshal(s.orders)
	if err != nil {
		return fmt.Errorf("failed to serialize orders: %w", err)
	}

	if err := s.store.Save(ctx, storage.OrderKey, data); err != nil {
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	return nil
}
