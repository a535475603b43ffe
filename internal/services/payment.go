package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"concert-storefront/internal/models"

	"github.com/jonboulle/clockwork"
)

// PaymentResult describes the outcome of a processed mock payment
type PaymentResult struct {
	PaymentID   string    `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Amount      int       `json:"amount"`
	ProcessedAt time.Time `json:"processed_at"`
}

// PaymentService simulates the payment step of the order lifecycle.
// Processing always succeeds after a simulated delay and moves the
// order from pending to paid; cancellation moves it to cancelled.
type PaymentService struct {
	orders *OrderService
	clock  clockwork.Clock
	delay  time.Duration
}

// NewPaymentService creates a mock payment service
func NewPaymentService(orders *OrderService, clock clockwork.Clock, delay time.Duration) *PaymentService {
	return &PaymentService{orders: orders, clock: clock, delay: delay}
}

// ProcessPayment simulates a successful payment for a pending order.
// Paying an already-paid order is an idempotent success; paying a
// cancelled order fails.
func (s *PaymentService) ProcessPayment(ctx context.Context, orderID string) (*PaymentResult, error) {
	order, err := s.orders.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(models.OrderPaid) {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, models.ErrInvalidStatusTransition)
	}

	// Simulated processing time
	s.clock.Sleep(s.delay)

	if err := s.orders.UpdateStatus(ctx, orderID, models.OrderPaid); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := &PaymentResult{
		PaymentID:   fmt.Sprintf("mock_pay_%d_%d", now.Unix(), order.TotalAmount),
		OrderID:     orderID,
		Status:      "success",
		Amount:      order.TotalAmount,
		ProcessedAt: now,
	}

	log.Printf("Mock Payment: processed payment of %d for order %s via %s",
		order.TotalAmount, orderID, order.PaymentMethod)

	return result, nil
}

// CancelPayment abandons a pending order
func (s *PaymentService) CancelPayment(ctx context.Context, orderID string) error {
	if err := s.orders.UpdateStatus(ctx, orderID, models.OrderCancelled); err != nil {
		return err
	}

	log.Printf("Mock Payment: cancelled order %s", orderID)
	return nil
}
