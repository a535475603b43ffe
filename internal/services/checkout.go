package services

import (
	"context"
	"log"
	"time"

	"concert-storefront/internal/models"

	"github.com/jonboulle/clockwork"
)

// CheckoutService turns the current cart into a pending order for the
// current identity. The cart snapshot is taken first, the order is
// created, and only then is the cart cleared, so a failure mid-flow
// never loses the cart contents.
type CheckoutService struct {
	session    *SessionService
	cart       *CartService
	orders     *OrderService
	clock      clockwork.Clock
	delay      time.Duration
	serviceFee int
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(session *SessionService, cart *CartService, orders *OrderService, clock clockwork.Clock, delay time.Duration, serviceFee int) *CheckoutService {
	return &CheckoutService{
		session:    session,
		cart:       cart,
		orders:     orders,
		clock:      clock,
		delay:      delay,
		serviceFee: serviceFee,
	}
}

// ServiceFee returns the fixed surcharge added to every order total
func (s *CheckoutService) ServiceFee() int {
	return s.serviceFee
}

// Checkout creates a pending order from the cart and clears the cart.
// It fails with ErrNoActiveSession when nobody is logged in and with
// ErrEmptyCart when there is nothing to buy; in both cases the cart is
// left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, paymentMethod string) (*models.Order, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return nil, models.ErrNoActiveSession
	}

	if paymentMethod == "" {
		return nil, models.NewValidationError("payment_method", "payment method is required")
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	totalAmount := s.cart.TotalPrice() + s.serviceFee

	// Simulated processing time
	s.clock.Sleep(s.delay)

	order, err := s.orders.CreateOrder(ctx, user.ID, items, totalAmount, paymentMethod)
	if err != nil {
		return nil, err
	}

	// Create-then-clear: the order holds its own copy of the items, so
	// clearing afterwards cannot lose the snapshot. A failed clear
	// leaves a stale cart but a valid order.
	if err := s.cart.Clear(ctx); err != nil {
		log.Printf("Checkout: order %s created but cart clear failed: %v", order.ID, err)
	}

	log.Printf("Checkout: order %s awaiting payment via %s (total %d, incl. fee %d)",
		order.ID, paymentMethod, totalAmount, s.serviceFee)

	return order, nil
}
