package services

import (
	"context"
	"testing"

	"concert-storefront/internal/models"
	"concert-storefront/internal/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServiceFee = 5000

type checkoutFixture struct {
	session  *SessionService
	cart     *CartService
	orders   *OrderService
	checkout *CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := clockwork.NewFakeClock()

	session := NewSessionService(store, clock, 0, testTokenSecret)
	cart := NewCartService(store)
	orders := NewOrderService(store, clock)

	return &checkoutFixture{
		session:  session,
		cart:     cart,
		orders:   orders,
		checkout: NewCheckoutService(session, cart, orders, clock, 0, testServiceFee),
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	user, _, err := f.session.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)

	item := vipItem(2)
	item.Price = 200000
	require.NoError(t, f.cart.AddItem(ctx, item))

	order, err := f.checkout.Checkout(ctx, "bank-transfer")
	require.NoError(t, err)

	// 2 x 200000 plus the fixed service fee
	assert.Equal(t, 405000, order.TotalAmount)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "bank-transfer", order.PaymentMethod)
	assert.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// The cart is cleared after the order is created
	assert.Empty(t, f.cart.Items())
	assert.Zero(t, f.cart.TotalPrice())

	// The order landed in the ledger
	fetched, err := f.orders.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, fetched)
}

func TestCheckoutService_Checkout_NoActiveSession(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.AddItem(ctx, vipItem(1)))

	_, err := f.checkout.Checkout(ctx, "bank-transfer")
	assert.ErrorIs(t, err, models.ErrNoActiveSession)

	// The cart is untouched by the failed checkout
	assert.Len(t, f.cart.Items(), 1)
	assert.Empty(t, f.orders.ListOrders())
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, _, err := f.session.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, "bank-transfer")
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Empty(t, f.orders.ListOrders())
}

func TestCheckoutService_Checkout_MissingPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, _, err := f.session.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)
	require.NoError(t, f.cart.AddItem(ctx, vipItem(1)))

	_, err = f.checkout.Checkout(ctx, "")
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Len(t, f.cart.Items(), 1)
}

func TestCheckoutService_ServiceFee(t *testing.T) {
	f := newCheckoutFixture(t)
	assert.Equal(t, testServiceFee, f.checkout.ServiceFee())
}

func TestCheckoutService_SequentialCheckouts(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, _, err := f.session.Login(ctx, "a@b.com", "123456")
	require.NoError(t, err)

	require.NoError(t, f.cart.AddItem(ctx, vipItem(1)))
	first, err := f.checkout.Checkout(ctx, "bank-transfer")
	require.NoError(t, err)

	require.NoError(t, f.cart.AddItem(ctx, vipItem(3)))
	second, err := f.checkout.Checkout(ctx, "e-wallet")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 500000+testServiceFee, first.TotalAmount)
	assert.Equal(t, 3*500000+testServiceFee, second.TotalAmount)

	ledger := f.orders.ListOrders()
	require.Len(t, ledger, 2)
	assert.Equal(t, second.ID, ledger[0].ID, "newest order first")
}
