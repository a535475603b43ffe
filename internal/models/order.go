package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the payment lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is an immutable-after-creation record of a checkout attempt.
// Items are copied by value at creation time, so later cart mutations
// never affect the ledger.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Items         []CartItem  `json:"items"`
	TotalAmount   int         `json:"total_amount"` // includes the checkout service fee
	PaymentMethod string      `json:"payment_method"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	QRCode        string      `json:"qr_code"` // opaque redemption token, unique per order
}

// Order number format: ORD-YYYYMMDD-XXXXXX (e.g. ORD-20260101-123456)
var orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

// Validate validates the order data
func (o *Order) Validate() error {
	if !orderNumberRegex.MatchString(o.ID) {
		return NewValidationError("id", "order number format is invalid")
	}

	if o.UserID == "" {
		return NewValidationError("user_id", "owning user id is required")
	}

	if len(o.Items) == 0 || o.TotalAmount <= 0 {
		return ErrInvalidOrder
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	if o.QRCode == "" {
		return NewValidationError("qr_code", "redemption token is required")
	}

	return nil
}

func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPending, OrderPaid, OrderCancelled:
		return nil
	default:
		return NewValidationError("status", "invalid order status")
	}
}

// IsPending returns true if the order is awaiting payment
func (o *Order) IsPending() bool {
	return o.Status == OrderPending
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderCancelled
}

// CanTransitionTo reports whether the status machine allows moving to the
// target state. Transitions are one-directional: pending may move to paid
// or cancelled, and the terminal states only accept themselves (repeated
// transitions are idempotent, never an error).
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	if o.Status == target {
		return true
	}
	return o.Status == OrderPending && (target == OrderPaid || target == OrderCancelled)
}

// ItemCount returns the total ticket quantity across all line items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns an independent copy of the order
func (o *Order) Clone() *Order {
	cloned := *o
	cloned.Items = CloneItems(o.Items)
	if o.PaidAt != nil {
		paidAt := *o.PaidAt
		cloned.PaidAt = &paidAt
	}
	return &cloned
}

// GenerateOrderNumber generates an order number of the form
// ORD-YYYYMMDD-XXXXXX. Uniqueness against the existing ledger is the
// order container's responsibility.
func GenerateOrderNumber(now time.Time) string {
	dateStr := now.Format("20060102")

	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

// GenerateRedemptionToken generates the opaque unique value rendered as a
// scannable code once the order is paid
func GenerateRedemptionToken() string {
	return "QR-" + strings.ToUpper(uuid.NewString())
}
