package models

import (
	"testing"
	"time"
)

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to paid", OrderPending, OrderPaid, true},
		{"pending to cancelled", OrderPending, OrderCancelled, true},
		{"repeated paid", OrderPaid, OrderPaid, true},
		{"repeated cancelled", OrderCancelled, OrderCancelled, true},
		{"paid to cancelled", OrderPaid, OrderCancelled, false},
		{"cancelled to paid", OrderCancelled, OrderPaid, false},
		{"paid back to pending", OrderPaid, OrderPending, false},
		{"cancelled back to pending", OrderCancelled, OrderPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Status: tt.from}
			if got := order.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("Order.CanTransitionTo(%s) from %s = %v, want %v", tt.to, tt.from, got, tt.want)
			}
		})
	}
}

func TestOrder_StatusChecks(t *testing.T) {
	pending := Order{Status: OrderPending}
	paid := Order{Status: OrderPaid}
	cancelled := Order{Status: OrderCancelled}

	if !pending.IsPending() || pending.IsPaid() || pending.IsCancelled() {
		t.Error("pending order status checks are wrong")
	}
	if paid.IsPending() || !paid.IsPaid() || paid.IsCancelled() {
		t.Error("paid order status checks are wrong")
	}
	if cancelled.IsPending() || cancelled.IsPaid() || !cancelled.IsCancelled() {
		t.Error("cancelled order status checks are wrong")
	}
}

func TestOrder_Validate(t *testing.T) {
	now := time.Now()
	valid := Order{
		ID:            GenerateOrderNumber(now),
		UserID:        "user-1",
		Items:         []CartItem{{EventID: "E1", TicketCategoryID: "VIP", Price: 500000, Quantity: 2}},
		TotalAmount:   1005000,
		PaymentMethod: "bank-transfer",
		Status:        OrderPending,
		CreatedAt:     now,
		QRCode:        GenerateRedemptionToken(),
	}

	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
	}{
		{"valid order", func(o *Order) {}, false},
		{"bad order number", func(o *Order) { o.ID = "INVALID-123" }, true},
		{"missing user", func(o *Order) { o.UserID = "" }, true},
		{"no items", func(o *Order) { o.Items = nil }, true},
		{"zero total", func(o *Order) { o.TotalAmount = 0 }, true},
		{"invalid status", func(o *Order) { o.Status = "refunded" }, true},
		{"missing token", func(o *Order) { o.QRCode = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := valid
			tt.mutate(&order)
			err := order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	orderNumber := GenerateOrderNumber(now)
	if !orderNumberRegex.MatchString(orderNumber) {
		t.Errorf("GenerateOrderNumber() = %v, does not match expected format", orderNumber)
	}

	// The date part is taken from the supplied clock
	if orderNumber[4:12] != "20260828" {
		t.Errorf("GenerateOrderNumber() date part = %v, want 20260828", orderNumber[4:12])
	}

	orderNumber2 := GenerateOrderNumber(now)
	if orderNumber == orderNumber2 {
		t.Error("GenerateOrderNumber() generated duplicate order numbers")
	}
}

func TestGenerateRedemptionToken(t *testing.T) {
	token1 := GenerateRedemptionToken()
	token2 := GenerateRedemptionToken()

	if len(token1) < 10 {
		t.Errorf("GenerateRedemptionToken() = %v, too short to be opaque", token1)
	}
	if token1[:3] != "QR-" {
		t.Errorf("GenerateRedemptionToken() = %v, want QR- prefix", token1)
	}
	if token1 == token2 {
		t.Error("GenerateRedemptionToken() generated duplicate tokens")
	}
}

func TestOrder_Clone(t *testing.T) {
	paidAt := time.Now()
	order := Order{
		ID:     "ORD-20260828-000001",
		UserID: "user-1",
		Items:  []CartItem{{EventID: "E1", TicketCategoryID: "VIP", Quantity: 2}},
		Status: OrderPaid,
		PaidAt: &paidAt,
	}

	cloned := order.Clone()
	cloned.Items[0].Quantity = 99
	*cloned.PaidAt = paidAt.Add(time.Hour)

	if order.Items[0].Quantity != 2 {
		t.Errorf("Clone() shares items: quantity = %v", order.Items[0].Quantity)
	}
	if !order.PaidAt.Equal(paidAt) {
		t.Errorf("Clone() shares paid timestamp: %v", order.PaidAt)
	}
}

func TestOrder_ItemCount(t *testing.T) {
	order := Order{Items: []CartItem{{Quantity: 2}, {Quantity: 3}}}
	if got := order.ItemCount(); got != 5 {
		t.Errorf("Order.ItemCount() = %v, want 5", got)
	}
}
