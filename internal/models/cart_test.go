package models

import "testing"

func TestCartItem_Validate(t *testing.T) {
	valid := CartItem{
		EventID:            "E1",
		EventTitle:         "Nusantara Rock Festival",
		TicketCategoryID:   "VIP",
		TicketCategoryName: "VIP",
		Price:              500000,
		Quantity:           2,
	}

	tests := []struct {
		name    string
		mutate  func(*CartItem)
		wantErr bool
	}{
		{"valid item", func(i *CartItem) {}, false},
		{"missing event id", func(i *CartItem) { i.EventID = "" }, true},
		{"missing category id", func(i *CartItem) { i.TicketCategoryID = "" }, true},
		{"negative price", func(i *CartItem) { i.Price = -1 }, true},
		{"zero quantity", func(i *CartItem) { i.Quantity = 0 }, true},
		{"negative quantity", func(i *CartItem) { i.Quantity = -3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			err := item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CartItem.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Price: 500000, Quantity: 3}
	if got := item.Subtotal(); got != 1500000 {
		t.Errorf("CartItem.Subtotal() = %v, want 1500000", got)
	}
}

func TestCartItem_Matches(t *testing.T) {
	item := CartItem{EventID: "E1", TicketCategoryID: "VIP"}

	if !item.Matches("E1", "VIP") {
		t.Error("CartItem.Matches() = false for its own key")
	}
	if item.Matches("E1", "festival") {
		t.Error("CartItem.Matches() = true for different category")
	}
	if item.Matches("E2", "VIP") {
		t.Error("CartItem.Matches() = true for different event")
	}
}

func TestCloneItems(t *testing.T) {
	original := []CartItem{{EventID: "E1", TicketCategoryID: "VIP", Price: 500000, Quantity: 2}}

	cloned := CloneItems(original)
	cloned[0].Quantity = 99

	if original[0].Quantity != 2 {
		t.Errorf("CloneItems() shares backing storage: original quantity = %v", original[0].Quantity)
	}

	if CloneItems(nil) != nil {
		t.Error("CloneItems(nil) should stay nil")
	}
}
