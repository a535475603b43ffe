package models

// CartItem represents one (event, ticket category) selection in the cart.
// Event fields are a denormalized snapshot taken when the item is added,
// not a live reference into the catalog.
type CartItem struct {
	EventID            string `json:"event_id"`
	EventTitle         string `json:"event_title"`
	EventDate          string `json:"event_date"`
	EventLocation      string `json:"event_location"`
	EventImage         string `json:"event_image"`
	TicketCategoryID   string `json:"ticket_category_id"`
	TicketCategoryName string `json:"ticket_category_name"`
	Price              int    `json:"price"` // in the smallest currency unit
	Quantity           int    `json:"quantity"`
}

// Validate validates a line item before it enters the cart
func (i *CartItem) Validate() error {
	if i.EventID == "" {
		return NewValidationError("event_id", "event id is required")
	}

	if i.TicketCategoryID == "" {
		return NewValidationError("ticket_category_id", "ticket category id is required")
	}

	if i.Price < 0 {
		return NewValidationError("price", "price cannot be negative")
	}

	if i.Quantity < 1 {
		return NewValidationError("quantity", "quantity must be at least 1")
	}

	return nil
}

// Matches reports whether the item is keyed by the given event and
// ticket category pair. The pair is the cart's uniqueness key.
func (i *CartItem) Matches(eventID, ticketCategoryID string) bool {
	return i.EventID == eventID && i.TicketCategoryID == ticketCategoryID
}

// Subtotal returns price multiplied by quantity
func (i *CartItem) Subtotal() int {
	return i.Price * i.Quantity
}

// CloneItems returns an independent copy of a line item slice. CartItem
// holds no reference types, so a value copy is a deep copy.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	cloned := make([]CartItem, len(items))
	copy(cloned, items)
	return cloned
}
