package models

// Event represents a concert event in the read-only catalog
type Event struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Artist           string           `json:"artist"`
	Location         string           `json:"location"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	Image            string           `json:"image"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	TicketCategories []TicketCategory `json:"ticketCategories"`
}

// TicketCategory represents one purchasable ticket tier of an event
type TicketCategory struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"` // in the smallest currency unit
	Stock    int      `json:"stock"`
	Benefits []string `json:"benefits"`
}

// TicketCategoryByID returns the matching ticket category, or nil
func (e *Event) TicketCategoryByID(id string) *TicketCategory {
	for i := range e.TicketCategories {
		if e.TicketCategories[i].ID == id {
			return &e.TicketCategories[i]
		}
	}
	return nil
}

// LineItem builds a cart line item snapshot for a ticket category of
// this event
func (e *Event) LineItem(category *TicketCategory, quantity int) CartItem {
	return CartItem{
		EventID:            e.ID,
		EventTitle:         e.Title,
		EventDate:          e.Date,
		EventLocation:      e.Location,
		EventImage:         e.Image,
		TicketCategoryID:   category.ID,
		TicketCategoryName: category.Name,
		Price:              category.Price,
		Quantity:           quantity,
	}
}
