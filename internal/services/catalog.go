package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"concert-storefront/internal/models"

	"github.com/jonboulle/clockwork"
)

//go:embed events.json
var seedEvents []byte

// CatalogService is the read-only event source. The core consumes it
// through list and by-id retrieval; search and category filtering serve
// the browsing tools. There is no write interface.
type CatalogService struct {
	clock  clockwork.Clock
	delay  time.Duration
	events []models.Event
}

// NewCatalogService creates a catalog backed by the embedded seed data
func NewCatalogService(clock clockwork.Clock, delay time.Duration) (*CatalogService, error) {
	var events []models.Event
	if err := json.Unmarshal(seedEvents, &events); err != nil {
		return nil, fmt.Errorf("failed to parse seed events: %w", err)
	}
	return NewCatalogServiceWithEvents(clock, delay, events), nil
}

// NewCatalogServiceWithEvents creates a catalog from an explicit event
// list, used by tests
func NewCatalogServiceWithEvents(clock clockwork.Clock, delay time.Duration, events []models.Event) *CatalogService {
	return &CatalogService{clock: clock, delay: delay, events: events}
}

// ListEvents returns all events
func (s *CatalogService) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.clock.Sleep(s.delay)
	return cloneEvents(s.events), nil
}

// GetEventByID returns the matching event or ErrEventNotFound
func (s *CatalogService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	s.clock.Sleep(s.delay)

	for i := range s.events {
		if s.events[i].ID == id {
			cloned := cloneEvent(s.events[i])
			return &cloned, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, models.ErrEventNotFound)
}

// SearchEvents returns events whose title, artist or category contains
// the query, case-insensitively
func (s *CatalogService) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	s.clock.Sleep(s.delay)

	query = strings.ToLower(query)
	var result []models.Event
	for i := range s.events {
		e := &s.events[i]
		if strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.Artist), query) ||
			strings.Contains(strings.ToLower(e.Category), query) {
			result = append(result, cloneEvent(*e))
		}
	}
	return result, nil
}

// FilterByCategory returns events in the category; "all" returns the
// full catalog
func (s *CatalogService) FilterByCategory(ctx context.Context, category string) ([]models.Event, error) {
	s.clock.Sleep(s.delay)

	if category == "all" {
		return cloneEvents(s.events), nil
	}

	var result []models.Event
	for i := range s.events {
		if strings.EqualFold(s.events[i].Category, category) {
			result = append(result, cloneEvent(s.events[i]))
		}
	}
	return result, nil
}

func cloneEvent(e models.Event) models.Event {
	cloned := e
	cloned.TicketCategories = make([]models.TicketCategory, len(e.TicketCategories))
	for i, tc := range e.TicketCategories {
		cloned.TicketCategories[i] = tc
		cloned.TicketCategories[i].Benefits = append([]string(nil), tc.Benefits...)
	}
	return cloned
}

func cloneEvents(events []models.Event) []models.Event {
	cloned := make([]models.Event, len(events))
	for i, e := range events {
		cloned[i] = cloneEvent(e)
	}
	return cloned
}
