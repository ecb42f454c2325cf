package domain

import (
	"context"
	"time"
)

// Interest is an attendee's expression of interest in an event.
// Interests are owned by exactly one event, created once, and never
// mutated or deleted. The same person may register more than once.
// swagger:model Interest
type Interest struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	People    int       `json:"people"`
	CreatedAt time.Time `json:"created_at"`
}

// InterestRepository defines the interface for interest storage.
type InterestRepository interface {
	Create(ctx context.Context, interest *Interest) error
	ListByEventID(ctx context.Context, eventID string) ([]*Interest, error)
}

// InterestService defines the business logic for registering interest.
type InterestService interface {
	RegisterInterest(ctx context.Context, eventID string, interest *Interest) (*Interest, error)
}
