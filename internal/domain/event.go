package domain

import (
	"context"
	"time"
)

// EventStatus is the moderation status of an event.
type EventStatus string

// Moderation statuses. The set is closed: a status outside it is rejected
// before any write.
const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// Valid reports whether s is one of the known moderation statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Event represents a community event submitted by an organizer.
// Date is a local calendar date (YYYY-MM-DD) and Time a local time of day
// (HH:MM); both are kept as strings because the reminder scan compares
// stored dates for string equality against tomorrow's date.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	UserID      string      `json:"userId,omitempty"`
	Status      EventStatus `json:"status"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Interests submitted for this event, in submission order. Populated
	// on single-event reads; append-only.
	Interests []*Interest `json:"interests"`
}

// EventPatch holds the optional fields of a partial event update.
// A nil field is left untouched.
type EventPatch struct {
	Title       *string
	Category    *string
	Date        *string
	Time        *string
	Location    *string
	Description *string
	Status      *EventStatus
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, status EventStatus, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
	ListApprovedByDate(ctx context.Context, date string) ([]*Event, error)
}

// EventService defines the business logic for the event lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, status string, params PaginationParams) ([]*Event, int, error)
	PatchEvent(ctx context.Context, eventID, callerID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}
