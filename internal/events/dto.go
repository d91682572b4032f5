package events

import (
	"time"

	"github.com/fiesta-events/fiesta-events/internal/pricing"
)

// CreateEventRequest carries the booking wizard submission. The embedded
// draft keeps the wizard's camelCase field names and tolerant numeric
// coercion; totals in the draft's pricing block are inputs to the server
// side calculation, never persisted as-is.
type CreateEventRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	ClientID int64   `json:"client" validate:"required,gt=0"`
	SpaceID  int64   `json:"venueSpace" validate:"required,gt=0"`
	Notes    *string `json:"notes,omitempty"`

	pricing.EventDraft
}

// UpdateEventRequest mirrors the create payload; only DRAFT events accept it.
type UpdateEventRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	ClientID int64   `json:"client" validate:"required,gt=0"`
	SpaceID  int64   `json:"venueSpace" validate:"required,gt=0"`
	Notes    *string `json:"notes,omitempty"`

	pricing.EventDraft
}

type CancelEventRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ListEventsRequest struct {
	ClientID *int64
	SpaceID  *int64
	Status   *EventStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Limit    int
	Offset   int
}
