package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents carries every booking collection change.
const TopicBookingEvents = "booking.events"

// Booking event types.
const (
	BookingCreated       = "booking.created"
	BookingUpdated       = "booking.updated"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
)

// BookingChangedEvent is the payload for every booking change notification.
// The feed consumer re-queries the full collection on receipt, so the
// payload only identifies what changed.
type BookingChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
