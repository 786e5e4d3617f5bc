package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// List retrieves all bookings ordered by creation time descending.
	List(ctx context.Context) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, bk *Booking) error

	// UpdateFields merges the given columns into an existing booking and
	// refreshes updated_at. No read-before-write and no optimistic
	// concurrency: concurrent writers race with last-write-wins per field.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a booking permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
