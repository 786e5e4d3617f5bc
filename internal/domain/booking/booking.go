package booking

import (
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/google/uuid"
)

// SessionDuration is the fixed display duration of every training session.
const SessionDuration = time.Hour

// Booking is the aggregate root for a requested training session.
type Booking struct {
	id            uuid.UUID
	sessionType   SessionType
	goal          Goal
	preferredDate time.Time
	preferredTime string
	message       string
	status        Status
	contact       ContactInfo

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=pending and validated fields.
func NewBooking(
	sessionType SessionType,
	goal Goal,
	preferredDate time.Time,
	preferredTime string,
	message string,
	contact ContactInfo,
) (*Booking, error) {
	if !sessionType.IsValid() {
		return nil, domain.NewValidationError("invalid session type: " + string(sessionType))
	}
	if !goal.IsValid() {
		return nil, domain.NewValidationError("invalid goal: " + string(goal))
	}
	if preferredDate.IsZero() {
		return nil, domain.NewValidationError("preferred date is required")
	}
	if _, err := ParseTimeOfDay(preferredTime); err != nil {
		return nil, domain.NewValidationError("invalid preferred time: " + preferredTime)
	}
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	y, m, d := preferredDate.Date()
	return &Booking{
		id:            uuid.New(),
		sessionType:   sessionType,
		goal:          goal,
		preferredDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		preferredTime: preferredTime,
		message:       message,
		status:        StatusPending,
		contact:       contact,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	sessionType SessionType,
	goal Goal,
	preferredDate time.Time,
	preferredTime string,
	message string,
	status Status,
	contact ContactInfo,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		sessionType:   sessionType,
		goal:          goal,
		preferredDate: preferredDate,
		preferredTime: preferredTime,
		message:       message,
		status:        status,
		contact:       contact,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// SessionType returns the requested session type.
func (b *Booking) SessionType() SessionType { return b.sessionType }

// Goal returns the client's training goal.
func (b *Booking) Goal() Goal { return b.goal }

// PreferredDate returns the requested session date (midnight UTC).
func (b *Booking) PreferredDate() time.Time { return b.preferredDate }

// PreferredTime returns the requested time of day in "HH:MM" form.
func (b *Booking) PreferredTime() string { return b.preferredTime }

// Message returns the optional free-text message from the client.
func (b *Booking) Message() string { return b.message }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Contact returns the client's contact information.
func (b *Booking) Contact() ContactInfo { return b.contact }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// SetStatus moves the booking to the given status. Transitions are
// unconstrained: any status may move to any other, including out of
// cancelled and completed.
func (b *Booking) SetStatus(target Status) error {
	if !target.IsValid() {
		return domain.NewValidationError("invalid booking status: " + string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// StartsAt returns the session start instant: preferred date combined with
// the preferred time of day. A malformed stored time falls back to midnight
// so the mapping stays total.
func (b *Booking) StartsAt() time.Time {
	tod, err := ParseTimeOfDay(b.preferredTime)
	if err != nil {
		tod = 0
	}
	y, m, d := b.preferredDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(tod)
}

// EndsAt returns the session end instant, one hour after StartsAt.
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt().Add(SessionDuration)
}

// ParseTimeOfDay parses a "HH:MM" string into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
