package projection

import (
	"time"

	"github.com/google/uuid"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
)

// CalendarEvent is the calendar-displayable view of a booking.
type CalendarEvent struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

// MapBookings projects bookings into calendar events. Cancelled bookings are
// excluded; everything else maps to a one-hour event titled
// "{name} - {session type label}". The mapping is pure: same input, same
// output, input order preserved.
func MapBookings(bookings []*booking.Booking) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(bookings))
	for _, bk := range bookings {
		if bk.Status() == booking.StatusCancelled {
			continue
		}
		events = append(events, CalendarEvent{
			ID:     bk.ID(),
			Title:  bk.Contact().Name + " - " + bk.SessionType().Label(),
			Start:  bk.StartsAt(),
			End:    bk.EndsAt(),
			Status: bk.Status().String(),
		})
	}
	return events
}
