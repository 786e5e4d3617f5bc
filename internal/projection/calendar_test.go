package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
)

func testBooking(t *testing.T, name string, status booking.Status, date, tod string) *booking.Booking {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	now := time.Now().UTC()
	return booking.Reconstruct(
		uuid.New(),
		booking.SessionPersonal,
		booking.GoalFitness,
		parsed,
		tod,
		"",
		status,
		booking.ContactInfo{Name: name, Email: "test@example.com", Phone: "+221 77 000 00 00"},
		now,
		now,
	)
}

func TestMapBookings(t *testing.T) {
	bookings := []*booking.Booking{
		testBooking(t, "Awa Diop", booking.StatusConfirmed, "2026-09-10", "09:30"),
		testBooking(t, "Moussa Fall", booking.StatusCancelled, "2026-09-10", "11:00"),
		testBooking(t, "Fatou Ndiaye", booking.StatusPending, "2026-09-11", "18:00"),
	}

	events := MapBookings(bookings)
	require.Len(t, events, 2)

	assert.Equal(t, "Awa Diop - Coaching personnel", events[0].Title)
	assert.Equal(t, "confirmed", events[0].Status)
	assert.Equal(t, time.Date(2026, 9, 10, 9, 30, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC), events[0].End)

	assert.Equal(t, "Fatou Ndiaye - Coaching personnel", events[1].Title)
	assert.Equal(t, "pending", events[1].Status)
}

func TestMapBookings_ExcludesOnlyCancelled(t *testing.T) {
	confirmed := testBooking(t, "Awa Diop", booking.StatusConfirmed, "2026-09-10", "09:30")
	cancelled := testBooking(t, "Moussa Fall", booking.StatusCancelled, "2026-09-10", "09:30")

	events := MapBookings([]*booking.Booking{confirmed, cancelled})
	require.Len(t, events, 1)
	assert.Equal(t, confirmed.ID(), events[0].ID)
}

func TestMapBookings_Idempotent(t *testing.T) {
	bookings := []*booking.Booking{
		testBooking(t, "Awa Diop", booking.StatusCompleted, "2026-09-10", "09:30"),
		testBooking(t, "Fatou Ndiaye", booking.StatusPending, "2026-09-11", "18:00"),
	}

	first := MapBookings(bookings)
	second := MapBookings(bookings)
	assert.Equal(t, first, second)
}

func TestMapBookings_Empty(t *testing.T) {
	assert.Empty(t, MapBookings(nil))
	assert.Empty(t, MapBookings([]*booking.Booking{}))
}

func TestMapBookings_MalformedTimeFallsBackToMidnight(t *testing.T) {
	bk := testBooking(t, "Awa Diop", booking.StatusConfirmed, "2026-09-10", "not-a-time")

	events := MapBookings([]*booking.Booking{bk})
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Hour, events[0].End.Sub(events[0].Start))
}
