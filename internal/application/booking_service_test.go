package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	bookingDomain "github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
	"github.com/David-19-dev/abdouperformence-sub001/internal/events"
)

// memoryBookingRepo is an in-memory booking repository for unit tests. It
// mirrors the merge semantics of the GORM implementation.
type memoryBookingRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*bookingDomain.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{items: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *memoryBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return bk, nil
}

func (r *memoryBookingRepo) List(_ context.Context) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*bookingDomain.Booking, 0, len(r.items))
	for _, bk := range r.items {
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *memoryBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[bk.ID()] = bk
	return nil
}

func (r *memoryBookingRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.items[id]
	if !ok {
		return domain.NewNotFoundError("booking", id.String())
	}

	sessionType := bk.SessionType()
	goal := bk.Goal()
	preferredDate := bk.PreferredDate()
	preferredTime := bk.PreferredTime()
	message := bk.Message()
	status := bk.Status()

	for column, value := range fields {
		switch column {
		case "session_type":
			sessionType = bookingDomain.SessionType(value.(string))
		case "goal":
			goal = bookingDomain.Goal(value.(string))
		case "preferred_date":
			preferredDate = value.(time.Time)
		case "preferred_time":
			preferredTime = value.(string)
		case "message":
			message = value.(string)
		case "status":
			status = bookingDomain.Status(value.(string))
		}
	}
	if !sessionType.IsValid() || !goal.IsValid() || !status.IsValid() {
		return domain.NewValidationError("invalid enum value")
	}

	r.items[id] = bookingDomain.Reconstruct(
		id, sessionType, goal, preferredDate, preferredTime, message, status,
		bk.Contact(), bk.CreatedAt(), time.Now().UTC(),
	)
	return nil
}

func (r *memoryBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("booking", id.String())
	}
	delete(r.items, id)
	return nil
}

func (r *memoryBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.items {
		counts[bk.Status().String()]++
	}
	return counts, nil
}

// recordingPublisher captures published events instead of touching Kafka.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CloudEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, ce events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ce)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ce := range p.events {
		out[i] = ce.Type
	}
	return out
}

func newTestBookingService() (*BookingService, *memoryBookingRepo, *recordingPublisher) {
	repo := newMemoryBookingRepo()
	publisher := &recordingPublisher{}
	svc := NewBookingService(repo, publisher, zap.NewNop())
	return svc, repo, publisher
}

func createRequest(name, email string) CreateBookingRequest {
	return CreateBookingRequest{
		SessionType:   "personal",
		Goal:          "weight-loss",
		PreferredDate: "2026-09-10",
		PreferredTime: "09:30",
		Message:       "premier rendez-vous",
		Name:          name,
		Email:         email,
		Phone:         "+221 77 123 45 67",
	}
}

func TestCreateBooking_ThenList(t *testing.T) {
	svc, _, publisher := newTestBookingService()
	ctx := context.Background()

	dto, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, "En attente", dto.StatusLabel)
	assert.Equal(t, "Coaching personnel", dto.SessionTypeLabel)
	assert.Equal(t, dto.CreatedAt, dto.UpdatedAt)

	listed, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, dto.ID, listed[0].ID)
	assert.Equal(t, "Awa Diop", listed[0].Name)

	assert.Equal(t, []string{events.BookingCreated}, publisher.types())
}

func TestCreateBooking_RejectsInvalidInput(t *testing.T) {
	svc, _, publisher := newTestBookingService()
	ctx := context.Background()

	bad := createRequest("Awa Diop", "awa@example.com")
	bad.PreferredDate = "10/09/2026"
	_, err := svc.CreateBooking(ctx, bad)
	assert.Error(t, err)

	bad = createRequest("Awa Diop", "awa@example.com")
	bad.SessionType = "yoga"
	_, err = svc.CreateBooking(ctx, bad)
	assert.Error(t, err)

	assert.Empty(t, publisher.types())
}

func TestListBookings_NewestFirst(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateBooking(ctx, createRequest("Moussa Fall", "moussa@example.com"))
	require.NoError(t, err)

	listed, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))
}

func TestUpdateStatus_RoundTrip(t *testing.T) {
	svc, _, publisher := newTestBookingService()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateStatus(ctx, created.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, "Confirmé", updated.StatusLabel)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Transitions are unconstrained: a cancelled booking can come back.
	_, err = svc.UpdateStatus(ctx, created.ID, "cancelled")
	require.NoError(t, err)
	reopened, err := svc.UpdateStatus(ctx, created.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", reopened.Status)

	assert.Equal(t, []string{
		events.BookingCreated,
		events.BookingStatusChanged,
		events.BookingStatusChanged,
		events.BookingStatusChanged,
	}, publisher.types())
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, "archived")
	assert.Error(t, err)

	_, err = svc.UpdateStatus(ctx, uuid.New(), "confirmed")
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindNotFound, domainErr.Kind)
}

func TestUpdateBooking_MergesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)

	newTime := "18:00"
	updated, err := svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{PreferredTime: &newTime})
	require.NoError(t, err)

	assert.Equal(t, "18:00", updated.PreferredTime)
	assert.Equal(t, created.SessionType, updated.SessionType)
	assert.Equal(t, created.Goal, updated.Goal)
	assert.Equal(t, created.Message, updated.Message)

	_, err = svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{})
	assert.Error(t, err)
}

func TestDeleteBooking(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(ctx, created.ID))

	_, err = svc.GetBooking(ctx, created.ID)
	assert.Error(t, err)

	err = svc.DeleteBooking(ctx, created.ID)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindNotFound, domainErr.Kind)
}

func TestGetBookingStats(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	a, err := svc.CreateBooking(ctx, createRequest("Awa Diop", "awa@example.com"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, createRequest("Moussa Fall", "moussa@example.com"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, a.ID, "confirmed")
	require.NoError(t, err)

	stats, err := svc.GetBookingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(1), stats.ByStatus["confirmed"])
}

func TestFilterBookings(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	// Fixed clock: Tuesday 2026-03-17, 10:00 UTC.
	svc.now = func() time.Time { return time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC) }

	mk := func(name, email, sessionType, date string) *BookingDTO {
		req := createRequest(name, email)
		req.SessionType = sessionType
		req.PreferredDate = date
		dto, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
		return dto
	}

	today := mk("Awa Diop", "awa@example.com", "personal", "2026-03-17")
	yesterday := mk("Moussa Fall", "moussa@example.com", "group", "2026-03-16")
	nextWeek := mk("Fatou Ndiaye", "fatou@example.com", "evaluation", "2026-03-23")
	nextMonth := mk("Omar Sy", "omar@example.com", "personal", "2026-04-02")

	ids := func(dtos []BookingDTO) []uuid.UUID {
		out := make([]uuid.UUID, len(dtos))
		for i, d := range dtos {
			out[i] = d.ID
		}
		return out
	}

	out, err := svc.FilterBookings(ctx, BookingFilter{Query: "awa"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{today.ID}, ids(out))

	out, err = svc.FilterBookings(ctx, BookingFilter{SessionType: "group"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{yesterday.ID}, ids(out))

	out, err = svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangeToday})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{today.ID}, ids(out))

	out, err = svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangePast})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{yesterday.ID}, ids(out))

	out, err = svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangeWeek})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{today.ID, nextWeek.ID}, ids(out))

	out, err = svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangeMonth})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{today.ID, yesterday.ID, nextWeek.ID}, ids(out))
	assert.NotContains(t, ids(out), nextMonth.ID)

	_, err = svc.FilterBookings(ctx, BookingFilter{DateRange: "fortnight"})
	assert.Error(t, err)
}

func TestFilterBookings_MidnightBoundary(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	svc.now = func() time.Time { return time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC) }

	req := createRequest("Awa Diop", "awa@example.com")
	req.PreferredDate = "2026-03-17"
	req.PreferredTime = "00:00"
	_, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	// A session at today's exact midnight is today, not past.
	out, err := svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangeToday})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = svc.FilterBookings(ctx, BookingFilter{DateRange: DateRangePast})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExportBookingsCSV(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	req := createRequest("Awa Diop", "awa@example.com")
	req.Message = "objectif marathon"
	created, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	out, err := svc.ExportBookingsCSV(ctx, BookingFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Nom,Email,Téléphone,Type de séance,Objectif,Date,Heure,Statut,Message,Créé le", lines[0])

	cols := strings.Split(lines[1], ",")
	require.Len(t, cols, 11)
	assert.Equal(t, created.ID.String()[:8], cols[0])
	assert.Equal(t, "Awa Diop", cols[1])
	assert.Equal(t, "10/09/2026", cols[6])
	assert.Equal(t, "09:30", cols[7])
	assert.Equal(t, "En attente", cols[8])
	assert.Equal(t, `"objectif marathon"`, cols[9])
}

func TestExportBookingsCSV_CommaInNameShiftsColumns(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, createRequest("Jean, Paul", "jp@example.com"))
	require.NoError(t, err)

	out, err := svc.ExportBookingsCSV(ctx, BookingFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	// Only the message field is quoted, so the comma inside the name splits
	// it across two columns and shifts everything after it.
	cols := strings.Split(lines[1], ",")
	assert.Len(t, cols, 12)
	assert.Equal(t, "Jean", cols[1])
	assert.Equal(t, " Paul", cols[2])
	assert.Equal(t, "jp@example.com", cols[3])
}
