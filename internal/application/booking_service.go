package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	bookingDomain "github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
	"github.com/David-19-dev/abdouperformence-sub001/internal/events"
)

const eventSource = "coaching-backoffice"

// CreateBookingRequest holds the data the public booking form submits.
type CreateBookingRequest struct {
	SessionType   string `json:"session_type" binding:"required"`
	Goal          string `json:"goal" binding:"required"`
	PreferredDate string `json:"preferred_date" binding:"required"`
	PreferredTime string `json:"preferred_time" binding:"required"`
	Message       string `json:"message"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
}

// UpdateBookingRequest holds the optional fields an admin may change.
// Nil fields are left untouched (field-level merge, not replace).
type UpdateBookingRequest struct {
	SessionType   *string `json:"session_type"`
	Goal          *string `json:"goal"`
	PreferredDate *string `json:"preferred_date"`
	PreferredTime *string `json:"preferred_time"`
	Message       *string `json:"message"`
}

// BookingDTO is the API response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID `json:"id"`
	SessionType      string    `json:"session_type"`
	SessionTypeLabel string    `json:"session_type_label"`
	Goal             string    `json:"goal"`
	GoalLabel        string    `json:"goal_label"`
	PreferredDate    string    `json:"preferred_date"`
	PreferredTime    string    `json:"preferred_time"`
	Message          string    `json:"message,omitempty"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"status_label"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// EventPublisher publishes change notifications to the booking feed.
// *events.Producer is the production implementation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, ce events.CloudEvent) error
}

// BookingService orchestrates booking use cases for the public form and the
// admin back-office.
type BookingService struct {
	repo     bookingDomain.Repository
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(repo bookingDomain.Repository, producer EventPublisher, logger *zap.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking creates a new pending booking from the public form.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	preferredDate, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		return nil, domain.NewValidationError("invalid preferred date: " + req.PreferredDate)
	}

	bk, err := bookingDomain.NewBooking(
		bookingDomain.SessionType(req.SessionType),
		bookingDomain.Goal(req.Goal),
		preferredDate,
		req.PreferredTime,
		req.Message,
		bookingDomain.ContactInfo{Name: req.Name, Email: req.Email, Phone: req.Phone},
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishBookingEvent(ctx, events.BookingCreated, bk.ID(), bk.Status().String())

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookings returns all bookings, newest first.
func (s *BookingService) ListBookings(ctx context.Context) ([]BookingDTO, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// UpdateBooking merges the provided fields into the booking and returns the
// record as re-read after the write.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	fields := make(map[string]interface{})
	if req.SessionType != nil {
		fields["session_type"] = *req.SessionType
	}
	if req.Goal != nil {
		fields["goal"] = *req.Goal
	}
	if req.PreferredDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.PreferredDate)
		if err != nil {
			return nil, domain.NewValidationError("invalid preferred date: " + *req.PreferredDate)
		}
		fields["preferred_date"] = parsed
	}
	if req.PreferredTime != nil {
		if _, err := bookingDomain.ParseTimeOfDay(*req.PreferredTime); err != nil {
			return nil, domain.NewValidationError("invalid preferred time: " + *req.PreferredTime)
		}
		fields["preferred_time"] = *req.PreferredTime
	}
	if req.Message != nil {
		fields["message"] = *req.Message
	}
	if len(fields) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingUpdated, id, "")

	return s.GetBooking(ctx, id)
}

// UpdateStatus moves the booking to a new lifecycle status. Any status may
// move to any other.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*BookingDTO, error) {
	target, err := bookingDomain.ParseStatus(status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"status": target.String()}); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingStatusChanged, id, target.String())

	return s.GetBooking(ctx, id)
}

// DeleteBooking removes a booking permanently.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishBookingEvent(ctx, events.BookingDeleted, id, "")
	return nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, id uuid.UUID, status string) {
	evt := events.BookingChangedEvent{
		BookingID:  id,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}

	ce, err := events.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, id.String(), ce); err != nil {
		s.logger.Error("failed to publish booking event",
			zap.String("event_type", eventType),
			zap.String("booking_id", id.String()),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	contact := bk.Contact()
	return BookingDTO{
		ID:               bk.ID(),
		SessionType:      string(bk.SessionType()),
		SessionTypeLabel: bk.SessionType().Label(),
		Goal:             string(bk.Goal()),
		GoalLabel:        bk.Goal().Label(),
		PreferredDate:    bk.PreferredDate().Format("2006-01-02"),
		PreferredTime:    bk.PreferredTime(),
		Message:          bk.Message(),
		Status:           bk.Status().String(),
		StatusLabel:      bk.Status().Label(),
		Name:             contact.Name,
		Email:            contact.Email,
		Phone:            contact.Phone,
		CreatedAt:        bk.CreatedAt(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}
