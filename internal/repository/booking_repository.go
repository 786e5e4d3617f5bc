package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	bookingDomain "github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionType   string    `gorm:"not null;size:30;index"`
	Goal          string    `gorm:"not null;size:30"`
	PreferredDate time.Time `gorm:"type:date;not null;index"`
	PreferredTime string    `gorm:"not null;size:5"`
	Message       string    `gorm:"size:2000"`
	Status        string    `gorm:"not null;size:20;index"`
	ContactName   string    `gorm:"not null;size:200"`
	ContactEmail  string    `gorm:"not null;size:200"`
	ContactPhone  string    `gorm:"not null;size:50"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// bookingColumns whitelists the columns a partial update may touch.
var bookingColumns = map[string]bool{
	"session_type":   true,
	"goal":           true,
	"preferred_date": true,
	"preferred_time": true,
	"message":        true,
	"status":         true,
	"contact_name":   true,
	"contact_email":  true,
	"contact_phone":  true,
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// List retrieves all bookings ordered by creation time descending.
func (r *GormBookingRepository) List(ctx context.Context) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings, nil
}

// Save persists a new booking. Enum and contact fields were validated by the
// aggregate constructor; a second check here keeps malformed values out of
// the store even for reconstructed aggregates.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if !bk.Status().IsValid() {
		return domain.NewValidationError("invalid booking status: " + bk.Status().String())
	}
	if !bk.SessionType().IsValid() {
		return domain.NewValidationError("invalid session type: " + string(bk.SessionType()))
	}
	if !bk.Goal().IsValid() {
		return domain.NewValidationError("invalid goal: " + string(bk.Goal()))
	}
	if err := bk.Contact().Validate(); err != nil {
		return err
	}

	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateFields merges the given columns into an existing booking and
// refreshes updated_at. There is no read-before-write: a missing row only
// surfaces as zero rows affected.
func (r *GormBookingRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		if !bookingColumns[column] {
			return domain.NewValidationError("unknown booking field: " + column)
		}
		updates[column] = value
	}
	if err := validateBookingEnums(updates); err != nil {
		return err
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

func validateBookingEnums(updates map[string]interface{}) error {
	if v, ok := updates["status"]; ok {
		if _, err := bookingDomain.ParseStatus(fmt.Sprint(v)); err != nil {
			return domain.NewValidationError(err.Error())
		}
	}
	if v, ok := updates["session_type"]; ok {
		if !bookingDomain.SessionType(fmt.Sprint(v)).IsValid() {
			return domain.NewValidationError("invalid session type: " + fmt.Sprint(v))
		}
	}
	if v, ok := updates["goal"]; ok {
		if !bookingDomain.Goal(fmt.Sprint(v)).IsValid() {
			return domain.NewValidationError("invalid goal: " + fmt.Sprint(v))
		}
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	contact := bk.Contact()
	return &BookingModel{
		ID:            bk.ID(),
		SessionType:   string(bk.SessionType()),
		Goal:          string(bk.Goal()),
		PreferredDate: bk.PreferredDate(),
		PreferredTime: bk.PreferredTime(),
		Message:       bk.Message(),
		Status:        bk.Status().String(),
		ContactName:   contact.Name,
		ContactEmail:  contact.Email,
		ContactPhone:  contact.Phone,
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID,
		bookingDomain.SessionType(m.SessionType),
		bookingDomain.Goal(m.Goal),
		m.PreferredDate,
		m.PreferredTime,
		m.Message,
		bookingDomain.Status(m.Status),
		bookingDomain.ContactInfo{
			Name:  m.ContactName,
			Email: m.ContactEmail,
			Phone: m.ContactPhone,
		},
		m.CreatedAt,
		m.UpdatedAt,
	)
}
