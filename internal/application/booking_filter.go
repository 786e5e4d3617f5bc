package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	bookingDomain "github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
)

// DateRange names the relative date windows the admin list can filter on.
type DateRange string

const (
	DateRangeAll   DateRange = ""
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangePast  DateRange = "past"
)

// BookingFilter holds the admin list filter inputs. All predicates are
// combined with logical AND; zero values mean "no constraint".
type BookingFilter struct {
	Query       string
	Status      string
	SessionType string
	DateRange   DateRange
}

// FilterBookings returns the subset of bookings matching the filter, in the
// repository's default order (newest first). The date window is evaluated
// against the current date at call time.
func (s *BookingService) FilterBookings(ctx context.Context, filter BookingFilter) ([]BookingDTO, error) {
	if filter.DateRange != DateRangeAll {
		switch filter.DateRange {
		case DateRangeToday, DateRangeWeek, DateRangeMonth, DateRangePast:
		default:
			return nil, domain.NewValidationError("invalid date range: " + string(filter.DateRange))
		}
	}

	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	now := s.now()
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		if !matchesQuery(bk, query) {
			continue
		}
		if filter.Status != "" && bk.Status().String() != filter.Status {
			continue
		}
		if filter.SessionType != "" && string(bk.SessionType()) != filter.SessionType {
			continue
		}
		if !inDateRange(bk, filter.DateRange, now) {
			continue
		}
		dtos = append(dtos, toBookingDTO(bk))
	}
	return dtos, nil
}

func matchesQuery(bk *bookingDomain.Booking, query string) bool {
	if query == "" {
		return true
	}
	contact := bk.Contact()
	return strings.Contains(strings.ToLower(contact.Name), query) ||
		strings.Contains(strings.ToLower(contact.Email), query) ||
		strings.Contains(strings.ToLower(contact.Phone), query) ||
		strings.Contains(strings.ToLower(bk.ID().String()), query)
}

// inDateRange tests the session start instant against the requested window.
// A session exactly at today's midnight belongs to "today", not "past".
func inDateRange(bk *bookingDomain.Booking, dr DateRange, now time.Time) bool {
	if dr == DateRangeAll {
		return true
	}

	start := bk.StartsAt()
	y, m, d := now.UTC().Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch dr {
	case DateRangeToday:
		return !start.Before(todayStart) && start.Before(todayStart.AddDate(0, 0, 1))
	case DateRangeWeek:
		return !start.Before(todayStart) && start.Before(todayStart.AddDate(0, 0, 7))
	case DateRangeMonth:
		return start.Year() == y && start.Month() == m
	case DateRangePast:
		return start.Before(todayStart)
	default:
		return true
	}
}
