package booking

import (
	"strings"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
)

// ContactInfo holds the client's contact details. All fields are required:
// a booking never carries a partial contact record.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks that the contact record is fully populated.
func (c ContactInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("contact name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return domain.NewValidationError("contact email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return domain.NewValidationError("contact email is invalid: " + c.Email)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return domain.NewValidationError("contact phone is required")
	}
	return nil
}
