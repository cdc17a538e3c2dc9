package complaint

import (
	"strings"

	"forik/backend/internal/models"
)

// FieldError is a validation failure tied to a single form field, so the
// shell can highlight the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the draft before any record is created. The first failing
// field is reported; messages match the shell's form labels.
func Validate(c *models.Complaint) error {
	if strings.TrimSpace(c.YourNickname) == "" {
		return &FieldError{Field: "yourNickname", Message: "Введите ваш никнейм"}
	}
	if strings.TrimSpace(c.ViolatorNickname) == "" {
		return &FieldError{Field: "violatorNickname", Message: "Введите никнейм нарушителя"}
	}
	if c.ViolationDate.IsZero() {
		return &FieldError{Field: "violationDate", Message: "Укажите дату нарушения"}
	}
	if strings.TrimSpace(c.Violation) == "" {
		return &FieldError{Field: "violation", Message: "Опишите суть нарушения"}
	}
	if strings.TrimSpace(c.Evidence) == "" {
		return &FieldError{Field: "evidence", Message: "Укажите доказательства"}
	}
	switch c.Affiliation {
	case models.AffiliationNone:
	case models.AffiliationOrg, models.AffiliationGang:
		if strings.TrimSpace(c.AffiliationName) == "" {
			return &FieldError{Field: "affiliationName", Message: "Введите название организации/банды"}
		}
	default:
		return &FieldError{Field: "affiliation", Message: "Выберите принадлежность нарушителя"}
	}
	return nil
}
