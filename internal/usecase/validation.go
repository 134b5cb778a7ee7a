package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/lead-relay/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLead checks a normalized lead against the field rules. Email and
// phone are required for acceptance: the ledger is keyed by email, so a lead
// without one can be neither deduplicated nor marked delivered. Unknown
// payload keys recorded by the normalizer fail validation (strict schema).
// The lead itself is never mutated.
func ValidateLead(lead *entity.Lead) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(lead.FirstName) == "" {
		errors = append(errors, ValidationError{"first_name", "is required"})
	} else if utf8.RuneCountInString(lead.FirstName) < 2 {
		errors = append(errors, ValidationError{"first_name", "must have at least 2 characters"})
	}

	if strings.TrimSpace(lead.LastName) == "" {
		errors = append(errors, ValidationError{"last_name", "is required"})
	} else if utf8.RuneCountInString(lead.LastName) < 2 {
		errors = append(errors, ValidationError{"last_name", "must have at least 2 characters"})
	}

	if strings.TrimSpace(lead.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(lead.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(lead.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if utf8.RuneCountInString(lead.Phone) < 6 {
		errors = append(errors, ValidationError{"phone", "must have at least 6 characters"})
	}

	for _, key := range lead.Unknown {
		errors = append(errors, ValidationError{key, "is not allowed"})
	}

	return errors
}
