package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/lead-relay/internal/entity"
)

func validLead() *entity.Lead {
	return &entity.Lead{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "1234567890",
	}
}

func fieldsOf(errs []ValidationError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateLeadValid(t *testing.T) {
	errs := ValidateLead(validLead())
	assert.Empty(t, errs)
}

func TestValidateLeadMissingNames(t *testing.T) {
	lead := validLead()
	lead.FirstName = ""
	lead.LastName = ""

	errs := ValidateLead(lead)

	assert.Contains(t, fieldsOf(errs), "first_name")
	assert.Contains(t, fieldsOf(errs), "last_name")
}

func TestValidateLeadShortNames(t *testing.T) {
	lead := validLead()
	lead.FirstName = "J"

	errs := ValidateLead(lead)

	assert.Len(t, errs, 1)
	assert.Equal(t, "first_name", errs[0].Field)
	assert.Equal(t, "must have at least 2 characters", errs[0].Message)
}

func TestValidateLeadInvalidEmail(t *testing.T) {
	lead := validLead()
	lead.Email = "not-an-email"

	errs := ValidateLead(lead)

	assert.Contains(t, fieldsOf(errs), "email")
}

func TestValidateLeadEmailRequired(t *testing.T) {
	lead := validLead()
	lead.Email = ""

	errs := ValidateLead(lead)

	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
}

func TestValidateLeadShortPhone(t *testing.T) {
	lead := validLead()
	lead.Phone = "12345"

	errs := ValidateLead(lead)

	assert.Contains(t, fieldsOf(errs), "phone")
}

func TestValidateLeadOptionalFieldsMayBeAbsent(t *testing.T) {
	lead := validLead()
	lead.Interest = ""
	lead.Notes = ""
	lead.Platform = ""
	lead.Campaign = ""

	assert.Empty(t, ValidateLead(lead))
}

func TestValidateLeadRejectsUnknownFields(t *testing.T) {
	lead := validLead()
	lead.Unknown = []string{"admin"}

	errs := ValidateLead(lead)

	assert.Len(t, errs, 1)
	assert.Equal(t, "admin", errs[0].Field)
	assert.Equal(t, "is not allowed", errs[0].Message)
}

func TestValidateLeadDoesNotMutateInput(t *testing.T) {
	lead := validLead()
	lead.FirstName = "  Jane "

	ValidateLead(lead)

	assert.Equal(t, "  Jane ", lead.FirstName)
}
