package usecase

import (
	"strings"
	"time"

	"github.com/xavierca1/lead-relay/internal/entity"
)

// FormatLeadEmail renders the human-readable body delivered to the operator:
// one "Label: value" line per present field in fixed order, blank fields
// omitted entirely, closed by the generation timestamp.
func FormatLeadEmail(lead *entity.Lead, generatedAt time.Time) string {
	lines := make([]string, 0, 9)

	addLine := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, label+": "+v)
		}
	}

	addLine("First Name", lead.FirstName)
	addLine("Last Name", lead.LastName)
	addLine("Email", lead.Email)
	addLine("Phone", lead.Phone)
	addLine("Interest", lead.Interest)
	addLine("Notes", lead.Notes)
	addLine("Platform", lead.Platform)
	addLine("Campaign", lead.Campaign)
	addLine("Date", generatedAt.UTC().Format(time.RFC3339))

	return "New Lead from ManyChat\n\n" + strings.Join(lines, "\n") + "\n"
}
