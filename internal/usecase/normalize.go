package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xavierca1/lead-relay/internal/entity"
)

// phoneSources is the fixed priority order for resolving the phone number.
// ManyChat flows expose up to three phone fields depending on the channel.
var phoneSources = []string{"phone", "cell_phone", "whatsapp_phone"}

var optionalFields = []string{"interest", "notes", "platform", "campaign"}

// NormalizeLead maps an arbitrary inbound payload into the canonical Lead.
// Required fields are copied verbatim (validation enforces shape); optional
// fields are included only when the source value is non-blank, keeping the
// Lead sparse. It never fails: a malformed or empty payload yields a Lead the
// validator will reject.
func NormalizeLead(payload map[string]any) *entity.Lead {
	lead := &entity.Lead{
		FirstName: asString(payload["first_name"]),
		LastName:  asString(payload["last_name"]),
		Email:     asString(payload["email"]),
	}

	for _, key := range phoneSources {
		if v := asString(payload[key]); strings.TrimSpace(v) != "" {
			lead.Phone = v
			break
		}
	}

	for _, key := range optionalFields {
		v := asString(payload[key])
		if strings.TrimSpace(v) == "" {
			continue
		}
		switch key {
		case "interest":
			lead.Interest = v
		case "notes":
			lead.Notes = v
		case "platform":
			lead.Platform = v
		case "campaign":
			lead.Campaign = v
		}
	}

	known := map[string]bool{
		"first_name": true, "last_name": true, "email": true,
		"interest": true, "notes": true, "platform": true, "campaign": true,
	}
	for _, key := range phoneSources {
		known[key] = true
	}
	for key := range payload {
		if !known[key] {
			lead.Unknown = append(lead.Unknown, key)
		}
	}
	sort.Strings(lead.Unknown)

	return lead
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
