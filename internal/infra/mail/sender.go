package mail

import (
	"errors"
	"fmt"

	"github.com/xavierca1/lead-relay/internal/entity"
)

// NewSender picks the active delivery backend by credential presence: an API
// key selects the transactional API, otherwise SMTP credentials select SMTP.
// Both satisfy entity.NotifierInterface so callers stay transport-agnostic.
func NewSender(cfg Config) (entity.NotifierInterface, error) {
	switch {
	case cfg.APIKey != "":
		return NewAPISender(cfg), nil
	case cfg.SMTPHost != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "":
		return NewSMTPSender(cfg), nil
	default:
		return nil, errors.New("no mail backend configured: set MAIL_API_KEY or SMTP_HOST/SMTP_USER/SMTP_PASS")
	}
}

func leadSubject(lead *entity.Lead) string {
	return fmt.Sprintf("New Lead | %s %s", lead.FirstName, lead.LastName)
}
