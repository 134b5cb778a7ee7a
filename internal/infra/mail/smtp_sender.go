package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/http/middleware"
)

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewSMTPSender(cfg Config) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.SMTPUser
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     port,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     from,
		To:       cfg.To,
	}
}

func (s *SMTPSender) Send(body string, lead *entity.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.From, "ManyChat Leads"))
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", leadSubject(lead))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		middleware.RecordEmailSend("smtp", "error")
		return &entity.DeliveryError{Cause: err}
	}

	middleware.RecordEmailSend("smtp", "ok")
	return nil
}

// Verify dials and authenticates without sending anything.
func (s *SMTPSender) Verify() error {
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	closer, err := d.Dial()
	if err != nil {
		return &entity.DeliveryError{Cause: err}
	}
	return closer.Close()
}
