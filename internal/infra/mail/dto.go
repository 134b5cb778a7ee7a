package mail

// Config carries the credential sets for both delivery backends. Which one is
// active is decided once at startup by NewSender, never at a call site.
type Config struct {
	// Transactional API backend
	APIKey     string
	APIBaseURL string

	// SMTP backend
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Fixed sender identity and operator destination
	From string
	To   string
}

type apiEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type apiEmailResponse struct {
	ID string `json:"id"`
}
