package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/http/middleware"
	"github.com/xavierca1/lead-relay/internal/usecase"
)

// LeadHandler owns the webhook surface: secret check, payload normalization,
// pipeline invocation and the Outcome-to-response mapping.
type LeadHandler struct {
	ProcessLead *usecase.ProcessLeadUseCase
	Notifier    entity.NotifierInterface
	Secret      string
	CRMEmail    string
	Log         *log.Logger
}

func NewLeadHandler(
	processLead *usecase.ProcessLeadUseCase,
	notifier entity.NotifierInterface,
	secret, crmEmail string,
	logger *log.Logger,
) *LeadHandler {
	return &LeadHandler{
		ProcessLead: processLead,
		Notifier:    notifier,
		Secret:      secret,
		CRMEmail:    crmEmail,
		Log:         logger,
	}
}

// HandleProbe answers the GET that ManyChat issues when the webhook URL is
// pasted into its UI, so the URL looks healthy in a browser.
func (h *LeadHandler) HandleProbe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ManyChat leads endpoint is live. Use POST with JSON body.",
		"method":  "POST",
		"path":    "/api/leads/manychat",
	})
}

func (h *LeadHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// Boundary guard: an unexpected panic must never crash the process or
	// leak internals into the response.
	defer func() {
		if rec := recover(); rec != nil {
			h.Log.Error("unexpected error processing lead", "panic", rec)
			middleware.RecordLeadOutcome(usecase.OutcomeServerError.String())
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Server error",
			})
		}
	}()

	// The secret gate runs before any pipeline logic: a rejected request has
	// no side effects.
	if !h.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "invalid JSON body",
		})
		return
	}

	lead := usecase.NormalizeLead(payload)
	outcome := h.ProcessLead.Execute(r.Context(), lead)
	middleware.RecordLeadOutcome(outcome.Kind.String())

	h.writeOutcome(w, outcome)
}

// HandleTest sends a fixed test email through the active backend. Protected by
// the same secret as the webhook.
func (h *LeadHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
		return
	}

	testLead := &entity.Lead{
		FirstName: "Test",
		LastName:  "Lead",
		Email:     h.CRMEmail,
		Platform:  "manual-test",
	}

	if err := h.Notifier.Send("123", testLead); err != nil {
		h.Log.Error("test email failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Server error",
			"message": "Test email failed.",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Test email sent"))
}

func (h *LeadHandler) authorized(r *http.Request) bool {
	supplied := r.Header.Get("X-Webhook-Secret")
	if supplied == "" {
		supplied = r.URL.Query().Get("secret")
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(h.Secret)) == 1
}

func (h *LeadHandler) writeOutcome(w http.ResponseWriter, outcome usecase.Outcome) {
	switch outcome.Kind {
	case usecase.OutcomeAccepted:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "accepted and sent",
			"validated": true,
		})
	case usecase.OutcomeDuplicate:
		message := "already exists"
		if outcome.AlreadyDelivered {
			message = "already sent"
		}
		writeJSON(w, http.StatusConflict, map[string]any{
			"message":   message,
			"duplicate": true,
		})
	case usecase.OutcomeInvalid:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "invalid lead data",
			"errors":  outcome.FieldErrors,
		})
	case usecase.OutcomeDeliveryFailed:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Server error",
			"message": "validated but delivery failed",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Server error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
