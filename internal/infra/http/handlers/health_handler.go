package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-relay/internal/entity"
)

type HealthHandler struct {
	DB        *sql.DB
	RabbitMQ  *amqp091.Connection
	Notifier  entity.NotifierInterface
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, notifier entity.NotifierInterface) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Notifier:  notifier,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Ledger database is an optional dependency: absence is degraded mode,
	// not unhealthy.
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Notifier != nil {
		if err := h.Notifier.Verify(); err != nil {
			deps["mail"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["mail"] = "healthy"
		}
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
	} else {
		writeJSON(w, http.StatusOK, response)
	}
}

// HandleRoot keeps the bare domain friendly in a browser.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":     "lead-relay",
		"status":   "ok",
		"message":  "Lead webhook API. Use POST /api/leads/manychat with x-webhook-secret.",
		"health":   "/health",
		"envCheck": "/api/env-check",
	})
}

// envCheckKeys covers both mail credential sets; see HandleEnvCheck for which
// combinations count as fully configured.
var envCheckKeys = []string{
	"WEBHOOK_SECRET",
	"CRM_EMAIL",
	"SMTP_HOST",
	"SMTP_USER",
	"SMTP_PASS",
	"MAIL_API_KEY",
	"DATABASE_URL",
	"RABBITMQ_URL",
}

// HandleEnvCheck reports which env keys are set without exposing values.
func (h *HealthHandler) HandleEnvCheck(w http.ResponseWriter, r *http.Request) {
	status := make(map[string]bool, len(envCheckKeys))
	for _, key := range envCheckKeys {
		status[key] = strings.TrimSpace(os.Getenv(key)) != ""
	}

	smtpSet := status["SMTP_HOST"] && status["SMTP_USER"] && status["SMTP_PASS"]
	ok := status["WEBHOOK_SECRET"] && status["CRM_EMAIL"] && (status["MAIL_API_KEY"] || smtpSet)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   ok,
		"keys": status,
	})
}
