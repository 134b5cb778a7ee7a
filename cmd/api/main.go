package main

import (
	"database/sql"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/database"
	"github.com/xavierca1/lead-relay/internal/infra/http/handlers"
	"github.com/xavierca1/lead-relay/internal/infra/http/middleware"
	"github.com/xavierca1/lead-relay/internal/infra/mail"
	"github.com/xavierca1/lead-relay/internal/infra/queue"
	"github.com/xavierca1/lead-relay/internal/usecase"
)

func main() {
	godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lead-relay",
	})

	requiredEnv := []string{"WEBHOOK_SECRET", "CRM_EMAIL"}
	var missing []string
	for _, key := range requiredEnv {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		logger.Fatal("missing required env", "keys", strings.Join(missing, ", "))
	}

	// 1. Mail backend (selected by credential presence, required)
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender, err := mail.NewSender(mail.Config{
		APIKey:     os.Getenv("MAIL_API_KEY"),
		APIBaseURL: os.Getenv("MAIL_API_URL"),
		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   smtpPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		From:       os.Getenv("MAIL_FROM"),
		To:         os.Getenv("CRM_EMAIL"),
	})
	if err != nil {
		logger.Fatal("mail backend setup failed", "err", err)
	}

	// 2. Ledger (optional: the pipeline runs degraded without it)
	var db *sql.DB
	var ledger entity.LedgerInterface
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = database.NewDBConnection(dsn)
		if err != nil {
			logger.Warn("ledger database unreachable, running without dedup/durability", "err", err)
			db = nil
		} else {
			defer db.Close()
			ledger = database.NewLedgerRepository(db)
		}
	} else {
		logger.Warn("DATABASE_URL not set, running without dedup/durability")
	}

	// 3. Lead event side channel (optional)
	var rabbitMQ *queue.RabbitMQ
	var events queue.LeadEventPublisherInterface
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbitMQ, err = queue.NewRabbitMQ(url)
		if err != nil {
			logger.Warn("RabbitMQ unreachable, lead events disabled", "err", err)
			rabbitMQ = nil
		} else {
			defer rabbitMQ.Close()
			events = queue.NewPublisher(rabbitMQ.Conn, rabbitMQ.Ch)
		}
	}

	// 4. Use case
	processLeadUC := usecase.NewProcessLeadUseCase(
		ledger,
		sender,
		events,
		logger.With("component", "pipeline"),
	)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(
		processLeadUC,
		sender,
		os.Getenv("WEBHOOK_SECRET"),
		os.Getenv("CRM_EMAIL"),
		logger.With("component", "leads"),
	)

	var rabbitConn *amqp.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, sender)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", healthHandler.HandleRoot)
	r.Get("/health", healthHandler.Handle)
	r.Get("/api/env-check", healthHandler.HandleEnvCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/leads", func(r chi.Router) {
		r.Get("/manychat", leadHandler.HandleProbe)
		r.Post("/manychat", leadHandler.HandleWebhook)
		r.Post("/test", leadHandler.HandleTest)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found","path":"` + req.URL.Path + `"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("lead relay running", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
