package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/database"
	"github.com/heysh/crm-backend/internal/infra/http/handlers"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/infra/mail"
	"github.com/heysh/crm-backend/internal/infra/queue"
	"github.com/heysh/crm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("rabbitmq connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	contactRepo := database.NewContactRepository(db)
	companyRepo := database.NewCompanyRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	eventRepo := database.NewEventRepository(db)
	timelineRepo := database.NewTimelineRepository(db)

	// Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
	mailSender := mail.NewSMTPSender(
		os.Getenv("SMTP_HOST"), smtpPort,
		os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"),
		os.Getenv("SMTP_FROM"),
	)

	// Services
	contactService := usecase.NewContactService(contactRepo)
	engagementService, err := usecase.NewEngagementService(contactRepo, timelineRepo, entity.DefaultEngagementConfig())
	if err != nil {
		log.Fatalf("engagement config invalid: %v", err)
	}
	executor := usecase.NewCampaignExecutor(campaignRepo, contactRepo, mailSender)

	// Rescore worker consumes interaction messages and updates scores.
	worker := queue.NewWorker(rabbitMQ.Ch, engagementService)
	go worker.Start(queue.QueueName)

	// Handlers
	contactHandler := handlers.NewContactHandler(contactService)
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, executor)
	eventHandler := handlers.NewEventHandler(eventRepo, timelineRepo, producer)
	timelineHandler := handlers.NewTimelineHandler(timelineRepo, contactRepo, producer)
	engagementHandler := handlers.NewEngagementHandler(engagementService, timelineRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(contactRepo, timelineRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.List)
			r.Post("/", contactHandler.Create)
			r.Get("/{id}", contactHandler.Get)
			r.Patch("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
			r.Get("/{id}/timeline", timelineHandler.ListByContact)
			r.Get("/{id}/engagement", engagementHandler.Report)
			r.Post("/{id}/engagement/rescore", engagementHandler.Rescore)
			r.Get("/{id}/summary", engagementHandler.Summary)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", companyHandler.List)
			r.Post("/", companyHandler.Create)
			r.Get("/{id}", companyHandler.Get)
			r.Patch("/{id}", companyHandler.Update)
			r.Delete("/{id}", companyHandler.Delete)
		})

		r.Post("/timeline", timelineHandler.Create)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.List)
			r.Post("/", campaignHandler.Create)
			r.Get("/{id}", campaignHandler.Get)
			r.Patch("/{id}", campaignHandler.Update)
			r.Get("/{id}/assets", campaignHandler.ListAssets)
			r.Post("/{id}/assets", campaignHandler.GenerateAssets)
			r.Post("/{id}/execute", campaignHandler.Execute)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
			r.Get("/{id}", eventHandler.Get)
			r.Post("/{id}/invite", eventHandler.Invite)
			r.Post("/{id}/rsvp", eventHandler.Rsvp)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/contacts", analyticsHandler.ContactsOverview)
			r.Get("/funnel", analyticsHandler.Funnel)
			r.Get("/campaign/{id}", analyticsHandler.Campaign)
		})
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("crm backend listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
