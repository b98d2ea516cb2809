package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/email-scheduler/pkg/validator"

	"github.com/johnquangdev/email-scheduler/internal/adapter/handler"
	"github.com/johnquangdev/email-scheduler/internal/adapter/repository"
	"github.com/johnquangdev/email-scheduler/internal/infrastructure/cache"
	"github.com/johnquangdev/email-scheduler/internal/infrastructure/database"
	"github.com/johnquangdev/email-scheduler/internal/infrastructure/external/googleapi"
	"github.com/johnquangdev/email-scheduler/internal/usecase/analysis"
	"github.com/johnquangdev/email-scheduler/internal/usecase/ingest"
	"github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
	pkgai "github.com/johnquangdev/email-scheduler/pkg/ai"
	"github.com/johnquangdev/email-scheduler/pkg/config"
)

// @title           Email Scheduler API
// @version         1.0
// @description     Email-driven meeting scheduler with conflict detection, task and sentiment extraction

// @host      localhost:8080
// @BasePath  /

// mailbox adapts the Gmail client to the ingestion interface.
type mailbox struct {
	client *googleapi.GmailClient
}

func (m mailbox) CurrentHistoryID(ctx context.Context) (uint64, error) {
	return m.client.CurrentHistoryID(ctx)
}

func (m mailbox) ListNewMessages(ctx context.Context, since uint64) ([]string, uint64, error) {
	return m.client.ListNewMessages(ctx, since)
}

func (m mailbox) GetMessage(ctx context.Context, id string) (*ingest.Message, error) {
	msg, err := m.client.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ingest.Message{
		ID:      msg.ID,
		Subject: msg.Subject,
		From:    msg.From,
		Body:    msg.Body,
	}, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.AllowedOrigins},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations on boot; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	processedRepo := repository.NewProcessedMessageRepository(db)
	sentimentRepo := repository.NewSentimentRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize AI client
	log.Println("🤖 Initializing AI client...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	// Initialize Google integration when credentials are present. Without
	// them the HTTP surface still runs; scheduling degrades to local-only.
	var calendarAPI scheduler.CalendarAPI
	var mailer scheduler.Mailer
	var gmailClient *googleapi.GmailClient
	if cfg.HasGoogleCredentials() {
		log.Println("🔐 Initializing Google clients...")
		authedHTTP := googleapi.NewHTTPClient(context.Background(), googleapi.Credentials{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RefreshToken: cfg.Google.RefreshToken,
		})
		calendarAPI = googleapi.NewCalendarClient(authedHTTP)
		gmailClient = googleapi.NewGmailClient(authedHTTP)
		mailer = gmailClient
	} else {
		log.Println("⚠️  Google credentials missing; calendar and mailbox integration disabled")
	}

	// Initialize scheduling pipeline
	log.Println("📅 Initializing scheduling pipeline...")
	defaultAttendee := cfg.Scheduler.DefaultAttendee
	if defaultAttendee == "" {
		defaultAttendee = cfg.Google.AuthorizedEmail
	}
	detector := scheduler.NewConflictDetector(calendarAPI, time.Duration(cfg.Scheduler.BufferMinutes)*time.Minute)
	suggester := scheduler.NewSuggester(detector)
	normalizer := scheduler.NewAttendeeNormalizer(defaultAttendee, logger)
	pipeline := scheduler.NewIntentPipeline(
		meetingRepo,
		feedbackRepo,
		groqClient,
		calendarAPI,
		mailer,
		detector,
		suggester,
		normalizer,
		cfg.Google.AuthorizedEmail,
		logger,
	)

	// Initialize analysis service
	analysisService := analysis.NewService(sentimentRepo, taskRepo, groqClient, logger)

	// Initialize email ingestion
	var ingestService *ingest.Service
	if gmailClient != nil {
		log.Println("📬 Initializing email ingestion...")
		cursor := cache.NewRedisCursor(redisClient, "ingest:history_cursor")
		ingestService = ingest.NewService(
			mailbox{client: gmailClient},
			cursor,
			processedRepo,
			pipeline,
			analysisService,
			cfg.Scheduler.FastPoll,
			cfg.Scheduler.SweepInterval,
			logger,
		)
		if err := ingestService.Start(context.Background()); err != nil {
			log.Printf("⚠️  Email ingestion failed to start: %v", err)
			ingestService = nil
		}
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	schedulerHandler := handler.NewSchedulerHandler(pipeline, logger)
	meetingHandler := handler.NewMeetingHandler(pipeline, logger)
	insightsHandler := handler.NewInsightsHandler(analysisService, ingestService, logger)

	router := handler.NewRouter(cfg, schedulerHandler, meetingHandler, insightsHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if ingestService != nil {
		ingestService.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
