package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/analyzer"
	"github.com/BerylCAtieno/contract-analysis-api/internal/config"
	"github.com/BerylCAtieno/contract-analysis-api/internal/db"
	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/middleware"
	"github.com/BerylCAtieno/contract-analysis-api/internal/notify"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/router"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/storage"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(database); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	repos := repository.NewRepositories(database)

	// Upload archive
	var store storage.Storage
	if cfg.S3Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		store, err = storage.NewS3Storage(ctx, storage.S3Options{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		logger.Warn("S3_ENDPOINT not set, uploads are archived in memory only")
		store = storage.NewMemoryStorage()
	}

	// Completion service
	catalog, err := analyzer.LoadCatalog(cfg.PromptFile)
	if err != nil {
		logger.Fatal("Failed to load prompt templates", "error", err)
	}
	prompt, err := catalog.Get(cfg.PromptTemplate)
	if err != nil {
		logger.Fatal("Failed to select prompt template", "error", err)
	}
	completer, err := analyzer.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, analyzer.DefaultParams(cfg.OpenAIModel))
	if err != nil {
		logger.Fatal("Failed to initialize completion client", "error", err)
	}
	llmAnalyzer := analyzer.NewAnalyzer(completer, prompt, analyzer.Options{
		Timeout: cfg.CompletionTimeout,
		Retries: cfg.CompletionRetries,
	}, logger)

	// Outbound mail
	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = notify.NewSMTPMailer(notify.SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.DefaultFromEmail,
		})
		if err != nil {
			logger.Fatal("Failed to initialize mailer", "error", err)
		}
	} else {
		mailer = &notify.LogMailer{Logger: logger}
	}

	svcs := services.New(services.Deps{
		Repos:             repos,
		Storage:           store,
		Extractor:         extractor.NewDispatcher(extractor.NewTesseractOCR(cfg.TesseractPath)),
		Analyzer:          llmAnalyzer,
		Mailer:            mailer,
		Clock:             utils.SystemClock{},
		Logger:            logger,
		StrictTransitions: cfg.StrictReportTransitions,
	})

	// Setup HTTP router
	handler := router.NewRouter(router.Options{
		Services:      svcs,
		Authenticator: middleware.NewAuthenticator(cfg.JWTSecret, repos.Users, logger),
		HealthChecks: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: database},
		},
		CORSOrigins: cfg.CORSOrigins,
		MaxFileSize: cfg.MaxFileSize,
		Logger:      logger,
	})

	// A completion request may take the full timeout twice plus backoff.
	writeTimeout := time.Duration(cfg.CompletionRetries+1)*cfg.CompletionTimeout + 30*time.Second

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"database", string(db.DialectOf(cfg.DatabaseURL)),
			"model", cfg.OpenAIModel,
			"prompt", prompt.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
