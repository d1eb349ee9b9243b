package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/toiture-lv/quote-api/docs"
	"github.com/toiture-lv/quote-api/internal/auth"
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/database"
	"github.com/toiture-lv/quote-api/internal/datawarehouse"
	"github.com/toiture-lv/quote-api/internal/http/handler"
	"github.com/toiture-lv/quote-api/internal/http/middleware"
	"github.com/toiture-lv/quote-api/internal/http/router"
	"github.com/toiture-lv/quote-api/internal/jobs"
	"github.com/toiture-lv/quote-api/internal/logger"
	"github.com/toiture-lv/quote-api/internal/mailer"
	"github.com/toiture-lv/quote-api/internal/pricing"
	"github.com/toiture-lv/quote-api/internal/redflag"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/service"
	"github.com/toiture-lv/quote-api/internal/storage"
	"github.com/toiture-lv/quote-api/internal/upsell"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"go.uber.org/zap"
)

// @title Toiture LV Quote API
// @version 1.0
// @description Roofing quote submissions: drafting, approval, upsells, red flags and client delivery

// @contact.name API Support
// @contact.email dev@toiture-lv.ca

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key of the front-end proxy
// @Security BearerAuth
// @Security ApiKeyAuth

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for logging setup
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(basicCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	} else {
		docs.SwaggerInfo.Host = ""
	}

	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err := database.Migrate(sqlDB); err != nil {
		return err
	}
	log.Info("Database migrated")

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// The warehouse only feeds red flag benchmarks, so startup continues without it
	var dwClient *datawarehouse.Client
	if cfg.DataWarehouse.Enabled {
		dwClient, err = datawarehouse.NewClient(&cfg.DataWarehouse, log)
		if err != nil {
			log.Warn("Data warehouse connection failed, continuing without it", zap.Error(err))
			dwClient = nil
		}
	} else {
		log.Info("Data warehouse not configured, skipping")
	}

	mail, err := mailer.New(&cfg.Mail, &cfg.AzureAd, log)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}

	catalog := complexity.DefaultCatalog()
	if cfg.Complexity.CatalogPath != "" {
		catalog, err = complexity.LoadCatalog(cfg.Complexity.CatalogPath)
		if err != nil {
			return err
		}
		log.Info("Complexity catalog loaded", zap.String("path", cfg.Complexity.CatalogPath))
	}

	markups := pricing.MarkupsFromConfig(&cfg.Pricing)
	if err := markups.Validate(); err != nil {
		return fmt.Errorf("invalid pricing config: %w", err)
	}
	machine := workflow.NewMachine(markups, workflow.WithEmailDefaults(workflow.EmailDefaults{
		Subject: cfg.Mail.DefaultSubject,
		Body:    cfg.Mail.DefaultBody,
	}))

	// Repositories
	submissionRepo := repository.NewSubmissionRepository(db)
	dismissalRepo := repository.NewRedFlagDismissalRepository(db)

	// Services
	submissionService := service.NewSubmissionService(submissionRepo, machine, log)
	upsellService := service.NewUpsellService(submissionRepo, upsell.NewFileSource(cfg.Upsell.CatalogPath, log), machine, log)
	redFlagService := service.NewRedFlagService(submissionRepo, dismissalRepo, redflag.RulesFromConfig(&cfg.RedFlags), log)
	if dwClient != nil {
		redFlagService.SetBenchmarkSource(dwClient)
	}
	sendService := service.NewSendService(submissionRepo, machine, mail, storage.NewArchiver(fileStorage), log)
	estimateService := service.NewEstimateService(complexity.NewScorer(catalog), markups, cfg.Pricing.HourlyRate)

	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, authMiddleware, rateLimiter, router.Handlers{
		Health:     handler.NewHealthHandler(db, dwClient, log),
		Submission: handler.NewSubmissionHandler(submissionService, log),
		Upsell:     handler.NewUpsellHandler(upsellService, log),
		RedFlag:    handler.NewRedFlagHandler(redFlagService, log),
		Send:       handler.NewSendHandler(sendService, log),
		Estimate:   handler.NewEstimateHandler(estimateService, log),
	})

	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterScheduledSendJob(scheduler, sendService, &cfg.Jobs, log); err != nil {
		return fmt.Errorf("failed to register scheduled send job: %w", err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		<-scheduler.Stop().Done()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	// Let a running dispatch pass finish before the database closes
	<-scheduler.Stop().Done()
	log.Info("Scheduler stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown gracefully", zap.Error(err))
		return err
	}

	if dwClient != nil {
		if err := dwClient.Close(); err != nil {
			log.Warn("Error closing data warehouse connection", zap.Error(err))
		}
	}

	log.Info("Server stopped gracefully")
	return nil
}
