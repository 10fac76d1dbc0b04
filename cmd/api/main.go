package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crestline-remodeling/proposal-api/docs"
	"github.com/crestline-remodeling/proposal-api/internal/auth"
	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/crestline-remodeling/proposal-api/internal/database"
	"github.com/crestline-remodeling/proposal-api/internal/http/handler"
	"github.com/crestline-remodeling/proposal-api/internal/http/middleware"
	"github.com/crestline-remodeling/proposal-api/internal/http/router"
	"github.com/crestline-remodeling/proposal-api/internal/jobs"
	"github.com/crestline-remodeling/proposal-api/internal/logger"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/crestline-remodeling/proposal-api/internal/service"
	"github.com/crestline-remodeling/proposal-api/internal/storage"
	"go.uber.org/zap"
)

// @title Crestline Proposal API
// @version 1.0
// @description Proposal, estimation and contract signing API for remodeling projects

// @contact.name API Support
// @contact.email support@crestline-remodeling.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize signature storage
	signatureStore, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	templateRepo := repository.NewTemplateRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	variableRepo := repository.NewVariableRepository(db)
	elementRepo := repository.NewElementRepository(db)
	variableValueRepo := repository.NewVariableValueRepository(db)
	elementValueRepo := repository.NewElementValueRepository(db)
	contractRepo := repository.NewContractRepository(db)

	// Initialize services
	templateService := service.NewTemplateService(templateRepo, categoryRepo, variableRepo, elementRepo, log)
	proposalService := service.NewProposalService(db, proposalRepo, templateRepo, categoryRepo, variableRepo, log)
	valueService := service.NewValueService(db, proposalRepo, variableValueRepo, elementValueRepo, log)
	syncService := service.NewSyncService(proposalRepo, templateRepo, categoryRepo, elementRepo, variableValueRepo, elementValueRepo, log)
	contractService := service.NewContractService(contractRepo, proposalRepo, signatureStore, log, nil)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	templateHandler := handler.NewTemplateHandler(templateService, log)
	proposalHandler := handler.NewProposalHandler(proposalService, valueService, syncService, log)
	contractHandler := handler.NewContractHandler(contractService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		templateHandler,
		proposalHandler,
		contractHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.AutoSyncEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterTemplateSyncJob(
			scheduler,
			syncService,
			proposalRepo,
			log,
			cfg.Jobs.AutoSyncCron,
			cfg.Jobs.AutoSyncTimeoutDuration(),
		); err != nil {
			log.Error("Failed to register template sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with template sync job",
				zap.String("cron_expr", cfg.Jobs.AutoSyncCron),
				zap.Duration("timeout", cfg.Jobs.AutoSyncTimeoutDuration()),
			)
		}
	} else {
		log.Info("Template auto-sync disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
