package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groenwerk/offerte-api/docs"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/boekhouding"
	"github.com/groenwerk/offerte-api/internal/config"
	"github.com/groenwerk/offerte-api/internal/database"
	"github.com/groenwerk/offerte-api/internal/http/handler"
	"github.com/groenwerk/offerte-api/internal/http/middleware"
	"github.com/groenwerk/offerte-api/internal/http/router"
	"github.com/groenwerk/offerte-api/internal/jobs"
	"github.com/groenwerk/offerte-api/internal/logger"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"github.com/groenwerk/offerte-api/internal/storage"
	"go.uber.org/zap"
)

const jobTimeout = 10 * time.Minute

// @title GroenWerk Offerte API
// @version 1.0
// @description Offerte- en projectbeheer API voor de GroenWerk groep
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@groenwerk.nl

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

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "offerte-api-staging.groenwerk.nl"
	case "production":
		docs.SwaggerInfo.Host = "api.groenwerk.nl"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

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

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize accounting connection (optional, read-only)
	// The app continues without it if not configured.
	var boekhoudingClient *boekhouding.Client
	if cfg.Boekhouding.Enabled {
		boekhoudingClient, err = boekhouding.NewClient(&cfg.Boekhouding, log)
		if err != nil {
			log.Warn("Boekhouding connection failed, continuing without it",
				zap.Error(err),
			)
		}
	} else {
		log.Info("Boekhouding not configured, skipping")
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	klantRepo := repository.NewKlantRepository(db)
	offerteRepo := repository.NewOfferteRepository(db)
	normUurRepo := repository.NewNormUurRepository(db)
	factorRepo := repository.NewCorrectieFactorRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	urenRepo := repository.NewUrenregistratieRepository(db)
	machineRepo := repository.NewMachinegebruikRepository(db)
	nacalcRepo := repository.NewNacalculatieRepository(db)
	inkooporderRepo := repository.NewInkooporderRepository(db)
	voorraadRepo := repository.NewVoorraadRepository(db)
	factuurRepo := repository.NewFactuurRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	fileRepo := repository.NewFileRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	userService := service.NewUserService(userRepo, companyRepo, log)
	klantService := service.NewKlantService(klantRepo, log)
	referentieService := service.NewReferentieService(normUurRepo, factorRepo, log)
	offerteService := service.NewOfferteService(offerteRepo, klantRepo, projectRepo, referentieService, numberSequenceService, notificationService, log)
	projectService := service.NewProjectService(projectRepo, userRepo, nacalcRepo, log)
	urenService := service.NewUrenService(urenRepo, machineRepo, projectRepo, log)
	nacalculatieService := service.NewNacalculatieService(nacalcRepo, projectRepo, urenRepo, machineRepo, notificationService, log)
	voorraadService := service.NewVoorraadService(voorraadRepo, notificationService, userRepo, log)
	inkooporderService := service.NewInkooporderService(inkooporderRepo, projectRepo, voorraadService, numberSequenceService, log)
	factuurService := service.NewFactuurService(factuurRepo, offerteRepo, numberSequenceService, notificationService, log)
	fileService := service.NewFileService(fileRepo, offerteRepo, fileStorage, log)
	dashboardService := service.NewDashboardService(offerteRepo, projectRepo, factuurRepo, voorraadRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	companyFilterMiddleware := middleware.NewCompanyFilterMiddleware(log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(nil, log)

	// Initialize handlers
	klantHandler := handler.NewKlantHandler(klantService, log)
	offerteHandler := handler.NewOfferteHandler(offerteService, log)
	referentieHandler := handler.NewReferentieHandler(referentieService, log)
	projectHandler := handler.NewProjectHandler(projectService, urenService, nacalculatieService, log)
	inkooporderHandler := handler.NewInkooporderHandler(inkooporderService, log)
	voorraadHandler := handler.NewVoorraadHandler(voorraadService, log)
	factuurHandler := handler.NewFactuurHandler(factuurService, log)
	fileHandler := handler.NewFileHandler(fileService, cfg.Storage.MaxUploadSizeMB, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	authHandler := handler.NewAuthHandler(userService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		companyFilterMiddleware,
		rateLimiter,
		auditMiddleware,
		klantHandler,
		offerteHandler,
		referentieHandler,
		projectHandler,
		inkooporderHandler,
		voorraadHandler,
		factuurHandler,
		fileHandler,
		notificationHandler,
		dashboardHandler,
		authHandler,
		companyHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterOfferteVerloopJob(
			scheduler,
			offerteService,
			log,
			cfg.Jobs.OfferteExpirySchedule,
			jobTimeout,
		); err != nil {
			log.Error("Failed to register offerte expiry job", zap.Error(err))
		}

		if boekhoudingClient != nil {
			if err := jobs.RegisterBoekhoudingSyncJob(
				scheduler,
				factuurService,
				boekhoudingClient,
				log,
				cfg.Jobs.BoekhoudingSyncSchedule,
				jobTimeout,
			); err != nil {
				log.Error("Failed to register boekhouding sync job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()),
		)
	} else {
		log.Info("Background jobs disabled")
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

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close accounting connection if initialized
		if boekhoudingClient != nil {
			if err := boekhoudingClient.Close(); err != nil {
				log.Warn("Error closing boekhouding connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
