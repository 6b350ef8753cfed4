package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/config"
	"github.com/groenwerk/offerte-api/internal/database"
	"github.com/groenwerk/offerte-api/internal/http/handler"
	"github.com/groenwerk/offerte-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/groenwerk/offerte-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                     *config.Config
	logger                  *zap.Logger
	db                      *gorm.DB
	authMiddleware          *auth.Middleware
	companyFilterMiddleware *middleware.CompanyFilterMiddleware
	rateLimiter             *middleware.RateLimiter
	auditMiddleware         *middleware.AuditMiddleware
	klantHandler            *handler.KlantHandler
	offerteHandler          *handler.OfferteHandler
	referentieHandler       *handler.ReferentieHandler
	projectHandler          *handler.ProjectHandler
	inkooporderHandler      *handler.InkooporderHandler
	voorraadHandler         *handler.VoorraadHandler
	factuurHandler          *handler.FactuurHandler
	fileHandler             *handler.FileHandler
	notificationHandler     *handler.NotificationHandler
	dashboardHandler        *handler.DashboardHandler
	authHandler             *handler.AuthHandler
	companyHandler          *handler.CompanyHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	companyFilterMiddleware *middleware.CompanyFilterMiddleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	klantHandler *handler.KlantHandler,
	offerteHandler *handler.OfferteHandler,
	referentieHandler *handler.ReferentieHandler,
	projectHandler *handler.ProjectHandler,
	inkooporderHandler *handler.InkooporderHandler,
	voorraadHandler *handler.VoorraadHandler,
	factuurHandler *handler.FactuurHandler,
	fileHandler *handler.FileHandler,
	notificationHandler *handler.NotificationHandler,
	dashboardHandler *handler.DashboardHandler,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
) *Router {
	return &Router{
		cfg:                     cfg,
		logger:                  logger,
		db:                      db,
		authMiddleware:          authMiddleware,
		companyFilterMiddleware: companyFilterMiddleware,
		rateLimiter:             rateLimiter,
		auditMiddleware:         auditMiddleware,
		klantHandler:            klantHandler,
		offerteHandler:          offerteHandler,
		referentieHandler:       referentieHandler,
		projectHandler:          projectHandler,
		inkooporderHandler:      inkooporderHandler,
		voorraadHandler:         voorraadHandler,
		factuurHandler:          factuurHandler,
		fileHandler:             fileHandler,
		notificationHandler:     notificationHandler,
		dashboardHandler:        dashboardHandler,
		authHandler:             authHandler,
		companyHandler:          companyHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.companyFilterMiddleware.Filter)
			r.Use(rt.auditMiddleware.Audit)

			// Auth & users
			r.Get("/auth/me", rt.authHandler.Me)
			r.Get("/users", rt.authHandler.ListUsers)
			r.With(rt.authMiddleware.RequireAdmin).Put("/users/{id}", rt.authHandler.UpdateUser)

			// Companies
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Get("/{id}", rt.companyHandler.GetByID)
				r.With(rt.authMiddleware.RequireAdmin).Put("/{id}", rt.companyHandler.Update)
			})

			// Klanten
			r.Route("/klanten", func(r chi.Router) {
				r.Get("/", rt.klantHandler.List)
				r.Get("/search", rt.klantHandler.Search)
				r.Post("/", rt.klantHandler.Create)
				r.Get("/{id}", rt.klantHandler.GetByID)
				r.Put("/{id}", rt.klantHandler.Update)
				r.Delete("/{id}", rt.klantHandler.Delete)
			})

			// Referentiegegevens
			r.Route("/referentie", func(r chi.Router) {
				r.Get("/normuren", rt.referentieHandler.ListNormUren)
				r.Get("/factoren", rt.referentieHandler.ListCorrectieFactoren)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Put("/normuren", rt.referentieHandler.UpsertNormUur)
					r.Delete("/normuren/{id}", rt.referentieHandler.DeleteNormUur)
					r.Put("/factoren", rt.referentieHandler.UpsertCorrectieFactor)
					r.Delete("/factoren/{id}", rt.referentieHandler.DeleteCorrectieFactor)
				})
			})

			// Offertes
			r.Route("/offertes", func(r chi.Router) {
				r.Get("/", rt.offerteHandler.List)
				r.Post("/", rt.offerteHandler.Create)
				r.Get("/stats", rt.offerteHandler.Stats)
				r.Get("/{id}", rt.offerteHandler.GetByID)
				r.Put("/{id}", rt.offerteHandler.Update)
				r.Delete("/{id}", rt.offerteHandler.Delete)

				// Lifecycle
				r.Post("/{id}/calculate", rt.offerteHandler.Calculate)
				r.Post("/{id}/verzend", rt.offerteHandler.Verzend)
				r.Post("/{id}/accept", rt.offerteHandler.Accept)
				r.Post("/{id}/reject", rt.offerteHandler.Reject)

				// Regels
				r.Post("/{id}/regels", rt.offerteHandler.AddRegel)
				r.Delete("/{id}/regels/{regelId}", rt.offerteHandler.DeleteRegel)

				// Bijlagen
				r.Get("/{id}/files", rt.fileHandler.ListByOfferte)
				r.Post("/{id}/files", rt.fileHandler.Upload)
			})

			// Projecten
			r.Route("/projecten", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Get("/mine", rt.projectHandler.ListMine)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.Put("/{id}", rt.projectHandler.Update)
				r.Delete("/{id}", rt.projectHandler.Delete)

				// Urenregistratie
				r.Get("/{id}/uren", rt.projectHandler.ListUren)
				r.Post("/{id}/uren", rt.projectHandler.RegisterUren)
				r.Delete("/{id}/uren/{urenId}", rt.projectHandler.DeleteUren)

				// Machinegebruik
				r.Get("/{id}/machines", rt.projectHandler.ListMachinegebruik)
				r.Post("/{id}/machines", rt.projectHandler.RegisterMachinegebruik)
				r.Delete("/{id}/machines/{gebruikId}", rt.projectHandler.DeleteMachinegebruik)

				// Nacalculatie
				r.Get("/{id}/nacalculatie", rt.projectHandler.GetNacalculatie)
				r.Post("/{id}/nacalculatie", rt.projectHandler.BerekenNacalculatie)
			})

			// Inkoop
			r.Route("/inkooporders", func(r chi.Router) {
				r.Get("/", rt.inkooporderHandler.List)
				r.Post("/", rt.inkooporderHandler.Create)
				r.Get("/{id}", rt.inkooporderHandler.GetByID)
				r.Put("/{id}/status", rt.inkooporderHandler.UpdateStatus)
				r.Delete("/{id}", rt.inkooporderHandler.Delete)
			})

			// Voorraad
			r.Route("/voorraad", func(r chi.Router) {
				r.Get("/", rt.voorraadHandler.List)
				r.Put("/", rt.voorraadHandler.Upsert)
				r.Get("/{id}", rt.voorraadHandler.GetByID)
				r.Post("/{id}/mutatie", rt.voorraadHandler.Mutatie)
				r.Delete("/{id}", rt.voorraadHandler.Delete)
			})

			// Facturen
			r.Route("/facturen", func(r chi.Router) {
				r.Get("/", rt.factuurHandler.List)
				r.Post("/", rt.factuurHandler.Create)
				r.Get("/{id}", rt.factuurHandler.GetByID)
				r.Put("/{id}/status", rt.factuurHandler.UpdateStatus)
			})

			// Files
			r.Route("/files", func(r chi.Router) {
				r.Get("/{id}/download", rt.fileHandler.Download)
				r.Delete("/{id}", rt.fileHandler.Delete)
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.ListMine)
				r.Get("/unread-count", rt.notificationHandler.UnreadCount)
				r.Post("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Post("/{id}/read", rt.notificationHandler.MarkAsRead)
			})

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.Get)
		})
	})

	return r
}
