package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/groenwerk/offerte-api/internal/auth"
	"go.uber.org/zap"
)

// AuditConfig holds configuration for the mutation log middleware
type AuditConfig struct {
	// SkipPaths contains path prefixes that should not be logged
	SkipPaths []string
	// SkipMethods contains HTTP methods that should not be logged
	SkipMethods []string
}

// DefaultAuditConfig returns default audit configuration
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/swagger",
		},
		SkipMethods: []string{
			http.MethodGet,
			http.MethodOptions,
			http.MethodHead,
		},
	}
}

// AuditMiddleware writes a structured log line for every successful
// mutation, with the acting user and the touched entity.
type AuditMiddleware struct {
	config *AuditConfig
	logger *zap.Logger
}

func NewAuditMiddleware(config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		config: config,
		logger: logger,
	}
}

// Audit returns middleware that logs modifications
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		rw := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		// Only log successful modifications
		if rw.statusCode < 200 || rw.statusCode >= 300 {
			return
		}

		entityType, entityID := m.extractEntityInfo(r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("entity_type", entityType),
			zap.Int("status_code", rw.statusCode),
		}
		if entityID != "" {
			fields = append(fields, zap.String("entity_id", entityID))
		}
		if userCtx, ok := auth.FromContext(r.Context()); ok {
			fields = append(fields,
				zap.String("user_id", userCtx.UserID),
				zap.String("user_name", userCtx.DisplayName),
				zap.String("company_id", string(userCtx.CompanyID)),
			)
		}

		m.logger.Info("mutation", fields...)
	})
}

// shouldAudit determines if a request should be logged
func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	for _, method := range m.config.SkipMethods {
		if r.Method == method {
			return false
		}
	}

	path := r.URL.Path
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}

	return true
}

// extractEntityInfo extracts entity type and ID from the request path
func (m *AuditMiddleware) extractEntityInfo(r *http.Request) (string, string) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return m.parseEntityFromPath(r.URL.Path), ""
	}

	entityID := routeCtx.URLParam("id")
	entityType := m.parseEntityFromPath(routeCtx.RoutePattern())

	return entityType, entityID
}

// parseEntityFromPath extracts entity type from a URL path
func (m *AuditMiddleware) parseEntityFromPath(path string) string {
	entityMap := map[string]string{
		"klanten":       "Klant",
		"offertes":      "Offerte",
		"projecten":     "Project",
		"referentie":    "Referentie",
		"inkooporders":  "Inkooporder",
		"voorraad":      "VoorraadItem",
		"facturen":      "Factuur",
		"files":         "File",
		"users":         "User",
		"companies":     "Company",
		"notifications": "Notification",
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if entityType, ok := entityMap[part]; ok {
			return entityType
		}
	}

	return "Unknown"
}

// responseCapture wraps ResponseWriter to capture the status code
type responseCapture struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseCapture) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
