package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func auditTestContext() *auth.UserContext {
	return &auth.UserContext{
		UserID:      "user-1",
		DisplayName: "Jan de Vries",
		CompanyID:   domain.CompanyHoveniers,
		Roles:       []domain.UserRoleType{domain.RoleCalculator},
	}
}

func TestAuditMiddleware_LogsSuccessfulMutation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := middleware.NewAuditMiddleware(nil, zap.New(core))

	handler := m.Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/v1/klanten", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), auditTestContext()))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "mutation", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "Klant", fields["entity_type"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "hoveniers", fields["company_id"])
}

func TestAuditMiddleware_SkipsReads(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := middleware.NewAuditMiddleware(nil, zap.New(core))

	handler := m.Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/klanten", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, 0, logs.Len())
}

func TestAuditMiddleware_SkipsFailedMutations(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := middleware.NewAuditMiddleware(nil, zap.New(core))

	handler := m.Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest("POST", "/api/v1/offertes", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, 0, logs.Len())
}

func TestAuditMiddleware_SkipsHealthEndpoints(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := middleware.NewAuditMiddleware(nil, zap.New(core))

	handler := m.Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, 0, logs.Len())
}
