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
)

func TestCompanyFilterMiddleware_GroepUser_NoFilter(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	userCtx := &auth.UserContext{
		UserID:    "user-1",
		CompanyID: domain.CompanyGroep,
		Roles:     []domain.UserRoleType{domain.RoleCalculator},
	}

	var capturedFilter *auth.CompanyFilter
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedFilter, _ = auth.CompanyFilterFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/klanten", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, capturedFilter)
	assert.Nil(t, capturedFilter.CompanyID, "Groep user without filter should have nil CompanyID")
}

func TestCompanyFilterMiddleware_GroepUser_WithFilter(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	userCtx := &auth.UserContext{
		UserID:    "user-1",
		CompanyID: domain.CompanyGroep,
		Roles:     []domain.UserRoleType{domain.RoleCalculator},
	}

	var capturedFilter *auth.CompanyFilter
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedFilter, _ = auth.CompanyFilterFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/klanten?company_id=hoveniers", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, capturedFilter)
	assert.NotNil(t, capturedFilter.CompanyID)
	assert.Equal(t, domain.CompanyHoveniers, *capturedFilter.CompanyID)
	assert.True(t, capturedFilter.RequestedByGroepUser)
}

func TestCompanyFilterMiddleware_SubsidiaryUser_AutoFilter(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	userCtx := &auth.UserContext{
		UserID:    "user-2",
		CompanyID: domain.CompanyHoveniers,
		Roles:     []domain.UserRoleType{domain.RoleCalculator},
	}

	var capturedFilter *auth.CompanyFilter
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedFilter, _ = auth.CompanyFilterFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/offertes", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, capturedFilter)
	assert.NotNil(t, capturedFilter.CompanyID)
	assert.Equal(t, domain.CompanyHoveniers, *capturedFilter.CompanyID)
	assert.False(t, capturedFilter.RequestedByGroepUser)
}

func TestCompanyFilterMiddleware_SubsidiaryUser_CrossCompanyDenied(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	userCtx := &auth.UserContext{
		UserID:    "user-2",
		CompanyID: domain.CompanyHoveniers,
		Roles:     []domain.UserRoleType{domain.RoleCalculator},
	}

	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/api/v1/offertes?company_id=boomverzorging", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCompanyFilterMiddleware_InvalidCompanyID(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	userCtx := &auth.UserContext{
		UserID:    "user-1",
		CompanyID: domain.CompanyGroep,
		Roles:     []domain.UserRoleType{domain.RoleCalculator},
	}

	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/api/v1/offertes?company_id=nonsense", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCompanyFilterMiddleware_NoUserContext(t *testing.T) {
	logger := zap.NewNop()
	m := middleware.NewCompanyFilterMiddleware(logger)

	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/offertes", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
