package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/http/handler"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"github.com/groenwerk/offerte-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupKlantRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})

	logger := zap.NewNop()
	svc := service.NewKlantService(repository.NewKlantRepository(db), logger)
	h := handler.NewKlantHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(injectTestUser)
	r.Route("/api/v1/klanten", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r, db
}

func injectTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx := &auth.UserContext{
			UserID:      "handler-test-user",
			DisplayName: "Handler Tester",
			Email:       "tester@groenwerk.nl",
			Roles:       []domain.UserRoleType{domain.RoleSuperAdmin},
			CompanyID:   domain.CompanyGroep,
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserContext(r.Context(), userCtx)))
	})
}

func TestKlantHandler_Create(t *testing.T) {
	r, _ := setupKlantRouter(t)

	body, err := json.Marshal(domain.CreateKlantRequest{
		Naam:      "Gemeente Westbroek",
		KlantType: domain.KlantTypeZakelijk,
		Email:     "groen@westbroek.nl",
		Postcode:  "3615ab",
		Plaats:    "Westbroek",
		KvkNummer: "12345678",
		CompanyID: domain.CompanyGroenonderhoud,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/klanten", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Location"), "/api/v1/klanten/")

	var created domain.KlantDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Gemeente Westbroek", created.Naam)
	assert.Equal(t, "3615 AB", created.Postcode)
	assert.Equal(t, domain.CompanyGroenonderhoud, created.CompanyID)
}

func TestKlantHandler_Create_ValidationError(t *testing.T) {
	r, _ := setupKlantRouter(t)

	// naam is required
	req := httptest.NewRequest(http.MethodPost, "/api/v1/klanten",
		bytes.NewReader([]byte(`{"klantType":"particulier"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "naam")
}

func TestKlantHandler_Create_MalformedJSON(t *testing.T) {
	r, _ := setupKlantRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/klanten",
		bytes.NewReader([]byte(`{"naam": "Broken`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKlantHandler_GetByID(t *testing.T) {
	r, db := setupKlantRouter(t)
	klant := testutil.CreateTestKlant(t, db, "Ophaal Klant", domain.CompanyHoveniers)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/klanten/"+klant.ID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.KlantDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, klant.ID, got.ID)
}

func TestKlantHandler_GetByID_InvalidUUID(t *testing.T) {
	r, _ := setupKlantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/klanten/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKlantHandler_List(t *testing.T) {
	r, db := setupKlantRouter(t)
	testutil.CreateTestKlant(t, db, "Lijst Klant A", domain.CompanyHoveniers)
	testutil.CreateTestKlant(t, db, "Lijst Klant B", domain.CompanyBoomverzorging)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/klanten?page=1&pageSize=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(2), result.Total)
}

func TestKlantHandler_Search_RequiresQuery(t *testing.T) {
	r, _ := setupKlantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/klanten/search", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKlantHandler_Delete(t *testing.T) {
	r, db := setupKlantRouter(t)
	klant := testutil.CreateTestKlant(t, db, "Weg Klant", domain.CompanyHoveniers)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/klanten/"+klant.ID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/klanten/"+klant.ID.String(), nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
