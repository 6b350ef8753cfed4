package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

// ReferentieHandler exposes the reference data behind the calculators:
// normuren and correctiefactoren.
type ReferentieHandler struct {
	referentieService *service.ReferentieService
	logger            *zap.Logger
}

func NewReferentieHandler(referentieService *service.ReferentieService, logger *zap.Logger) *ReferentieHandler {
	return &ReferentieHandler{
		referentieService: referentieService,
		logger:            logger,
	}
}

// requestCompanyID resolves the company scope of a reference-data call:
// an explicit companyId query param when present, otherwise the
// caller's own company.
func requestCompanyID(r *http.Request) domain.CompanyID {
	if cid := r.URL.Query().Get("companyId"); cid != "" {
		return domain.CompanyID(cid)
	}
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		return userCtx.CompanyID
	}
	return ""
}

// @Summary List normuren
// @Tags Referentie
// @Produce json
// @Param companyId query string false "Company ID (defaults to own company)"
// @Param scope query string false "Filter by scope"
// @Success 200 {array} domain.NormUurDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/normuren [get]
func (h *ReferentieHandler) ListNormUren(w http.ResponseWriter, r *http.Request) {
	companyID := requestCompanyID(r)
	scope := domain.Scope(r.URL.Query().Get("scope"))

	normUren, err := h.referentieService.ListNormUren(r.Context(), companyID, scope)
	if err != nil {
		h.logger.Error("failed to list normuren", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, normUren)
}

// @Summary Upsert normuur
// @Description Creates or updates the norm rate for a scope/activiteit key.
// @Tags Referentie
// @Accept json
// @Produce json
// @Param companyId query string false "Company ID (defaults to own company)"
// @Param request body domain.UpsertNormUurRequest true "Normuur data"
// @Success 200 {object} domain.NormUurDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/normuren [put]
func (h *ReferentieHandler) UpsertNormUur(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertNormUurRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	normUur, err := h.referentieService.UpsertNormUur(r.Context(), requestCompanyID(r), &req)
	if err != nil {
		h.logger.Error("failed to upsert normuur", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, normUur)
}

// @Summary Delete normuur
// @Tags Referentie
// @Param id path string true "Normuur ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/normuren/{id} [delete]
func (h *ReferentieHandler) DeleteNormUur(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid normuur ID")
		return
	}

	if err := h.referentieService.DeleteNormUur(r.Context(), id); err != nil {
		h.logger.Error("failed to delete normuur", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary List correctiefactoren
// @Description Returns the system defaults plus the company's overrides.
// @Tags Referentie
// @Produce json
// @Param companyId query string false "Company ID (defaults to own company)"
// @Success 200 {array} domain.CorrectieFactorDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/correctiefactoren [get]
func (h *ReferentieHandler) ListCorrectieFactoren(w http.ResponseWriter, r *http.Request) {
	factoren, err := h.referentieService.ListCorrectieFactoren(r.Context(), requestCompanyID(r))
	if err != nil {
		h.logger.Error("failed to list correctiefactoren", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, factoren)
}

// @Summary Upsert correctiefactor
// @Description Writes a company override, or a system default when
// @Description asDefault=true (super admin only, enforced by route middleware).
// @Tags Referentie
// @Accept json
// @Produce json
// @Param companyId query string false "Company ID (defaults to own company)"
// @Param asDefault query bool false "Write as system default"
// @Param request body domain.UpsertCorrectieFactorRequest true "Factor data"
// @Success 200 {object} domain.CorrectieFactorDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/correctiefactoren [put]
func (h *ReferentieHandler) UpsertCorrectieFactor(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertCorrectieFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	var companyID *domain.CompanyID
	if r.URL.Query().Get("asDefault") != "true" {
		cid := requestCompanyID(r)
		companyID = &cid
	}

	factor, err := h.referentieService.UpsertCorrectieFactor(r.Context(), companyID, &req)
	if err != nil {
		h.logger.Error("failed to upsert correctiefactor", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, factor)
}

// @Summary Delete correctiefactor
// @Tags Referentie
// @Param id path string true "Correctiefactor ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /referentie/correctiefactoren/{id} [delete]
func (h *ReferentieHandler) DeleteCorrectieFactor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid correctiefactor ID")
		return
	}

	if err := h.referentieService.DeleteCorrectieFactor(r.Context(), id); err != nil {
		h.logger.Error("failed to delete correctiefactor", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
