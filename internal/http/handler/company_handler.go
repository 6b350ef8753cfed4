package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// @Summary List companies
// @Description Returns the companies visible to the caller. Super admins see the
// @Description whole group, other users only their own company.
// @Tags Companies
// @Produce json
// @Success 200 {array} domain.Company
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list companies", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, companies)
}

// @Summary Get company
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} domain.Company
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := domain.CompanyID(chi.URLParam(r, "id"))

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get company", zap.Error(err), zap.String("company_id", string(id)))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// @Summary Update company branding
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param request body domain.UpdateCompanyRequest true "Branding fields"
// @Success 200 {object} domain.Company
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := domain.CompanyID(chi.URLParam(r, "id"))

	var req domain.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.UpdateBranding(r.Context(), id, req.Name, req.ShortName, req.Color)
	if err != nil {
		h.logger.Error("failed to update company", zap.Error(err), zap.String("company_id", string(id)))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}
