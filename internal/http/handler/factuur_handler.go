package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

type FactuurHandler struct {
	factuurService *service.FactuurService
	logger         *zap.Logger
}

func NewFactuurHandler(factuurService *service.FactuurService, logger *zap.Logger) *FactuurHandler {
	return &FactuurHandler{
		factuurService: factuurService,
		logger:         logger,
	}
}

// @Summary List facturen
// @Tags Facturen
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(open, betaald, herinnering, geannuleerd)
// @Param klantId query string false "Filter by klant ID"
// @Param search query string false "Search in factuurnummer"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /facturen [get]
func (h *FactuurHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	status := domain.FactuurStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")

	var klantID *uuid.UUID
	if kid := r.URL.Query().Get("klantId"); kid != "" {
		if id, err := uuid.Parse(kid); err == nil {
			klantID = &id
		}
	}

	result, err := h.factuurService.List(r.Context(), page, pageSize, status, klantID, search)
	if err != nil {
		h.logger.Error("failed to list facturen", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create factuur from an accepted offerte
// @Tags Facturen
// @Accept json
// @Produce json
// @Param request body domain.CreateFactuurRequest true "Factuur data"
// @Success 201 {object} domain.FactuurDTO
// @Failure 409 {object} domain.ErrorResponse "Offerte is not accepted"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /facturen [post]
func (h *FactuurHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFactuurRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	factuur, err := h.factuurService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create factuur", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/facturen/"+factuur.ID.String())
	respondJSON(w, http.StatusCreated, factuur)
}

// @Summary Get factuur
// @Tags Facturen
// @Produce json
// @Param id path string true "Factuur ID"
// @Success 200 {object} domain.FactuurDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /facturen/{id} [get]
func (h *FactuurHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid factuur ID: must be a valid UUID")
		return
	}

	factuur, err := h.factuurService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get factuur", zap.Error(err), zap.String("factuur_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, factuur)
}

// @Summary Update factuur status
// @Tags Facturen
// @Accept json
// @Produce json
// @Param id path string true "Factuur ID"
// @Param request body domain.UpdateFactuurStatusRequest true "Status"
// @Success 200 {object} domain.FactuurDTO
// @Failure 409 {object} domain.ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /facturen/{id}/status [put]
func (h *FactuurHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid factuur ID: must be a valid UUID")
		return
	}

	var req domain.UpdateFactuurStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	factuur, err := h.factuurService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update factuur status", zap.Error(err), zap.String("factuur_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, factuur)
}
