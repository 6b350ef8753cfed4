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

type VoorraadHandler struct {
	voorraadService *service.VoorraadService
	logger          *zap.Logger
}

func NewVoorraadHandler(voorraadService *service.VoorraadService, logger *zap.Logger) *VoorraadHandler {
	return &VoorraadHandler{
		voorraadService: voorraadService,
		logger:          logger,
	}
}

// @Summary List voorraad items
// @Tags Voorraad
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param search query string false "Search in artikel and naam"
// @Param onderMinimum query bool false "Only items at or below their minimum"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /voorraad [get]
func (h *VoorraadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")
	onderMinimum := r.URL.Query().Get("onderMinimum") == "true"

	result, err := h.voorraadService.List(r.Context(), page, pageSize, search, onderMinimum)
	if err != nil {
		h.logger.Error("failed to list voorraad", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create or update a voorraad item
// @Description Upserts by artikelcode within the company.
// @Tags Voorraad
// @Accept json
// @Produce json
// @Param companyId query string false "Company ID (defaults to own company)"
// @Param request body domain.UpsertVoorraadItemRequest true "Item data"
// @Success 200 {object} domain.VoorraadItemDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /voorraad [put]
func (h *VoorraadHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertVoorraadItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.voorraadService.Upsert(r.Context(), requestCompanyID(r), &req)
	if err != nil {
		h.logger.Error("failed to upsert voorraad item", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// @Summary Get voorraad item
// @Tags Voorraad
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} domain.VoorraadItemDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /voorraad/{id} [get]
func (h *VoorraadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID: must be a valid UUID")
		return
	}

	item, err := h.voorraadService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get voorraad item", zap.Error(err), zap.String("item_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// @Summary Mutate stock level
// @Description Applies a positive or negative delta. The level can never drop below zero.
// @Tags Voorraad
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body domain.MutatieVoorraadRequest true "Delta and reden"
// @Success 200 {object} domain.VoorraadItemDTO
// @Failure 400 {object} domain.ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /voorraad/{id}/mutatie [post]
func (h *VoorraadHandler) Mutatie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID: must be a valid UUID")
		return
	}

	var req domain.MutatieVoorraadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.voorraadService.Mutatie(r.Context(), id, req.Delta, req.Reden)
	if err != nil {
		h.logger.Error("failed to mutate voorraad", zap.Error(err), zap.String("item_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// @Summary Delete voorraad item
// @Tags Voorraad
// @Param id path string true "Item ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /voorraad/{id} [delete]
func (h *VoorraadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item ID: must be a valid UUID")
		return
	}

	if err := h.voorraadService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete voorraad item", zap.Error(err), zap.String("item_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
