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

type KlantHandler struct {
	klantService *service.KlantService
	logger       *zap.Logger
}

func NewKlantHandler(klantService *service.KlantService, logger *zap.Logger) *KlantHandler {
	return &KlantHandler{
		klantService: klantService,
		logger:       logger,
	}
}

// @Summary List klanten
// @Tags Klanten
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param search query string false "Search in naam, email and plaats"
// @Param klantType query string false "Filter by type" Enums(particulier, zakelijk)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten [get]
func (h *KlantHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")
	klantType := domain.KlantType(r.URL.Query().Get("klantType"))

	result, err := h.klantService.List(r.Context(), page, pageSize, search, klantType)
	if err != nil {
		h.logger.Error("failed to list klanten", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Search klanten
// @Tags Klanten
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} domain.KlantDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten/search [get]
func (h *KlantHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	klanten, err := h.klantService.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Error("failed to search klanten", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, klanten)
}

// @Summary Create klant
// @Tags Klanten
// @Accept json
// @Produce json
// @Param request body domain.CreateKlantRequest true "Klant data"
// @Success 201 {object} domain.KlantDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten [post]
func (h *KlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateKlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	klant, err := h.klantService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create klant", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/klanten/"+klant.ID.String())
	respondJSON(w, http.StatusCreated, klant)
}

// @Summary Get klant
// @Tags Klanten
// @Produce json
// @Param id path string true "Klant ID"
// @Success 200 {object} domain.KlantDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten/{id} [get]
func (h *KlantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid klant ID: must be a valid UUID")
		return
	}

	klant, err := h.klantService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get klant", zap.Error(err), zap.String("klant_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, klant)
}

// @Summary Update klant
// @Tags Klanten
// @Accept json
// @Produce json
// @Param id path string true "Klant ID"
// @Param request body domain.UpdateKlantRequest true "Klant data"
// @Success 200 {object} domain.KlantDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten/{id} [put]
func (h *KlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid klant ID: must be a valid UUID")
		return
	}

	var req domain.UpdateKlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	klant, err := h.klantService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update klant", zap.Error(err), zap.String("klant_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, klant)
}

// @Summary Delete klant
// @Tags Klanten
// @Param id path string true "Klant ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /klanten/{id} [delete]
func (h *KlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid klant ID: must be a valid UUID")
		return
	}

	if err := h.klantService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete klant", zap.Error(err), zap.String("klant_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
