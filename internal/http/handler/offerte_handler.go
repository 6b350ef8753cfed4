package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

type OfferteHandler struct {
	offerteService *service.OfferteService
	logger         *zap.Logger
}

func NewOfferteHandler(offerteService *service.OfferteService, logger *zap.Logger) *OfferteHandler {
	return &OfferteHandler{
		offerteService: offerteService,
		logger:         logger,
	}
}

// @Summary List offertes
// @Tags Offertes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(concept, verzonden, geaccepteerd, afgewezen, verlopen)
// @Param offerteType query string false "Filter by type" Enums(aanleg, onderhoud)
// @Param klantId query string false "Filter by klant ID"
// @Param search query string false "Search in nummer, titel and klantnaam"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, offerteNummer, titel, status, totaalInclBtw, geldigTot)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes [get]
func (h *OfferteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	filters := repository.ListFilters{
		Status:      domain.OfferteStatus(r.URL.Query().Get("status")),
		OfferteType: domain.OfferteType(r.URL.Query().Get("offerteType")),
		Search:      r.URL.Query().Get("search"),
	}
	if kid := r.URL.Query().Get("klantId"); kid != "" {
		if id, err := uuid.Parse(kid); err == nil {
			filters.KlantID = &id
		}
	}

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.offerteService.List(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		h.logger.Error("failed to list offertes", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create offerte
// @Description Creates a new offerte in concept status. The scope invoer carries
// @Description the parameters per scope that the calculators run on.
// @Tags Offertes
// @Accept json
// @Produce json
// @Param request body domain.CreateOfferteRequest true "Offerte data"
// @Success 201 {object} domain.OfferteDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes [post]
func (h *OfferteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOfferteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	offerte, err := h.offerteService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create offerte", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/offertes/"+offerte.ID.String())
	respondJSON(w, http.StatusCreated, offerte)
}

// @Summary Get offerte
// @Tags Offertes
// @Produce json
// @Param id path string true "Offerte ID"
// @Success 200 {object} domain.OfferteDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id} [get]
func (h *OfferteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID: must be a valid UUID")
		return
	}

	offerte, err := h.offerteService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// @Summary Update offerte
// @Description Updates the calculation inputs of a concept offerte. Offertes
// @Description later in the lifecycle are frozen.
// @Tags Offertes
// @Accept json
// @Produce json
// @Param id path string true "Offerte ID"
// @Param request body domain.UpdateOfferteRequest true "Offerte data"
// @Success 200 {object} domain.OfferteDTO
// @Failure 409 {object} domain.ErrorResponse "Offerte is not in concept status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id} [put]
func (h *OfferteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID: must be a valid UUID")
		return
	}

	var req domain.UpdateOfferteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	offerte, err := h.offerteService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// @Summary Delete offerte
// @Tags Offertes
// @Param id path string true "Offerte ID"
// @Success 204
// @Failure 409 {object} domain.ErrorResponse "Only concept offertes can be deleted"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id} [delete]
func (h *OfferteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID: must be a valid UUID")
		return
	}

	if err := h.offerteService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Offerte counts per status
// @Tags Offertes
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/stats [get]
func (h *OfferteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.offerteService.CountByStatus(r.Context())
	if err != nil {
		h.logger.Error("failed to count offertes", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, counts)
}
