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

type InkooporderHandler struct {
	orderService *service.InkooporderService
	logger       *zap.Logger
}

func NewInkooporderHandler(orderService *service.InkooporderService, logger *zap.Logger) *InkooporderHandler {
	return &InkooporderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// @Summary List inkooporders
// @Tags Inkoop
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(concept, besteld, geleverd, geannuleerd)
// @Param projectId query string false "Filter by project ID"
// @Param search query string false "Search in ordernummer and leverancier"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inkooporders [get]
func (h *InkooporderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	status := domain.InkooporderStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")

	var projectID *uuid.UUID
	if pid := r.URL.Query().Get("projectId"); pid != "" {
		if id, err := uuid.Parse(pid); err == nil {
			projectID = &id
		}
	}

	result, err := h.orderService.List(r.Context(), page, pageSize, status, projectID, search)
	if err != nil {
		h.logger.Error("failed to list inkooporders", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create inkooporder
// @Tags Inkoop
// @Accept json
// @Produce json
// @Param request body domain.CreateInkooporderRequest true "Order data"
// @Success 201 {object} domain.InkooporderDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inkooporders [post]
func (h *InkooporderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInkooporderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create inkooporder", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/inkooporders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

// @Summary Get inkooporder
// @Tags Inkoop
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.InkooporderDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inkooporders/{id} [get]
func (h *InkooporderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID: must be a valid UUID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get inkooporder", zap.Error(err), zap.String("order_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// @Summary Update inkooporder status
// @Description Advances an order: concept -> besteld -> geleverd. Delivery books
// @Description regels with a voorraadkoppeling into stock.
// @Tags Inkoop
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body domain.UpdateInkooporderStatusRequest true "Status"
// @Success 200 {object} domain.InkooporderDTO
// @Failure 409 {object} domain.ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inkooporders/{id}/status [put]
func (h *InkooporderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID: must be a valid UUID")
		return
	}

	var req domain.UpdateInkooporderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update inkooporder status", zap.Error(err), zap.String("order_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// @Summary Delete inkooporder
// @Tags Inkoop
// @Param id path string true "Order ID"
// @Success 204
// @Failure 409 {object} domain.ErrorResponse "Only concept orders can be deleted"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inkooporders/{id} [delete]
func (h *InkooporderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID: must be a valid UUID")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete inkooporder", zap.Error(err), zap.String("order_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
