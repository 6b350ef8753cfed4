package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"go.uber.org/zap"
)

// Calculate godoc
// @Summary Calculate offerte
// @Description Runs the scope calculators against the company's reference data
// @Description and replaces the generated line set. Handmatige regels survive.
// @Tags Offertes
// @Produce json
// @Param id path string true "Offerte ID"
// @Success 200 {object} domain.OfferteDTO
// @Failure 400 {object} domain.ErrorResponse "Invalid scope invoer or missing reference data"
// @Failure 409 {object} domain.ErrorResponse "Offerte is not in concept status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/calculate [post]
func (h *OfferteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}

	offerte, err := h.offerteService.Calculate(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to calculate offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// AddRegel godoc
// @Summary Add handmatige regel
// @Description Adds a manual line outside the calculators and re-aggregates the totals.
// @Tags Offertes
// @Accept json
// @Produce json
// @Param id path string true "Offerte ID"
// @Param request body domain.AddHandmatigeRegelRequest true "Regel data"
// @Success 200 {object} domain.OfferteDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/regels [post]
func (h *OfferteHandler) AddRegel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}

	var req domain.AddHandmatigeRegelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	offerte, err := h.offerteService.AddHandmatigeRegel(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to add regel", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// DeleteRegel godoc
// @Summary Delete offerteregel
// @Tags Offertes
// @Produce json
// @Param id path string true "Offerte ID"
// @Param regelId path string true "Regel ID"
// @Success 200 {object} domain.OfferteDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/regels/{regelId} [delete]
func (h *OfferteHandler) DeleteRegel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}
	regelID, err := uuid.Parse(chi.URLParam(r, "regelId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid regel ID")
		return
	}

	offerte, err := h.offerteService.DeleteRegel(r.Context(), id, regelID)
	if err != nil {
		h.logger.Error("failed to delete regel", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// Verzend godoc
// @Summary Verzend offerte
// @Description Moves a concept offerte to verzonden. A missing vervaldatum gets
// @Description the default validity window.
// @Tags Offertes
// @Produce json
// @Param id path string true "Offerte ID"
// @Success 200 {object} domain.OfferteDTO
// @Failure 409 {object} domain.ErrorResponse "Offerte is not in concept status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/verzend [post]
func (h *OfferteHandler) Verzend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}

	offerte, err := h.offerteService.Verzend(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to verzend offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}

// Accept godoc
// @Summary Accept offerte
// @Description Marks a verzonden offerte geaccepteerd and optionally creates the
// @Description follow-up project seeded with the voorcalculatie.
// @Tags Offertes
// @Accept json
// @Produce json
// @Param id path string true "Offerte ID"
// @Param request body domain.AcceptOfferteRequest false "Accept options"
// @Success 200 {object} domain.AcceptOfferteResponse
// @Failure 409 {object} domain.ErrorResponse "Offerte is not in verzonden status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/accept [post]
func (h *OfferteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}

	var req domain.AcceptOfferteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	response, err := h.offerteService.Accept(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to accept offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// Reject godoc
// @Summary Reject offerte
// @Description Marks a verzonden offerte afgewezen, with an optional reason.
// @Tags Offertes
// @Accept json
// @Produce json
// @Param id path string true "Offerte ID"
// @Param request body domain.RejectOfferteRequest false "Rejection reason"
// @Success 200 {object} domain.OfferteDTO
// @Failure 409 {object} domain.ErrorResponse "Offerte is not in verzonden status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/reject [post]
func (h *OfferteHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID")
		return
	}

	var req domain.RejectOfferteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	offerte, err := h.offerteService.Reject(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to reject offerte", zap.Error(err), zap.String("offerte_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offerte)
}
