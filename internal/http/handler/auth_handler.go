package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// @Summary Current user
// @Description Returns the authenticated user's profile and syncs the local
// @Description account record from the token.
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if _, err := h.userService.SyncOnLogin(r.Context(), userCtx); err != nil {
		h.logger.Warn("failed to sync user on login", zap.Error(err), zap.String("user_id", userCtx.UserID))
	}

	me, err := h.userService.Me(r.Context())
	if err != nil {
		h.logger.Error("failed to load current user", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, me)
}

// @Summary List users
// @Tags Users
// @Produce json
// @Param companyId query string false "Filter by company ID"
// @Success 200 {array} domain.UserDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users [get]
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var companyID *domain.CompanyID
	if cid := r.URL.Query().Get("companyId"); cid != "" {
		id := domain.CompanyID(cid)
		companyID = &id
	}

	users, err := h.userService.List(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// @Summary Update user
// @Description Changes role assignment, company and account status.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body domain.UpdateUserRequest true "Fields to update"
// @Success 200 {object} domain.UserDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), userID, &req)
	if err != nil {
		h.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", userID))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
