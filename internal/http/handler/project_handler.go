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

// ProjectHandler covers projects plus the uren, machinegebruik and
// nacalculatie subresources that hang under them.
type ProjectHandler struct {
	projectService      *service.ProjectService
	urenService         *service.UrenService
	nacalculatieService *service.NacalculatieService
	logger              *zap.Logger
}

func NewProjectHandler(
	projectService *service.ProjectService,
	urenService *service.UrenService,
	nacalculatieService *service.NacalculatieService,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:      projectService,
		urenService:         urenService,
		nacalculatieService: nacalculatieService,
		logger:              logger,
	}
}

// @Summary List projects
// @Tags Projecten
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(gepland, in_uitvoering, afgerond, geannuleerd)
// @Param search query string false "Search in nummer, naam and klantnaam"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, projectNummer, naam, status, startDatum)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	status := domain.ProjectStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.projectService.List(r.Context(), page, pageSize, status, search, sort)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary List my projects
// @Description Returns the projects the caller works on as uitvoerder or manager.
// @Tags Projecten
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /projecten/mine [get]
func (h *ProjectHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.projectService.ListMine(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list own projects", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Get project
// @Tags Projecten
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get project", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// @Summary Update project
// @Description Updates planning fields and the lifecycle status.
// @Tags Projecten
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.UpdateProjectRequest true "Project data"
// @Success 200 {object} domain.ProjectDTO
// @Failure 409 {object} domain.ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	var req domain.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update project", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// @Summary Delete project
// @Tags Projecten
// @Param id path string true "Project ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete project", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary List urenregistraties
// @Tags Projecten
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.UrenregistratieDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/uren [get]
func (h *ProjectHandler) ListUren(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	uren, err := h.urenService.ListUren(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list uren", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, uren)
}

// @Summary Register uren
// @Description Logs a time entry on a project in uitvoering.
// @Tags Projecten
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.CreateUrenregistratieRequest true "Uren data"
// @Success 201 {object} domain.UrenregistratieDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/uren [post]
func (h *ProjectHandler) RegisterUren(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateUrenregistratieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	uren, err := h.urenService.RegisterUren(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to register uren", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, uren)
}

// @Summary Delete urenregistratie
// @Tags Projecten
// @Param id path string true "Project ID"
// @Param urenId path string true "Urenregistratie ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/uren/{urenId} [delete]
func (h *ProjectHandler) DeleteUren(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	urenID, err := uuid.Parse(chi.URLParam(r, "urenId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid uren ID")
		return
	}

	if err := h.urenService.DeleteUren(r.Context(), id, urenID); err != nil {
		h.logger.Error("failed to delete uren", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary List machinegebruik
// @Tags Projecten
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.MachinegebruikDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/machines [get]
func (h *ProjectHandler) ListMachinegebruik(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	gebruik, err := h.urenService.ListMachinegebruik(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list machinegebruik", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, gebruik)
}

// @Summary Register machinegebruik
// @Tags Projecten
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.CreateMachinegebruikRequest true "Machinegebruik data"
// @Success 201 {object} domain.MachinegebruikDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/machines [post]
func (h *ProjectHandler) RegisterMachinegebruik(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateMachinegebruikRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	gebruik, err := h.urenService.RegisterMachinegebruik(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to register machinegebruik", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, gebruik)
}

// @Summary Delete machinegebruik
// @Tags Projecten
// @Param id path string true "Project ID"
// @Param gebruikId path string true "Machinegebruik ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/machines/{gebruikId} [delete]
func (h *ProjectHandler) DeleteMachinegebruik(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	gebruikID, err := uuid.Parse(chi.URLParam(r, "gebruikId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid machinegebruik ID")
		return
	}

	if err := h.urenService.DeleteMachinegebruik(r.Context(), id, gebruikID); err != nil {
		h.logger.Error("failed to delete machinegebruik", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Get nacalculatie
// @Tags Projecten
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.NacalculatieDTO
// @Failure 404 {object} domain.ErrorResponse "No nacalculatie stored yet"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/nacalculatie [get]
func (h *ProjectHandler) GetNacalculatie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	nacalc, err := h.nacalculatieService.GetByProjectID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get nacalculatie", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nacalc)
}

// @Summary Bereken nacalculatie
// @Description Compares the voorcalculatie with the logged actuals and stores
// @Description the result. Reruns overwrite the previous outcome.
// @Tags Projecten
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.NacalculatieDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projecten/{id}/nacalculatie [post]
func (h *ProjectHandler) BerekenNacalculatie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	nacalc, err := h.nacalculatieService.Bereken(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to bereken nacalculatie", zap.Error(err), zap.String("project_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nacalc)
}
