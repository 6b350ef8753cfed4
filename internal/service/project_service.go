package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService manages the execution side of accepted offertes:
// planning, crew assignment and the project lifecycle.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	nacalcRepo  *repository.NacalculatieRepository
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	nacalcRepo *repository.NacalculatieRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		nacalcRepo:  nacalcRepo,
		logger:      logger,
	}
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, status domain.ProjectStatus, search string, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: onbekende projectstatus %q", ErrInvalidInput, status)
	}

	projects, total, err := s.projectRepo.List(ctx, page, pageSize, status, search, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListMine returns the projects the current user works on, either as
// uitvoerder or as manager.
func (s *ProjectService) ListMine(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	projects, total, err := s.projectRepo.ListByUitvoerder(ctx, userCtx.UserID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update changes planning fields and the lifecycle status. Transitions
// only move forward: gepland -> in_uitvoering -> afgerond, with
// geannuleerd reachable from any non-final status.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Status != "" && req.Status != project.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: onbekende projectstatus %q", ErrInvalidInput, req.Status)
		}
		if !isValidProjectTransition(project.Status, req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, project.Status, req.Status)
		}
		// Afronden vereist een opgeslagen nacalculatie
		if req.Status == domain.ProjectStatusAfgerond {
			if _, err := s.nacalcRepo.GetByProjectID(ctx, project.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: project heeft nog geen nacalculatie", ErrInvalidInput)
				}
				return nil, fmt.Errorf("failed to get nacalculatie: %w", err)
			}
		}
		project.Status = req.Status
	}
	if req.StartDatum != nil {
		project.StartDatum = req.StartDatum
	}
	if req.EindDatum != nil {
		if project.StartDatum != nil && req.EindDatum.Before(*project.StartDatum) {
			return nil, fmt.Errorf("%w: einddatum ligt voor startdatum", ErrInvalidInput)
		}
		project.EindDatum = req.EindDatum
	}
	if req.UitvoerderIDs != nil {
		for _, userID := range req.UitvoerderIDs {
			if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
				return nil, fmt.Errorf("%w: onbekende uitvoerder %s", ErrInvalidInput, userID)
			}
		}
		project.UitvoerderIDs = pq.StringArray(req.UitvoerderIDs)
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated",
		zap.String("projectID", project.ID.String()),
		zap.String("status", string(project.Status)))

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project.Status == domain.ProjectStatusInUitvoering {
		return fmt.Errorf("%w: project is in uitvoering", ErrInvalidStatusTransition)
	}
	return s.projectRepo.Delete(ctx, id)
}

func isValidProjectTransition(from, to domain.ProjectStatus) bool {
	switch from {
	case domain.ProjectStatusGepland:
		return to == domain.ProjectStatusInUitvoering || to == domain.ProjectStatusGeannuleerd
	case domain.ProjectStatusInUitvoering:
		return to == domain.ProjectStatusAfgerond || to == domain.ProjectStatusGeannuleerd
	}
	return false
}
