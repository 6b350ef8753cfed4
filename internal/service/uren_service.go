package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/validation"
	"go.uber.org/zap"
)

// UrenService registers logged hours and machine usage on projects.
// These actuals feed the nacalculatie comparison.
type UrenService struct {
	urenRepo    *repository.UrenregistratieRepository
	machineRepo *repository.MachinegebruikRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewUrenService(
	urenRepo *repository.UrenregistratieRepository,
	machineRepo *repository.MachinegebruikRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *UrenService {
	return &UrenService{
		urenRepo:    urenRepo,
		machineRepo: machineRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// RegisterUren logs a time entry on a project. Only projects in
// uitvoering accept hours.
func (s *UrenService) RegisterUren(ctx context.Context, projectID uuid.UUID, req *domain.CreateUrenregistratieRequest) (*domain.UrenregistratieDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.Status != domain.ProjectStatusInUitvoering {
		return nil, fmt.Errorf("%w: project is niet in uitvoering", ErrInvalidStatusTransition)
	}
	if !req.Scope.IsValid() {
		return nil, fmt.Errorf("%w: onbekende scope %q", ErrInvalidInput, req.Scope)
	}

	uren := &domain.Urenregistratie{
		ProjectID:    project.ID,
		UserID:       userCtx.UserID,
		UserNaam:     userCtx.DisplayName,
		Datum:        req.Datum,
		Scope:        req.Scope,
		Uren:         calculation.RoundKwartier(req.Uren),
		Omschrijving: validation.SanitizeOptional(req.Omschrijving),
	}

	if err := s.urenRepo.Create(ctx, uren); err != nil {
		return nil, fmt.Errorf("failed to register uren: %w", err)
	}

	s.logger.Info("uren registered",
		zap.String("projectID", project.ID.String()),
		zap.String("userID", userCtx.UserID),
		zap.String("scope", string(req.Scope)),
		zap.Float64("uren", uren.Uren))

	dto := mapper.ToUrenregistratieDTO(uren)
	return &dto, nil
}

func (s *UrenService) ListUren(ctx context.Context, projectID uuid.UUID) ([]domain.UrenregistratieDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	uren, err := s.urenRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uren: %w", err)
	}

	dtos := make([]domain.UrenregistratieDTO, len(uren))
	for i := range uren {
		dtos[i] = mapper.ToUrenregistratieDTO(&uren[i])
	}
	return dtos, nil
}

// DeleteUren removes a time entry. A user can remove their own
// entries; managers and admins can remove any.
func (s *UrenService) DeleteUren(ctx context.Context, projectID, urenID uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	uren, err := s.urenRepo.GetByID(ctx, urenID)
	if err != nil {
		return fmt.Errorf("failed to get urenregistratie: %w", err)
	}
	if uren.ProjectID != projectID {
		return fmt.Errorf("%w: urenregistratie hoort niet bij project", ErrNotFound)
	}
	if uren.UserID != userCtx.UserID && !userCtx.HasPermission(domain.PermissionUrenWrite) {
		return fmt.Errorf("%w: urenregistratie van een andere gebruiker", ErrPermissionDenied)
	}

	return s.urenRepo.Delete(ctx, urenID)
}

// RegisterMachinegebruik logs machine usage; kosten are derived as
// uren maal het machine-uurtarief.
func (s *UrenService) RegisterMachinegebruik(ctx context.Context, projectID uuid.UUID, req *domain.CreateMachinegebruikRequest) (*domain.MachinegebruikDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.Status != domain.ProjectStatusInUitvoering {
		return nil, fmt.Errorf("%w: project is niet in uitvoering", ErrInvalidStatusTransition)
	}

	// Kosten derive from the stored rounded hours and tariff
	uren := calculation.RoundKwartier(req.Uren)
	tarief := calculation.RoundBedrag(req.UurTarief)
	gebruik := &domain.Machinegebruik{
		ProjectID: project.ID,
		Machine:   validation.SanitizeOptional(req.Machine),
		Datum:     req.Datum,
		Uren:      uren,
		UurTarief: tarief,
		Kosten:    calculation.RoundBedrag(uren * tarief),
	}

	if err := s.machineRepo.Create(ctx, gebruik); err != nil {
		return nil, fmt.Errorf("failed to register machinegebruik: %w", err)
	}

	s.logger.Info("machinegebruik registered",
		zap.String("projectID", project.ID.String()),
		zap.String("machine", gebruik.Machine),
		zap.Float64("kosten", gebruik.Kosten))

	dto := mapper.ToMachinegebruikDTO(gebruik)
	return &dto, nil
}

func (s *UrenService) ListMachinegebruik(ctx context.Context, projectID uuid.UUID) ([]domain.MachinegebruikDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	gebruik, err := s.machineRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list machinegebruik: %w", err)
	}

	dtos := make([]domain.MachinegebruikDTO, len(gebruik))
	for i := range gebruik {
		dtos[i] = mapper.ToMachinegebruikDTO(&gebruik[i])
	}
	return dtos, nil
}

func (s *UrenService) DeleteMachinegebruik(ctx context.Context, projectID, gebruikID uuid.UUID) error {
	gebruik, err := s.machineRepo.GetByID(ctx, gebruikID)
	if err != nil {
		return fmt.Errorf("failed to get machinegebruik: %w", err)
	}
	if gebruik.ProjectID != projectID {
		return fmt.Errorf("%w: machinegebruik hoort niet bij project", ErrNotFound)
	}
	return s.machineRepo.Delete(ctx, gebruikID)
}
