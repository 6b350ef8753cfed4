package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deviations beyond this percentage trigger a budget notification to
// the project manager.
const budgetOverschrijdingDrempel = 10.0

// NacalculatieService compares a project's voorcalculatie with its
// logged actuals and persists the outcome.
type NacalculatieService struct {
	nacalcRepo      *repository.NacalculatieRepository
	projectRepo     *repository.ProjectRepository
	urenRepo        *repository.UrenregistratieRepository
	machineRepo     *repository.MachinegebruikRepository
	notificationSvc *NotificationService
	logger          *zap.Logger
}

func NewNacalculatieService(
	nacalcRepo *repository.NacalculatieRepository,
	projectRepo *repository.ProjectRepository,
	urenRepo *repository.UrenregistratieRepository,
	machineRepo *repository.MachinegebruikRepository,
	notificationSvc *NotificationService,
	logger *zap.Logger,
) *NacalculatieService {
	return &NacalculatieService{
		nacalcRepo:      nacalcRepo,
		projectRepo:     projectRepo,
		urenRepo:        urenRepo,
		machineRepo:     machineRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// Bereken runs the planned-vs-actual comparison for a project and
// upserts the stored nacalculatie. A deviation above the threshold
// notifies the project manager.
func (s *NacalculatieService) Bereken(ctx context.Context, projectID uuid.UUID) (*domain.NacalculatieDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	uren, err := s.urenRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uren: %w", err)
	}
	machines, err := s.machineRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list machinegebruik: %w", err)
	}

	plan, err := planFromProject(project)
	if err != nil {
		return nil, err
	}

	resultaat := calculation.Vergelijk(plan, uren, machines)

	perScope, err := json.Marshal(resultaat.PerScope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode per-scope afwijkingen: %w", err)
	}

	nacalc := &domain.Nacalculatie{
		ProjectID:               project.ID,
		GeplandeUren:            resultaat.GeplandeUren,
		WerkelijkeUren:          resultaat.WerkelijkeUren,
		AfwijkingUren:           resultaat.AfwijkingUren,
		AfwijkingPercentage:     resultaat.AfwijkingPercentage,
		WerkelijkeMachinekosten: resultaat.WerkelijkeMachinekosten,
		Werkdagen:               resultaat.Werkdagen,
		PerScope:                string(perScope),
		OpgeslagenDoor:          userCtx.UserID,
	}

	if err := s.nacalcRepo.Upsert(ctx, nacalc); err != nil {
		return nil, fmt.Errorf("failed to store nacalculatie: %w", err)
	}

	// A stored nacalculatie closes the project
	if project.Status == domain.ProjectStatusInUitvoering {
		project.Status = domain.ProjectStatusAfgerond
		if err := s.projectRepo.Update(ctx, project); err != nil {
			return nil, fmt.Errorf("failed to mark project afgerond: %w", err)
		}
	}

	s.logger.Info("nacalculatie berekend",
		zap.String("projectID", project.ID.String()),
		zap.Float64("geplandeUren", resultaat.GeplandeUren),
		zap.Float64("werkelijkeUren", resultaat.WerkelijkeUren),
		zap.Float64("afwijkingPercentage", resultaat.AfwijkingPercentage))

	if resultaat.AfwijkingPercentage > budgetOverschrijdingDrempel {
		s.notifyOverschrijding(ctx, project, resultaat)
	}

	dto := mapper.ToNacalculatieDTO(nacalc, project.ProjectNummer, project.GeplandeMachinekosten)
	return &dto, nil
}

func (s *NacalculatieService) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.NacalculatieDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	nacalc, err := s.nacalcRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: geen nacalculatie voor project", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get nacalculatie: %w", err)
	}

	dto := mapper.ToNacalculatieDTO(nacalc, project.ProjectNummer, project.GeplandeMachinekosten)
	return &dto, nil
}

func (s *NacalculatieService) notifyOverschrijding(ctx context.Context, project *domain.Project, resultaat calculation.NacalculatieResultaat) {
	if project.ManagerID == "" {
		return
	}
	_, err := s.notificationSvc.Create(ctx, &domain.CreateNotificationRequest{
		UserID: project.ManagerID,
		Type:   domain.NotificationTypeBudgetOverschrijding,
		Title:  "Budgetoverschrijding",
		Message: fmt.Sprintf("Project %s is %.1f%% over de geplande uren (%.2f gepland, %.2f werkelijk)",
			project.ProjectNummer, resultaat.AfwijkingPercentage, resultaat.GeplandeUren, resultaat.WerkelijkeUren),
		EntityID:   &project.ID,
		EntityType: "project",
	})
	if err != nil {
		s.logger.Error("failed to send budget notification",
			zap.String("projectID", project.ID.String()),
			zap.Error(err))
	}
}

func planFromProject(project *domain.Project) (calculation.Voorcalculatie, error) {
	plan := calculation.Voorcalculatie{
		TotaalUren:   project.GeplandeUren,
		UrenPerScope: make(map[domain.Scope]float64),
	}
	if project.GeplandeUrenPerScope != "" {
		if err := json.Unmarshal([]byte(project.GeplandeUrenPerScope), &plan.UrenPerScope); err != nil {
			return plan, fmt.Errorf("invalid geplande uren per scope: %w", err)
		}
	}
	return plan, nil
}
