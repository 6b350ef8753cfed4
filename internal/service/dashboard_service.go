package service

import (
	"context"
	"fmt"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService aggregates the key figures for the landing page.
// All counts respect the tenant filter of the caller.
type DashboardService struct {
	offerteRepo  *repository.OfferteRepository
	projectRepo  *repository.ProjectRepository
	factuurRepo  *repository.FactuurRepository
	voorraadRepo *repository.VoorraadRepository
	logger       *zap.Logger
}

func NewDashboardService(
	offerteRepo *repository.OfferteRepository,
	projectRepo *repository.ProjectRepository,
	factuurRepo *repository.FactuurRepository,
	voorraadRepo *repository.VoorraadRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		offerteRepo:  offerteRepo,
		projectRepo:  projectRepo,
		factuurRepo:  factuurRepo,
		voorraadRepo: voorraadRepo,
		logger:       logger,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*domain.DashboardDTO, error) {
	offerteCounts, err := s.offerteRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count offertes: %w", err)
	}
	projectCounts, err := s.projectRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	openstaand, err := s.factuurRepo.SumOpenstaand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum open facturen: %w", err)
	}
	onderMinimum, err := s.voorraadRepo.CountOnderMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count voorraad: %w", err)
	}

	return &domain.DashboardDTO{
		OffertesPerStatus:   offerteCounts,
		ProjectenPerStatus:  projectCounts,
		ConversiePercentage: conversiePercentage(offerteCounts),
		OpenstaandBedrag:    openstaand,
		VoorraadOnderMin:    onderMinimum,
	}, nil
}

// conversiePercentage is the share of decided offertes that were
// accepted. Concepten and verzonden offertes are still in flight and
// do not count.
func conversiePercentage(counts map[domain.OfferteStatus]int64) float64 {
	geaccepteerd := counts[domain.OfferteStatusGeaccepteerd]
	beslist := geaccepteerd + counts[domain.OfferteStatusAfgewezen] + counts[domain.OfferteStatusVerlopen]
	if beslist == 0 {
		return 0
	}
	return calculation.RoundPercentage(float64(geaccepteerd) / float64(beslist) * 100)
}
