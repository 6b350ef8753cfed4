package service

import (
	"context"
	"fmt"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
)

// CompanyService exposes the companies of the group. Companies are
// seeded by migration; only branding fields are editable.
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *CompanyService) GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error) {
	if !domain.IsValidCompanyID(string(id)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, id)
	}
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// List returns the active companies. Super admins see inactive ones too.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	userCtx, ok := auth.FromContext(ctx)
	if ok && userCtx.IsSuperAdmin() {
		companies, err := s.companyRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}
		return companies, nil
	}

	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// UpdateBranding changes the display fields of a company
func (s *CompanyService) UpdateBranding(ctx context.Context, id domain.CompanyID, name, shortName, color string) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if name != "" {
		company.Name = name
	}
	if shortName != "" {
		company.ShortName = shortName
	}
	if color != "" {
		company.Color = color
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.logger.Info("company updated", zap.String("companyID", string(id)))
	return company, nil
}
