package service

import (
	"context"
	"fmt"
	"time"

	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
)

// NumberSequenceService handles generation of unique, formatted numbers for
// offertes, projects, purchase orders and facturen. Numbers share one counter
// within a company/year so they stay globally unique per company.
//
// Format: {PREFIX}-{YEAR}-{SEQUENCE}
// Example: GW-2026-001, HV-2026-042
type NumberSequenceService struct {
	repo   *repository.NumberSequenceRepository
	logger *zap.Logger
}

// NewNumberSequenceService creates a new NumberSequenceService
func NewNumberSequenceService(
	repo *repository.NumberSequenceRepository,
	logger *zap.Logger,
) *NumberSequenceService {
	return &NumberSequenceService{
		repo:   repo,
		logger: logger,
	}
}

// GenerateOfferteNummer generates a unique offerte number for a company
func (s *NumberSequenceService) GenerateOfferteNummer(ctx context.Context, companyID domain.CompanyID) (string, error) {
	return s.generateNumber(ctx, companyID, "offerte")
}

// GenerateProjectNummer generates a unique project number for a company
func (s *NumberSequenceService) GenerateProjectNummer(ctx context.Context, companyID domain.CompanyID) (string, error) {
	return s.generateNumber(ctx, companyID, "project")
}

// GenerateOrderNummer generates a unique purchase order number for a company
func (s *NumberSequenceService) GenerateOrderNummer(ctx context.Context, companyID domain.CompanyID) (string, error) {
	return s.generateNumber(ctx, companyID, "inkooporder")
}

// GenerateFactuurNummer generates a unique factuur number for a company
func (s *NumberSequenceService) GenerateFactuurNummer(ctx context.Context, companyID domain.CompanyID) (string, error) {
	return s.generateNumber(ctx, companyID, "factuur")
}

// generateNumber is the internal method that generates a formatted number.
// entityType is used only for logging purposes.
func (s *NumberSequenceService) generateNumber(ctx context.Context, companyID domain.CompanyID, entityType string) (string, error) {
	if !domain.IsValidCompanyID(string(companyID)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidCompanyID, companyID)
	}

	year := time.Now().Year()
	prefix := domain.GetCompanyPrefix(companyID)

	// Get the next sequence number (atomic operation)
	nextSeq, err := s.repo.GetNextNumber(ctx, companyID, year)
	if err != nil {
		s.logger.Error("failed to get next sequence number",
			zap.String("companyID", string(companyID)),
			zap.Int("year", year),
			zap.String("entityType", entityType),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate %s number: %w", entityType, err)
	}

	// Format: PREFIX-YYYY-NNN (zero-padded to 3 digits)
	number := fmt.Sprintf("%s-%d-%03d", prefix, year, nextSeq)

	s.logger.Info("generated number",
		zap.String("number", number),
		zap.String("companyID", string(companyID)),
		zap.Int("year", year),
		zap.Int("sequence", nextSeq),
		zap.String("entityType", entityType))

	return number, nil
}

// GetCurrentNumber returns the current sequence value for a company/year
// without incrementing it. Returns 0 if no sequence exists.
func (s *NumberSequenceService) GetCurrentNumber(ctx context.Context, companyID domain.CompanyID, year int) (int, error) {
	return s.repo.GetCurrentNumber(ctx, companyID, year)
}

// InitializeSequence sets the sequence to a specific value. Useful for data
// migrations to account for existing numbered records. The value should be
// the LAST USED sequence number.
func (s *NumberSequenceService) InitializeSequence(ctx context.Context, companyID domain.CompanyID, year int, value int) error {
	return s.repo.SetNumber(ctx, companyID, year, value)
}
