package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReferentieService manages the reference data the calculators run on:
// norm hours per activity and multiplicative correction factors.
type ReferentieService struct {
	normUurRepo *repository.NormUurRepository
	factorRepo  *repository.CorrectieFactorRepository
	logger      *zap.Logger
}

func NewReferentieService(
	normUurRepo *repository.NormUurRepository,
	factorRepo *repository.CorrectieFactorRepository,
	logger *zap.Logger,
) *ReferentieService {
	return &ReferentieService{
		normUurRepo: normUurRepo,
		factorRepo:  factorRepo,
		logger:      logger,
	}
}

// BuildReferenceSet loads the norm hours and correction factors for a company
// into an immutable snapshot for the calculation layer. Company overrides win
// over system defaults inside the snapshot.
func (s *ReferentieService) BuildReferenceSet(ctx context.Context, companyID domain.CompanyID) (*calculation.ReferenceSet, error) {
	normUren, err := s.normUurRepo.ListByCompany(ctx, companyID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load normuren: %w", err)
	}

	factoren, err := s.factorRepo.ListForCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load correctiefactoren: %w", err)
	}

	return calculation.NewReferenceSet(normUren, factoren), nil
}

// ListNormUren returns the norm hours for a company, optionally filtered by scope
func (s *ReferentieService) ListNormUren(ctx context.Context, companyID domain.CompanyID, scope domain.Scope) ([]domain.NormUurDTO, error) {
	if scope != "" && !scope.IsValid() {
		return nil, fmt.Errorf("%w: onbekende scope %q", ErrInvalidInput, scope)
	}

	normUren, err := s.normUurRepo.ListByCompany(ctx, companyID, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list normuren: %w", err)
	}

	dtos := make([]domain.NormUurDTO, len(normUren))
	for i := range normUren {
		dtos[i] = mapper.ToNormUurDTO(&normUren[i])
	}
	return dtos, nil
}

// UpsertNormUur creates or updates the norm rate for a scope/activity key
func (s *ReferentieService) UpsertNormUur(ctx context.Context, companyID domain.CompanyID, req *domain.UpsertNormUurRequest) (*domain.NormUurDTO, error) {
	if !domain.IsValidCompanyID(string(companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, companyID)
	}
	if !req.Scope.IsValid() {
		return nil, fmt.Errorf("%w: onbekende scope %q", ErrInvalidInput, req.Scope)
	}

	existing, err := s.normUurRepo.GetByKey(ctx, companyID, req.Scope, req.Activiteit)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get normuur: %w", err)
	}

	if existing != nil {
		existing.UrenPerEenheid = req.UrenPerEenheid
		existing.Eenheid = req.Eenheid
		if err := s.normUurRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update normuur: %w", err)
		}
		dto := mapper.ToNormUurDTO(existing)
		return &dto, nil
	}

	normUur := &domain.NormUur{
		CompanyID:      companyID,
		Scope:          req.Scope,
		Activiteit:     req.Activiteit,
		UrenPerEenheid: req.UrenPerEenheid,
		Eenheid:        req.Eenheid,
	}
	if err := s.normUurRepo.Create(ctx, normUur); err != nil {
		return nil, fmt.Errorf("failed to create normuur: %w", err)
	}

	s.logger.Info("normuur upserted",
		zap.String("companyID", string(companyID)),
		zap.String("scope", string(req.Scope)),
		zap.String("activiteit", req.Activiteit),
		zap.Float64("urenPerEenheid", req.UrenPerEenheid))

	dto := mapper.ToNormUurDTO(normUur)
	return &dto, nil
}

// DeleteNormUur removes a norm rate
func (s *ReferentieService) DeleteNormUur(ctx context.Context, id uuid.UUID) error {
	if _, err := s.normUurRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get normuur: %w", err)
	}
	return s.normUurRepo.Delete(ctx, id)
}

// ListCorrectieFactoren returns the defaults plus the company's overrides
func (s *ReferentieService) ListCorrectieFactoren(ctx context.Context, companyID domain.CompanyID) ([]domain.CorrectieFactorDTO, error) {
	factoren, err := s.factorRepo.ListForCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list correctiefactoren: %w", err)
	}

	dtos := make([]domain.CorrectieFactorDTO, len(factoren))
	for i := range factoren {
		dtos[i] = mapper.ToCorrectieFactorDTO(&factoren[i])
	}
	return dtos, nil
}

// UpsertCorrectieFactor creates or updates a factor. A nil companyID writes
// a system default; a concrete companyID writes that company's override.
func (s *ReferentieService) UpsertCorrectieFactor(ctx context.Context, companyID *domain.CompanyID, req *domain.UpsertCorrectieFactorRequest) (*domain.CorrectieFactorDTO, error) {
	if companyID != nil && !domain.IsValidCompanyID(string(*companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, *companyID)
	}

	existing, err := s.factorRepo.GetByKey(ctx, companyID, req.FactorType, req.FactorWaarde)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get correctiefactor: %w", err)
	}

	if existing != nil {
		existing.Factor = req.Factor
		if err := s.factorRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update correctiefactor: %w", err)
		}
		dto := mapper.ToCorrectieFactorDTO(existing)
		return &dto, nil
	}

	factor := &domain.CorrectieFactor{
		CompanyID:    companyID,
		FactorType:   req.FactorType,
		FactorWaarde: req.FactorWaarde,
		Factor:       req.Factor,
	}
	if err := s.factorRepo.Create(ctx, factor); err != nil {
		return nil, fmt.Errorf("failed to create correctiefactor: %w", err)
	}

	s.logger.Info("correctiefactor upserted",
		zap.String("factorType", string(req.FactorType)),
		zap.String("factorWaarde", req.FactorWaarde),
		zap.Float64("factor", req.Factor),
		zap.Bool("isDefault", companyID == nil))

	dto := mapper.ToCorrectieFactorDTO(factor)
	return &dto, nil
}

// DeleteCorrectieFactor removes a factor record
func (s *ReferentieService) DeleteCorrectieFactor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.factorRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get correctiefactor: %w", err)
	}
	return s.factorRepo.Delete(ctx, id)
}
