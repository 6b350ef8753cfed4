package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/validation"
	"go.uber.org/zap"
)

type KlantService struct {
	klantRepo *repository.KlantRepository
	logger    *zap.Logger
}

func NewKlantService(
	klantRepo *repository.KlantRepository,
	logger *zap.Logger,
) *KlantService {
	return &KlantService{
		klantRepo: klantRepo,
		logger:    logger,
	}
}

// validateKlantInput checks the field formats that the struct validator
// cannot express and normalizes the postcode to its canonical form.
func validateKlantInput(klantType domain.KlantType, telefoon string, postcode, kvk, btw, iban *string) error {
	if telefoon != "" {
		if err := validation.ValidateTelefoon(telefoon); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if *postcode != "" {
		normalized, err := validation.NormalizePostcode(*postcode)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		*postcode = normalized
	}
	if *iban != "" {
		if err := validation.ValidateIban(*iban); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// KvK and BTW numbers only apply to business customers
	if klantType == domain.KlantTypeZakelijk {
		if *kvk != "" {
			if err := validation.ValidateKvkNummer(*kvk); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
		}
		if *btw != "" {
			if err := validation.ValidateBtwNummer(*btw); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
		}
	} else {
		*kvk = ""
		*btw = ""
	}

	return nil
}

func (s *KlantService) Create(ctx context.Context, req *domain.CreateKlantRequest) (*domain.KlantDTO, error) {
	companyID := req.CompanyID
	if companyID == "" {
		if userCtx, ok := auth.FromContext(ctx); ok {
			companyID = userCtx.CompanyID
		}
	}
	if !domain.IsValidCompanyID(string(companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, companyID)
	}

	req.Naam = validation.SanitizeOptional(req.Naam)
	if err := validateKlantInput(req.KlantType, req.Telefoon, &req.Postcode, &req.KvkNummer, &req.BtwNummer, &req.Iban); err != nil {
		return nil, err
	}

	klant := &domain.Klant{
		Naam:      req.Naam,
		KlantType: req.KlantType,
		Email:     req.Email,
		Telefoon:  req.Telefoon,
		Adres:     validation.SanitizeOptional(req.Adres),
		Postcode:  req.Postcode,
		Plaats:    validation.SanitizeOptional(req.Plaats),
		KvkNummer: req.KvkNummer,
		BtwNummer: req.BtwNummer,
		Iban:      req.Iban,
		IsActive:  true,
		CompanyID: companyID,
	}

	if err := s.klantRepo.Create(ctx, klant); err != nil {
		return nil, fmt.Errorf("failed to create klant: %w", err)
	}

	s.logger.Info("klant created",
		zap.String("klantID", klant.ID.String()),
		zap.String("companyID", string(klant.CompanyID)))

	dto := mapper.ToKlantDTO(klant)
	return &dto, nil
}

func (s *KlantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.KlantDTO, error) {
	klant, err := s.klantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get klant: %w", err)
	}

	dto := mapper.ToKlantDTO(klant)
	return &dto, nil
}

func (s *KlantService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateKlantRequest) (*domain.KlantDTO, error) {
	klant, err := s.klantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get klant: %w", err)
	}

	req.Naam = validation.SanitizeOptional(req.Naam)
	if err := validateKlantInput(req.KlantType, req.Telefoon, &req.Postcode, &req.KvkNummer, &req.BtwNummer, &req.Iban); err != nil {
		return nil, err
	}

	klant.Naam = req.Naam
	klant.KlantType = req.KlantType
	klant.Email = req.Email
	klant.Telefoon = req.Telefoon
	klant.Adres = validation.SanitizeOptional(req.Adres)
	klant.Postcode = req.Postcode
	klant.Plaats = validation.SanitizeOptional(req.Plaats)
	klant.KvkNummer = req.KvkNummer
	klant.BtwNummer = req.BtwNummer
	klant.Iban = req.Iban

	if err := s.klantRepo.Update(ctx, klant); err != nil {
		return nil, fmt.Errorf("failed to update klant: %w", err)
	}

	dto := mapper.ToKlantDTO(klant)
	return &dto, nil
}

func (s *KlantService) Delete(ctx context.Context, id uuid.UUID) error {
	// Verify access through the tenant filter before deleting
	if _, err := s.klantRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get klant: %w", err)
	}

	if err := s.klantRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete klant: %w", err)
	}

	return nil
}

func (s *KlantService) List(ctx context.Context, page, pageSize int, search string, klantType domain.KlantType) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	klanten, total, err := s.klantRepo.List(ctx, page, pageSize, search, klantType)
	if err != nil {
		return nil, fmt.Errorf("failed to list klanten: %w", err)
	}

	dtos := make([]domain.KlantDTO, len(klanten))
	for i := range klanten {
		dtos[i] = mapper.ToKlantDTO(&klanten[i])
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

func (s *KlantService) Search(ctx context.Context, query string, limit int) ([]domain.KlantDTO, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	klanten, err := s.klantRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search klanten: %w", err)
	}

	dtos := make([]domain.KlantDTO, len(klanten))
	for i := range klanten {
		dtos[i] = mapper.ToKlantDTO(&klanten[i])
	}
	return dtos, nil
}
