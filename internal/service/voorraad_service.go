package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VoorraadService manages stock levels per company. Mutations go
// through a row lock so concurrent bookings never lose updates.
type VoorraadService struct {
	voorraadRepo    *repository.VoorraadRepository
	notificationSvc *NotificationService
	userRepo        *repository.UserRepository
	logger          *zap.Logger
}

func NewVoorraadService(
	voorraadRepo *repository.VoorraadRepository,
	notificationSvc *NotificationService,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *VoorraadService {
	return &VoorraadService{
		voorraadRepo:    voorraadRepo,
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// Upsert creates a stock item or updates it when the artikel already
// exists for the company.
func (s *VoorraadService) Upsert(ctx context.Context, companyID domain.CompanyID, req *domain.UpsertVoorraadItemRequest) (*domain.VoorraadItemDTO, error) {
	if companyID == "" {
		if userCtx, ok := auth.FromContext(ctx); ok {
			companyID = userCtx.CompanyID
		}
	}
	if !domain.IsValidCompanyID(string(companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, companyID)
	}

	artikel := validation.SanitizeOptional(req.Naam)
	existing, err := s.voorraadRepo.GetByArtikel(ctx, companyID, artikel)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get voorraaditem: %w", err)
	}

	if existing != nil {
		existing.Eenheid = req.Eenheid
		existing.Aantal = calculation.RoundHoeveelheid(req.Voorraad)
		existing.MinimumVoorraad = calculation.RoundHoeveelheid(req.MinimumVoorraad)
		existing.PrijsPerEenheid = calculation.RoundBedrag(req.PrijsPerEenheid)
		if err := s.voorraadRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update voorraaditem: %w", err)
		}
		dto := mapper.ToVoorraadItemDTO(existing)
		return &dto, nil
	}

	item := &domain.VoorraadItem{
		CompanyID:       companyID,
		Artikel:         artikel,
		Eenheid:         req.Eenheid,
		Aantal:          calculation.RoundHoeveelheid(req.Voorraad),
		MinimumVoorraad: calculation.RoundHoeveelheid(req.MinimumVoorraad),
		PrijsPerEenheid: calculation.RoundBedrag(req.PrijsPerEenheid),
	}
	if err := s.voorraadRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create voorraaditem: %w", err)
	}

	s.logger.Info("voorraaditem created",
		zap.String("itemID", item.ID.String()),
		zap.String("artikel", item.Artikel),
		zap.String("companyID", string(companyID)))

	dto := mapper.ToVoorraadItemDTO(item)
	return &dto, nil
}

func (s *VoorraadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VoorraadItemDTO, error) {
	item, err := s.voorraadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get voorraaditem: %w", err)
	}
	dto := mapper.ToVoorraadItemDTO(item)
	return &dto, nil
}

func (s *VoorraadService) List(ctx context.Context, page, pageSize int, search string, onderMinimum bool) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.voorraadRepo.List(ctx, page, pageSize, search, onderMinimum)
	if err != nil {
		return nil, fmt.Errorf("failed to list voorraad: %w", err)
	}

	dtos := make([]domain.VoorraadItemDTO, len(items))
	for i := range items {
		dtos[i] = mapper.ToVoorraadItemDTO(&items[i])
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

// Mutatie adjusts the stock level by a delta. A withdrawal below zero
// is rejected; dropping to or under the minimum notifies the company
// admins.
func (s *VoorraadService) Mutatie(ctx context.Context, id uuid.UUID, delta float64, reden string) (*domain.VoorraadItemDTO, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta mag niet 0 zijn", ErrInvalidInput)
	}

	item, err := s.voorraadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get voorraaditem: %w", err)
	}
	if item.Aantal+delta < 0 {
		return nil, fmt.Errorf("%w: %s heeft %.2f %s op voorraad", ErrOnvoldoendeVoorraad, item.Artikel, item.Aantal, item.Eenheid)
	}

	wasOnderMinimum := item.IsOnderMinimum()
	updated, err := s.voorraadRepo.MutateAantal(ctx, id, calculation.RoundHoeveelheid(delta))
	if err != nil {
		return nil, fmt.Errorf("failed to mutate voorraad: %w", err)
	}

	s.logger.Info("voorraad gemuteerd",
		zap.String("itemID", id.String()),
		zap.String("artikel", updated.Artikel),
		zap.Float64("delta", delta),
		zap.Float64("aantal", updated.Aantal),
		zap.String("reden", reden))

	if !wasOnderMinimum && updated.IsOnderMinimum() {
		s.notifyVoorraadLaag(ctx, updated)
	}

	dto := mapper.ToVoorraadItemDTO(updated)
	return &dto, nil
}

func (s *VoorraadService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.voorraadRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get voorraaditem: %w", err)
	}
	return s.voorraadRepo.Delete(ctx, id)
}

func (s *VoorraadService) notifyVoorraadLaag(ctx context.Context, item *domain.VoorraadItem) {
	admins, err := s.userRepo.List(ctx, &item.CompanyID)
	if err != nil {
		s.logger.Error("failed to list users for voorraad notification", zap.Error(err))
		return
	}
	for i := range admins {
		if !admins[i].HasRole(domain.RoleCompanyAdmin) {
			continue
		}
		_, err := s.notificationSvc.Create(ctx, &domain.CreateNotificationRequest{
			UserID: admins[i].ID,
			Type:   domain.NotificationTypeVoorraadLaag,
			Title:  "Voorraad laag",
			Message: fmt.Sprintf("%s staat op %.2f %s, minimum is %.2f",
				item.Artikel, item.Aantal, item.Eenheid, item.MinimumVoorraad),
			EntityID:   &item.ID,
			EntityType: "voorraad_item",
		})
		if err != nil {
			s.logger.Error("failed to send voorraad notification",
				zap.String("userID", admins[i].ID),
				zap.Error(err))
		}
	}
}
