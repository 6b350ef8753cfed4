package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"go.uber.org/zap"
)

const defaultBetalingstermijn = 30

// FactuurService issues invoices from accepted offertes. Totals are
// copied from the offerte aggregation and never recomputed here; a
// background job reconciles payment status against the accounting
// system.
type FactuurService struct {
	factuurRepo     *repository.FactuurRepository
	offerteRepo     *repository.OfferteRepository
	numberSvc       *NumberSequenceService
	notificationSvc *NotificationService
	logger          *zap.Logger
}

func NewFactuurService(
	factuurRepo *repository.FactuurRepository,
	offerteRepo *repository.OfferteRepository,
	numberSvc *NumberSequenceService,
	notificationSvc *NotificationService,
	logger *zap.Logger,
) *FactuurService {
	return &FactuurService{
		factuurRepo:     factuurRepo,
		offerteRepo:     offerteRepo,
		numberSvc:       numberSvc,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

func (s *FactuurService) Create(ctx context.Context, req *domain.CreateFactuurRequest) (*domain.FactuurDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, req.OfferteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusGeaccepteerd {
		return nil, fmt.Errorf("%w: alleen geaccepteerde offertes kunnen worden gefactureerd", ErrInvalidStatusTransition)
	}

	nummer, err := s.numberSvc.GenerateFactuurNummer(ctx, offerte.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate factuurnummer: %w", err)
	}

	termijn := req.Betalingstermijn
	if termijn <= 0 {
		termijn = defaultBetalingstermijn
	}
	factuurDatum := time.Now().UTC().Truncate(24 * time.Hour)

	factuur := &domain.Factuur{
		FactuurNummer:    nummer,
		OfferteID:        offerte.ID,
		KlantID:          offerte.KlantID,
		KlantNaam:        offerte.KlantNaam,
		CompanyID:        offerte.CompanyID,
		Status:           domain.FactuurStatusOpen,
		FactuurDatum:     factuurDatum,
		VervalDatum:      factuurDatum.AddDate(0, 0, termijn),
		TotaalExBtw:      offerte.TotaalExBtw,
		Btw:              offerte.Btw,
		TotaalInclBtw:    offerte.TotaalInclBtw,
		ExternReferentie: req.ExternReferentie,
	}

	if err := s.factuurRepo.Create(ctx, factuur); err != nil {
		return nil, fmt.Errorf("failed to create factuur: %w", err)
	}

	s.logger.Info("factuur created",
		zap.String("factuurID", factuur.ID.String()),
		zap.String("factuurNummer", factuur.FactuurNummer),
		zap.String("offerteNummer", offerte.OfferteNummer),
		zap.Float64("totaalInclBtw", factuur.TotaalInclBtw))

	dto := mapper.ToFactuurDTO(factuur)
	return &dto, nil
}

func (s *FactuurService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FactuurDTO, error) {
	factuur, err := s.factuurRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get factuur: %w", err)
	}
	dto := mapper.ToFactuurDTO(factuur)
	return &dto, nil
}

func (s *FactuurService) List(ctx context.Context, page, pageSize int, status domain.FactuurStatus, klantID *uuid.UUID, search string) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	facturen, total, err := s.factuurRepo.List(ctx, page, pageSize, status, klantID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list facturen: %w", err)
	}

	dtos := make([]domain.FactuurDTO, len(facturen))
	for i := range facturen {
		dtos[i] = mapper.ToFactuurDTO(&facturen[i])
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

// UpdateStatus moves an invoice between open, herinnering, betaald and
// geannuleerd. Betaald is final.
func (s *FactuurService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FactuurStatus) (*domain.FactuurDTO, error) {
	factuur, err := s.factuurRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get factuur: %w", err)
	}
	if !isValidFactuurTransition(factuur.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, factuur.Status, status)
	}

	factuur.Status = status
	if status == domain.FactuurStatusBetaald {
		now := time.Now().UTC()
		factuur.BetaaldOp = &now
	}

	if err := s.factuurRepo.Update(ctx, factuur); err != nil {
		return nil, fmt.Errorf("failed to update factuur: %w", err)
	}

	s.logger.Info("factuur status updated",
		zap.String("factuurID", factuur.ID.String()),
		zap.String("status", string(status)))

	dto := mapper.ToFactuurDTO(factuur)
	return &dto, nil
}

// MarkBetaald registers an external payment found by the accounting
// sync. The offerte owner is notified. Runs without a tenant filter.
func (s *FactuurService) MarkBetaald(ctx context.Context, factuur *domain.Factuur, betaaldOp time.Time) error {
	if factuur.Status == domain.FactuurStatusBetaald {
		return nil
	}

	factuur.Status = domain.FactuurStatusBetaald
	factuur.BetaaldOp = &betaaldOp
	if err := s.factuurRepo.Update(ctx, factuur); err != nil {
		return fmt.Errorf("failed to mark factuur betaald: %w", err)
	}

	s.logger.Info("factuur betaald",
		zap.String("factuurID", factuur.ID.String()),
		zap.String("factuurNummer", factuur.FactuurNummer))

	offerte, err := s.offerteRepo.GetByID(ctx, factuur.OfferteID)
	if err != nil || offerte.OwnerID == "" {
		return nil
	}
	_, err = s.notificationSvc.Create(ctx, &domain.CreateNotificationRequest{
		UserID:     offerte.OwnerID,
		Type:       domain.NotificationTypeFactuurBetaald,
		Title:      "Factuur betaald",
		Message:    fmt.Sprintf("Factuur %s van %s is betaald", factuur.FactuurNummer, factuur.KlantNaam),
		EntityID:   &factuur.ID,
		EntityType: "factuur",
	})
	if err != nil {
		s.logger.Error("failed to send betaald notification", zap.Error(err))
	}
	return nil
}

// ListOpen returns open invoices with an external reference, for the
// accounting reconciliation job.
func (s *FactuurService) ListOpen(ctx context.Context) ([]domain.Factuur, error) {
	return s.factuurRepo.ListOpen(ctx)
}

func isValidFactuurTransition(from, to domain.FactuurStatus) bool {
	switch from {
	case domain.FactuurStatusOpen:
		return to == domain.FactuurStatusBetaald || to == domain.FactuurStatusHerinnering || to == domain.FactuurStatusGeannuleerd
	case domain.FactuurStatusHerinnering:
		return to == domain.FactuurStatusBetaald || to == domain.FactuurStatusGeannuleerd
	}
	return false
}
