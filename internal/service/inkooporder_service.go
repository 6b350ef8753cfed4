package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/validation"
	"go.uber.org/zap"
)

// InkooporderService manages purchase orders for materials. Delivery
// of an order books the received quantities into the voorraad.
type InkooporderService struct {
	orderRepo   *repository.InkooporderRepository
	projectRepo *repository.ProjectRepository
	voorraadSvc *VoorraadService
	numberSvc   *NumberSequenceService
	logger      *zap.Logger
}

func NewInkooporderService(
	orderRepo *repository.InkooporderRepository,
	projectRepo *repository.ProjectRepository,
	voorraadSvc *VoorraadService,
	numberSvc *NumberSequenceService,
	logger *zap.Logger,
) *InkooporderService {
	return &InkooporderService{
		orderRepo:   orderRepo,
		projectRepo: projectRepo,
		voorraadSvc: voorraadSvc,
		numberSvc:   numberSvc,
		logger:      logger,
	}
}

func (s *InkooporderService) Create(ctx context.Context, req *domain.CreateInkooporderRequest) (*domain.InkooporderDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = userCtx.CompanyID
	}
	if !domain.IsValidCompanyID(string(companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, companyID)
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *req.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}
	}

	nummer, err := s.numberSvc.GenerateOrderNummer(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ordernummer: %w", err)
	}

	var totaal float64
	regels := make([]domain.InkooporderRegel, len(req.Regels))
	for i, regelReq := range req.Regels {
		regelTotaal := calculation.RoundBedrag(regelReq.Hoeveelheid * regelReq.PrijsPerEenheid)
		regels[i] = domain.InkooporderRegel{
			VoorraadItemID:  regelReq.VoorraadItemID,
			Artikel:         validation.SanitizeOptional(regelReq.Omschrijving),
			Eenheid:         regelReq.Eenheid,
			Hoeveelheid:     calculation.RoundHoeveelheid(regelReq.Hoeveelheid),
			PrijsPerEenheid: calculation.RoundBedrag(regelReq.PrijsPerEenheid),
			Totaal:          regelTotaal,
		}
		totaal += regelTotaal
	}

	order := &domain.Inkooporder{
		OrderNummer:    nummer,
		CompanyID:      companyID,
		Leverancier:    validation.SanitizeOptional(req.Leverancier),
		ProjectID:      req.ProjectID,
		Status:         domain.InkooporderStatusConcept,
		Regels:         regels,
		Totaal:         calculation.RoundBedrag(totaal),
		AangemaaktDoor: userCtx.UserID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create inkooporder: %w", err)
	}

	s.logger.Info("inkooporder created",
		zap.String("orderID", order.ID.String()),
		zap.String("orderNummer", order.OrderNummer),
		zap.Float64("totaal", order.Totaal))

	dto := mapper.ToInkooporderDTO(order)
	return &dto, nil
}

func (s *InkooporderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InkooporderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inkooporder: %w", err)
	}
	dto := mapper.ToInkooporderDTO(order)
	return &dto, nil
}

func (s *InkooporderService) List(ctx context.Context, page, pageSize int, status domain.InkooporderStatus, projectID *uuid.UUID, search string) (*domain.PaginatedResponse, error) {
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
		return nil, fmt.Errorf("%w: onbekende orderstatus %q", ErrInvalidInput, status)
	}

	orders, total, err := s.orderRepo.List(ctx, page, pageSize, status, projectID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list inkooporders: %w", err)
	}

	dtos := make([]domain.InkooporderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToInkooporderDTO(&orders[i])
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

// UpdateStatus advances an order: concept -> besteld -> geleverd.
// Delivery books each regel with a voorraadkoppeling into stock.
func (s *InkooporderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InkooporderStatus) (*domain.InkooporderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inkooporder: %w", err)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: onbekende orderstatus %q", ErrInvalidInput, status)
	}
	if !isValidInkooporderTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, status)
	}

	now := time.Now().UTC()
	order.Status = status
	switch status {
	case domain.InkooporderStatusBesteld:
		order.BesteldOp = &now
	case domain.InkooporderStatusGeleverd:
		order.GeleverdOp = &now
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update inkooporder: %w", err)
	}

	if status == domain.InkooporderStatusGeleverd {
		s.boekLevering(ctx, order)
	}

	s.logger.Info("inkooporder status updated",
		zap.String("orderID", order.ID.String()),
		zap.String("status", string(status)))

	dto := mapper.ToInkooporderDTO(order)
	return &dto, nil
}

func (s *InkooporderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get inkooporder: %w", err)
	}
	if order.Status != domain.InkooporderStatusConcept {
		return fmt.Errorf("%w: alleen conceptorders kunnen worden verwijderd", ErrInvalidStatusTransition)
	}
	return s.orderRepo.Delete(ctx, id)
}

// boekLevering adds the delivered quantities to the linked stock
// items. A failing mutation is logged and skipped; the delivery status
// itself is already committed.
func (s *InkooporderService) boekLevering(ctx context.Context, order *domain.Inkooporder) {
	for _, regel := range order.Regels {
		if regel.VoorraadItemID == nil {
			continue
		}
		if _, err := s.voorraadSvc.Mutatie(ctx, *regel.VoorraadItemID, regel.Hoeveelheid,
			fmt.Sprintf("levering %s", order.OrderNummer)); err != nil {
			s.logger.Error("failed to book delivered regel into voorraad",
				zap.String("orderID", order.ID.String()),
				zap.String("voorraadItemID", regel.VoorraadItemID.String()),
				zap.Error(err))
		}
	}
}

func isValidInkooporderTransition(from, to domain.InkooporderStatus) bool {
	switch from {
	case domain.InkooporderStatusConcept:
		return to == domain.InkooporderStatusBesteld || to == domain.InkooporderStatusGeannuleerd
	case domain.InkooporderStatusBesteld:
		return to == domain.InkooporderStatusGeleverd || to == domain.InkooporderStatusGeannuleerd
	}
	return false
}
