package service

import (
	"context"
	"encoding/json"
	"errors"
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
	"gorm.io/gorm"
)

const (
	defaultBtwPercentage = 21.0
	// Offertes zonder expliciete vervaldatum zijn 30 dagen geldig na verzending
	defaultGeldigheidsduur = 30 * 24 * time.Hour
)

// OfferteService owns the offerte lifecycle: creation, calculation,
// manual lines, sending and the accept/reject decision. Accepting an
// offerte can spawn a project carrying the voorcalculatie.
type OfferteService struct {
	offerteRepo     *repository.OfferteRepository
	klantRepo       *repository.KlantRepository
	projectRepo     *repository.ProjectRepository
	referentieSvc   *ReferentieService
	numberSvc       *NumberSequenceService
	notificationSvc *NotificationService
	logger          *zap.Logger
}

func NewOfferteService(
	offerteRepo *repository.OfferteRepository,
	klantRepo *repository.KlantRepository,
	projectRepo *repository.ProjectRepository,
	referentieSvc *ReferentieService,
	numberSvc *NumberSequenceService,
	notificationSvc *NotificationService,
	logger *zap.Logger,
) *OfferteService {
	return &OfferteService{
		offerteRepo:     offerteRepo,
		klantRepo:       klantRepo,
		projectRepo:     projectRepo,
		referentieSvc:   referentieSvc,
		numberSvc:       numberSvc,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// notifyOwner informs the offerte owner of a lifecycle event. Failures
// are logged, never propagated.
func (s *OfferteService) notifyOwner(ctx context.Context, offerte *domain.Offerte, ntype domain.NotificationType, title, message string) {
	if offerte.OwnerID == "" {
		return
	}
	_, err := s.notificationSvc.Create(ctx, &domain.CreateNotificationRequest{
		UserID:     offerte.OwnerID,
		Type:       ntype,
		Title:      title,
		Message:    message,
		EntityID:   &offerte.ID,
		EntityType: "offerte",
	})
	if err != nil {
		s.logger.Error("failed to send offerte notification",
			zap.String("offerteID", offerte.ID.String()),
			zap.Error(err))
	}
}

func (s *OfferteService) Create(ctx context.Context, req *domain.CreateOfferteRequest) (*domain.OfferteDTO, error) {
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
	if !userCtx.CanAccessCompany(companyID) {
		return nil, fmt.Errorf("%w: geen toegang tot %s", ErrPermissionDenied, companyID)
	}

	klant, err := s.klantRepo.GetByID(ctx, req.KlantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get klant: %w", err)
	}

	toegang := req.Terreintoegang
	if toegang == "" {
		toegang = domain.ToegangNormaal
	}
	if !toegang.IsValid() {
		return nil, fmt.Errorf("%w: ongeldige terreintoegang %q", ErrInvalidInput, toegang)
	}
	if err := validateScopeInvoer(req.OfferteType, req.ScopeInvoer); err != nil {
		return nil, err
	}

	scopeInvoer, err := domain.EncodeScopeInvoer(req.ScopeInvoer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	nummer, err := s.numberSvc.GenerateOfferteNummer(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate offertenummer: %w", err)
	}

	btw := defaultBtwPercentage
	if req.BtwPercentage != nil {
		btw = *req.BtwPercentage
	}

	offerte := &domain.Offerte{
		OfferteNummer:   nummer,
		Titel:           validation.SanitizeOptional(req.Titel),
		KlantID:         klant.ID,
		KlantNaam:       klant.Naam,
		CompanyID:       companyID,
		OfferteType:     req.OfferteType,
		Status:          domain.OfferteStatusConcept,
		Terreintoegang:  toegang,
		UurTarief:       req.UurTarief,
		MargePercentage: req.MargePercentage,
		BtwPercentage:   btw,
		GeldigTot:       req.GeldigTot,
		ScopeInvoer:     scopeInvoer,
		OwnerID:         userCtx.UserID,
		OwnerName:       userCtx.DisplayName,
	}

	if err := s.offerteRepo.Create(ctx, offerte); err != nil {
		return nil, fmt.Errorf("failed to create offerte: %w", err)
	}

	s.logger.Info("offerte created",
		zap.String("offerteID", offerte.ID.String()),
		zap.String("offerteNummer", offerte.OfferteNummer),
		zap.String("companyID", string(companyID)))

	offerte.Klant = klant
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

func (s *OfferteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

func (s *OfferteService) GetByNummer(ctx context.Context, nummer string) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByNummer(ctx, nummer)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

func (s *OfferteService) List(ctx context.Context, page, pageSize int, filters repository.ListFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	offertes, total, err := s.offerteRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list offertes: %w", err)
	}

	dtos := make([]domain.OfferteDTO, len(offertes))
	for i := range offertes {
		dtos[i] = mapper.ToOfferteDTO(&offertes[i])
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

// Update edits the calculation inputs of an offerte. Only concept
// offertes are editable; anything later in the lifecycle is frozen.
func (s *OfferteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOfferteRequest) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: status is %s", ErrOfferteNotEditable, offerte.Status)
	}

	if req.Titel != "" {
		offerte.Titel = validation.SanitizeOptional(req.Titel)
	}
	if req.Terreintoegang != "" {
		if !req.Terreintoegang.IsValid() {
			return nil, fmt.Errorf("%w: ongeldige terreintoegang %q", ErrInvalidInput, req.Terreintoegang)
		}
		offerte.Terreintoegang = req.Terreintoegang
	}
	if req.UurTarief > 0 {
		offerte.UurTarief = req.UurTarief
	}
	if req.MargePercentage != nil {
		offerte.MargePercentage = *req.MargePercentage
	}
	if req.BtwPercentage != nil {
		offerte.BtwPercentage = *req.BtwPercentage
	}
	if req.GeldigTot != nil {
		offerte.GeldigTot = req.GeldigTot
	}
	if req.ScopeInvoer != nil {
		if err := validateScopeInvoer(offerte.OfferteType, req.ScopeInvoer); err != nil {
			return nil, err
		}
		encoded, err := domain.EncodeScopeInvoer(req.ScopeInvoer)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		offerte.ScopeInvoer = encoded
	}

	if err := s.offerteRepo.Update(ctx, offerte); err != nil {
		return nil, fmt.Errorf("failed to update offerte: %w", err)
	}

	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

func (s *OfferteService) Delete(ctx context.Context, id uuid.UUID) error {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return fmt.Errorf("%w: alleen conceptoffertes kunnen worden verwijderd", ErrOfferteNotEditable)
	}
	return s.offerteRepo.Delete(ctx, id)
}

// Calculate runs the scope calculators against the company's reference
// data and replaces the generated line set of the offerte. Handmatige
// regels survive a recalculation; totals always cover both.
func (s *OfferteService) Calculate(ctx context.Context, id uuid.UUID) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: status is %s", ErrOfferteNotEditable, offerte.Status)
	}

	inputs, err := domain.DecodeScopeInvoer(offerte.ScopeInvoer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: offerte heeft geen scope invoer", ErrInvalidInput)
	}

	ref, err := s.referentieSvc.BuildReferenceSet(ctx, offerte.CompanyID)
	if err != nil {
		return nil, err
	}

	regels, err := calculation.Calculate(ref, offerte.OfferteType, inputs, offerte.Terreintoegang, offerte.UurTarief)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	handmatig := handmatigeRegels(offerte.Regels)
	applyTotalen(offerte, calculation.Aggregate(append(regels, handmatig...), offerte.MargePercentage, offerte.BtwPercentage))

	if err := s.offerteRepo.ReplaceCalculatedRegels(ctx, offerte, regels); err != nil {
		return nil, fmt.Errorf("failed to store calculated regels: %w", err)
	}

	s.logger.Info("offerte calculated",
		zap.String("offerteID", offerte.ID.String()),
		zap.Int("regels", len(regels)),
		zap.Float64("totaalInclBtw", offerte.TotaalInclBtw))

	offerte.Regels = append(regels, handmatig...)
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

// AddHandmatigeRegel appends a manual line outside the calculators and
// re-aggregates the totals over the full line set.
func (s *OfferteService) AddHandmatigeRegel(ctx context.Context, id uuid.UUID, req *domain.AddHandmatigeRegelRequest) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: status is %s", ErrOfferteNotEditable, offerte.Status)
	}
	if !req.Scope.IsValid() {
		return nil, fmt.Errorf("%w: onbekende scope %q", ErrInvalidInput, req.Scope)
	}

	volgorde := 0
	for _, r := range offerte.Regels {
		if r.Volgorde >= volgorde {
			volgorde = r.Volgorde + 1
		}
	}

	// Totaal derives from the stored rounded values so that
	// totaal == round(hoeveelheid * prijsPerEenheid, 2) holds
	hoeveelheid := calculation.RoundHoeveelheid(req.Hoeveelheid)
	prijs := calculation.RoundBedrag(req.PrijsPerEenheid)
	regel := &domain.OfferteRegel{
		OfferteID:       offerte.ID,
		Scope:           req.Scope,
		Omschrijving:    validation.SanitizeOptional(req.Omschrijving),
		Eenheid:         req.Eenheid,
		Hoeveelheid:     hoeveelheid,
		PrijsPerEenheid: prijs,
		Totaal:          calculation.RoundBedrag(hoeveelheid * prijs),
		RegelType:       req.RegelType,
		Handmatig:       true,
		Volgorde:        volgorde,
	}

	applyTotalen(offerte, calculation.Aggregate(append(offerte.Regels, *regel), offerte.MargePercentage, offerte.BtwPercentage))

	if err := s.offerteRepo.AddRegel(ctx, offerte, regel); err != nil {
		return nil, fmt.Errorf("failed to add regel: %w", err)
	}

	offerte.Regels = append(offerte.Regels, *regel)
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

// DeleteRegel removes a line and re-aggregates. Generated lines can be
// removed too; the next calculation will regenerate them.
func (s *OfferteService) DeleteRegel(ctx context.Context, offerteID, regelID uuid.UUID) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, offerteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: status is %s", ErrOfferteNotEditable, offerte.Status)
	}
	if _, err := s.offerteRepo.GetRegel(ctx, offerteID, regelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: regel niet gevonden", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get regel: %w", err)
	}

	rest := make([]domain.OfferteRegel, 0, len(offerte.Regels))
	for _, r := range offerte.Regels {
		if r.ID != regelID {
			rest = append(rest, r)
		}
	}
	applyTotalen(offerte, calculation.Aggregate(rest, offerte.MargePercentage, offerte.BtwPercentage))

	if err := s.offerteRepo.DeleteRegel(ctx, offerte, regelID); err != nil {
		return nil, fmt.Errorf("failed to delete regel: %w", err)
	}

	offerte.Regels = rest
	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

// Verzend moves a concept offerte to verzonden. An offerte without
// regels cannot be sent; a missing vervaldatum gets the default window.
func (s *OfferteService) Verzend(ctx context.Context, id uuid.UUID) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusConcept {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, offerte.Status, domain.OfferteStatusVerzonden)
	}
	if len(offerte.Regels) == 0 {
		return nil, fmt.Errorf("%w: offerte heeft geen regels", ErrInvalidInput)
	}

	now := time.Now().UTC()
	offerte.Status = domain.OfferteStatusVerzonden
	offerte.VerzondenOp = &now
	if offerte.GeldigTot == nil {
		geldigTot := now.Add(defaultGeldigheidsduur)
		offerte.GeldigTot = &geldigTot
	}

	if err := s.offerteRepo.Update(ctx, offerte); err != nil {
		return nil, fmt.Errorf("failed to update offerte: %w", err)
	}

	s.logger.Info("offerte verzonden",
		zap.String("offerteID", offerte.ID.String()),
		zap.String("offerteNummer", offerte.OfferteNummer),
		zap.Timep("geldigTot", offerte.GeldigTot))

	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

// Accept marks a verzonden offerte geaccepteerd and optionally creates
// the follow-up project seeded with the voorcalculatie.
func (s *OfferteService) Accept(ctx context.Context, id uuid.UUID, req *domain.AcceptOfferteRequest) (*domain.AcceptOfferteResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusVerzonden {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, offerte.Status, domain.OfferteStatusGeaccepteerd)
	}

	now := time.Now().UTC()
	offerte.Status = domain.OfferteStatusGeaccepteerd
	offerte.BeslistOp = &now

	if err := s.offerteRepo.Update(ctx, offerte); err != nil {
		return nil, fmt.Errorf("failed to update offerte: %w", err)
	}

	offerteDTO := mapper.ToOfferteDTO(offerte)
	resp := &domain.AcceptOfferteResponse{Offerte: &offerteDTO}

	if req != nil && req.CreateProject {
		project, err := s.createProjectFromOfferte(ctx, offerte, userCtx, req.StartDatum)
		if err != nil {
			return nil, err
		}
		projectDTO := mapper.ToProjectDTO(project)
		resp.Project = &projectDTO
	}

	s.logger.Info("offerte geaccepteerd",
		zap.String("offerteID", offerte.ID.String()),
		zap.Bool("projectAangemaakt", resp.Project != nil))

	s.notifyOwner(ctx, offerte, domain.NotificationTypeOfferteGeaccepteerd,
		"Offerte geaccepteerd",
		fmt.Sprintf("Offerte %s van %s is geaccepteerd", offerte.OfferteNummer, offerte.KlantNaam))

	return resp, nil
}

func (s *OfferteService) createProjectFromOfferte(ctx context.Context, offerte *domain.Offerte, userCtx *auth.UserContext, startDatum *time.Time) (*domain.Project, error) {
	plan := calculation.VoorcalculatieFromRegels(offerte.Regels)
	perScope, err := json.Marshal(plan.UrenPerScope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode voorcalculatie: %w", err)
	}

	nummer, err := s.numberSvc.GenerateProjectNummer(ctx, offerte.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate projectnummer: %w", err)
	}

	project := &domain.Project{
		ProjectNummer:         nummer,
		Naam:                  offerte.Titel,
		KlantID:               offerte.KlantID,
		KlantNaam:             offerte.KlantNaam,
		CompanyID:             offerte.CompanyID,
		OfferteID:             &offerte.ID,
		Status:                domain.ProjectStatusGepland,
		StartDatum:            startDatum,
		ManagerID:             userCtx.UserID,
		ManagerNaam:           userCtx.DisplayName,
		GeplandeUren:          plan.TotaalUren,
		GeplandeUrenPerScope:  string(perScope),
		GeplandeMachinekosten: offerte.Machinekosten,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created from offerte",
		zap.String("projectID", project.ID.String()),
		zap.String("projectNummer", project.ProjectNummer),
		zap.String("offerteID", offerte.ID.String()),
		zap.Float64("geplandeUren", plan.TotaalUren))

	return project, nil
}

// Reject marks a verzonden offerte afgewezen
func (s *OfferteService) Reject(ctx context.Context, id uuid.UUID, req *domain.RejectOfferteRequest) (*domain.OfferteDTO, error) {
	offerte, err := s.offerteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}
	if offerte.Status != domain.OfferteStatusVerzonden {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, offerte.Status, domain.OfferteStatusAfgewezen)
	}

	now := time.Now().UTC()
	offerte.Status = domain.OfferteStatusAfgewezen
	offerte.BeslistOp = &now
	if req != nil && req.Reden != "" {
		offerte.Notities = validation.SanitizeOptional(req.Reden)
	}

	if err := s.offerteRepo.Update(ctx, offerte); err != nil {
		return nil, fmt.Errorf("failed to update offerte: %w", err)
	}

	s.notifyOwner(ctx, offerte, domain.NotificationTypeOfferteAfgewezen,
		"Offerte afgewezen",
		fmt.Sprintf("Offerte %s van %s is afgewezen", offerte.OfferteNummer, offerte.KlantNaam))

	dto := mapper.ToOfferteDTO(offerte)
	return &dto, nil
}

// MarkVerlopen expires verzonden offertes whose geldigTot lies before
// the given moment. Runs from the scheduler without a tenant filter.
func (s *OfferteService) MarkVerlopen(ctx context.Context, before time.Time) (int, error) {
	offertes, err := s.offerteRepo.ListVerlopen(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to list verlopen offertes: %w", err)
	}

	expired := 0
	for i := range offertes {
		offertes[i].Status = domain.OfferteStatusVerlopen
		if err := s.offerteRepo.Update(ctx, &offertes[i]); err != nil {
			s.logger.Error("failed to expire offerte",
				zap.String("offerteID", offertes[i].ID.String()),
				zap.Error(err))
			continue
		}
		expired++
		s.notifyOwner(ctx, &offertes[i], domain.NotificationTypeOfferteVerlopen,
			"Offerte verlopen",
			fmt.Sprintf("Offerte %s van %s is verlopen", offertes[i].OfferteNummer, offertes[i].KlantNaam))
	}

	if expired > 0 {
		s.logger.Info("offertes verlopen", zap.Int("count", expired))
	}
	return expired, nil
}

// CountByStatus powers the dashboard funnel widget
func (s *OfferteService) CountByStatus(ctx context.Context) (map[domain.OfferteStatus]int64, error) {
	counts, err := s.offerteRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count offertes: %w", err)
	}
	return counts, nil
}

func validateScopeInvoer(offerteType domain.OfferteType, inputs []domain.ScopeInput) error {
	seen := make(map[domain.Scope]bool, len(inputs))
	for _, input := range inputs {
		if !input.Scope.ValidForType(offerteType) {
			return fmt.Errorf("%w: scope %q hoort niet bij offertetype %q", ErrInvalidInput, input.Scope, offerteType)
		}
		if seen[input.Scope] {
			return fmt.Errorf("%w: scope %q komt dubbel voor", ErrInvalidInput, input.Scope)
		}
		seen[input.Scope] = true
	}
	return nil
}

func handmatigeRegels(regels []domain.OfferteRegel) []domain.OfferteRegel {
	var handmatig []domain.OfferteRegel
	for _, r := range regels {
		if r.Handmatig {
			handmatig = append(handmatig, r)
		}
	}
	return handmatig
}

func applyTotalen(offerte *domain.Offerte, t calculation.Totalen) {
	offerte.Materiaalkosten = t.Materiaalkosten
	offerte.Arbeidskosten = t.Arbeidskosten
	offerte.Machinekosten = t.Machinekosten
	offerte.TotaalUren = t.TotaalUren
	offerte.Subtotaal = t.Subtotaal
	offerte.Marge = t.Marge
	offerte.TotaalExBtw = t.TotaalExBtw
	offerte.Btw = t.Btw
	offerte.TotaalInclBtw = t.TotaalInclBtw
}
