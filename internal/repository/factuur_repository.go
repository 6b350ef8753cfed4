package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type FactuurRepository struct {
	db *gorm.DB
}

func NewFactuurRepository(db *gorm.DB) *FactuurRepository {
	return &FactuurRepository{db: db}
}

func (r *FactuurRepository) Create(ctx context.Context, factuur *domain.Factuur) error {
	return r.db.WithContext(ctx).Create(factuur).Error
}

func (r *FactuurRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Factuur, error) {
	var factuur domain.Factuur
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&factuur).Error
	if err != nil {
		return nil, err
	}
	return &factuur, nil
}

// GetByExternReferentie looks up a factuur by its accounting system reference.
// Used by the reconciliation job; deliberately unfiltered by company.
func (r *FactuurRepository) GetByExternReferentie(ctx context.Context, ref string) (*domain.Factuur, error) {
	var factuur domain.Factuur
	err := r.db.WithContext(ctx).First(&factuur, "extern_referentie = ?", ref).Error
	if err != nil {
		return nil, err
	}
	return &factuur, nil
}

func (r *FactuurRepository) Update(ctx context.Context, factuur *domain.Factuur) error {
	return r.db.WithContext(ctx).Omit("Offerte").Save(factuur).Error
}

func (r *FactuurRepository) List(ctx context.Context, page, pageSize int, status domain.FactuurStatus, klantID *uuid.UUID, search string) ([]domain.Factuur, int64, error) {
	var facturen []domain.Factuur
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Factuur{})
	query = ApplyCompanyFilter(ctx, query)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if klantID != nil {
		query = query.Where("klant_id = ?", *klantID)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(factuur_nummer) LIKE ? OR LOWER(klant_naam) LIKE ?",
			searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("factuur_datum DESC").Find(&facturen).Error

	return facturen, total, err
}

// SumOpenstaand totals the unpaid invoice amounts for the current tenant
func (r *FactuurRepository) SumOpenstaand(ctx context.Context) (float64, error) {
	var sum float64
	query := r.db.WithContext(ctx).Model(&domain.Factuur{}).
		Where("status IN ?", []domain.FactuurStatus{domain.FactuurStatusOpen, domain.FactuurStatusHerinnering})
	query = ApplyCompanyFilter(ctx, query)
	err := query.Select("COALESCE(SUM(totaal_incl_btw), 0)").Scan(&sum).Error
	return sum, err
}

// ListOpen returns all unpaid facturen with an external reference.
// Used by the accounting reconciliation job.
func (r *FactuurRepository) ListOpen(ctx context.Context) ([]domain.Factuur, error) {
	var facturen []domain.Factuur
	err := r.db.WithContext(ctx).
		Where("status IN ? AND extern_referentie <> ''",
			[]domain.FactuurStatus{domain.FactuurStatusOpen, domain.FactuurStatusHerinnering}).
		Find(&facturen).Error
	return facturen, err
}
