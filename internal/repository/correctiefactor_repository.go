package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type CorrectieFactorRepository struct {
	db *gorm.DB
}

func NewCorrectieFactorRepository(db *gorm.DB) *CorrectieFactorRepository {
	return &CorrectieFactorRepository{db: db}
}

func (r *CorrectieFactorRepository) Create(ctx context.Context, factor *domain.CorrectieFactor) error {
	return r.db.WithContext(ctx).Create(factor).Error
}

func (r *CorrectieFactorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CorrectieFactor, error) {
	var factor domain.CorrectieFactor
	err := r.db.WithContext(ctx).First(&factor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &factor, nil
}

// GetByKey looks up a factor record for one exact key. Pass a nil companyID
// to fetch the system default.
func (r *CorrectieFactorRepository) GetByKey(ctx context.Context, companyID *domain.CompanyID, factorType domain.FactorType, factorWaarde string) (*domain.CorrectieFactor, error) {
	var factor domain.CorrectieFactor
	query := r.db.WithContext(ctx).
		Where("factor_type = ? AND factor_waarde = ?", factorType, factorWaarde)
	if companyID == nil {
		query = query.Where("company_id IS NULL")
	} else {
		query = query.Where("company_id = ?", *companyID)
	}
	err := query.First(&factor).Error
	if err != nil {
		return nil, err
	}
	return &factor, nil
}

func (r *CorrectieFactorRepository) Update(ctx context.Context, factor *domain.CorrectieFactor) error {
	return r.db.WithContext(ctx).Save(factor).Error
}

func (r *CorrectieFactorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CorrectieFactor{}, "id = ?", id).Error
}

// ListForCompany returns the system defaults plus the company's overrides.
// The calculation layer resolves precedence between the two sets.
func (r *CorrectieFactorRepository) ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]domain.CorrectieFactor, error) {
	var factoren []domain.CorrectieFactor
	err := r.db.WithContext(ctx).
		Where("company_id IS NULL OR company_id = ?", companyID).
		Order("factor_type ASC, factor_waarde ASC").
		Find(&factoren).Error
	return factoren, err
}

// ListDefaults returns only the system default factors
func (r *CorrectieFactorRepository) ListDefaults(ctx context.Context) ([]domain.CorrectieFactor, error) {
	var factoren []domain.CorrectieFactor
	err := r.db.WithContext(ctx).
		Where("company_id IS NULL").
		Order("factor_type ASC, factor_waarde ASC").
		Find(&factoren).Error
	return factoren, err
}
