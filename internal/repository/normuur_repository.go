package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type NormUurRepository struct {
	db *gorm.DB
}

func NewNormUurRepository(db *gorm.DB) *NormUurRepository {
	return &NormUurRepository{db: db}
}

func (r *NormUurRepository) Create(ctx context.Context, normUur *domain.NormUur) error {
	return r.db.WithContext(ctx).Create(normUur).Error
}

func (r *NormUurRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NormUur, error) {
	var normUur domain.NormUur
	err := r.db.WithContext(ctx).First(&normUur, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &normUur, nil
}

// GetByKey looks up the norm rate for one activity within a scope for a company
func (r *NormUurRepository) GetByKey(ctx context.Context, companyID domain.CompanyID, scope domain.Scope, activiteit string) (*domain.NormUur, error) {
	var normUur domain.NormUur
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND scope = ? AND activiteit = ?", companyID, scope, activiteit).
		First(&normUur).Error
	if err != nil {
		return nil, err
	}
	return &normUur, nil
}

func (r *NormUurRepository) Update(ctx context.Context, normUur *domain.NormUur) error {
	return r.db.WithContext(ctx).Save(normUur).Error
}

func (r *NormUurRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.NormUur{}, "id = ?", id).Error
}

// ListByCompany returns all norm rates for a company, optionally limited to one scope
func (r *NormUurRepository) ListByCompany(ctx context.Context, companyID domain.CompanyID, scope domain.Scope) ([]domain.NormUur, error) {
	var normUren []domain.NormUur
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if scope != "" {
		query = query.Where("scope = ?", scope)
	}
	err := query.Order("scope ASC, activiteit ASC").Find(&normUren).Error
	return normUren, err
}
