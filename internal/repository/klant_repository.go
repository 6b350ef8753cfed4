package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type KlantRepository struct {
	db *gorm.DB
}

func NewKlantRepository(db *gorm.DB) *KlantRepository {
	return &KlantRepository{db: db}
}

func (r *KlantRepository) Create(ctx context.Context, klant *domain.Klant) error {
	return r.db.WithContext(ctx).Create(klant).Error
}

func (r *KlantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Klant, error) {
	var klant domain.Klant
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&klant).Error
	if err != nil {
		return nil, err
	}
	return &klant, nil
}

func (r *KlantRepository) Update(ctx context.Context, klant *domain.Klant) error {
	return r.db.WithContext(ctx).Save(klant).Error
}

func (r *KlantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Klant{}, "id = ?", id).Error
}

func (r *KlantRepository) List(ctx context.Context, page, pageSize int, search string, klantType domain.KlantType) ([]domain.Klant, int64, error) {
	var klanten []domain.Klant
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Klant{})

	// Apply multi-tenant company filter
	query = ApplyCompanyFilter(ctx, query)

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(naam) LIKE ? OR LOWER(email) LIKE ? OR LOWER(plaats) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if klantType != "" {
		query = query.Where("klant_type = ?", klantType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&klanten).Error

	return klanten, total, err
}

func (r *KlantRepository) GetOffertesCount(ctx context.Context, klantID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Offerte{}).Where("klant_id = ?", klantID).Count(&count).Error
	return int(count), err
}

func (r *KlantRepository) GetProjectenCount(ctx context.Context, klantID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("klant_id = ?", klantID).Count(&count).Error
	return int(count), err
}

func (r *KlantRepository) Count(ctx context.Context) (int, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Klant{})
	query = ApplyCompanyFilter(ctx, query)
	err := query.Count(&count).Error
	return int(count), err
}

func (r *KlantRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Klant, error) {
	var klanten []domain.Klant
	searchPattern := "%" + strings.ToLower(searchQuery) + "%"
	query := r.db.WithContext(ctx).
		Where("LOWER(naam) LIKE ? OR LOWER(email) LIKE ?", searchPattern, searchPattern)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Limit(limit).Find(&klanten).Error
	return klanten, err
}
