package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type InkooporderRepository struct {
	db *gorm.DB
}

func NewInkooporderRepository(db *gorm.DB) *InkooporderRepository {
	return &InkooporderRepository{db: db}
}

func (r *InkooporderRepository) Create(ctx context.Context, order *domain.Inkooporder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *InkooporderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inkooporder, error) {
	var order domain.Inkooporder
	query := r.db.WithContext(ctx).
		Preload("Regels").
		Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *InkooporderRepository) Update(ctx context.Context, order *domain.Inkooporder) error {
	return r.db.WithContext(ctx).Omit("Regels", "Project").Save(order).Error
}

func (r *InkooporderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.InkooporderRegel{}, "inkooporder_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Inkooporder{}, "id = ?", id).Error
	})
}

func (r *InkooporderRepository) List(ctx context.Context, page, pageSize int, status domain.InkooporderStatus, projectID *uuid.UUID, search string) ([]domain.Inkooporder, int64, error) {
	var orders []domain.Inkooporder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Inkooporder{})
	query = ApplyCompanyFilter(ctx, query)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(leverancier) LIKE ? OR LOWER(order_nummer) LIKE ?",
			searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&orders).Error

	return orders, total, err
}
