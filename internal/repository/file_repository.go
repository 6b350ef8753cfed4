package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	var file domain.File
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.File{}, "id = ?", id).Error
}

// ListByOfferte returns all files attached to an offerte
func (r *FileRepository) ListByOfferte(ctx context.Context, offerteID uuid.UUID) ([]domain.File, error) {
	var files []domain.File
	err := r.db.WithContext(ctx).
		Where("offerte_id = ?", offerteID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// CountByOfferte returns the count of files attached to an offerte
func (r *FileRepository) CountByOfferte(ctx context.Context, offerteID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.File{}).
		Where("offerte_id = ?", offerteID).
		Count(&count).Error
	return count, err
}
