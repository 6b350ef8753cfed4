package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type MachinegebruikRepository struct {
	db *gorm.DB
}

func NewMachinegebruikRepository(db *gorm.DB) *MachinegebruikRepository {
	return &MachinegebruikRepository{db: db}
}

func (r *MachinegebruikRepository) Create(ctx context.Context, gebruik *domain.Machinegebruik) error {
	return r.db.WithContext(ctx).Create(gebruik).Error
}

func (r *MachinegebruikRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Machinegebruik, error) {
	var gebruik domain.Machinegebruik
	err := r.db.WithContext(ctx).First(&gebruik, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &gebruik, nil
}

func (r *MachinegebruikRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Machinegebruik{}, "id = ?", id).Error
}

// ListByProject returns all machine usage for a project ordered by date
func (r *MachinegebruikRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Machinegebruik, error) {
	var entries []domain.Machinegebruik
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("datum ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

// SumKostenByProject returns the total machine cost for a project
func (r *MachinegebruikRepository) SumKostenByProject(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Machinegebruik{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(kosten), 0)").
		Scan(&total).Error
	return total, err
}
