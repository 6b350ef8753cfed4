package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type UrenregistratieRepository struct {
	db *gorm.DB
}

func NewUrenregistratieRepository(db *gorm.DB) *UrenregistratieRepository {
	return &UrenregistratieRepository{db: db}
}

func (r *UrenregistratieRepository) Create(ctx context.Context, uren *domain.Urenregistratie) error {
	return r.db.WithContext(ctx).Create(uren).Error
}

func (r *UrenregistratieRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Urenregistratie, error) {
	var uren domain.Urenregistratie
	err := r.db.WithContext(ctx).First(&uren, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &uren, nil
}

func (r *UrenregistratieRepository) Update(ctx context.Context, uren *domain.Urenregistratie) error {
	return r.db.WithContext(ctx).Omit("Project").Save(uren).Error
}

func (r *UrenregistratieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Urenregistratie{}, "id = ?", id).Error
}

// ListByProject returns all time entries for a project ordered by date
func (r *UrenregistratieRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Urenregistratie, error) {
	var entries []domain.Urenregistratie
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("datum ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

// ListByUser returns time entries logged by a user within a date range
func (r *UrenregistratieRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Urenregistratie, error) {
	var entries []domain.Urenregistratie
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND datum >= ? AND datum <= ?", userID, from, to).
		Order("datum ASC").
		Find(&entries).Error
	return entries, err
}

// SumByProject returns the total logged hours for a project
func (r *UrenregistratieRepository) SumByProject(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Urenregistratie{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(uren), 0)").
		Scan(&total).Error
	return total, err
}
