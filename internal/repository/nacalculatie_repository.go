package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NacalculatieRepository struct {
	db *gorm.DB
}

func NewNacalculatieRepository(db *gorm.DB) *NacalculatieRepository {
	return &NacalculatieRepository{db: db}
}

// Upsert stores the comparison for a project, replacing an earlier snapshot.
// A project has at most one persisted nacalculatie.
func (r *NacalculatieRepository) Upsert(ctx context.Context, nacalc *domain.Nacalculatie) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"geplande_uren", "werkelijke_uren", "afwijking_uren",
				"afwijking_percentage", "werkelijke_machinekosten",
				"werkdagen", "per_scope", "opgeslagen_door", "updated_at",
			}),
		}).
		Create(nacalc).Error
}

func (r *NacalculatieRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.Nacalculatie, error) {
	var nacalc domain.Nacalculatie
	err := r.db.WithContext(ctx).First(&nacalc, "project_id = ?", projectID).Error
	if err != nil {
		return nil, err
	}
	return &nacalc, nil
}

func (r *NacalculatieRepository) Delete(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Nacalculatie{}, "project_id = ?", projectID).Error
}
