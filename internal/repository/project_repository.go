package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

// projectSortFields maps API sort field names to database columns
var projectSortFields = map[string]string{
	"projectNummer": "project_nummer",
	"naam":          "naam",
	"klantNaam":     "klant_naam",
	"status":        "status",
	"startDatum":    "start_datum",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := r.db.WithContext(ctx).
		Preload("Klant").
		Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetByOfferteID(ctx context.Context, offerteID uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := r.db.WithContext(ctx).Where("offerte_id = ?", offerteID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Klant", "Offerte").Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, status domain.ProjectStatus, search string, sort SortConfig) ([]domain.Project, int64, error) {
	var projecten []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	query = ApplyCompanyFilter(ctx, query)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(naam) LIKE ? OR LOWER(project_nummer) LIKE ? OR LOWER(klant_naam) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, projectSortFields, "updated_at")
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&projecten).Error

	return projecten, total, err
}

// CountByStatus returns the number of projects per status for the current tenant
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	type row struct {
		Status domain.ProjectStatus
		Count  int64
	}
	var rows []row

	query := r.db.WithContext(ctx).Model(&domain.Project{}).
		Select("status, COUNT(*) as count").
		Group("status")
	query = ApplyCompanyFilter(ctx, query)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.ProjectStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// ListByUitvoerder returns projects a field worker is assigned to
func (r *ProjectRepository) ListByUitvoerder(ctx context.Context, userID string, page, pageSize int) ([]domain.Project, int64, error) {
	var projecten []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("? = ANY(uitvoerder_ids) OR manager_id = ?", userID, userID)
	query = ApplyCompanyFilter(ctx, query)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("start_datum ASC NULLS LAST").Find(&projecten).Error

	return projecten, total, err
}
