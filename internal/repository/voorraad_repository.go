package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoorraadRepository struct {
	db *gorm.DB
}

func NewVoorraadRepository(db *gorm.DB) *VoorraadRepository {
	return &VoorraadRepository{db: db}
}

func (r *VoorraadRepository) Create(ctx context.Context, item *domain.VoorraadItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *VoorraadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VoorraadItem, error) {
	var item domain.VoorraadItem
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByArtikel looks up a stock item by company and article name
func (r *VoorraadRepository) GetByArtikel(ctx context.Context, companyID domain.CompanyID, artikel string) (*domain.VoorraadItem, error) {
	var item domain.VoorraadItem
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND artikel = ?", companyID, artikel).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *VoorraadRepository) Update(ctx context.Context, item *domain.VoorraadItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *VoorraadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.VoorraadItem{}, "id = ?", id).Error
}

func (r *VoorraadRepository) List(ctx context.Context, page, pageSize int, search string, onderMinimum bool) ([]domain.VoorraadItem, int64, error) {
	var items []domain.VoorraadItem
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.VoorraadItem{})
	query = ApplyCompanyFilter(ctx, query)

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(artikel) LIKE ? OR LOWER(locatie) LIKE ?", searchPattern, searchPattern)
	}
	if onderMinimum {
		query = query.Where("minimum_voorraad > 0 AND aantal <= minimum_voorraad")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("artikel ASC").Find(&items).Error

	return items, total, err
}

// CountOnderMinimum counts the items at or below their minimum level
func (r *VoorraadRepository) CountOnderMinimum(ctx context.Context) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.VoorraadItem{}).
		Where("minimum_voorraad > 0 AND aantal <= minimum_voorraad")
	query = ApplyCompanyFilter(ctx, query)
	err := query.Count(&count).Error
	return count, err
}

// MutateAantal atomically applies a delta to the stock level of an item and
// returns the updated record. The row is locked during the update so
// concurrent deliveries and outgoing bookings cannot interleave.
func (r *VoorraadRepository) MutateAantal(ctx context.Context, id uuid.UUID, delta float64) (*domain.VoorraadItem, error) {
	var item domain.VoorraadItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", id).Error; err != nil {
			return err
		}

		item.Aantal += delta
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}
