package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

// offerteSortFields maps API sort field names to database columns
var offerteSortFields = map[string]string{
	"offerteNummer": "offerte_nummer",
	"titel":         "titel",
	"klantNaam":     "klant_naam",
	"status":        "status",
	"totaalInclBtw": "totaal_incl_btw",
	"geldigTot":     "geldig_tot",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

type OfferteRepository struct {
	db *gorm.DB
}

func NewOfferteRepository(db *gorm.DB) *OfferteRepository {
	return &OfferteRepository{db: db}
}

func (r *OfferteRepository) Create(ctx context.Context, offerte *domain.Offerte) error {
	return r.db.WithContext(ctx).Create(offerte).Error
}

func (r *OfferteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offerte, error) {
	var offerte domain.Offerte
	query := r.db.WithContext(ctx).
		Preload("Regels", func(db *gorm.DB) *gorm.DB {
			return db.Order("volgorde ASC")
		}).
		Preload("Klant").
		Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&offerte).Error
	if err != nil {
		return nil, err
	}
	return &offerte, nil
}

func (r *OfferteRepository) GetByNummer(ctx context.Context, nummer string) (*domain.Offerte, error) {
	var offerte domain.Offerte
	query := r.db.WithContext(ctx).
		Preload("Regels", func(db *gorm.DB) *gorm.DB {
			return db.Order("volgorde ASC")
		}).
		Where("offerte_nummer = ?", nummer)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&offerte).Error
	if err != nil {
		return nil, err
	}
	return &offerte, nil
}

func (r *OfferteRepository) Update(ctx context.Context, offerte *domain.Offerte) error {
	return r.db.WithContext(ctx).Omit("Regels", "Klant").Save(offerte).Error
}

func (r *OfferteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OfferteRegel{}, "offerte_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Offerte{}, "id = ?", id).Error
	})
}

// ListFilters holds the optional filters for listing offertes
type ListFilters struct {
	Status      domain.OfferteStatus
	OfferteType domain.OfferteType
	KlantID     *uuid.UUID
	Search      string
}

func (r *OfferteRepository) List(ctx context.Context, page, pageSize int, filters ListFilters, sort SortConfig) ([]domain.Offerte, int64, error) {
	var offertes []domain.Offerte
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Offerte{})
	query = ApplyCompanyFilter(ctx, query)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.OfferteType != "" {
		query = query.Where("offerte_type = ?", filters.OfferteType)
	}
	if filters.KlantID != nil {
		query = query.Where("klant_id = ?", *filters.KlantID)
	}
	if filters.Search != "" {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(titel) LIKE ? OR LOWER(offerte_nummer) LIKE ? OR LOWER(klant_naam) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, offerteSortFields, "updated_at")
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&offertes).Error

	return offertes, total, err
}

// ReplaceCalculatedRegels replaces all generated line items of an offerte and
// stores the new aggregated totals in one transaction. Handmatige regels
// survive a recalculation.
func (r *OfferteRepository) ReplaceCalculatedRegels(ctx context.Context, offerte *domain.Offerte, regels []domain.OfferteRegel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OfferteRegel{},
			"offerte_id = ? AND handmatig = ?", offerte.ID, false).Error; err != nil {
			return err
		}

		for i := range regels {
			regels[i].OfferteID = offerte.ID
		}
		if len(regels) > 0 {
			if err := tx.Create(&regels).Error; err != nil {
				return err
			}
		}

		return tx.Omit("Regels", "Klant").Save(offerte).Error
	})
}

// AddRegel appends a line item and persists the updated offerte totals
func (r *OfferteRepository) AddRegel(ctx context.Context, offerte *domain.Offerte, regel *domain.OfferteRegel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(regel).Error; err != nil {
			return err
		}
		return tx.Omit("Regels", "Klant").Save(offerte).Error
	})
}

// DeleteRegel removes a line item and persists the updated offerte totals
func (r *OfferteRepository) DeleteRegel(ctx context.Context, offerte *domain.Offerte, regelID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OfferteRegel{}, "id = ? AND offerte_id = ?", regelID, offerte.ID).Error; err != nil {
			return err
		}
		return tx.Omit("Regels", "Klant").Save(offerte).Error
	})
}

func (r *OfferteRepository) GetRegel(ctx context.Context, offerteID, regelID uuid.UUID) (*domain.OfferteRegel, error) {
	var regel domain.OfferteRegel
	err := r.db.WithContext(ctx).
		Where("id = ? AND offerte_id = ?", regelID, offerteID).
		First(&regel).Error
	if err != nil {
		return nil, err
	}
	return &regel, nil
}

// ListVerlopen returns sent offertes whose validity date has passed.
// Used by the expiry job; deliberately unfiltered by company.
func (r *OfferteRepository) ListVerlopen(ctx context.Context, before time.Time) ([]domain.Offerte, error) {
	var offertes []domain.Offerte
	err := r.db.WithContext(ctx).
		Where("status = ? AND geldig_tot IS NOT NULL AND geldig_tot < ?", domain.OfferteStatusVerzonden, before).
		Find(&offertes).Error
	return offertes, err
}

// CountByStatus returns the number of offertes per status for the current tenant
func (r *OfferteRepository) CountByStatus(ctx context.Context) (map[domain.OfferteStatus]int64, error) {
	type row struct {
		Status domain.OfferteStatus
		Count  int64
	}
	var rows []row

	query := r.db.WithContext(ctx).Model(&domain.Offerte{}).
		Select("status, COUNT(*) as count").
		Group("status")
	query = ApplyCompanyFilter(ctx, query)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[domain.OfferteStatus]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Count
	}
	return result, nil
}
