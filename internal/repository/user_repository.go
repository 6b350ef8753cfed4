package repository

import (
	"context"

	"github.com/groenwerk/offerte-api/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) List(ctx context.Context, companyID *domain.CompanyID) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	err := query.Order("name ASC").Find(&users).Error
	return users, err
}

// Upsert creates the user on first login and refreshes profile fields on
// subsequent logins, preserving manually-assigned roles and company
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	var existing domain.User
	err := r.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(user).Error
	}

	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"name":          user.DisplayName,
		"last_login_at": user.LastLoginAt,
	}

	// Only update these fields if they have values (don't overwrite with empty)
	if user.FirstName != "" {
		updates["first_name"] = user.FirstName
	}
	if user.LastName != "" {
		updates["last_name"] = user.LastName
	}
	if user.ExternalID != "" {
		updates["external_id"] = user.ExternalID
	}

	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", existing.ID).Updates(updates).Error
}
