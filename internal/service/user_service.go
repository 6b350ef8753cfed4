package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// UserService syncs accounts from the identity provider on login and
// lets admins manage role assignment.
type UserService struct {
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, companyRepo *repository.CompanyRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// SyncOnLogin upserts the user record from the validated token. First
// login creates the account with the roles carried in the token.
func (s *UserService) SyncOnLogin(ctx context.Context, userCtx *auth.UserContext) (*domain.User, error) {
	roles := make([]string, len(userCtx.Roles))
	for i, r := range userCtx.Roles {
		roles[i] = string(r)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:          userCtx.UserID,
		Email:       userCtx.Email,
		DisplayName: userCtx.DisplayName,
		Roles:       pq.StringArray(roles),
		IsActive:    true,
		LastLoginAt: &now,
	}
	if userCtx.CompanyID != "" {
		companyID := userCtx.CompanyID
		user.CompanyID = &companyID
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	return user, nil
}

// Me returns the authenticated user's profile with company context
func (s *UserService) Me(ctx context.Context) (*domain.AuthUserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	roles := make([]string, len(userCtx.Roles))
	for i, r := range userCtx.Roles {
		roles[i] = string(r)
	}

	dto := &domain.AuthUserDTO{
		ID:             userCtx.UserID,
		Name:           userCtx.DisplayName,
		Email:          userCtx.Email,
		Roles:          roles,
		Initials:       initials(userCtx.DisplayName),
		IsSuperAdmin:   userCtx.IsSuperAdmin(),
		IsCompanyAdmin: userCtx.IsCompanyAdmin(),
	}

	if userCtx.CompanyID != "" {
		company, err := s.companyRepo.GetByID(ctx, userCtx.CompanyID)
		if err == nil {
			dto.Company = &domain.CompanyDTO{ID: string(company.ID), Name: company.Name}
		}
	}

	return dto, nil
}

func (s *UserService) List(ctx context.Context, companyID *domain.CompanyID) ([]domain.UserDTO, error) {
	if companyID != nil && !domain.IsValidCompanyID(string(*companyID)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, *companyID)
	}

	users, err := s.userRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = mapper.ToUserDTO(&users[i])
	}
	return dtos, nil
}

// Update changes role assignment and account status. Only company
// admins for their own company, super admins for any.
func (s *UserService) Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if !userCtx.IsSuperAdmin() {
		if user.CompanyID == nil || !userCtx.CanAccessCompany(*user.CompanyID) {
			return nil, fmt.Errorf("%w: gebruiker van een ander bedrijf", ErrPermissionDenied)
		}
	}

	if req.Roles != nil {
		for _, role := range req.Roles {
			if !isKnownRole(role) {
				return nil, fmt.Errorf("%w: onbekende rol %q", ErrInvalidInput, role)
			}
			if role == string(domain.RoleSuperAdmin) && !userCtx.IsSuperAdmin() {
				return nil, fmt.Errorf("%w: alleen super admins kennen super_admin toe", ErrPermissionDenied)
			}
		}
		user.Roles = pq.StringArray(req.Roles)
	}
	if req.CompanyID != nil {
		if !domain.IsValidCompanyID(string(*req.CompanyID)) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCompanyID, *req.CompanyID)
		}
		user.CompanyID = req.CompanyID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated",
		zap.String("userID", user.ID),
		zap.Strings("roles", user.Roles))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func isKnownRole(role string) bool {
	switch domain.UserRoleType(role) {
	case domain.RoleSuperAdmin, domain.RoleCompanyAdmin, domain.RoleCalculator,
		domain.RoleUitvoerder, domain.RoleViewer, domain.RoleAPIService:
		return true
	}
	return false
}

func initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}
	first := strings.ToUpper(parts[0][:1])
	if len(parts) == 1 {
		return first
	}
	return first + strings.ToUpper(parts[len(parts)-1][:1])
}
