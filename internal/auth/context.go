package auth

import (
	"context"
	"strings"

	"github.com/groenwerk/offerte-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Roles       []domain.UserRoleType
	CompanyID   domain.CompanyID
}

type contextKey string

const userContextKey contextKey = "userContext"
const companyFilterKey contextKey = "companyFilter"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRoleType) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsSuperAdmin checks if user is a super admin (has access to all companies)
func (u *UserContext) IsSuperAdmin() bool {
	return u.HasRole(domain.RoleSuperAdmin)
}

// IsCompanyAdmin checks if user is an admin for their company
func (u *UserContext) IsCompanyAdmin() bool {
	return u.HasAnyRole(domain.RoleSuperAdmin, domain.RoleCompanyAdmin)
}

// IsGroepUser checks if user belongs to the GroenWerk holding company.
// Groep users can access data across all operating companies.
func (u *UserContext) IsGroepUser() bool {
	return u.CompanyID == domain.CompanyGroep || u.IsSuperAdmin()
}

// CanAccessCompany checks if user can access data for a specific company
func (u *UserContext) CanAccessCompany(companyID domain.CompanyID) bool {
	if u.IsSuperAdmin() || u.IsGroepUser() {
		return true
	}
	return u.CompanyID == companyID
}

// GetCompanyFilter returns the company ID to filter queries by
// Returns nil for super admins and Groep users (no filtering needed)
func (u *UserContext) GetCompanyFilter() *domain.CompanyID {
	if u.IsSuperAdmin() || u.IsGroepUser() {
		return nil
	}
	return &u.CompanyID
}

// HasPermission checks if user has a specific permission based on their roles
func (u *UserContext) HasPermission(permission domain.PermissionType) bool {
	// Super admins have all permissions
	if u.IsSuperAdmin() {
		return true
	}

	for _, role := range u.Roles {
		if hasRolePermission(role, permission) {
			return true
		}
	}
	return false
}

// hasRolePermission checks if a role has a specific permission by default
func hasRolePermission(role domain.UserRoleType, permission domain.PermissionType) bool {
	rolePermissions := map[domain.UserRoleType][]domain.PermissionType{
		domain.RoleSuperAdmin: {
			// Super admin has all permissions - handled above
		},
		domain.RoleCompanyAdmin: {
			domain.PermissionKlantenRead, domain.PermissionKlantenWrite, domain.PermissionKlantenDelete,
			domain.PermissionOffertesRead, domain.PermissionOffertesWrite, domain.PermissionOffertesDelete,
			domain.PermissionOffertesCalculate, domain.PermissionOffertesVerzenden,
			domain.PermissionReferentieRead, domain.PermissionReferentieWrite,
			domain.PermissionProjectenRead, domain.PermissionProjectenWrite,
			domain.PermissionUrenRead, domain.PermissionUrenWrite,
			domain.PermissionNacalculatieRead, domain.PermissionNacalculatieWrite,
			domain.PermissionInkoopRead, domain.PermissionInkoopWrite,
			domain.PermissionVoorraadRead, domain.PermissionVoorraadWrite,
			domain.PermissionFacturenRead, domain.PermissionFacturenWrite,
			domain.PermissionUsersRead, domain.PermissionUsersWrite, domain.PermissionUsersManageRoles,
			domain.PermissionReportsView, domain.PermissionReportsExport,
		},
		domain.RoleCalculator: {
			domain.PermissionKlantenRead, domain.PermissionKlantenWrite,
			domain.PermissionOffertesRead, domain.PermissionOffertesWrite,
			domain.PermissionOffertesCalculate, domain.PermissionOffertesVerzenden,
			domain.PermissionReferentieRead,
			domain.PermissionProjectenRead,
			domain.PermissionNacalculatieRead,
			domain.PermissionInkoopRead, domain.PermissionInkoopWrite,
			domain.PermissionVoorraadRead,
			domain.PermissionFacturenRead,
			domain.PermissionReportsView,
		},
		domain.RoleUitvoerder: {
			domain.PermissionKlantenRead,
			domain.PermissionOffertesRead,
			domain.PermissionProjectenRead, domain.PermissionProjectenWrite,
			domain.PermissionUrenRead, domain.PermissionUrenWrite,
			domain.PermissionNacalculatieRead,
			domain.PermissionVoorraadRead, domain.PermissionVoorraadWrite,
		},
		domain.RoleViewer: {
			domain.PermissionKlantenRead,
			domain.PermissionOffertesRead,
			domain.PermissionReferentieRead,
			domain.PermissionProjectenRead,
			domain.PermissionUrenRead,
			domain.PermissionNacalculatieRead,
			domain.PermissionInkoopRead,
			domain.PermissionVoorraadRead,
			domain.PermissionFacturenRead,
			domain.PermissionReportsView,
		},
		domain.RoleAPIService: {
			domain.PermissionKlantenRead, domain.PermissionKlantenWrite,
			domain.PermissionOffertesRead, domain.PermissionOffertesWrite,
			domain.PermissionOffertesCalculate,
			domain.PermissionReferentieRead,
			domain.PermissionProjectenRead, domain.PermissionProjectenWrite,
			domain.PermissionUrenRead, domain.PermissionUrenWrite,
			domain.PermissionFacturenRead, domain.PermissionFacturenWrite,
		},
	}

	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}

	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDisplayNameInitials returns initials from the display name (e.g., "Jan de Boer" -> "JDB")
func (u *UserContext) GetDisplayNameInitials() string {
	if u.DisplayName == "" {
		return ""
	}
	parts := strings.Fields(u.DisplayName)
	initials := ""
	for _, part := range parts {
		if len(part) > 0 {
			initials += strings.ToUpper(string(part[0]))
		}
	}
	return initials
}

// RolesAsStrings returns roles as a slice of strings
func (u *UserContext) RolesAsStrings() []string {
	result := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		result[i] = string(role)
	}
	return result
}

// CompanyFilter represents the effective company filter for queries
// This is set by middleware based on user context and query parameters
type CompanyFilter struct {
	// CompanyID is the company to filter by (nil means no filter / all companies)
	CompanyID *domain.CompanyID
	// RequestedByGroepUser indicates if a Groep user explicitly requested a specific company
	RequestedByGroepUser bool
}

// WithCompanyFilter adds company filter to the context
func WithCompanyFilter(ctx context.Context, filter *CompanyFilter) context.Context {
	return context.WithValue(ctx, companyFilterKey, filter)
}

// CompanyFilterFromContext extracts company filter from the context
func CompanyFilterFromContext(ctx context.Context) (*CompanyFilter, bool) {
	filter, ok := ctx.Value(companyFilterKey).(*CompanyFilter)
	return filter, ok
}

// GetEffectiveCompanyFilter returns the company ID to filter queries by.
// Repositories use this to apply multi-tenant filtering.
// Returns nil if no filtering should be applied.
func GetEffectiveCompanyFilter(ctx context.Context) *domain.CompanyID {
	if filter, ok := CompanyFilterFromContext(ctx); ok && filter != nil {
		return filter.CompanyID
	}

	if userCtx, ok := FromContext(ctx); ok {
		return userCtx.GetCompanyFilter()
	}

	return nil
}
