package auth_test

import (
	"context"
	"testing"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_RoundTrip(t *testing.T) {
	userCtx := &auth.UserContext{
		UserID:      "user-1",
		DisplayName: "Jan de Vries",
		Email:       "jan@groenwerk.nl",
		Roles:       []domain.UserRoleType{domain.RoleCalculator},
		CompanyID:   domain.CompanyHoveniers,
	}

	ctx := auth.WithUserContext(context.Background(), userCtx)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userCtx, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestUserContext_Roles(t *testing.T) {
	userCtx := &auth.UserContext{
		Roles: []domain.UserRoleType{domain.RoleCompanyAdmin, domain.RoleCalculator},
	}

	assert.True(t, userCtx.HasRole(domain.RoleCompanyAdmin))
	assert.True(t, userCtx.HasRole(domain.RoleCalculator))
	assert.False(t, userCtx.HasRole(domain.RoleSuperAdmin))
	assert.True(t, userCtx.HasAnyRole(domain.RoleViewer, domain.RoleCalculator))
	assert.False(t, userCtx.HasAnyRole(domain.RoleViewer, domain.RoleUitvoerder))
	assert.True(t, userCtx.IsCompanyAdmin())
	assert.False(t, userCtx.IsSuperAdmin())
}

func TestUserContext_CanAccessCompany(t *testing.T) {
	tests := []struct {
		name    string
		userCtx *auth.UserContext
		target  domain.CompanyID
		want    bool
	}{
		{
			name: "super admin accesses any company",
			userCtx: &auth.UserContext{
				Roles:     []domain.UserRoleType{domain.RoleSuperAdmin},
				CompanyID: domain.CompanyHoveniers,
			},
			target: domain.CompanyBoomverzorging,
			want:   true,
		},
		{
			name: "groep user accesses subsidiary",
			userCtx: &auth.UserContext{
				Roles:     []domain.UserRoleType{domain.RoleCalculator},
				CompanyID: domain.CompanyGroep,
			},
			target: domain.CompanyGroenonderhoud,
			want:   true,
		},
		{
			name: "subsidiary user accesses own company",
			userCtx: &auth.UserContext{
				Roles:     []domain.UserRoleType{domain.RoleCalculator},
				CompanyID: domain.CompanyHoveniers,
			},
			target: domain.CompanyHoveniers,
			want:   true,
		},
		{
			name: "subsidiary user denied other company",
			userCtx: &auth.UserContext{
				Roles:     []domain.UserRoleType{domain.RoleCalculator},
				CompanyID: domain.CompanyHoveniers,
			},
			target: domain.CompanyBoomverzorging,
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.userCtx.CanAccessCompany(tc.target))
		})
	}
}

func TestGetEffectiveCompanyFilter(t *testing.T) {
	hoveniers := domain.CompanyHoveniers

	t.Run("explicit filter wins", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
			Roles:     []domain.UserRoleType{domain.RoleCalculator},
			CompanyID: domain.CompanyGroep,
		})
		ctx = auth.WithCompanyFilter(ctx, &auth.CompanyFilter{
			CompanyID:            &hoveniers,
			RequestedByGroepUser: true,
		})

		got := auth.GetEffectiveCompanyFilter(ctx)
		require.NotNil(t, got)
		assert.Equal(t, domain.CompanyHoveniers, *got)
	})

	t.Run("groep user without filter sees everything", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
			Roles:     []domain.UserRoleType{domain.RoleCalculator},
			CompanyID: domain.CompanyGroep,
		})

		assert.Nil(t, auth.GetEffectiveCompanyFilter(ctx))
	})

	t.Run("subsidiary user falls back to own company", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
			Roles:     []domain.UserRoleType{domain.RoleCalculator},
			CompanyID: domain.CompanyHoveniers,
		})

		got := auth.GetEffectiveCompanyFilter(ctx)
		require.NotNil(t, got)
		assert.Equal(t, domain.CompanyHoveniers, *got)
	})

	t.Run("no user context means no filter", func(t *testing.T) {
		assert.Nil(t, auth.GetEffectiveCompanyFilter(context.Background()))
	})
}

func TestUserContext_HasPermission(t *testing.T) {
	viewer := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleViewer}}
	calculator := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleCalculator}}
	superAdmin := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleSuperAdmin}}

	assert.True(t, viewer.HasPermission(domain.PermissionOffertesRead))
	assert.False(t, viewer.HasPermission(domain.PermissionOffertesWrite))
	assert.True(t, calculator.HasPermission(domain.PermissionOffertesWrite))
	assert.False(t, calculator.HasPermission(domain.PermissionUsersWrite))
	assert.True(t, superAdmin.HasPermission(domain.PermissionUsersWrite))
}
