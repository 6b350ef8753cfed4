package domain_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestGetCompanyPrefix tests the company prefix mapping
func TestGetCompanyPrefix(t *testing.T) {
	tests := []struct {
		name      string
		companyID domain.CompanyID
		expected  string
	}{
		{
			name:      "hoveniers returns HV",
			companyID: domain.CompanyHoveniers,
			expected:  "HV",
		},
		{
			name:      "groenonderhoud returns GO",
			companyID: domain.CompanyGroenonderhoud,
			expected:  "GO",
		},
		{
			name:      "boomverzorging returns BV",
			companyID: domain.CompanyBoomverzorging,
			expected:  "BV",
		},
		{
			name:      "groep returns GW",
			companyID: domain.CompanyGroep,
			expected:  "GW",
		},
		{
			name:      "unknown company defaults to GW",
			companyID: domain.CompanyID("unknown"),
			expected:  "GW",
		},
		{
			name:      "empty company defaults to GW",
			companyID: domain.CompanyID(""),
			expected:  "GW",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.GetCompanyPrefix(tc.companyID))
		})
	}
}

func TestIsValidCompanyID(t *testing.T) {
	assert.True(t, domain.IsValidCompanyID("groep"))
	assert.True(t, domain.IsValidCompanyID("hoveniers"))
	assert.True(t, domain.IsValidCompanyID("groenonderhoud"))
	assert.True(t, domain.IsValidCompanyID("boomverzorging"))
	assert.False(t, domain.IsValidCompanyID("all"))
	assert.False(t, domain.IsValidCompanyID(""))
	assert.False(t, domain.IsValidCompanyID("onbekend"))
}

func TestScope_ValidForType(t *testing.T) {
	tests := []struct {
		scope       domain.Scope
		offerteType domain.OfferteType
		valid       bool
	}{
		{domain.ScopeGrondwerk, domain.OfferteTypeAanleg, true},
		{domain.ScopeBestrating, domain.OfferteTypeAanleg, true},
		{domain.ScopeSpecials, domain.OfferteTypeAanleg, true},
		{domain.ScopeGrasOnderhoud, domain.OfferteTypeAanleg, false},
		{domain.ScopeHeggen, domain.OfferteTypeOnderhoud, true},
		{domain.ScopeBomen, domain.OfferteTypeOnderhoud, true},
		{domain.ScopeOverig, domain.OfferteTypeOnderhoud, true},
		{domain.ScopeGrondwerk, domain.OfferteTypeOnderhoud, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.scope)+"_"+string(tc.offerteType), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.scope.ValidForType(tc.offerteType))
		})
	}
}

func TestVoorraadItem_IsOnderMinimum(t *testing.T) {
	tests := []struct {
		name    string
		aantal  float64
		minimum float64
		want    bool
	}{
		{"above minimum", 50, 10, false},
		{"exactly at minimum", 10, 10, true},
		{"below minimum", 5, 10, true},
		{"no minimum configured", 0, 0, false},
		{"zero stock with minimum", 0, 10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := &domain.VoorraadItem{Aantal: tc.aantal, MinimumVoorraad: tc.minimum}
			assert.Equal(t, tc.want, item.IsOnderMinimum())
		})
	}
}

func TestCorrectieFactor_IsDefault(t *testing.T) {
	companyID := domain.CompanyHoveniers

	systemDefault := &domain.CorrectieFactor{FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt"}
	override := &domain.CorrectieFactor{CompanyID: &companyID, FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt"}

	assert.True(t, systemDefault.IsDefault())
	assert.False(t, override.IsDefault())
}

func TestUser_FullName(t *testing.T) {
	u := &domain.User{FirstName: "Jan", LastName: "de Vries", DisplayName: "jdv"}
	assert.Equal(t, "Jan de Vries", u.FullName())

	u = &domain.User{DisplayName: "Jan de Vries"}
	assert.Equal(t, "Jan de Vries", u.FullName())
}

func TestUser_HasRole(t *testing.T) {
	u := &domain.User{Roles: []string{string(domain.RoleCalculator), string(domain.RoleViewer)}}
	assert.True(t, u.HasRole(domain.RoleCalculator))
	assert.True(t, u.HasRole(domain.RoleViewer))
	assert.False(t, u.HasRole(domain.RoleSuperAdmin))
}
