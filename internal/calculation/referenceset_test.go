package calculation_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func companyPtr(id domain.CompanyID) *domain.CompanyID {
	return &id
}

func TestReferenceSet_CorrectieFactorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		factoren []domain.CorrectieFactor
		expected float64
	}{
		{
			name: "company override wins over system default",
			factoren: []domain.CorrectieFactor{
				{FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.2},
				{CompanyID: companyPtr(domain.CompanyHoveniers), FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.35},
			},
			expected: 1.35,
		},
		{
			name: "override wins regardless of record order",
			factoren: []domain.CorrectieFactor{
				{CompanyID: companyPtr(domain.CompanyHoveniers), FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.35},
				{FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.2},
			},
			expected: 1.35,
		},
		{
			name: "system default used when no override exists",
			factoren: []domain.CorrectieFactor{
				{FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.2},
			},
			expected: 1.2,
		},
		{
			name:     "neutral 1.0 when no record exists",
			factoren: nil,
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := calculation.NewReferenceSet(nil, tt.factoren)
			assert.Equal(t, tt.expected, ref.CorrectieFactor(domain.FactorTerreintoegang, "beperkt"))
		})
	}
}

func TestReferenceSet_NormUur(t *testing.T) {
	ref := calculation.NewReferenceSet([]domain.NormUur{
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGrondwerk, Activiteit: "graven_standaard", UrenPerEenheid: 0.5},
	}, nil)

	assert.Equal(t, 0.5, ref.NormUur(domain.ScopeGrondwerk, "graven_standaard"))

	// A missing rate resolves to 0, never an error or an invented value.
	assert.Equal(t, 0.0, ref.NormUur(domain.ScopeGrondwerk, "graven_diep"))
	assert.Equal(t, 0.0, ref.NormUur(domain.ScopeHeggen, "knippen"))
}
