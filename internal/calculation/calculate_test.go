package calculation_test

import (
	"encoding/json"
	"testing"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopeInput(t *testing.T, scope domain.Scope, params interface{}) domain.ScopeInput {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	return domain.ScopeInput{Scope: scope, Params: raw}
}

func TestCalculate_MeerdereScopes(t *testing.T) {
	ref := testReferenceSet()
	inputs := []domain.ScopeInput{
		scopeInput(t, domain.ScopeGrondwerk, domain.GrondwerkParams{OppervlakteM2: 25, Graafdiepte: domain.GraafdiepteStandaard}),
		scopeInput(t, domain.ScopeGras, domain.GrasParams{OppervlakteM2: 40, Methode: domain.GrasMethodeZaaien}),
	}

	regels, err := calculation.Calculate(ref, domain.OfferteTypeAanleg, inputs, domain.ToegangBeperkt, 45)
	require.NoError(t, err)
	require.Len(t, regels, 4)

	// Lines are numbered in input order.
	for i, r := range regels {
		assert.Equal(t, i, r.Volgorde)
	}
	assert.Equal(t, domain.ScopeGrondwerk, regels[0].Scope)
	assert.Equal(t, domain.ScopeGras, regels[3].Scope)
}

func TestCalculate_ScopePastNietBijType(t *testing.T) {
	ref := testReferenceSet()
	inputs := []domain.ScopeInput{
		scopeInput(t, domain.ScopeHeggen, domain.HeggenParams{LengteMeters: 10, HoogteMeters: 2}),
	}

	_, err := calculation.Calculate(ref, domain.OfferteTypeAanleg, inputs, domain.ToegangNormaal, 45)
	assert.Error(t, err)
}

func TestCalculate_OngeldigeParameters(t *testing.T) {
	ref := testReferenceSet()
	inputs := []domain.ScopeInput{
		{Scope: domain.ScopeGrondwerk, Params: json.RawMessage(`{"oppervlakteM2": "veel"}`)},
	}

	_, err := calculation.Calculate(ref, domain.OfferteTypeAanleg, inputs, domain.ToegangNormaal, 45)
	assert.Error(t, err)
}

func TestCalculate_OngeldigUurtarief(t *testing.T) {
	ref := testReferenceSet()
	_, err := calculation.Calculate(ref, domain.OfferteTypeAanleg, nil, domain.ToegangNormaal, 0)
	assert.Error(t, err)
}

func TestCalculate_IdempotentInclusiefTotalen(t *testing.T) {
	ref := testReferenceSet()
	inputs := []domain.ScopeInput{
		scopeInput(t, domain.ScopeGrasOnderhoud, domain.GrasOnderhoudParams{OppervlakteM2: 250, Maaien: true, Verticuteren: true}),
		scopeInput(t, domain.ScopeHeggen, domain.HeggenParams{LengteMeters: 22.5, HoogteMeters: 1.8, AfvoerSnoeiafval: true}),
	}

	eerste, err := calculation.Calculate(ref, domain.OfferteTypeOnderhoud, inputs, domain.ToegangBeperkt, 42.5)
	require.NoError(t, err)
	tweede, err := calculation.Calculate(ref, domain.OfferteTypeOnderhoud, inputs, domain.ToegangBeperkt, 42.5)
	require.NoError(t, err)

	assert.Equal(t, eerste, tweede)
	assert.Equal(t, calculation.Aggregate(eerste, 10, 21), calculation.Aggregate(tweede, 10, 21))
}
