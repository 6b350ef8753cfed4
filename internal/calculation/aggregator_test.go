package calculation_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	regels := []domain.OfferteRegel{
		{RegelType: domain.RegelTypeMateriaal, Hoeveelheid: 12, PrijsPerEenheid: 32.5, Totaal: 390},
		{RegelType: domain.RegelTypeArbeid, Hoeveelheid: 9, PrijsPerEenheid: 45, Totaal: 405},
		{RegelType: domain.RegelTypeArbeid, Hoeveelheid: 2.25, PrijsPerEenheid: 45, Totaal: 101.25},
		{RegelType: domain.RegelTypeMachine, Hoeveelheid: 1.25, PrijsPerEenheid: 75, Totaal: 93.75},
	}

	totalen := calculation.Aggregate(regels, 10, 21)

	assert.Equal(t, 390.0, totalen.Materiaalkosten)
	assert.Equal(t, 506.25, totalen.Arbeidskosten)
	assert.Equal(t, 93.75, totalen.Machinekosten)
	assert.Equal(t, 11.25, totalen.TotaalUren)
	assert.Equal(t, 990.0, totalen.Subtotaal)
	assert.Equal(t, 99.0, totalen.Marge)
	assert.Equal(t, 1089.0, totalen.TotaalExBtw)
	assert.Equal(t, 228.69, totalen.Btw)
	assert.Equal(t, 1317.69, totalen.TotaalInclBtw)
}

func TestAggregate_Identiteiten(t *testing.T) {
	tests := []struct {
		name     string
		margePct float64
		btwPct   float64
	}{
		{"geen marge geen btw", 0, 0},
		{"standaard", 10, 21},
		{"hoge marge laag tarief", 35, 9},
	}

	regels := []domain.OfferteRegel{
		{RegelType: domain.RegelTypeMateriaal, Totaal: 123.45},
		{RegelType: domain.RegelTypeArbeid, Hoeveelheid: 7.75, Totaal: 348.75},
		{RegelType: domain.RegelTypeMachine, Totaal: 93.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totalen := calculation.Aggregate(regels, tt.margePct, tt.btwPct)

			assert.Equal(t, totalen.Materiaalkosten+totalen.Arbeidskosten+totalen.Machinekosten, totalen.Subtotaal)
			assert.Equal(t, calculation.RoundBedrag(totalen.Subtotaal+totalen.Marge), totalen.TotaalExBtw)
			assert.Equal(t, calculation.RoundBedrag(totalen.TotaalExBtw+totalen.Btw), totalen.TotaalInclBtw)
		})
	}
}

func TestAggregate_Leeg(t *testing.T) {
	totalen := calculation.Aggregate(nil, 10, 21)
	require.Equal(t, calculation.Totalen{}, totalen)
}

func TestAggregate_VolledigeHerberekening(t *testing.T) {
	regels := []domain.OfferteRegel{
		{RegelType: domain.RegelTypeArbeid, Hoeveelheid: 4, Totaal: 180},
	}
	eerste := calculation.Aggregate(regels, 10, 21)

	regels = append(regels, domain.OfferteRegel{RegelType: domain.RegelTypeMateriaal, Totaal: 100})
	tweede := calculation.Aggregate(regels, 10, 21)

	assert.Equal(t, eerste.Subtotaal+100, tweede.Subtotaal)
}
