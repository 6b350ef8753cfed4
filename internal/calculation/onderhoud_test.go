package calculation_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGrasOnderhoud_Subscopes(t *testing.T) {
	ref := testReferenceSet()

	tests := []struct {
		name        string
		params      domain.GrasOnderhoudParams
		expectLines int
	}{
		{
			name:        "alleen maaien",
			params:      domain.GrasOnderhoudParams{OppervlakteM2: 200, Maaien: true},
			expectLines: 1,
		},
		{
			name: "alle werkzaamheden",
			params: domain.GrasOnderhoudParams{
				OppervlakteM2: 200,
				Maaien:        true,
				Verticuteren:  true,
				KantenSteken:  true,
				KantenMeters:  35,
			},
			expectLines: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regels, err := calculation.CalculateGrasOnderhoud(ref, tt.params, domain.ToegangNormaal, 42)
			require.NoError(t, err)
			assert.Len(t, regels, tt.expectLines)
		})
	}
}

func TestCalculateGrasOnderhoud_ZonderWerkzaamheden(t *testing.T) {
	ref := testReferenceSet()
	_, err := calculation.CalculateGrasOnderhoud(ref, domain.GrasOnderhoudParams{OppervlakteM2: 100}, domain.ToegangNormaal, 42)
	assert.Error(t, err)
}

func TestCalculateBordersOnderhoud_Onkruiddruk(t *testing.T) {
	ref := testReferenceSet()

	// 10 m2 x 0.25 h/m2 x 1.4 zwaar = 3.5 h
	regels, err := calculation.CalculateBordersOnderhoud(ref,
		domain.BordersOnderhoudParams{OppervlakteM2: 10, Onkruiddruk: domain.OnkruiddrukZwaar},
		domain.ToegangNormaal, 42)
	require.NoError(t, err)
	require.Len(t, regels, 1)
	assert.Equal(t, 3.5, regels[0].Hoeveelheid)
}

func TestCalculateHeggen(t *testing.T) {
	ref := testReferenceSet()
	params := domain.HeggenParams{
		LengteMeters:     30,
		HoogteMeters:     2,
		AfvoerSnoeiafval: true,
	}

	regels, err := calculation.CalculateHeggen(ref, params, domain.ToegangNormaal, 42)
	require.NoError(t, err)
	require.Len(t, regels, 2)

	// knipvlak 60 m2 x 0.1 h/m2 = 6.0 h
	assert.Equal(t, 6.0, regels[0].Hoeveelheid)

	// snoeiafval 60 m2 x 0.02 m3/m2 = 1.2 m3 at 25/m3
	afvoer := regels[1]
	assert.Equal(t, domain.RegelTypeMateriaal, afvoer.RegelType)
	assert.Equal(t, 1.2, afvoer.Hoeveelheid)
	assert.Equal(t, 30.0, afvoer.Totaal)
}

func TestCalculateBomen_Complexiteit(t *testing.T) {
	ref := testReferenceSet()
	params := domain.BomenParams{
		Aantal:       4,
		Complexiteit: domain.SnoeiComplex,
	}

	// 4 x 1.5 h x 1.6 complex = 9.6 h, rounded to 9.5
	regels, err := calculation.CalculateBomen(ref, params, domain.ToegangNormaal, 48)
	require.NoError(t, err)
	require.Len(t, regels, 1)
	assert.Equal(t, 9.5, regels[0].Hoeveelheid)
}

func TestCalculateOverig(t *testing.T) {
	ref := testReferenceSet()

	regels, err := calculation.CalculateOverig(ref,
		domain.OverigParams{Omschrijving: "Bladruimen najaar", GeschatteUren: 3},
		domain.ToegangNormaal, 42)
	require.NoError(t, err)
	require.Len(t, regels, 1)
	assert.Equal(t, 3.0, regels[0].Hoeveelheid)
	assert.Equal(t, 126.0, regels[0].Totaal)

	_, err = calculation.CalculateOverig(ref, domain.OverigParams{GeschatteUren: 3}, domain.ToegangNormaal, 42)
	assert.Error(t, err)
}
