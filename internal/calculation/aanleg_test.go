package calculation_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReferenceSet builds a snapshot with the standard seed rates used
// across the calculator tests.
func testReferenceSet() *calculation.ReferenceSet {
	normUren := []domain.NormUur{
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGrondwerk, Activiteit: "graven_standaard", UrenPerEenheid: 0.5},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGrondwerk, Activiteit: "graven_diep", UrenPerEenheid: 0.8},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGrondwerk, Activiteit: "grond_laden", UrenPerEenheid: 0.2},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeBestrating, Activiteit: "leggen", UrenPerEenheid: 0.75},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeBestrating, Activiteit: "zandbed", UrenPerEenheid: 0.1},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeBestrating, Activiteit: "opsluitbanden", UrenPerEenheid: 0.3},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeBorders, Activiteit: "beplanten", UrenPerEenheid: 0.4},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeBorders, Activiteit: "grond_verbeteren", UrenPerEenheid: 0.15},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGras, Activiteit: "zoden_leggen", UrenPerEenheid: 0.2},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeGras, Activiteit: "zaaien", UrenPerEenheid: 0.05},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeHoutwerk, Activiteit: "plaatsen_schutting", UrenPerEenheid: 1.5},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeWaterElektra, Activiteit: "aansluitpunt", UrenPerEenheid: 2.0},
		{CompanyID: domain.CompanyHoveniers, Scope: domain.ScopeWaterElektra, Activiteit: "sleuven_graven", UrenPerEenheid: 0.35},
		{CompanyID: domain.CompanyGroenonderhoud, Scope: domain.ScopeGrasOnderhoud, Activiteit: "maaien", UrenPerEenheid: 0.02},
		{CompanyID: domain.CompanyGroenonderhoud, Scope: domain.ScopeGrasOnderhoud, Activiteit: "verticuteren", UrenPerEenheid: 0.04},
		{CompanyID: domain.CompanyGroenonderhoud, Scope: domain.ScopeGrasOnderhoud, Activiteit: "kanten_steken", UrenPerEenheid: 0.05},
		{CompanyID: domain.CompanyGroenonderhoud, Scope: domain.ScopeBordersOnderhoud, Activiteit: "onkruid_wieden", UrenPerEenheid: 0.25},
		{CompanyID: domain.CompanyGroenonderhoud, Scope: domain.ScopeHeggen, Activiteit: "knippen", UrenPerEenheid: 0.1},
		{CompanyID: domain.CompanyBoomverzorging, Scope: domain.ScopeBomen, Activiteit: "snoeien", UrenPerEenheid: 1.5},
	}
	factoren := []domain.CorrectieFactor{
		{FactorType: domain.FactorTerreintoegang, FactorWaarde: "normaal", Factor: 1.0},
		{FactorType: domain.FactorTerreintoegang, FactorWaarde: "beperkt", Factor: 1.2},
		{FactorType: domain.FactorTerreintoegang, FactorWaarde: "zeer_beperkt", Factor: 1.5},
		{FactorType: domain.FactorGraafdiepte, FactorWaarde: "standaard", Factor: 1.0},
		{FactorType: domain.FactorGraafdiepte, FactorWaarde: "diep", Factor: 1.25},
		{FactorType: domain.FactorOnkruiddruk, FactorWaarde: "zwaar", Factor: 1.4},
		{FactorType: domain.FactorComplexiteit, FactorWaarde: "complex", Factor: 1.6},
	}
	return calculation.NewReferenceSet(normUren, factoren)
}

func TestCalculateGrondwerk_StandaardScenario(t *testing.T) {
	ref := testReferenceSet()
	params := domain.GrondwerkParams{
		OppervlakteM2: 25,
		Graafdiepte:   domain.GraafdiepteStandaard,
		AfvoerGrond:   false,
	}

	regels, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangBeperkt, 45)
	require.NoError(t, err)
	require.Len(t, regels, 2)

	// 25 m2 x 0.5 h/m2 x 1.2 toegang x 1.0 diepte = 15.0 h at 45/h
	arbeid := regels[0]
	assert.Equal(t, domain.RegelTypeArbeid, arbeid.RegelType)
	assert.Equal(t, 15.0, arbeid.Hoeveelheid)
	assert.Equal(t, 45.0, arbeid.PrijsPerEenheid)
	assert.Equal(t, 675.0, arbeid.Totaal)

	// Above 20 m2 the machine line kicks in: 0.05 h/m2 x 25 = 1.25 h at 75/h
	machine := regels[1]
	assert.Equal(t, domain.RegelTypeMachine, machine.RegelType)
	assert.Equal(t, 1.25, machine.Hoeveelheid)
	assert.Equal(t, 75.0, machine.PrijsPerEenheid)
	assert.Equal(t, 93.75, machine.Totaal)
}

func TestCalculateGrondwerk_GeenMachineOnderDrempel(t *testing.T) {
	ref := testReferenceSet()
	params := domain.GrondwerkParams{
		OppervlakteM2: 20,
		Graafdiepte:   domain.GraafdiepteStandaard,
	}

	regels, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangNormaal, 45)
	require.NoError(t, err)
	require.Len(t, regels, 1)
	assert.Equal(t, domain.RegelTypeArbeid, regels[0].RegelType)
}

func TestCalculateGrondwerk_AfvoerGrond(t *testing.T) {
	ref := testReferenceSet()
	params := domain.GrondwerkParams{
		OppervlakteM2: 10,
		Graafdiepte:   domain.GraafdiepteStandaard,
		AfvoerGrond:   true,
	}

	regels, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangNormaal, 45)
	require.NoError(t, err)
	require.Len(t, regels, 3)

	// volume = 10 m2 x 0.25 m = 2.5 m3
	afvoer := regels[2]
	assert.Equal(t, domain.RegelTypeMateriaal, afvoer.RegelType)
	assert.Equal(t, "m³", afvoer.Eenheid)
	assert.Equal(t, 2.5, afvoer.Hoeveelheid)
	assert.Equal(t, 87.5, afvoer.Totaal)

	// loading labor = 2.5 m3 x 0.2 h/m3 = 0.5 h
	laden := regels[1]
	assert.Equal(t, domain.RegelTypeArbeid, laden.RegelType)
	assert.Equal(t, 0.5, laden.Hoeveelheid)
}

func TestCalculateGrondwerk_OngeldigeInvoer(t *testing.T) {
	ref := testReferenceSet()

	_, err := calculation.CalculateGrondwerk(ref, domain.GrondwerkParams{OppervlakteM2: 0, Graafdiepte: domain.GraafdiepteStandaard}, domain.ToegangNormaal, 45)
	assert.Error(t, err)

	_, err = calculation.CalculateGrondwerk(ref, domain.GrondwerkParams{OppervlakteM2: -5, Graafdiepte: domain.GraafdiepteStandaard}, domain.ToegangNormaal, 45)
	assert.Error(t, err)

	_, err = calculation.CalculateGrondwerk(ref, domain.GrondwerkParams{OppervlakteM2: 10, Graafdiepte: "bodemloos"}, domain.ToegangNormaal, 45)
	assert.Error(t, err)
}

func TestCalculateGrondwerk_MissendeNormUurGeeftNulregel(t *testing.T) {
	// An empty reference set must not fail the calculation; the labor
	// line comes out at 0 hours and the caller decides what to do.
	ref := calculation.NewReferenceSet(nil, nil)
	params := domain.GrondwerkParams{OppervlakteM2: 10, Graafdiepte: domain.GraafdiepteStandaard}

	regels, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangNormaal, 45)
	require.NoError(t, err)
	require.NotEmpty(t, regels)
	assert.Equal(t, 0.0, regels[0].Hoeveelheid)
	assert.Equal(t, 0.0, regels[0].Totaal)
}

func TestCalculateGrondwerk_Idempotent(t *testing.T) {
	ref := testReferenceSet()
	params := domain.GrondwerkParams{
		OppervlakteM2: 33.5,
		Graafdiepte:   domain.GraafdiepteDiep,
		AfvoerGrond:   true,
	}

	eerste, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangZeerBeperkt, 47.5)
	require.NoError(t, err)
	tweede, err := calculation.CalculateGrondwerk(ref, params, domain.ToegangZeerBeperkt, 47.5)
	require.NoError(t, err)

	assert.Equal(t, eerste, tweede)
}

func TestCalculateBestrating(t *testing.T) {
	ref := testReferenceSet()
	params := domain.BestratingParams{
		OppervlakteM2:       12,
		Materiaal:           domain.MateriaalKlinkers,
		Zandbed:             true,
		Opsluitbanden:       true,
		OpsluitbandenMeters: 14,
	}

	regels, err := calculation.CalculateBestrating(ref, params, domain.ToegangNormaal, 45)
	require.NoError(t, err)
	require.Len(t, regels, 6)

	materiaal := regels[0]
	assert.Equal(t, domain.RegelTypeMateriaal, materiaal.RegelType)
	assert.Equal(t, 12.0, materiaal.Hoeveelheid)
	assert.Equal(t, 32.5, materiaal.PrijsPerEenheid)
	assert.Equal(t, 390.0, materiaal.Totaal)

	// 12 m2 x 0.75 h/m2 = 9.0 h
	leggen := regels[1]
	assert.Equal(t, domain.RegelTypeArbeid, leggen.RegelType)
	assert.Equal(t, 9.0, leggen.Hoeveelheid)
}

func TestCalculateBestrating_OpsluitbandenZonderLengte(t *testing.T) {
	ref := testReferenceSet()
	params := domain.BestratingParams{
		OppervlakteM2: 12,
		Materiaal:     domain.MateriaalTegels,
		Opsluitbanden: true,
	}

	_, err := calculation.CalculateBestrating(ref, params, domain.ToegangNormaal, 45)
	assert.Error(t, err)
}

func TestCalculateGras_Methodes(t *testing.T) {
	ref := testReferenceSet()

	tests := []struct {
		name            string
		methode         domain.GrasAanlegMethode
		expectMateriaal float64
	}{
		{"zoden", domain.GrasMethodeZoden, 7.25},
		{"zaaien", domain.GrasMethodeZaaien, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regels, err := calculation.CalculateGras(ref, domain.GrasParams{OppervlakteM2: 40, Methode: tt.methode}, domain.ToegangNormaal, 45)
			require.NoError(t, err)
			require.Len(t, regels, 2)
			assert.Equal(t, tt.expectMateriaal, regels[0].PrijsPerEenheid)
		})
	}
}

func TestCalculateWaterElektra_ZonderGraafwerk(t *testing.T) {
	ref := testReferenceSet()
	params := domain.WaterElektraParams{AantalPunten: 3}

	regels, err := calculation.CalculateWaterElektra(ref, params, domain.ToegangNormaal, 45)
	require.NoError(t, err)
	require.Len(t, regels, 2)

	// 3 punten x 2.0 h = 6.0 h
	assert.Equal(t, 6.0, regels[1].Hoeveelheid)
}

func TestCalculateSpecials(t *testing.T) {
	ref := testReferenceSet()
	params := domain.SpecialsParams{
		Omschrijving:    "Vijver aanleggen",
		GeschatteUren:   10.4,
		Materiaalkosten: 850,
	}

	regels, err := calculation.CalculateSpecials(ref, params, domain.ToegangBeperkt, 45)
	require.NoError(t, err)
	require.Len(t, regels, 2)

	// 10.4 x 1.2 = 12.48, rounded to the nearest quarter = 12.5
	assert.Equal(t, 12.5, regels[0].Hoeveelheid)
	assert.Equal(t, 850.0, regels[1].Totaal)
}

func TestRoundingInvariant(t *testing.T) {
	// For every generated line: totaal == round(hoeveelheid x prijs, 2)
	// and labor hours land on quarter-hour boundaries.
	ref := testReferenceSet()
	params := domain.BestratingParams{
		OppervlakteM2:       17.3,
		Materiaal:           domain.MateriaalNatuursteen,
		Zandbed:             true,
		Opsluitbanden:       true,
		OpsluitbandenMeters: 9.7,
	}

	regels, err := calculation.CalculateBestrating(ref, params, domain.ToegangZeerBeperkt, 47.25)
	require.NoError(t, err)

	for _, r := range regels {
		assert.Equal(t, calculation.RoundBedrag(r.Hoeveelheid*r.PrijsPerEenheid), r.Totaal,
			"regel %q", r.Omschrijving)
		if r.RegelType == domain.RegelTypeArbeid {
			assert.Equal(t, calculation.RoundKwartier(r.Hoeveelheid), r.Hoeveelheid,
				"arbeidsuren moeten op kwartieren liggen: %q", r.Omschrijving)
		}
	}
}
