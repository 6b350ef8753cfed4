package calculation_test

import (
	"testing"
	"time"

	"github.com/groenwerk/offerte-api/internal/calculation"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dag(d string) time.Time {
	t, err := time.Parse(time.DateOnly, d)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVergelijk_ScopeUnie(t *testing.T) {
	// Plan {A:10, B:5} against actuals {B:20, C:3} must produce the
	// deviation map {A:-10, B:15, C:3} over the union of scopes.
	plan := calculation.Voorcalculatie{
		TotaalUren: 15,
		UrenPerScope: map[domain.Scope]float64{
			domain.ScopeGrondwerk:  10,
			domain.ScopeBestrating: 5,
		},
	}
	uren := []domain.Urenregistratie{
		{Scope: domain.ScopeBestrating, Uren: 20, Datum: dag("2026-03-02")},
		{Scope: domain.ScopeBorders, Uren: 3, Datum: dag("2026-03-03")},
	}

	res := calculation.Vergelijk(plan, uren, nil)

	require.Len(t, res.PerScope, 3)
	perScope := make(map[domain.Scope]calculation.ScopeAfwijking)
	for _, s := range res.PerScope {
		perScope[s.Scope] = s
	}

	assert.Equal(t, -10.0, perScope[domain.ScopeGrondwerk].AfwijkingUren)
	assert.Equal(t, 15.0, perScope[domain.ScopeBestrating].AfwijkingUren)
	assert.Equal(t, 3.0, perScope[domain.ScopeBorders].AfwijkingUren)

	// A scope only in the actuals counts as planned 0.
	assert.Equal(t, 0.0, perScope[domain.ScopeBorders].GeplandeUren)
	assert.Equal(t, 3.0, perScope[domain.ScopeBorders].WerkelijkeUren)
}

func TestVergelijk_TotalenEnWerkdagen(t *testing.T) {
	plan := calculation.Voorcalculatie{
		TotaalUren:   20,
		UrenPerScope: map[domain.Scope]float64{domain.ScopeGrondwerk: 20},
	}
	uren := []domain.Urenregistratie{
		{Scope: domain.ScopeGrondwerk, Uren: 8, Datum: dag("2026-03-02")},
		{Scope: domain.ScopeGrondwerk, Uren: 8, Datum: dag("2026-03-03")},
		{Scope: domain.ScopeGrondwerk, Uren: 6, Datum: dag("2026-03-03")},
	}
	machines := []domain.Machinegebruik{
		{Machine: "minigraver", Uren: 4, UurTarief: 75, Kosten: 300, Datum: dag("2026-03-04")},
	}

	res := calculation.Vergelijk(plan, uren, machines)

	assert.Equal(t, 22.0, res.WerkelijkeUren)
	assert.Equal(t, 2.0, res.AfwijkingUren)
	assert.Equal(t, 10.0, res.AfwijkingPercentage)
	assert.Equal(t, 300.0, res.WerkelijkeMachinekosten)
	// Distinct calendar days, machine days included.
	assert.Equal(t, 3, res.Werkdagen)
}

func TestVergelijk_AfwijkingPercentageAfronding(t *testing.T) {
	plan := calculation.Voorcalculatie{
		TotaalUren:   12,
		UrenPerScope: map[domain.Scope]float64{domain.ScopeHeggen: 12},
	}
	uren := []domain.Urenregistratie{
		{Scope: domain.ScopeHeggen, Uren: 13, Datum: dag("2026-04-01")},
	}

	res := calculation.Vergelijk(plan, uren, nil)

	// (13-12)/12 = 8.333..% rounded to 1 decimal
	assert.Equal(t, 8.3, res.AfwijkingPercentage)
}

func TestVergelijk_LeegPlanMetUren(t *testing.T) {
	res := calculation.Vergelijk(calculation.Voorcalculatie{}, []domain.Urenregistratie{
		{Scope: domain.ScopeOverig, Uren: 4, Datum: dag("2026-04-01")},
	}, nil)

	assert.Equal(t, 100.0, res.AfwijkingPercentage)
	assert.Equal(t, 4.0, res.WerkelijkeUren)
}

func TestVoorcalculatieFromRegels(t *testing.T) {
	regels := []domain.OfferteRegel{
		{Scope: domain.ScopeGrondwerk, RegelType: domain.RegelTypeArbeid, Hoeveelheid: 15},
		{Scope: domain.ScopeGrondwerk, RegelType: domain.RegelTypeMachine, Hoeveelheid: 1.25},
		{Scope: domain.ScopeBestrating, RegelType: domain.RegelTypeArbeid, Hoeveelheid: 9},
		{Scope: domain.ScopeBestrating, RegelType: domain.RegelTypeMateriaal, Hoeveelheid: 12},
	}

	plan := calculation.VoorcalculatieFromRegels(regels)

	assert.Equal(t, 24.0, plan.TotaalUren)
	assert.Equal(t, 15.0, plan.UrenPerScope[domain.ScopeGrondwerk])
	assert.Equal(t, 9.0, plan.UrenPerScope[domain.ScopeBestrating])
}
