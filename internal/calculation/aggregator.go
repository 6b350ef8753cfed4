package calculation

import (
	"github.com/groenwerk/offerte-api/internal/domain"
)

// Totalen is the aggregation result over an offerte's full line set
type Totalen struct {
	Materiaalkosten float64
	Arbeidskosten   float64
	Machinekosten   float64
	TotaalUren      float64
	Subtotaal       float64
	Marge           float64
	TotaalExBtw     float64
	Btw             float64
	TotaalInclBtw   float64
}

// Aggregate recomputes an offerte's totals from scratch. It must be run
// over the complete line set whenever any regel changes; there is no
// incremental update path.
func Aggregate(regels []domain.OfferteRegel, margePercentage, btwPercentage float64) Totalen {
	var t Totalen
	for _, r := range regels {
		switch r.RegelType {
		case domain.RegelTypeMateriaal:
			t.Materiaalkosten += r.Totaal
		case domain.RegelTypeArbeid:
			t.Arbeidskosten += r.Totaal
			t.TotaalUren += r.Hoeveelheid
		case domain.RegelTypeMachine:
			t.Machinekosten += r.Totaal
		}
	}

	t.Materiaalkosten = RoundBedrag(t.Materiaalkosten)
	t.Arbeidskosten = RoundBedrag(t.Arbeidskosten)
	t.Machinekosten = RoundBedrag(t.Machinekosten)
	t.Subtotaal = RoundBedrag(t.Materiaalkosten + t.Arbeidskosten + t.Machinekosten)
	t.Marge = RoundBedrag(t.Subtotaal * margePercentage / 100)
	t.TotaalExBtw = RoundBedrag(t.Subtotaal + t.Marge)
	t.Btw = RoundBedrag(t.TotaalExBtw * btwPercentage / 100)
	t.TotaalInclBtw = RoundBedrag(t.TotaalExBtw + t.Btw)
	return t
}
