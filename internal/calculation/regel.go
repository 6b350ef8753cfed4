package calculation

import (
	"github.com/groenwerk/offerte-api/internal/domain"
)

// Line constructors apply the rounding policy at the point a value enters
// a regel: hours to quarters, quantities to 2 decimals, totals to 2
// decimals. The total is computed from the stored quantity and unit price
// so that totaal == round(hoeveelheid * prijsPerEenheid, 2) always holds.

func arbeidsRegel(scope domain.Scope, omschrijving string, uren, uurtarief float64) domain.OfferteRegel {
	hoeveelheid := RoundKwartier(uren)
	prijs := RoundBedrag(uurtarief)
	return domain.OfferteRegel{
		Scope:           scope,
		Omschrijving:    omschrijving,
		Eenheid:         "uur",
		Hoeveelheid:     hoeveelheid,
		PrijsPerEenheid: prijs,
		Totaal:          RoundBedrag(hoeveelheid * prijs),
		RegelType:       domain.RegelTypeArbeid,
	}
}

func materiaalRegel(scope domain.Scope, omschrijving, eenheid string, hoeveelheid, prijsPerEenheid float64) domain.OfferteRegel {
	afgerond := RoundHoeveelheid(hoeveelheid)
	prijs := RoundBedrag(prijsPerEenheid)
	return domain.OfferteRegel{
		Scope:           scope,
		Omschrijving:    omschrijving,
		Eenheid:         eenheid,
		Hoeveelheid:     afgerond,
		PrijsPerEenheid: prijs,
		Totaal:          RoundBedrag(afgerond * prijs),
		RegelType:       domain.RegelTypeMateriaal,
	}
}

func machineRegel(scope domain.Scope, omschrijving string, uren, uurtarief float64) domain.OfferteRegel {
	hoeveelheid := RoundKwartier(uren)
	prijs := RoundBedrag(uurtarief)
	return domain.OfferteRegel{
		Scope:           scope,
		Omschrijving:    omschrijving,
		Eenheid:         "uur",
		Hoeveelheid:     hoeveelheid,
		PrijsPerEenheid: prijs,
		Totaal:          RoundBedrag(hoeveelheid * prijs),
		RegelType:       domain.RegelTypeMachine,
	}
}
