package calculation

import (
	"fmt"

	"github.com/groenwerk/offerte-api/internal/domain"
)

// Pruning waste volume heuristics, m³ per unit of work.
const (
	snoeiafvalPerM2Heg = 0.02
	snoeiafvalPerBoom  = 0.30
)

// CalculateGrasOnderhoud prices lawn maintenance: mowing, scarifying and
// edge cutting are independent sub-scopes, each emitting its own labor
// line when selected.
func CalculateGrasOnderhoud(ref *ReferenceSet, params domain.GrasOnderhoudParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("gras_onderhoud: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Maaien && !params.Verticuteren && !params.KantenSteken {
		return nil, fmt.Errorf("gras_onderhoud: minimaal één werkzaamheid is vereist")
	}
	if params.KantenSteken && params.KantenMeters <= 0 {
		return nil, fmt.Errorf("gras_onderhoud: kanten steken vereist een lengte groter dan 0")
	}

	toegangsFactor := ref.ToegangsFactor(toegang)

	var regels []domain.OfferteRegel
	if params.Maaien {
		uren := params.OppervlakteM2 * ref.NormUur(domain.ScopeGrasOnderhoud, "maaien") * toegangsFactor
		regels = append(regels, arbeidsRegel(domain.ScopeGrasOnderhoud, "Gazon maaien", uren, uurtarief))
	}
	if params.Verticuteren {
		uren := params.OppervlakteM2 * ref.NormUur(domain.ScopeGrasOnderhoud, "verticuteren") * toegangsFactor
		regels = append(regels, arbeidsRegel(domain.ScopeGrasOnderhoud, "Gazon verticuteren", uren, uurtarief))
	}
	if params.KantenSteken {
		uren := params.KantenMeters * ref.NormUur(domain.ScopeGrasOnderhoud, "kanten_steken") * toegangsFactor
		regels = append(regels, arbeidsRegel(domain.ScopeGrasOnderhoud, "Graskanten steken", uren, uurtarief))
	}

	return regels, nil
}

// CalculateBordersOnderhoud prices bed maintenance weighted by weed
// pressure.
func CalculateBordersOnderhoud(ref *ReferenceSet, params domain.BordersOnderhoudParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("borders_onderhoud: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Onkruiddruk.IsValid() {
		return nil, fmt.Errorf("borders_onderhoud: ongeldige onkruiddruk %q", params.Onkruiddruk)
	}

	drukFactor := ref.CorrectieFactor(domain.FactorOnkruiddruk, string(params.Onkruiddruk))
	uren := params.OppervlakteM2 * ref.NormUur(domain.ScopeBordersOnderhoud, "onkruid_wieden") * ref.ToegangsFactor(toegang) * drukFactor

	return []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeBordersOnderhoud,
			fmt.Sprintf("Borders onderhouden (onkruiddruk %s)", params.Onkruiddruk),
			uren, uurtarief),
	}, nil
}

// CalculateHeggen prices hedge trimming over the cutting face
// (length x height), with optional waste disposal.
func CalculateHeggen(ref *ReferenceSet, params domain.HeggenParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.LengteMeters <= 0 {
		return nil, fmt.Errorf("heggen: lengte moet groter zijn dan 0, kreeg %.2f", params.LengteMeters)
	}
	if params.HoogteMeters <= 0 {
		return nil, fmt.Errorf("heggen: hoogte moet groter zijn dan 0, kreeg %.2f", params.HoogteMeters)
	}

	knipOppervlak := params.LengteMeters * params.HoogteMeters
	uren := knipOppervlak * ref.NormUur(domain.ScopeHeggen, "knippen") * ref.ToegangsFactor(toegang)

	regels := []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeHeggen,
			fmt.Sprintf("Heg knippen (%.0f m)", params.LengteMeters),
			uren, uurtarief),
	}

	if params.AfvoerSnoeiafval {
		volume := knipOppervlak * snoeiafvalPerM2Heg
		regels = append(regels, materiaalRegel(domain.ScopeHeggen, "Afvoer snoeiafval", "m³", volume, snoeiafvalPrijsPerM3))
	}

	return regels, nil
}

// CalculateBomen prices tree pruning per tree, weighted by pruning
// complexity, with optional waste disposal.
func CalculateBomen(ref *ReferenceSet, params domain.BomenParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.Aantal <= 0 {
		return nil, fmt.Errorf("bomen: aantal moet groter zijn dan 0, kreeg %d", params.Aantal)
	}
	if !params.Complexiteit.IsValid() {
		return nil, fmt.Errorf("bomen: ongeldige complexiteit %q", params.Complexiteit)
	}

	complexiteitFactor := ref.CorrectieFactor(domain.FactorComplexiteit, string(params.Complexiteit))
	uren := float64(params.Aantal) * ref.NormUur(domain.ScopeBomen, "snoeien") * ref.ToegangsFactor(toegang) * complexiteitFactor

	regels := []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeBomen,
			fmt.Sprintf("Bomen snoeien (%d stuks, %s)", params.Aantal, params.Complexiteit),
			uren, uurtarief),
	}

	if params.AfvoerSnoeiafval {
		volume := float64(params.Aantal) * snoeiafvalPerBoom
		regels = append(regels, materiaalRegel(domain.ScopeBomen, "Afvoer snoeiafval", "m³", volume, snoeiafvalPrijsPerM3))
	}

	return regels, nil
}

// CalculateOverig prices miscellaneous maintenance work from an estimated
// hour count and a material budget.
func CalculateOverig(ref *ReferenceSet, params domain.OverigParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.Omschrijving == "" {
		return nil, fmt.Errorf("overig: omschrijving is verplicht")
	}
	if params.GeschatteUren <= 0 {
		return nil, fmt.Errorf("overig: geschatte uren moet groter zijn dan 0, kreeg %.2f", params.GeschatteUren)
	}
	if params.Materiaalkosten < 0 {
		return nil, fmt.Errorf("overig: materiaalkosten mag niet negatief zijn, kreeg %.2f", params.Materiaalkosten)
	}

	uren := params.GeschatteUren * ref.ToegangsFactor(toegang)
	regels := []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeOverig, params.Omschrijving, uren, uurtarief),
	}
	if params.Materiaalkosten > 0 {
		regels = append(regels, materiaalRegel(domain.ScopeOverig,
			fmt.Sprintf("Materiaal %s", params.Omschrijving), "post", 1, params.Materiaalkosten))
	}

	return regels, nil
}
