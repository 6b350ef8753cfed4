package calculation

import (
	"fmt"

	"github.com/groenwerk/offerte-api/internal/domain"
)

// Fixed heuristic rates. These are deliberate hard-coded business rules,
// not resolver-backed reference data.
const (
	// Machine support kicks in above this excavation area.
	machineInzetDrempelM2 = 20.0
	machineUrenPerM2      = 0.05
	machineUurTarief      = 75.0

	grondAfvoerPrijsPerM3 = 35.0
	snoeiafvalPrijsPerM3  = 25.0

	zandbedPrijsPerM2     = 8.50
	opsluitbandPrijsPerM  = 12.50
	grondverbeteringPerM2 = 4.75
	grasZodenPrijsPerM2   = 7.25
	graszaadPrijsPerM2    = 0.85
	aansluitpuntMateriaal = 45.0
)

// Excavation volume per m² for each depth tier, in meters.
var graafdiepteMeters = map[domain.Graafdiepte]float64{
	domain.GraafdiepteOndiep:    0.10,
	domain.GraafdiepteStandaard: 0.25,
	domain.GraafdiepteDiep:      0.40,
}

// Paving material prices per m².
var bestratingPrijsPerM2 = map[domain.Bestratingsmateriaal]float64{
	domain.MateriaalTegels:      25.00,
	domain.MateriaalKlinkers:    32.50,
	domain.MateriaalNatuursteen: 65.00,
}

// Plant cost per m² for each planting intensity.
var beplantingPrijsPerM2 = map[domain.Intensiteit]float64{
	domain.IntensiteitLaag:   12.50,
	domain.IntensiteitMiddel: 22.50,
	domain.IntensiteitHoog:   37.50,
}

// Timber material prices per meter.
var houtwerkPrijsPerMeter = map[domain.HoutwerkType]float64{
	domain.HoutwerkSchutting: 85.00,
	domain.HoutwerkPergola:   120.00,
	domain.HoutwerkVlonder:   95.00,
}

// CalculateGrondwerk prices excavation work: labor scaled by depth and
// site-access factors, machine support above the area threshold, and
// optional soil removal (loading labor plus disposal per m³).
func CalculateGrondwerk(ref *ReferenceSet, params domain.GrondwerkParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("grondwerk: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Graafdiepte.IsValid() {
		return nil, fmt.Errorf("grondwerk: ongeldige graafdiepte %q", params.Graafdiepte)
	}

	normUren := ref.NormUur(domain.ScopeGrondwerk, "graven_"+string(params.Graafdiepte))
	toegangsFactor := ref.ToegangsFactor(toegang)
	diepteFactor := ref.CorrectieFactor(domain.FactorGraafdiepte, string(params.Graafdiepte))

	uren := params.OppervlakteM2 * normUren * toegangsFactor * diepteFactor
	regels := []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeGrondwerk,
			fmt.Sprintf("Grondwerk uitgraven (%s, %.0f m²)", params.Graafdiepte, params.OppervlakteM2),
			uren, uurtarief),
	}

	if params.OppervlakteM2 > machineInzetDrempelM2 {
		regels = append(regels, machineRegel(domain.ScopeGrondwerk,
			"Machine-inzet minigraver",
			params.OppervlakteM2*machineUrenPerM2, machineUurTarief))
	}

	if params.AfvoerGrond {
		volume := params.OppervlakteM2 * graafdiepteMeters[params.Graafdiepte]
		laadUren := volume * ref.NormUur(domain.ScopeGrondwerk, "grond_laden")
		regels = append(regels,
			arbeidsRegel(domain.ScopeGrondwerk, "Grond laden voor afvoer", laadUren, uurtarief),
			materiaalRegel(domain.ScopeGrondwerk, "Afvoer grond", "m³", volume, grondAfvoerPrijsPerM3),
		)
	}

	return regels, nil
}

// CalculateBestrating prices paving: the paving material itself, laying
// labor corrected for material difficulty and access, and the optional
// sand bed and edging sub-scopes.
func CalculateBestrating(ref *ReferenceSet, params domain.BestratingParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("bestrating: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Materiaal.IsValid() {
		return nil, fmt.Errorf("bestrating: ongeldig materiaal %q", params.Materiaal)
	}
	if params.Opsluitbanden && params.OpsluitbandenMeters <= 0 {
		return nil, fmt.Errorf("bestrating: opsluitbanden vereist een lengte groter dan 0")
	}

	toegangsFactor := ref.ToegangsFactor(toegang)
	materiaalFactor := ref.CorrectieFactor(domain.FactorMateriaal, string(params.Materiaal))

	legUren := params.OppervlakteM2 * ref.NormUur(domain.ScopeBestrating, "leggen") * toegangsFactor * materiaalFactor
	regels := []domain.OfferteRegel{
		materiaalRegel(domain.ScopeBestrating,
			fmt.Sprintf("Bestrating %s", params.Materiaal),
			"m²", params.OppervlakteM2, bestratingPrijsPerM2[params.Materiaal]),
		arbeidsRegel(domain.ScopeBestrating,
			fmt.Sprintf("Bestrating leggen (%s)", params.Materiaal),
			legUren, uurtarief),
	}

	if params.Zandbed {
		zandUren := params.OppervlakteM2 * ref.NormUur(domain.ScopeBestrating, "zandbed") * toegangsFactor
		regels = append(regels,
			materiaalRegel(domain.ScopeBestrating, "Zandbed aanbrengen", "m²", params.OppervlakteM2, zandbedPrijsPerM2),
			arbeidsRegel(domain.ScopeBestrating, "Zandbed egaliseren", zandUren, uurtarief),
		)
	}

	if params.Opsluitbanden {
		bandUren := params.OpsluitbandenMeters * ref.NormUur(domain.ScopeBestrating, "opsluitbanden") * toegangsFactor
		regels = append(regels,
			materiaalRegel(domain.ScopeBestrating, "Opsluitbanden", "m", params.OpsluitbandenMeters, opsluitbandPrijsPerM),
			arbeidsRegel(domain.ScopeBestrating, "Opsluitbanden stellen", bandUren, uurtarief),
		)
	}

	return regels, nil
}

// CalculateBorders prices new planting beds: plants priced per intensity,
// planting labor corrected for intensity and access, optional soil
// improvement.
func CalculateBorders(ref *ReferenceSet, params domain.BordersParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("borders: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Intensiteit.IsValid() {
		return nil, fmt.Errorf("borders: ongeldige intensiteit %q", params.Intensiteit)
	}

	toegangsFactor := ref.ToegangsFactor(toegang)
	intensiteitFactor := ref.CorrectieFactor(domain.FactorIntensiteit, string(params.Intensiteit))

	plantUren := params.OppervlakteM2 * ref.NormUur(domain.ScopeBorders, "beplanten") * toegangsFactor * intensiteitFactor
	regels := []domain.OfferteRegel{
		materiaalRegel(domain.ScopeBorders,
			fmt.Sprintf("Beplanting (%s)", params.Intensiteit),
			"m²", params.OppervlakteM2, beplantingPrijsPerM2[params.Intensiteit]),
		arbeidsRegel(domain.ScopeBorders, "Borders beplanten", plantUren, uurtarief),
	}

	if params.GrondVerbeteren {
		verbeterUren := params.OppervlakteM2 * ref.NormUur(domain.ScopeBorders, "grond_verbeteren") * toegangsFactor
		regels = append(regels,
			materiaalRegel(domain.ScopeBorders, "Bodemverbeteraar", "m²", params.OppervlakteM2, grondverbeteringPerM2),
			arbeidsRegel(domain.ScopeBorders, "Grond verbeteren", verbeterUren, uurtarief),
		)
	}

	return regels, nil
}

// CalculateGras prices a new lawn, either turf or seed
func CalculateGras(ref *ReferenceSet, params domain.GrasParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.OppervlakteM2 <= 0 {
		return nil, fmt.Errorf("gras: oppervlakte moet groter zijn dan 0, kreeg %.2f", params.OppervlakteM2)
	}
	if !params.Methode.IsValid() {
		return nil, fmt.Errorf("gras: ongeldige methode %q", params.Methode)
	}

	toegangsFactor := ref.ToegangsFactor(toegang)

	var regels []domain.OfferteRegel
	switch params.Methode {
	case domain.GrasMethodeZoden:
		uren := params.OppervlakteM2 * ref.NormUur(domain.ScopeGras, "zoden_leggen") * toegangsFactor
		regels = append(regels,
			materiaalRegel(domain.ScopeGras, "Graszoden", "m²", params.OppervlakteM2, grasZodenPrijsPerM2),
			arbeidsRegel(domain.ScopeGras, "Graszoden leggen", uren, uurtarief),
		)
	case domain.GrasMethodeZaaien:
		uren := params.OppervlakteM2 * ref.NormUur(domain.ScopeGras, "zaaien") * toegangsFactor
		regels = append(regels,
			materiaalRegel(domain.ScopeGras, "Graszaad", "m²", params.OppervlakteM2, graszaadPrijsPerM2),
			arbeidsRegel(domain.ScopeGras, "Gazon inzaaien", uren, uurtarief),
		)
	}

	return regels, nil
}

// CalculateHoutwerk prices wooden constructions by length
func CalculateHoutwerk(ref *ReferenceSet, params domain.HoutwerkParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.Meters <= 0 {
		return nil, fmt.Errorf("houtwerk: lengte moet groter zijn dan 0, kreeg %.2f", params.Meters)
	}
	if !params.HoutwerkType.IsValid() {
		return nil, fmt.Errorf("houtwerk: ongeldig type %q", params.HoutwerkType)
	}

	toegangsFactor := ref.ToegangsFactor(toegang)
	uren := params.Meters * ref.NormUur(domain.ScopeHoutwerk, "plaatsen_"+string(params.HoutwerkType)) * toegangsFactor

	return []domain.OfferteRegel{
		materiaalRegel(domain.ScopeHoutwerk,
			fmt.Sprintf("Houtwerk %s", params.HoutwerkType),
			"m", params.Meters, houtwerkPrijsPerMeter[params.HoutwerkType]),
		arbeidsRegel(domain.ScopeHoutwerk,
			fmt.Sprintf("%s plaatsen", params.HoutwerkType),
			uren, uurtarief),
	}, nil
}

// CalculateWaterElektra prices outdoor water and electrical points plus
// the trenching needed to reach them. Trenching is the part sensitive to
// site access.
func CalculateWaterElektra(ref *ReferenceSet, params domain.WaterElektraParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.AantalPunten <= 0 {
		return nil, fmt.Errorf("water_elektra: aantal punten moet groter zijn dan 0, kreeg %d", params.AantalPunten)
	}
	if params.GraafMeters < 0 {
		return nil, fmt.Errorf("water_elektra: graafmeters mag niet negatief zijn, kreeg %.2f", params.GraafMeters)
	}

	aansluitUren := float64(params.AantalPunten) * ref.NormUur(domain.ScopeWaterElektra, "aansluitpunt")
	regels := []domain.OfferteRegel{
		materiaalRegel(domain.ScopeWaterElektra, "Aansluitmateriaal", "stuks", float64(params.AantalPunten), aansluitpuntMateriaal),
		arbeidsRegel(domain.ScopeWaterElektra, "Aansluitpunten monteren", aansluitUren, uurtarief),
	}

	if params.GraafMeters > 0 {
		graafUren := params.GraafMeters * ref.NormUur(domain.ScopeWaterElektra, "sleuven_graven") * ref.ToegangsFactor(toegang)
		regels = append(regels, arbeidsRegel(domain.ScopeWaterElektra, "Sleuven graven en dichten", graafUren, uurtarief))
	}

	return regels, nil
}

// CalculateSpecials prices custom one-off work from an estimated hour
// count and a material budget.
func CalculateSpecials(ref *ReferenceSet, params domain.SpecialsParams, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if params.Omschrijving == "" {
		return nil, fmt.Errorf("specials: omschrijving is verplicht")
	}
	if params.GeschatteUren <= 0 {
		return nil, fmt.Errorf("specials: geschatte uren moet groter zijn dan 0, kreeg %.2f", params.GeschatteUren)
	}
	if params.Materiaalkosten < 0 {
		return nil, fmt.Errorf("specials: materiaalkosten mag niet negatief zijn, kreeg %.2f", params.Materiaalkosten)
	}

	uren := params.GeschatteUren * ref.ToegangsFactor(toegang)
	regels := []domain.OfferteRegel{
		arbeidsRegel(domain.ScopeSpecials, params.Omschrijving, uren, uurtarief),
	}
	if params.Materiaalkosten > 0 {
		regels = append(regels, materiaalRegel(domain.ScopeSpecials,
			fmt.Sprintf("Materiaal %s", params.Omschrijving), "post", 1, params.Materiaalkosten))
	}

	return regels, nil
}
