package calculation

import (
	"encoding/json"
	"fmt"

	"github.com/groenwerk/offerte-api/internal/domain"
)

// Calculate runs the scope calculators for every scope input of an
// offerte and returns the full generated line set, numbered in input
// order. Handmatige regels are managed by the caller and are never
// produced here.
func Calculate(ref *ReferenceSet, offerteType domain.OfferteType, inputs []domain.ScopeInput, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	if uurtarief <= 0 {
		return nil, fmt.Errorf("uurtarief moet groter zijn dan 0, kreeg %.2f", uurtarief)
	}
	if !toegang.IsValid() {
		return nil, fmt.Errorf("ongeldige terreintoegang %q", toegang)
	}

	var regels []domain.OfferteRegel
	for _, input := range inputs {
		if !input.Scope.ValidForType(offerteType) {
			return nil, fmt.Errorf("scope %q hoort niet bij offertetype %q", input.Scope, offerteType)
		}
		scopeRegels, err := calculateScope(ref, input, toegang, uurtarief)
		if err != nil {
			return nil, err
		}
		regels = append(regels, scopeRegels...)
	}

	for i := range regels {
		regels[i].Volgorde = i
	}
	return regels, nil
}

func calculateScope(ref *ReferenceSet, input domain.ScopeInput, toegang domain.Terreintoegang, uurtarief float64) ([]domain.OfferteRegel, error) {
	switch input.Scope {
	case domain.ScopeGrondwerk:
		params, err := decodeParams[domain.GrondwerkParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateGrondwerk(ref, params, toegang, uurtarief)
	case domain.ScopeBestrating:
		params, err := decodeParams[domain.BestratingParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateBestrating(ref, params, toegang, uurtarief)
	case domain.ScopeBorders:
		params, err := decodeParams[domain.BordersParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateBorders(ref, params, toegang, uurtarief)
	case domain.ScopeGras:
		params, err := decodeParams[domain.GrasParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateGras(ref, params, toegang, uurtarief)
	case domain.ScopeHoutwerk:
		params, err := decodeParams[domain.HoutwerkParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateHoutwerk(ref, params, toegang, uurtarief)
	case domain.ScopeWaterElektra:
		params, err := decodeParams[domain.WaterElektraParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateWaterElektra(ref, params, toegang, uurtarief)
	case domain.ScopeSpecials:
		params, err := decodeParams[domain.SpecialsParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateSpecials(ref, params, toegang, uurtarief)
	case domain.ScopeGrasOnderhoud:
		params, err := decodeParams[domain.GrasOnderhoudParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateGrasOnderhoud(ref, params, toegang, uurtarief)
	case domain.ScopeBordersOnderhoud:
		params, err := decodeParams[domain.BordersOnderhoudParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateBordersOnderhoud(ref, params, toegang, uurtarief)
	case domain.ScopeHeggen:
		params, err := decodeParams[domain.HeggenParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateHeggen(ref, params, toegang, uurtarief)
	case domain.ScopeBomen:
		params, err := decodeParams[domain.BomenParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateBomen(ref, params, toegang, uurtarief)
	case domain.ScopeOverig:
		params, err := decodeParams[domain.OverigParams](input)
		if err != nil {
			return nil, err
		}
		return CalculateOverig(ref, params, toegang, uurtarief)
	default:
		return nil, fmt.Errorf("onbekende scope %q", input.Scope)
	}
}

func decodeParams[T any](input domain.ScopeInput) (T, error) {
	var params T
	if err := json.Unmarshal(input.Params, &params); err != nil {
		return params, fmt.Errorf("scope %s: ongeldige parameters: %w", input.Scope, err)
	}
	return params, nil
}
