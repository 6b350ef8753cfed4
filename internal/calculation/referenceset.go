package calculation

import (
	"github.com/groenwerk/offerte-api/internal/domain"
)

type normUurKey struct {
	Scope      domain.Scope
	Activiteit string
}

type factorKey struct {
	FactorType   domain.FactorType
	FactorWaarde string
}

// ReferenceSet is an immutable snapshot of the reference data for one
// company: norm-hour rates plus correction factors with the company
// overrides already layered over the system defaults. Calculators only
// read from it, so a single snapshot can be shared across goroutines.
type ReferenceSet struct {
	normUren map[normUurKey]float64
	factoren map[factorKey]float64
}

// NewReferenceSet builds a snapshot from the raw reference records of one
// company. The correction factors may contain both system defaults (nil
// company) and company overrides for the same (type, value) key; overrides
// win regardless of slice order.
func NewReferenceSet(normUren []domain.NormUur, factoren []domain.CorrectieFactor) *ReferenceSet {
	ref := &ReferenceSet{
		normUren: make(map[normUurKey]float64, len(normUren)),
		factoren: make(map[factorKey]float64, len(factoren)),
	}
	for _, n := range normUren {
		ref.normUren[normUurKey{Scope: n.Scope, Activiteit: n.Activiteit}] = n.UrenPerEenheid
	}
	overridden := make(map[factorKey]bool, len(factoren))
	for _, f := range factoren {
		key := factorKey{FactorType: f.FactorType, FactorWaarde: f.FactorWaarde}
		if f.IsDefault() {
			if !overridden[key] {
				ref.factoren[key] = f.Factor
			}
			continue
		}
		ref.factoren[key] = f.Factor
		overridden[key] = true
	}
	return ref
}

// NormUur returns the hours per unit for an activity within a scope.
// A missing rate resolves to 0; the resolver never invents a rate.
func (r *ReferenceSet) NormUur(scope domain.Scope, activiteit string) float64 {
	return r.normUren[normUurKey{Scope: scope, Activiteit: activiteit}]
}

// CorrectieFactor returns the multiplier for a (type, value) pair.
// A missing factor resolves to the neutral 1.0 so a quote can still be
// produced when reference data is incomplete.
func (r *ReferenceSet) CorrectieFactor(factorType domain.FactorType, waarde string) float64 {
	if f, ok := r.factoren[factorKey{FactorType: factorType, FactorWaarde: waarde}]; ok {
		return f
	}
	return 1.0
}

// ToegangsFactor is a shorthand for the site-access correction factor
func (r *ReferenceSet) ToegangsFactor(toegang domain.Terreintoegang) float64 {
	return r.CorrectieFactor(domain.FactorTerreintoegang, string(toegang))
}
