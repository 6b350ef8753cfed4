package calculation

import (
	"sort"
	"time"

	"github.com/groenwerk/offerte-api/internal/domain"
)

// Voorcalculatie is the planned side of the comparison: total budgeted
// hours plus the per-scope breakdown derived from an offerte's labor
// lines.
type Voorcalculatie struct {
	TotaalUren   float64
	UrenPerScope map[domain.Scope]float64
}

// VoorcalculatieFromRegels derives the planned hours from an offerte's
// labor lines, used when an accepted offerte becomes a project.
func VoorcalculatieFromRegels(regels []domain.OfferteRegel) Voorcalculatie {
	plan := Voorcalculatie{UrenPerScope: make(map[domain.Scope]float64)}
	for _, r := range regels {
		if r.RegelType != domain.RegelTypeArbeid {
			continue
		}
		plan.UrenPerScope[r.Scope] += r.Hoeveelheid
		plan.TotaalUren += r.Hoeveelheid
	}
	return plan
}

// ScopeAfwijking compares planned and actual hours for one scope
type ScopeAfwijking struct {
	Scope               domain.Scope
	GeplandeUren        float64
	WerkelijkeUren      float64
	AfwijkingUren       float64
	AfwijkingPercentage float64
}

// NacalculatieResultaat is the outcome of a planned-vs-actual comparison.
// It is a pure report; persisting it and advancing the project lifecycle
// are service-layer concerns.
type NacalculatieResultaat struct {
	GeplandeUren            float64
	WerkelijkeUren          float64
	AfwijkingUren           float64
	AfwijkingPercentage     float64
	WerkelijkeMachinekosten float64
	Werkdagen               int
	PerScope                []ScopeAfwijking
}

// Vergelijk computes the deviation between a project's voorcalculatie and
// its logged hours and machine usage. The per-scope map covers the union
// of scopes present in the plan and in the actuals; a scope missing on
// one side counts as 0 there. Scopes are sorted for deterministic output.
func Vergelijk(plan Voorcalculatie, uren []domain.Urenregistratie, machines []domain.Machinegebruik) NacalculatieResultaat {
	werkelijkPerScope := make(map[domain.Scope]float64)
	dagen := make(map[string]bool)
	var totaalWerkelijk float64
	for _, u := range uren {
		werkelijkPerScope[u.Scope] += u.Uren
		totaalWerkelijk += u.Uren
		dagen[u.Datum.Format(time.DateOnly)] = true
	}

	var machinekosten float64
	for _, m := range machines {
		machinekosten += m.Kosten
		dagen[m.Datum.Format(time.DateOnly)] = true
	}

	scopes := make(map[domain.Scope]bool, len(plan.UrenPerScope)+len(werkelijkPerScope))
	for scope := range plan.UrenPerScope {
		scopes[scope] = true
	}
	for scope := range werkelijkPerScope {
		scopes[scope] = true
	}

	perScope := make([]ScopeAfwijking, 0, len(scopes))
	for scope := range scopes {
		gepland := plan.UrenPerScope[scope]
		werkelijk := werkelijkPerScope[scope]
		perScope = append(perScope, ScopeAfwijking{
			Scope:               scope,
			GeplandeUren:        gepland,
			WerkelijkeUren:      werkelijk,
			AfwijkingUren:       RoundHoeveelheid(werkelijk - gepland),
			AfwijkingPercentage: afwijkingPercentage(gepland, werkelijk),
		})
	}
	sort.Slice(perScope, func(i, j int) bool { return perScope[i].Scope < perScope[j].Scope })

	return NacalculatieResultaat{
		GeplandeUren:            plan.TotaalUren,
		WerkelijkeUren:          RoundHoeveelheid(totaalWerkelijk),
		AfwijkingUren:           RoundHoeveelheid(totaalWerkelijk - plan.TotaalUren),
		AfwijkingPercentage:     afwijkingPercentage(plan.TotaalUren, totaalWerkelijk),
		WerkelijkeMachinekosten: RoundBedrag(machinekosten),
		Werkdagen:               len(dagen),
		PerScope:                perScope,
	}
}

// afwijkingPercentage is the deviation relative to the plan, 1 decimal.
// A zero plan with actual hours is treated as a full overrun (100%).
func afwijkingPercentage(gepland, werkelijk float64) float64 {
	if gepland == 0 {
		if werkelijk == 0 {
			return 0
		}
		return 100
	}
	return RoundPercentage((werkelijk - gepland) / gepland * 100)
}
