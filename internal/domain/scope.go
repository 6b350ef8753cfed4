package domain

import (
	"encoding/json"
	"fmt"
)

// ScopeInput is one entry of an offerte's structured work description:
// a scope key plus the scope-specific parameters, kept as raw JSON until
// a calculator decodes it into the matching params struct.
type ScopeInput struct {
	Scope  Scope           `json:"scope"`
	Params json.RawMessage `json:"params"`
}

// DecodeScopeInvoer parses the jsonb scope_invoer column of an offerte
func DecodeScopeInvoer(raw string) ([]ScopeInput, error) {
	if raw == "" {
		return nil, nil
	}
	var inputs []ScopeInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, fmt.Errorf("invalid scope invoer: %w", err)
	}
	return inputs, nil
}

// EncodeScopeInvoer serializes scope inputs for the jsonb scope_invoer column
func EncodeScopeInvoer(inputs []ScopeInput) (string, error) {
	if len(inputs) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("failed to encode scope invoer: %w", err)
	}
	return string(data), nil
}

// Graafdiepte is the excavation depth tier for grondwerk
type Graafdiepte string

const (
	GraafdiepteOndiep    Graafdiepte = "ondiep"
	GraafdiepteStandaard Graafdiepte = "standaard"
	GraafdiepteDiep      Graafdiepte = "diep"
)

// IsValid checks if the Graafdiepte is a valid enum value
func (g Graafdiepte) IsValid() bool {
	switch g {
	case GraafdiepteOndiep, GraafdiepteStandaard, GraafdiepteDiep:
		return true
	}
	return false
}

// GrondwerkParams are the inputs for the excavation calculator
type GrondwerkParams struct {
	OppervlakteM2 float64     `json:"oppervlakteM2"`
	Graafdiepte   Graafdiepte `json:"graafdiepte"`
	AfvoerGrond   bool        `json:"afvoerGrond"`
}

// Bestratingsmateriaal is the paving material choice
type Bestratingsmateriaal string

const (
	MateriaalTegels      Bestratingsmateriaal = "tegels"
	MateriaalKlinkers    Bestratingsmateriaal = "klinkers"
	MateriaalNatuursteen Bestratingsmateriaal = "natuursteen"
)

// IsValid checks if the Bestratingsmateriaal is a valid enum value
func (m Bestratingsmateriaal) IsValid() bool {
	switch m {
	case MateriaalTegels, MateriaalKlinkers, MateriaalNatuursteen:
		return true
	}
	return false
}

// BestratingParams are the inputs for the paving calculator
type BestratingParams struct {
	OppervlakteM2       float64              `json:"oppervlakteM2"`
	Materiaal           Bestratingsmateriaal `json:"materiaal"`
	Zandbed             bool                 `json:"zandbed"`
	Opsluitbanden       bool                 `json:"opsluitbanden"`
	OpsluitbandenMeters float64              `json:"opsluitbandenMeters,omitempty"`
}

// Intensiteit is a generic low/medium/high planting or work intensity level
type Intensiteit string

const (
	IntensiteitLaag   Intensiteit = "laag"
	IntensiteitMiddel Intensiteit = "middel"
	IntensiteitHoog   Intensiteit = "hoog"
)

// IsValid checks if the Intensiteit is a valid enum value
func (i Intensiteit) IsValid() bool {
	switch i {
	case IntensiteitLaag, IntensiteitMiddel, IntensiteitHoog:
		return true
	}
	return false
}

// BordersParams are the inputs for the planting-bed calculator (aanleg)
type BordersParams struct {
	OppervlakteM2   float64     `json:"oppervlakteM2"`
	Intensiteit     Intensiteit `json:"intensiteit"`
	GrondVerbeteren bool        `json:"grondVerbeteren"`
}

// GrasAanlegMethode is how a new lawn is established
type GrasAanlegMethode string

const (
	GrasMethodeZoden  GrasAanlegMethode = "zoden"
	GrasMethodeZaaien GrasAanlegMethode = "zaaien"
)

// IsValid checks if the GrasAanlegMethode is a valid enum value
func (m GrasAanlegMethode) IsValid() bool {
	return m == GrasMethodeZoden || m == GrasMethodeZaaien
}

// GrasParams are the inputs for the new-lawn calculator
type GrasParams struct {
	OppervlakteM2 float64           `json:"oppervlakteM2"`
	Methode       GrasAanlegMethode `json:"methode"`
}

// HoutwerkType is the kind of wooden construction
type HoutwerkType string

const (
	HoutwerkSchutting HoutwerkType = "schutting"
	HoutwerkPergola   HoutwerkType = "pergola"
	HoutwerkVlonder   HoutwerkType = "vlonder"
)

// IsValid checks if the HoutwerkType is a valid enum value
func (h HoutwerkType) IsValid() bool {
	switch h {
	case HoutwerkSchutting, HoutwerkPergola, HoutwerkVlonder:
		return true
	}
	return false
}

// HoutwerkParams are the inputs for the woodwork calculator
type HoutwerkParams struct {
	Meters       float64      `json:"meters"`
	HoutwerkType HoutwerkType `json:"houtwerkType"`
}

// WaterElektraParams are the inputs for the water/electrical calculator
type WaterElektraParams struct {
	AantalPunten int     `json:"aantalPunten"`
	GraafMeters  float64 `json:"graafMeters"`
}

// SpecialsParams are the inputs for custom one-off work
type SpecialsParams struct {
	Omschrijving    string  `json:"omschrijving"`
	GeschatteUren   float64 `json:"geschatteUren"`
	Materiaalkosten float64 `json:"materiaalkosten"`
}

// GrasOnderhoudParams are the inputs for the lawn-maintenance calculator
type GrasOnderhoudParams struct {
	OppervlakteM2 float64 `json:"oppervlakteM2"`
	Maaien        bool    `json:"maaien"`
	Verticuteren  bool    `json:"verticuteren"`
	KantenSteken  bool    `json:"kantenSteken"`
	KantenMeters  float64 `json:"kantenMeters,omitempty"`
}

// Onkruiddruk is the weed-pressure level in maintenance beds
type Onkruiddruk string

const (
	OnkruiddrukLicht   Onkruiddruk = "licht"
	OnkruiddrukNormaal Onkruiddruk = "normaal"
	OnkruiddrukZwaar   Onkruiddruk = "zwaar"
)

// IsValid checks if the Onkruiddruk is a valid enum value
func (o Onkruiddruk) IsValid() bool {
	switch o {
	case OnkruiddrukLicht, OnkruiddrukNormaal, OnkruiddrukZwaar:
		return true
	}
	return false
}

// BordersOnderhoudParams are the inputs for the bed-maintenance calculator
type BordersOnderhoudParams struct {
	OppervlakteM2 float64     `json:"oppervlakteM2"`
	Onkruiddruk   Onkruiddruk `json:"onkruiddruk"`
}

// HeggenParams are the inputs for the hedge-maintenance calculator
type HeggenParams struct {
	LengteMeters     float64 `json:"lengteMeters"`
	HoogteMeters     float64 `json:"hoogteMeters"`
	AfvoerSnoeiafval bool    `json:"afvoerSnoeiafval"`
}

// Snoeicomplexiteit is how complex tree pruning work is
type Snoeicomplexiteit string

const (
	SnoeiEenvoudig Snoeicomplexiteit = "eenvoudig"
	SnoeiNormaal   Snoeicomplexiteit = "normaal"
	SnoeiComplex   Snoeicomplexiteit = "complex"
)

// IsValid checks if the Snoeicomplexiteit is a valid enum value
func (s Snoeicomplexiteit) IsValid() bool {
	switch s {
	case SnoeiEenvoudig, SnoeiNormaal, SnoeiComplex:
		return true
	}
	return false
}

// BomenParams are the inputs for the tree-maintenance calculator
type BomenParams struct {
	Aantal           int               `json:"aantal"`
	Complexiteit     Snoeicomplexiteit `json:"complexiteit"`
	AfvoerSnoeiafval bool              `json:"afvoerSnoeiafval"`
}

// OverigParams are the inputs for miscellaneous maintenance work
type OverigParams struct {
	Omschrijving    string  `json:"omschrijving"`
	GeschatteUren   float64 `json:"geschatteUren"`
	Materiaalkosten float64 `json:"materiaalkosten"`
}
