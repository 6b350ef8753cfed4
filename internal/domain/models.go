package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// CompanyID represents GroenWerk group companies
type CompanyID string

const (
	CompanyAll            CompanyID = "all"
	CompanyGroep          CompanyID = "groep"
	CompanyHoveniers      CompanyID = "hoveniers"
	CompanyGroenonderhoud CompanyID = "groenonderhoud"
	CompanyBoomverzorging CompanyID = "boomverzorging"
)

// Company represents a GroenWerk group company (stored in database)
type Company struct {
	ID        CompanyID `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	ShortName string    `gorm:"type:varchar(50);not null;column:short_name" json:"shortName"`
	KvkNumber string    `gorm:"type:varchar(20);column:kvk_number" json:"kvkNumber,omitempty"`
	BtwNumber string    `gorm:"type:varchar(20);column:btw_number" json:"btwNumber,omitempty"`
	Color     string    `gorm:"type:varchar(20);not null;default:'#1f6b3a'" json:"color"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// IsValidCompanyID checks whether the given string is a known company ID
func IsValidCompanyID(id string) bool {
	switch CompanyID(id) {
	case CompanyGroep, CompanyHoveniers, CompanyGroenonderhoud, CompanyBoomverzorging:
		return true
	}
	return false
}

// GetCompanyPrefix returns the number-sequence prefix for a company.
// Unknown companies fall back to the group prefix.
func GetCompanyPrefix(id CompanyID) string {
	switch id {
	case CompanyHoveniers:
		return "HV"
	case CompanyGroenonderhoud:
		return "GO"
	case CompanyBoomverzorging:
		return "BV"
	default:
		return "GW"
	}
}

// KlantType represents the classification of a customer
type KlantType string

const (
	KlantTypeParticulier KlantType = "particulier"
	KlantTypeZakelijk    KlantType = "zakelijk"
)

// Klant represents a customer of one of the group companies
type Klant struct {
	BaseModel
	Naam      string    `gorm:"type:varchar(200);not null;index"`
	KlantType KlantType `gorm:"type:varchar(50);not null;default:'particulier';column:klant_type;index"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Telefoon  string    `gorm:"type:varchar(50);not null"`
	Adres     string    `gorm:"type:varchar(500)"`
	Postcode  string    `gorm:"type:varchar(20)"`
	Plaats    string    `gorm:"type:varchar(100)"`
	KvkNummer string    `gorm:"type:varchar(20);column:kvk_nummer"`
	BtwNummer string    `gorm:"type:varchar(20);column:btw_nummer"`
	Iban      string    `gorm:"type:varchar(34)"`
	Notities  string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active"`
	CompanyID CompanyID `gorm:"type:varchar(50);not null;index;column:company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID"`
	Offertes  []Offerte `gorm:"foreignKey:KlantID;constraint:OnDelete:CASCADE"`
	Projecten []Project `gorm:"foreignKey:KlantID;constraint:OnDelete:CASCADE"`
}

// OfferteType distinguishes new-build quotes from maintenance quotes
type OfferteType string

const (
	OfferteTypeAanleg    OfferteType = "aanleg"
	OfferteTypeOnderhoud OfferteType = "onderhoud"
)

// IsValid checks if the OfferteType is a valid enum value
func (t OfferteType) IsValid() bool {
	return t == OfferteTypeAanleg || t == OfferteTypeOnderhoud
}

// Scope represents a work category within an offerte
type Scope string

// Aanleg scopes
const (
	ScopeGrondwerk    Scope = "grondwerk"
	ScopeBestrating   Scope = "bestrating"
	ScopeBorders      Scope = "borders"
	ScopeGras         Scope = "gras"
	ScopeHoutwerk     Scope = "houtwerk"
	ScopeWaterElektra Scope = "water_elektra"
	ScopeSpecials     Scope = "specials"
)

// Onderhoud scopes
const (
	ScopeGrasOnderhoud    Scope = "gras_onderhoud"
	ScopeBordersOnderhoud Scope = "borders_onderhoud"
	ScopeHeggen           Scope = "heggen"
	ScopeBomen            Scope = "bomen"
	ScopeOverig           Scope = "overig"
)

// AanlegScopes lists the scopes valid for an aanleg offerte, in display order
var AanlegScopes = []Scope{
	ScopeGrondwerk, ScopeBestrating, ScopeBorders, ScopeGras,
	ScopeHoutwerk, ScopeWaterElektra, ScopeSpecials,
}

// OnderhoudScopes lists the scopes valid for an onderhoud offerte, in display order
var OnderhoudScopes = []Scope{
	ScopeGrasOnderhoud, ScopeBordersOnderhoud, ScopeHeggen, ScopeBomen, ScopeOverig,
}

// IsValid checks if the Scope is a known scope for either offerte type
func (s Scope) IsValid() bool {
	for _, v := range AanlegScopes {
		if s == v {
			return true
		}
	}
	for _, v := range OnderhoudScopes {
		if s == v {
			return true
		}
	}
	return false
}

// ValidForType reports whether the scope belongs to the given offerte type
func (s Scope) ValidForType(t OfferteType) bool {
	scopes := AanlegScopes
	if t == OfferteTypeOnderhoud {
		scopes = OnderhoudScopes
	}
	for _, v := range scopes {
		if s == v {
			return true
		}
	}
	return false
}

// RegelType represents the kind of cost an offerte line item carries
type RegelType string

const (
	RegelTypeMateriaal RegelType = "materiaal"
	RegelTypeArbeid    RegelType = "arbeid"
	RegelTypeMachine   RegelType = "machine"
)

// OfferteStatus represents the lifecycle status of an offerte
type OfferteStatus string

const (
	OfferteStatusConcept      OfferteStatus = "concept"
	OfferteStatusVerzonden    OfferteStatus = "verzonden"
	OfferteStatusGeaccepteerd OfferteStatus = "geaccepteerd"
	OfferteStatusAfgewezen    OfferteStatus = "afgewezen"
	OfferteStatusVerlopen     OfferteStatus = "verlopen"
)

// IsValid checks if the OfferteStatus is a valid enum value
func (s OfferteStatus) IsValid() bool {
	switch s {
	case OfferteStatusConcept, OfferteStatusVerzonden, OfferteStatusGeaccepteerd,
		OfferteStatusAfgewezen, OfferteStatusVerlopen:
		return true
	}
	return false
}

// Terreintoegang represents how accessible the work site is
type Terreintoegang string

const (
	ToegangNormaal     Terreintoegang = "normaal"
	ToegangBeperkt     Terreintoegang = "beperkt"
	ToegangZeerBeperkt Terreintoegang = "zeer_beperkt"
)

// IsValid checks if the Terreintoegang is a valid enum value
func (t Terreintoegang) IsValid() bool {
	switch t {
	case ToegangNormaal, ToegangBeperkt, ToegangZeerBeperkt:
		return true
	}
	return false
}

// Offerte represents a quote for garden work
type Offerte struct {
	BaseModel
	OfferteNummer   string         `gorm:"type:varchar(50);unique;index;column:offerte_nummer"`
	Titel           string         `gorm:"type:varchar(200);not null;index"`
	KlantID         uuid.UUID      `gorm:"type:uuid;not null;index;column:klant_id"`
	Klant           *Klant         `gorm:"foreignKey:KlantID"`
	KlantNaam       string         `gorm:"type:varchar(200);column:klant_naam"`
	CompanyID       CompanyID      `gorm:"type:varchar(50);not null;index;column:company_id"`
	OfferteType     OfferteType    `gorm:"type:varchar(50);not null;column:offerte_type"`
	Status          OfferteStatus  `gorm:"type:varchar(50);not null;default:'concept';index"`
	Terreintoegang  Terreintoegang `gorm:"type:varchar(50);not null;default:'normaal'"`
	UurTarief       float64        `gorm:"type:decimal(10,2);not null;column:uur_tarief"`
	MargePercentage float64        `gorm:"type:decimal(5,2);not null;default:0;column:marge_percentage"`
	BtwPercentage   float64        `gorm:"type:decimal(5,2);not null;default:21;column:btw_percentage"`
	GeldigTot       *time.Time     `gorm:"type:date;column:geldig_tot"`
	VerzondenOp     *time.Time     `gorm:"column:verzonden_op"`
	BeslistOp       *time.Time     `gorm:"column:beslist_op"`
	ScopeInvoer     string         `gorm:"type:jsonb;column:scope_invoer"`
	Regels          []OfferteRegel `gorm:"foreignKey:OfferteID;constraint:OnDelete:CASCADE"`
	Materiaalkosten float64        `gorm:"type:decimal(15,2);not null;default:0"`
	Arbeidskosten   float64        `gorm:"type:decimal(15,2);not null;default:0"`
	Machinekosten   float64        `gorm:"type:decimal(15,2);not null;default:0"`
	TotaalUren      float64        `gorm:"type:decimal(10,2);not null;default:0;column:totaal_uren"`
	Subtotaal       float64        `gorm:"type:decimal(15,2);not null;default:0"`
	Marge           float64        `gorm:"type:decimal(15,2);not null;default:0"`
	TotaalExBtw     float64        `gorm:"type:decimal(15,2);not null;default:0;column:totaal_ex_btw"`
	Btw             float64        `gorm:"type:decimal(15,2);not null;default:0"`
	TotaalInclBtw   float64        `gorm:"type:decimal(15,2);not null;default:0;column:totaal_incl_btw"`
	OwnerID         string         `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName       string         `gorm:"type:varchar(200);column:owner_name"`
	Notities        string         `gorm:"type:text"`
}

// OfferteRegel represents a priced line item on an offerte.
// Regels are produced fresh on every calculation; a recalculation replaces
// the entire generated set (handmatige regels are preserved).
type OfferteRegel struct {
	BaseModel
	OfferteID       uuid.UUID `gorm:"type:uuid;not null;index;column:offerte_id"`
	Scope           Scope     `gorm:"type:varchar(50);not null"`
	Omschrijving    string    `gorm:"type:varchar(500);not null"`
	Eenheid         string    `gorm:"type:varchar(20);not null"`
	Hoeveelheid     float64   `gorm:"type:decimal(10,2);not null"`
	PrijsPerEenheid float64   `gorm:"type:decimal(10,2);not null;column:prijs_per_eenheid"`
	Totaal          float64   `gorm:"type:decimal(15,2);not null"`
	RegelType       RegelType `gorm:"type:varchar(20);not null;column:regel_type"`
	Handmatig       bool      `gorm:"not null;default:false"`
	Volgorde        int       `gorm:"not null;default:0"`
}

// NormUur is the reference rate: hours of work per unit for one activity
// within a scope, per company. Edited only by administrators.
type NormUur struct {
	BaseModel
	CompanyID      CompanyID `gorm:"type:varchar(50);not null;index:idx_normuur_key,unique;column:company_id"`
	Scope          Scope     `gorm:"type:varchar(50);not null;index:idx_normuur_key,unique"`
	Activiteit     string    `gorm:"type:varchar(100);not null;index:idx_normuur_key,unique"`
	UrenPerEenheid float64   `gorm:"type:decimal(10,4);not null;column:uren_per_eenheid"`
	Eenheid        string    `gorm:"type:varchar(20);not null"`
	Omschrijving   string    `gorm:"type:varchar(500)"`
}

// FactorType classifies correction factors
type FactorType string

const (
	FactorTerreintoegang FactorType = "terreintoegang"
	FactorGraafdiepte    FactorType = "graafdiepte"
	FactorIntensiteit    FactorType = "beplantingsintensiteit"
	FactorOnkruiddruk    FactorType = "onkruiddruk"
	FactorComplexiteit   FactorType = "snoeicomplexiteit"
	FactorMateriaal      FactorType = "bestratingsmateriaal"
)

// CorrectieFactor is a multiplicative correction on norm hours.
// A record without a company is a system default; a record with a company
// is that company's override and wins when both exist.
type CorrectieFactor struct {
	BaseModel
	CompanyID    *CompanyID `gorm:"type:varchar(50);index:idx_correctie_key,unique;column:company_id"`
	FactorType   FactorType `gorm:"type:varchar(50);not null;index:idx_correctie_key,unique;column:factor_type"`
	FactorWaarde string     `gorm:"type:varchar(100);not null;index:idx_correctie_key,unique;column:factor_waarde"`
	Factor       float64    `gorm:"type:decimal(6,3);not null"`
	Omschrijving string     `gorm:"type:varchar(500)"`
}

// IsDefault reports whether this record is a system default (no company)
func (c *CorrectieFactor) IsDefault() bool {
	return c.CompanyID == nil
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusGepland      ProjectStatus = "gepland"
	ProjectStatusInUitvoering ProjectStatus = "in_uitvoering"
	ProjectStatusAfgerond     ProjectStatus = "afgerond"
	ProjectStatusGeannuleerd  ProjectStatus = "geannuleerd"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusGepland, ProjectStatusInUitvoering, ProjectStatusAfgerond, ProjectStatusGeannuleerd:
		return true
	}
	return false
}

// Project represents accepted garden work being executed for a customer
type Project struct {
	BaseModel
	ProjectNummer string         `gorm:"type:varchar(50);unique;index;column:project_nummer"`
	Naam          string         `gorm:"type:varchar(200);not null;index"`
	KlantID       uuid.UUID      `gorm:"type:uuid;not null;index;column:klant_id"`
	Klant         *Klant         `gorm:"foreignKey:KlantID"`
	KlantNaam     string         `gorm:"type:varchar(200);column:klant_naam"`
	CompanyID     CompanyID      `gorm:"type:varchar(50);not null;index;column:company_id"`
	OfferteID     *uuid.UUID     `gorm:"type:uuid;index;column:offerte_id"`
	Offerte       *Offerte       `gorm:"foreignKey:OfferteID"`
	Status        ProjectStatus  `gorm:"type:varchar(50);not null;default:'gepland';index"`
	StartDatum    *time.Time     `gorm:"type:date;column:start_datum"`
	EindDatum     *time.Time     `gorm:"type:date;column:eind_datum"`
	ManagerID     string         `gorm:"type:varchar(100);not null;column:manager_id"`
	ManagerNaam   string         `gorm:"type:varchar(200);column:manager_naam"`
	UitvoerderIDs pq.StringArray `gorm:"type:text[];column:uitvoerder_ids"`
	// Voorcalculatie: planned hours copied from the accepted offerte
	GeplandeUren          float64 `gorm:"type:decimal(10,2);not null;default:0;column:geplande_uren"`
	GeplandeUrenPerScope  string  `gorm:"type:jsonb;column:geplande_uren_per_scope"`
	GeplandeMachinekosten float64 `gorm:"type:decimal(15,2);not null;default:0;column:geplande_machinekosten"`
	Notities              string  `gorm:"type:text"`
}

// Urenregistratie is a logged time entry for project work
type Urenregistratie struct {
	BaseModel
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Project      *Project  `gorm:"foreignKey:ProjectID"`
	UserID       string    `gorm:"type:varchar(100);not null;index;column:user_id"`
	UserNaam     string    `gorm:"type:varchar(200);column:user_naam"`
	Datum        time.Time `gorm:"type:date;not null;index"`
	Scope        Scope     `gorm:"type:varchar(50);not null"`
	Uren         float64   `gorm:"type:decimal(6,2);not null"`
	Omschrijving string    `gorm:"type:varchar(500)"`
}

// Machinegebruik is logged machine usage on a project
type Machinegebruik struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID"`
	Machine   string    `gorm:"type:varchar(200);not null"`
	Datum     time.Time `gorm:"type:date;not null"`
	Uren      float64   `gorm:"type:decimal(6,2);not null"`
	UurTarief float64   `gorm:"type:decimal(10,2);not null;column:uur_tarief"`
	Kosten    float64   `gorm:"type:decimal(15,2);not null"`
}

// Nacalculatie holds the persisted planned-vs-actual comparison for a project
type Nacalculatie struct {
	BaseModel
	ProjectID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id"`
	Project                 *Project  `gorm:"foreignKey:ProjectID"`
	GeplandeUren            float64   `gorm:"type:decimal(10,2);not null;column:geplande_uren"`
	WerkelijkeUren          float64   `gorm:"type:decimal(10,2);not null;column:werkelijke_uren"`
	AfwijkingUren           float64   `gorm:"type:decimal(10,2);not null;column:afwijking_uren"`
	AfwijkingPercentage     float64   `gorm:"type:decimal(6,1);not null;column:afwijking_percentage"`
	WerkelijkeMachinekosten float64   `gorm:"type:decimal(15,2);not null;column:werkelijke_machinekosten"`
	Werkdagen               int       `gorm:"not null"`
	PerScope                string    `gorm:"type:jsonb;column:per_scope"`
	OpgeslagenDoor          string    `gorm:"type:varchar(100);column:opgeslagen_door"`
}

// InkooporderStatus represents the status of a purchase order
type InkooporderStatus string

const (
	InkooporderStatusConcept     InkooporderStatus = "concept"
	InkooporderStatusBesteld     InkooporderStatus = "besteld"
	InkooporderStatusGeleverd    InkooporderStatus = "geleverd"
	InkooporderStatusGeannuleerd InkooporderStatus = "geannuleerd"
)

// IsValid checks if the InkooporderStatus is a valid enum value
func (s InkooporderStatus) IsValid() bool {
	switch s {
	case InkooporderStatusConcept, InkooporderStatusBesteld, InkooporderStatusGeleverd, InkooporderStatusGeannuleerd:
		return true
	}
	return false
}

// Inkooporder represents a purchase order for materials
type Inkooporder struct {
	BaseModel
	OrderNummer    string             `gorm:"type:varchar(50);unique;index;column:order_nummer"`
	CompanyID      CompanyID          `gorm:"type:varchar(50);not null;index;column:company_id"`
	Leverancier    string             `gorm:"type:varchar(200);not null"`
	ProjectID      *uuid.UUID         `gorm:"type:uuid;index;column:project_id"`
	Project        *Project           `gorm:"foreignKey:ProjectID"`
	Status         InkooporderStatus  `gorm:"type:varchar(50);not null;default:'concept';index"`
	BesteldOp      *time.Time         `gorm:"column:besteld_op"`
	GeleverdOp     *time.Time         `gorm:"column:geleverd_op"`
	Regels         []InkooporderRegel `gorm:"foreignKey:InkooporderID;constraint:OnDelete:CASCADE"`
	Totaal         float64            `gorm:"type:decimal(15,2);not null;default:0"`
	Notities       string             `gorm:"type:text"`
	AangemaaktDoor string             `gorm:"type:varchar(100);column:aangemaakt_door"`
}

// InkooporderRegel represents a line on a purchase order
type InkooporderRegel struct {
	BaseModel
	InkooporderID   uuid.UUID  `gorm:"type:uuid;not null;index;column:inkooporder_id"`
	VoorraadItemID  *uuid.UUID `gorm:"type:uuid;index;column:voorraad_item_id"`
	Artikel         string     `gorm:"type:varchar(200);not null"`
	Eenheid         string     `gorm:"type:varchar(20);not null"`
	Hoeveelheid     float64    `gorm:"type:decimal(10,2);not null"`
	PrijsPerEenheid float64    `gorm:"type:decimal(10,2);not null;column:prijs_per_eenheid"`
	Totaal          float64    `gorm:"type:decimal(15,2);not null"`
}

// VoorraadItem represents a stocked article for a company
type VoorraadItem struct {
	BaseModel
	CompanyID       CompanyID `gorm:"type:varchar(50);not null;index:idx_voorraad_key,unique;column:company_id"`
	Artikel         string    `gorm:"type:varchar(200);not null;index:idx_voorraad_key,unique"`
	Eenheid         string    `gorm:"type:varchar(20);not null"`
	Aantal          float64   `gorm:"type:decimal(12,2);not null;default:0"`
	MinimumVoorraad float64   `gorm:"type:decimal(12,2);not null;default:0;column:minimum_voorraad"`
	PrijsPerEenheid float64   `gorm:"type:decimal(10,2);not null;default:0;column:prijs_per_eenheid"`
	Locatie         string    `gorm:"type:varchar(200)"`
}

// IsOnderMinimum reports whether the stock level is at or below the minimum
func (v *VoorraadItem) IsOnderMinimum() bool {
	return v.MinimumVoorraad > 0 && v.Aantal <= v.MinimumVoorraad
}

// FactuurStatus represents the status of an invoice
type FactuurStatus string

const (
	FactuurStatusOpen        FactuurStatus = "open"
	FactuurStatusBetaald     FactuurStatus = "betaald"
	FactuurStatusHerinnering FactuurStatus = "herinnering"
	FactuurStatusGeannuleerd FactuurStatus = "geannuleerd"
)

// Factuur represents an invoice issued from an accepted offerte.
// Totals are copied from the offerte aggregation, never recomputed here.
type Factuur struct {
	BaseModel
	FactuurNummer    string        `gorm:"type:varchar(50);unique;index;column:factuur_nummer"`
	OfferteID        uuid.UUID     `gorm:"type:uuid;not null;index;column:offerte_id"`
	Offerte          *Offerte      `gorm:"foreignKey:OfferteID"`
	KlantID          uuid.UUID     `gorm:"type:uuid;not null;index;column:klant_id"`
	KlantNaam        string        `gorm:"type:varchar(200);column:klant_naam"`
	CompanyID        CompanyID     `gorm:"type:varchar(50);not null;index;column:company_id"`
	Status           FactuurStatus `gorm:"type:varchar(50);not null;default:'open';index"`
	FactuurDatum     time.Time     `gorm:"type:date;not null;column:factuur_datum"`
	VervalDatum      time.Time     `gorm:"type:date;not null;column:verval_datum"`
	TotaalExBtw      float64       `gorm:"type:decimal(15,2);not null;column:totaal_ex_btw"`
	Btw              float64       `gorm:"type:decimal(15,2);not null"`
	TotaalInclBtw    float64       `gorm:"type:decimal(15,2);not null;column:totaal_incl_btw"`
	BetaaldOp        *time.Time    `gorm:"column:betaald_op"`
	ExternReferentie string        `gorm:"type:varchar(100);column:extern_referentie"`
}

// NumberSequence tracks the last issued sequence number per company and year.
// Offertes, projects, orders and facturen share one counter so numbers stay
// globally unique within a company.
type NumberSequence struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID  CompanyID `gorm:"type:varchar(50);not null;index:idx_seq_key,unique;column:company_id"`
	Year       int       `gorm:"not null;index:idx_seq_key,unique"`
	LastNumber int       `gorm:"not null;default:0;column:last_number"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// File represents an uploaded attachment, typically a quote PDF or a
// site photo linked to an offerte
type File struct {
	BaseModel
	Filename    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StoragePath string     `gorm:"type:varchar(500);not null;unique"`
	OfferteID   *uuid.UUID `gorm:"type:uuid;index;column:offerte_id"`
	Offerte     *Offerte   `gorm:"foreignKey:OfferteID"`
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeOfferteGeaccepteerd  NotificationType = "offerte_geaccepteerd"
	NotificationTypeOfferteAfgewezen     NotificationType = "offerte_afgewezen"
	NotificationTypeOfferteVerlopen      NotificationType = "offerte_verlopen"
	NotificationTypeBudgetOverschrijding NotificationType = "budget_overschrijding"
	NotificationTypeVoorraadLaag         NotificationType = "voorraad_laag"
	NotificationTypeFactuurBetaald       NotificationType = "factuur_betaald"
	NotificationTypeProjectUpdate        NotificationType = "project_update"
)

// Notification represents a user notification
type Notification struct {
	BaseModel
	UserID     string `gorm:"type:varchar(100);not null;index;column:user_id"`
	Type       string `gorm:"type:varchar(50);not null"`
	Title      string `gorm:"type:varchar(200);not null"`
	Message    string `gorm:"type:varchar(500);not null"`
	Read       bool   `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}

// UserRoleType represents a role a user can have
type UserRoleType string

const (
	RoleSuperAdmin   UserRoleType = "super_admin"
	RoleCompanyAdmin UserRoleType = "company_admin"
	RoleCalculator   UserRoleType = "calculator"
	RoleUitvoerder   UserRoleType = "uitvoerder"
	RoleViewer       UserRoleType = "viewer"
	RoleAPIService   UserRoleType = "api_service"
)

// Table names: gorm's English pluralizer mangles the Dutch model names,
// so the Dutch models name their tables explicitly.

func (Klant) TableName() string            { return "klanten" }
func (Offerte) TableName() string          { return "offertes" }
func (OfferteRegel) TableName() string     { return "offerte_regels" }
func (NormUur) TableName() string          { return "norm_uren" }
func (CorrectieFactor) TableName() string  { return "correctie_factoren" }
func (Project) TableName() string          { return "projecten" }
func (Urenregistratie) TableName() string  { return "urenregistraties" }
func (Machinegebruik) TableName() string   { return "machinegebruik" }
func (Nacalculatie) TableName() string     { return "nacalculaties" }
func (Inkooporder) TableName() string      { return "inkooporders" }
func (InkooporderRegel) TableName() string { return "inkooporder_regels" }
func (VoorraadItem) TableName() string     { return "voorraad_items" }
func (Factuur) TableName() string          { return "facturen" }

// User represents a user in the system
type User struct {
	ID          string         `gorm:"type:varchar(100);primaryKey" json:"id"`
	ExternalID  string         `gorm:"type:varchar(100);unique;column:external_id" json:"externalId,omitempty"`
	Email       string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	FirstName   string         `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName    string         `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	DisplayName string         `gorm:"type:varchar(200);not null;column:name" json:"displayName"`
	Roles       pq.StringArray `gorm:"type:text[];not null" json:"roles"`
	CompanyID   *CompanyID     `gorm:"type:varchar(50);column:company_id" json:"companyId,omitempty"`
	Company     *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	IsActive    bool           `gorm:"not null;default:true;column:is_active" json:"isActive"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// FullName returns the user's full name, or display name if first/last not set
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.DisplayName
}

// HasRole reports whether the user carries the given role
func (u *User) HasRole(role UserRoleType) bool {
	for _, r := range u.Roles {
		if UserRoleType(r) == role {
			return true
		}
	}
	return false
}
