package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses. Timestamps are serialized as ISO 8601 strings.

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// CompanyDTO represents a company in auth context (minimal version)
type CompanyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateCompanyRequest changes the branding fields of a company
type UpdateCompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	ShortName string `json:"shortName" validate:"required,max=20"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
}

// AuthUserDTO represents the current authenticated user with full context
type AuthUserDTO struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Roles          []string    `json:"roles"`
	Company        *CompanyDTO `json:"company,omitempty"`
	Initials       string      `json:"initials"`
	IsSuperAdmin   bool        `json:"isSuperAdmin"`
	IsCompanyAdmin bool        `json:"isCompanyAdmin"`
}

type UserDTO struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// UpdateUserRequest changes role assignment and account status
type UpdateUserRequest struct {
	Roles     []string   `json:"roles,omitempty"`
	CompanyID *CompanyID `json:"companyId,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
}

// Klant DTOs

type KlantDTO struct {
	ID        uuid.UUID `json:"id"`
	Naam      string    `json:"naam"`
	KlantType KlantType `json:"klantType"`
	Email     string    `json:"email,omitempty"`
	Telefoon  string    `json:"telefoon,omitempty"`
	Adres     string    `json:"adres,omitempty"`
	Postcode  string    `json:"postcode,omitempty"`
	Plaats    string    `json:"plaats,omitempty"`
	KvkNummer string    `json:"kvkNummer,omitempty"`
	BtwNummer string    `json:"btwNummer,omitempty"`
	Iban      string    `json:"iban,omitempty"`
	CompanyID CompanyID `json:"companyId"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type CreateKlantRequest struct {
	Naam      string    `json:"naam" validate:"required,max=200"`
	KlantType KlantType `json:"klantType" validate:"required,oneof=particulier zakelijk"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Telefoon  string    `json:"telefoon,omitempty" validate:"max=30"`
	Adres     string    `json:"adres,omitempty" validate:"max=500"`
	Postcode  string    `json:"postcode,omitempty"`
	Plaats    string    `json:"plaats,omitempty" validate:"max=100"`
	KvkNummer string    `json:"kvkNummer,omitempty"`
	BtwNummer string    `json:"btwNummer,omitempty"`
	Iban      string    `json:"iban,omitempty"`
	CompanyID CompanyID `json:"companyId,omitempty"`
}

type UpdateKlantRequest struct {
	Naam      string    `json:"naam" validate:"required,max=200"`
	KlantType KlantType `json:"klantType" validate:"required,oneof=particulier zakelijk"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Telefoon  string    `json:"telefoon,omitempty" validate:"max=30"`
	Adres     string    `json:"adres,omitempty" validate:"max=500"`
	Postcode  string    `json:"postcode,omitempty"`
	Plaats    string    `json:"plaats,omitempty" validate:"max=100"`
	KvkNummer string    `json:"kvkNummer,omitempty"`
	BtwNummer string    `json:"btwNummer,omitempty"`
	Iban      string    `json:"iban,omitempty"`
}

// Offerte DTOs

type OfferteRegelDTO struct {
	ID              uuid.UUID `json:"id"`
	Scope           Scope     `json:"scope"`
	Omschrijving    string    `json:"omschrijving"`
	Eenheid         string    `json:"eenheid"`
	Hoeveelheid     float64   `json:"hoeveelheid"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid"`
	Totaal          float64   `json:"totaal"`
	RegelType       RegelType `json:"regelType"`
	Handmatig       bool      `json:"handmatig"`
	Volgorde        int       `json:"volgorde"`
}

type OfferteDTO struct {
	ID              uuid.UUID         `json:"id"`
	OfferteNummer   string            `json:"offerteNummer"`
	Titel           string            `json:"titel"`
	KlantID         uuid.UUID         `json:"klantId"`
	KlantNaam       string            `json:"klantNaam,omitempty"`
	CompanyID       CompanyID         `json:"companyId"`
	OfferteType     OfferteType       `json:"offerteType"`
	Status          OfferteStatus     `json:"status"`
	Terreintoegang  Terreintoegang    `json:"terreintoegang"`
	UurTarief       float64           `json:"uurTarief"`
	MargePercentage float64           `json:"margePercentage"`
	BtwPercentage   float64           `json:"btwPercentage"`
	GeldigTot       *string           `json:"geldigTot,omitempty"`
	ScopeInvoer     []ScopeInput      `json:"scopeInvoer,omitempty"`
	Regels          []OfferteRegelDTO `json:"regels"`
	Totalen         OfferteTotalenDTO `json:"totalen"`
	OwnerID         string            `json:"ownerId,omitempty"`
	OwnerName       string            `json:"ownerName,omitempty"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// OfferteTotalenDTO carries the aggregated totals of an offerte
type OfferteTotalenDTO struct {
	Materiaalkosten float64 `json:"materiaalkosten"`
	Arbeidskosten   float64 `json:"arbeidskosten"`
	Machinekosten   float64 `json:"machinekosten"`
	TotaalUren      float64 `json:"totaalUren"`
	Subtotaal       float64 `json:"subtotaal"`
	Marge           float64 `json:"marge"`
	TotaalExBtw     float64 `json:"totaalExBtw"`
	Btw             float64 `json:"btw"`
	TotaalInclBtw   float64 `json:"totaalInclBtw"`
}

type CreateOfferteRequest struct {
	Titel           string         `json:"titel" validate:"required,max=200"`
	KlantID         uuid.UUID      `json:"klantId" validate:"required"`
	CompanyID       CompanyID      `json:"companyId,omitempty"`
	OfferteType     OfferteType    `json:"offerteType" validate:"required,oneof=aanleg onderhoud"`
	Terreintoegang  Terreintoegang `json:"terreintoegang,omitempty"`
	UurTarief       float64        `json:"uurTarief,omitempty" validate:"omitempty,gt=0"`
	MargePercentage float64        `json:"margePercentage,omitempty" validate:"gte=0,lte=100"`
	BtwPercentage   *float64       `json:"btwPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	GeldigTot       *time.Time     `json:"geldigTot,omitempty"`
	ScopeInvoer     []ScopeInput   `json:"scopeInvoer,omitempty"`
}

type UpdateOfferteRequest struct {
	Titel           string         `json:"titel,omitempty" validate:"omitempty,max=200"`
	Terreintoegang  Terreintoegang `json:"terreintoegang,omitempty"`
	UurTarief       float64        `json:"uurTarief,omitempty" validate:"omitempty,gt=0"`
	MargePercentage *float64       `json:"margePercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	BtwPercentage   *float64       `json:"btwPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	GeldigTot       *time.Time     `json:"geldigTot,omitempty"`
	ScopeInvoer     []ScopeInput   `json:"scopeInvoer,omitempty"`
}

// UpdateOfferteStatusRequest moves an offerte to a new lifecycle status
type UpdateOfferteStatusRequest struct {
	Status OfferteStatus `json:"status" validate:"required"`
}

// AddHandmatigeRegelRequest adds a manual line outside the calculators
type AddHandmatigeRegelRequest struct {
	Scope           Scope     `json:"scope" validate:"required"`
	Omschrijving    string    `json:"omschrijving" validate:"required,max=300"`
	Eenheid         string    `json:"eenheid" validate:"required,max=20"`
	Hoeveelheid     float64   `json:"hoeveelheid" validate:"required,gt=0"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid" validate:"gte=0"`
	RegelType       RegelType `json:"regelType" validate:"required,oneof=materiaal arbeid machine"`
}

// AcceptOfferteRequest contains options when a customer accepts an offerte
type AcceptOfferteRequest struct {
	CreateProject bool       `json:"createProject"`
	StartDatum    *time.Time `json:"startDatum,omitempty"`
}

// AcceptOfferteResponse contains the result of accepting an offerte
type AcceptOfferteResponse struct {
	Offerte *OfferteDTO `json:"offerte"`
	Project *ProjectDTO `json:"project,omitempty"`
}

// RejectOfferteRequest carries the optional rejection reason
type RejectOfferteRequest struct {
	Reden string `json:"reden,omitempty" validate:"max=500"`
}

// NormUur DTOs

type NormUurDTO struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      CompanyID `json:"companyId"`
	Scope          Scope     `json:"scope"`
	Activiteit     string    `json:"activiteit"`
	UrenPerEenheid float64   `json:"urenPerEenheid"`
	Eenheid        string    `json:"eenheid"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

type UpsertNormUurRequest struct {
	Scope          Scope   `json:"scope" validate:"required"`
	Activiteit     string  `json:"activiteit" validate:"required,max=100"`
	UrenPerEenheid float64 `json:"urenPerEenheid" validate:"gte=0"`
	Eenheid        string  `json:"eenheid" validate:"required,max=20"`
}

// CorrectieFactor DTOs

type CorrectieFactorDTO struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    *CompanyID `json:"companyId,omitempty"`
	FactorType   FactorType `json:"factorType"`
	FactorWaarde string     `json:"factorWaarde"`
	Factor       float64    `json:"factor"`
	IsDefault    bool       `json:"isDefault"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

type UpsertCorrectieFactorRequest struct {
	FactorType   FactorType `json:"factorType" validate:"required"`
	FactorWaarde string     `json:"factorWaarde" validate:"required,max=50"`
	Factor       float64    `json:"factor" validate:"required,gt=0"`
}

// Project DTOs

type ProjectDTO struct {
	ID                    uuid.UUID         `json:"id"`
	ProjectNummer         string            `json:"projectNummer"`
	Naam                  string            `json:"naam"`
	OfferteID             *uuid.UUID        `json:"offerteId,omitempty"`
	KlantID               uuid.UUID         `json:"klantId"`
	KlantNaam             string            `json:"klantNaam,omitempty"`
	CompanyID             CompanyID         `json:"companyId"`
	Status                ProjectStatus     `json:"status"`
	StartDatum            *string           `json:"startDatum,omitempty"`
	EindDatum             *string           `json:"eindDatum,omitempty"`
	UitvoerderIDs         []string          `json:"uitvoerderIds,omitempty"`
	GeplandeUren          float64           `json:"geplandeUren"`
	GeplandeUrenPerScope  map[Scope]float64 `json:"geplandeUrenPerScope,omitempty"`
	GeplandeMachinekosten float64           `json:"geplandeMachinekosten"`
	CreatedAt             string            `json:"createdAt"`
	UpdatedAt             string            `json:"updatedAt"`
}

type UpdateProjectRequest struct {
	Status        ProjectStatus `json:"status,omitempty"`
	StartDatum    *time.Time    `json:"startDatum,omitempty"`
	EindDatum     *time.Time    `json:"eindDatum,omitempty"`
	UitvoerderIDs []string      `json:"uitvoerderIds,omitempty"`
}

// Urenregistratie DTOs

type UrenregistratieDTO struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"projectId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName,omitempty"`
	Datum        string    `json:"datum"`
	Scope        Scope     `json:"scope"`
	Uren         float64   `json:"uren"`
	Omschrijving string    `json:"omschrijving,omitempty"`
	CreatedAt    string    `json:"createdAt"`
}

type CreateUrenregistratieRequest struct {
	Datum        time.Time `json:"datum" validate:"required"`
	Scope        Scope     `json:"scope" validate:"required"`
	Uren         float64   `json:"uren" validate:"required,gt=0,lte=24"`
	Omschrijving string    `json:"omschrijving,omitempty" validate:"max=300"`
}

// Machinegebruik DTOs

type MachinegebruikDTO struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Machine   string    `json:"machine"`
	Datum     string    `json:"datum"`
	Uren      float64   `json:"uren"`
	UurTarief float64   `json:"uurTarief"`
	Kosten    float64   `json:"kosten"`
	CreatedAt string    `json:"createdAt"`
}

type CreateMachinegebruikRequest struct {
	Machine   string    `json:"machine" validate:"required,max=100"`
	Datum     time.Time `json:"datum" validate:"required"`
	Uren      float64   `json:"uren" validate:"required,gt=0,lte=24"`
	UurTarief float64   `json:"uurTarief" validate:"required,gt=0"`
}

// Nacalculatie DTOs

// NacalculatieScopeDTO compares planned and actual hours for one scope
type NacalculatieScopeDTO struct {
	Scope               Scope   `json:"scope"`
	GeplandeUren        float64 `json:"geplandeUren"`
	WerkelijkeUren      float64 `json:"werkelijkeUren"`
	AfwijkingUren       float64 `json:"afwijkingUren"`
	AfwijkingPercentage float64 `json:"afwijkingPercentage"`
}

type NacalculatieDTO struct {
	ID                      uuid.UUID              `json:"id"`
	ProjectID               uuid.UUID              `json:"projectId"`
	ProjectNummer           string                 `json:"projectNummer,omitempty"`
	GeplandeUren            float64                `json:"geplandeUren"`
	WerkelijkeUren          float64                `json:"werkelijkeUren"`
	AfwijkingUren           float64                `json:"afwijkingUren"`
	AfwijkingPercentage     float64                `json:"afwijkingPercentage"`
	GeplandeMachinekosten   float64                `json:"geplandeMachinekosten"`
	WerkelijkeMachinekosten float64                `json:"werkelijkeMachinekosten"`
	Werkdagen               int                    `json:"werkdagen"`
	PerScope                []NacalculatieScopeDTO `json:"perScope"`
	CreatedAt               string                 `json:"createdAt"`
}

// Inkooporder DTOs

type InkooporderRegelDTO struct {
	ID              uuid.UUID `json:"id"`
	Omschrijving    string    `json:"omschrijving"`
	Eenheid         string    `json:"eenheid"`
	Hoeveelheid     float64   `json:"hoeveelheid"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid"`
	Totaal          float64   `json:"totaal"`
}

type InkooporderDTO struct {
	ID          uuid.UUID             `json:"id"`
	OrderNummer string                `json:"orderNummer"`
	Leverancier string                `json:"leverancier"`
	ProjectID   *uuid.UUID            `json:"projectId,omitempty"`
	CompanyID   CompanyID             `json:"companyId"`
	Status      InkooporderStatus     `json:"status"`
	Regels      []InkooporderRegelDTO `json:"regels"`
	Totaal      float64               `json:"totaal"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

type CreateInkooporderRegelRequest struct {
	Omschrijving    string     `json:"omschrijving" validate:"required,max=300"`
	Eenheid         string     `json:"eenheid" validate:"required,max=20"`
	Hoeveelheid     float64    `json:"hoeveelheid" validate:"required,gt=0"`
	PrijsPerEenheid float64    `json:"prijsPerEenheid" validate:"gte=0"`
	VoorraadItemID  *uuid.UUID `json:"voorraadItemId,omitempty"`
}

type CreateInkooporderRequest struct {
	Leverancier string                          `json:"leverancier" validate:"required,max=200"`
	ProjectID   *uuid.UUID                      `json:"projectId,omitempty"`
	CompanyID   CompanyID                       `json:"companyId,omitempty"`
	Regels      []CreateInkooporderRegelRequest `json:"regels" validate:"required,min=1,dive"`
}

// UpdateInkooporderStatusRequest advances a purchase order through its lifecycle
type UpdateInkooporderStatusRequest struct {
	Status InkooporderStatus `json:"status" validate:"required"`
}

// Voorraad DTOs

type VoorraadItemDTO struct {
	ID              uuid.UUID `json:"id"`
	Naam            string    `json:"naam"`
	Eenheid         string    `json:"eenheid"`
	Voorraad        float64   `json:"voorraad"`
	MinimumVoorraad float64   `json:"minimumVoorraad"`
	PrijsPerEenheid float64   `json:"prijsPerEenheid"`
	CompanyID       CompanyID `json:"companyId"`
	OnderMinimum    bool      `json:"onderMinimum"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

type UpsertVoorraadItemRequest struct {
	Naam            string  `json:"naam" validate:"required,max=200"`
	Eenheid         string  `json:"eenheid" validate:"required,max=20"`
	Voorraad        float64 `json:"voorraad" validate:"gte=0"`
	MinimumVoorraad float64 `json:"minimumVoorraad" validate:"gte=0"`
	PrijsPerEenheid float64 `json:"prijsPerEenheid" validate:"gte=0"`
}

// MutatieVoorraadRequest adjusts stock by a positive or negative delta
type MutatieVoorraadRequest struct {
	Delta float64 `json:"delta" validate:"required"`
	Reden string  `json:"reden,omitempty" validate:"max=300"`
}

// Factuur DTOs

type FactuurDTO struct {
	ID               uuid.UUID     `json:"id"`
	FactuurNummer    string        `json:"factuurNummer"`
	OfferteID        uuid.UUID     `json:"offerteId"`
	KlantID          uuid.UUID     `json:"klantId"`
	KlantNaam        string        `json:"klantNaam,omitempty"`
	CompanyID        CompanyID     `json:"companyId"`
	Status           FactuurStatus `json:"status"`
	TotaalExBtw      float64       `json:"totaalExBtw"`
	Btw              float64       `json:"btw"`
	TotaalInclBtw    float64       `json:"totaalInclBtw"`
	Vervaldatum      *string       `json:"vervaldatum,omitempty"`
	BetaaldOp        *string       `json:"betaaldOp,omitempty"`
	ExternReferentie string        `json:"externReferentie,omitempty"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

// CreateFactuurRequest issues an invoice from an accepted offerte
type CreateFactuurRequest struct {
	OfferteID        uuid.UUID `json:"offerteId" validate:"required"`
	Betalingstermijn int       `json:"betalingstermijnDagen,omitempty" validate:"omitempty,gte=0,lte=120"`
	ExternReferentie string    `json:"externReferentie,omitempty" validate:"max=100"`
}

type UpdateFactuurStatusRequest struct {
	Status FactuurStatus `json:"status" validate:"required"`
}

// Notification DTOs

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  string     `json:"createdAt"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
}

// CreateNotificationRequest contains the data needed to create a notification
type CreateNotificationRequest struct {
	UserID     string           `json:"userId" validate:"required,max=100"`
	Type       NotificationType `json:"type" validate:"required"`
	Title      string           `json:"title" validate:"required,max=200"`
	Message    string           `json:"message" validate:"required,max=500"`
	EntityID   *uuid.UUID       `json:"entityId,omitempty"`
	EntityType string           `json:"entityType,omitempty" validate:"max=50"`
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int `json:"count"`
}

// Dashboard DTOs

// DashboardDTO aggregates the key figures for the landing page
type DashboardDTO struct {
	OffertesPerStatus   map[OfferteStatus]int64 `json:"offertesPerStatus"`
	ProjectenPerStatus  map[ProjectStatus]int64 `json:"projectenPerStatus"`
	ConversiePercentage float64                 `json:"conversiePercentage"`
	OpenstaandBedrag    float64                 `json:"openstaandBedrag"`
	VoorraadOnderMin    int64                   `json:"voorraadOnderMinimum"`
}

// FileDTO describes an uploaded attachment
type FileDTO struct {
	ID          uuid.UUID  `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	OfferteID   *uuid.UUID `json:"offerteId,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}
