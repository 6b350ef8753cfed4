package domain

// PermissionType represents a fine-grained permission
type PermissionType string

const (
	// Klanten
	PermissionKlantenRead   PermissionType = "klanten:read"
	PermissionKlantenWrite  PermissionType = "klanten:write"
	PermissionKlantenDelete PermissionType = "klanten:delete"

	// Offertes
	PermissionOffertesRead      PermissionType = "offertes:read"
	PermissionOffertesWrite     PermissionType = "offertes:write"
	PermissionOffertesDelete    PermissionType = "offertes:delete"
	PermissionOffertesCalculate PermissionType = "offertes:calculate"
	PermissionOffertesVerzenden PermissionType = "offertes:verzenden"

	// Referentiedata (normuren en correctiefactoren)
	PermissionReferentieRead  PermissionType = "referentie:read"
	PermissionReferentieWrite PermissionType = "referentie:write"

	// Projecten
	PermissionProjectenRead  PermissionType = "projecten:read"
	PermissionProjectenWrite PermissionType = "projecten:write"

	// Urenregistratie en machinegebruik
	PermissionUrenRead  PermissionType = "uren:read"
	PermissionUrenWrite PermissionType = "uren:write"

	// Nacalculatie
	PermissionNacalculatieRead  PermissionType = "nacalculatie:read"
	PermissionNacalculatieWrite PermissionType = "nacalculatie:write"

	// Inkoop en voorraad
	PermissionInkoopRead    PermissionType = "inkoop:read"
	PermissionInkoopWrite   PermissionType = "inkoop:write"
	PermissionVoorraadRead  PermissionType = "voorraad:read"
	PermissionVoorraadWrite PermissionType = "voorraad:write"

	// Facturen
	PermissionFacturenRead  PermissionType = "facturen:read"
	PermissionFacturenWrite PermissionType = "facturen:write"

	// Gebruikersbeheer
	PermissionUsersRead        PermissionType = "users:read"
	PermissionUsersWrite       PermissionType = "users:write"
	PermissionUsersManageRoles PermissionType = "users:manage_roles"

	// Rapportage
	PermissionReportsView   PermissionType = "reports:view"
	PermissionReportsExport PermissionType = "reports:export"
)
