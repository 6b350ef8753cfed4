package mapper

import (
	"encoding/json"
	"time"

	"github.com/groenwerk/offerte-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"
const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ToKlantDTO converts Klant to KlantDTO
func ToKlantDTO(klant *domain.Klant) domain.KlantDTO {
	return domain.KlantDTO{
		ID:        klant.ID,
		Naam:      klant.Naam,
		KlantType: klant.KlantType,
		Email:     klant.Email,
		Telefoon:  klant.Telefoon,
		Adres:     klant.Adres,
		Postcode:  klant.Postcode,
		Plaats:    klant.Plaats,
		KvkNummer: klant.KvkNummer,
		BtwNummer: klant.BtwNummer,
		Iban:      klant.Iban,
		CompanyID: klant.CompanyID,
		CreatedAt: klant.CreatedAt.Format(timestampLayout),
		UpdatedAt: klant.UpdatedAt.Format(timestampLayout),
	}
}

// ToOfferteRegelDTO converts OfferteRegel to OfferteRegelDTO
func ToOfferteRegelDTO(regel *domain.OfferteRegel) domain.OfferteRegelDTO {
	return domain.OfferteRegelDTO{
		ID:              regel.ID,
		Scope:           regel.Scope,
		Omschrijving:    regel.Omschrijving,
		Eenheid:         regel.Eenheid,
		Hoeveelheid:     regel.Hoeveelheid,
		PrijsPerEenheid: regel.PrijsPerEenheid,
		Totaal:          regel.Totaal,
		RegelType:       regel.RegelType,
		Handmatig:       regel.Handmatig,
		Volgorde:        regel.Volgorde,
	}
}

// ToOfferteDTO converts Offerte to OfferteDTO
func ToOfferteDTO(offerte *domain.Offerte) domain.OfferteDTO {
	regels := make([]domain.OfferteRegelDTO, len(offerte.Regels))
	for i := range offerte.Regels {
		regels[i] = ToOfferteRegelDTO(&offerte.Regels[i])
	}

	scopeInvoer, _ := domain.DecodeScopeInvoer(offerte.ScopeInvoer)

	dto := domain.OfferteDTO{
		ID:              offerte.ID,
		OfferteNummer:   offerte.OfferteNummer,
		Titel:           offerte.Titel,
		KlantID:         offerte.KlantID,
		KlantNaam:       offerte.KlantNaam,
		CompanyID:       offerte.CompanyID,
		OfferteType:     offerte.OfferteType,
		Status:          offerte.Status,
		Terreintoegang:  offerte.Terreintoegang,
		UurTarief:       offerte.UurTarief,
		MargePercentage: offerte.MargePercentage,
		BtwPercentage:   offerte.BtwPercentage,
		GeldigTot:       formatDate(offerte.GeldigTot),
		ScopeInvoer:     scopeInvoer,
		Regels:          regels,
		Totalen: domain.OfferteTotalenDTO{
			Materiaalkosten: offerte.Materiaalkosten,
			Arbeidskosten:   offerte.Arbeidskosten,
			Machinekosten:   offerte.Machinekosten,
			TotaalUren:      offerte.TotaalUren,
			Subtotaal:       offerte.Subtotaal,
			Marge:           offerte.Marge,
			TotaalExBtw:     offerte.TotaalExBtw,
			Btw:             offerte.Btw,
			TotaalInclBtw:   offerte.TotaalInclBtw,
		},
		OwnerID:   offerte.OwnerID,
		OwnerName: offerte.OwnerName,
		CreatedAt: offerte.CreatedAt.Format(timestampLayout),
		UpdatedAt: offerte.UpdatedAt.Format(timestampLayout),
	}

	return dto
}

// ToNormUurDTO converts NormUur to NormUurDTO
func ToNormUurDTO(normUur *domain.NormUur) domain.NormUurDTO {
	return domain.NormUurDTO{
		ID:             normUur.ID,
		CompanyID:      normUur.CompanyID,
		Scope:          normUur.Scope,
		Activiteit:     normUur.Activiteit,
		UrenPerEenheid: normUur.UrenPerEenheid,
		Eenheid:        normUur.Eenheid,
		CreatedAt:      normUur.CreatedAt.Format(timestampLayout),
		UpdatedAt:      normUur.UpdatedAt.Format(timestampLayout),
	}
}

// ToCorrectieFactorDTO converts CorrectieFactor to CorrectieFactorDTO
func ToCorrectieFactorDTO(factor *domain.CorrectieFactor) domain.CorrectieFactorDTO {
	return domain.CorrectieFactorDTO{
		ID:           factor.ID,
		CompanyID:    factor.CompanyID,
		FactorType:   factor.FactorType,
		FactorWaarde: factor.FactorWaarde,
		Factor:       factor.Factor,
		IsDefault:    factor.IsDefault(),
		CreatedAt:    factor.CreatedAt.Format(timestampLayout),
		UpdatedAt:    factor.UpdatedAt.Format(timestampLayout),
	}
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	var urenPerScope map[domain.Scope]float64
	if project.GeplandeUrenPerScope != "" {
		_ = json.Unmarshal([]byte(project.GeplandeUrenPerScope), &urenPerScope)
	}

	return domain.ProjectDTO{
		ID:                    project.ID,
		ProjectNummer:         project.ProjectNummer,
		Naam:                  project.Naam,
		OfferteID:             project.OfferteID,
		KlantID:               project.KlantID,
		KlantNaam:             project.KlantNaam,
		CompanyID:             project.CompanyID,
		Status:                project.Status,
		StartDatum:            formatDate(project.StartDatum),
		EindDatum:             formatDate(project.EindDatum),
		UitvoerderIDs:         project.UitvoerderIDs,
		GeplandeUren:          project.GeplandeUren,
		GeplandeUrenPerScope:  urenPerScope,
		GeplandeMachinekosten: project.GeplandeMachinekosten,
		CreatedAt:             project.CreatedAt.Format(timestampLayout),
		UpdatedAt:             project.UpdatedAt.Format(timestampLayout),
	}
}

// ToUrenregistratieDTO converts Urenregistratie to UrenregistratieDTO
func ToUrenregistratieDTO(uren *domain.Urenregistratie) domain.UrenregistratieDTO {
	return domain.UrenregistratieDTO{
		ID:           uren.ID,
		ProjectID:    uren.ProjectID,
		UserID:       uren.UserID,
		UserName:     uren.UserNaam,
		Datum:        uren.Datum.Format(dateLayout),
		Scope:        uren.Scope,
		Uren:         uren.Uren,
		Omschrijving: uren.Omschrijving,
		CreatedAt:    uren.CreatedAt.Format(timestampLayout),
	}
}

// ToMachinegebruikDTO converts Machinegebruik to MachinegebruikDTO
func ToMachinegebruikDTO(gebruik *domain.Machinegebruik) domain.MachinegebruikDTO {
	return domain.MachinegebruikDTO{
		ID:        gebruik.ID,
		ProjectID: gebruik.ProjectID,
		Machine:   gebruik.Machine,
		Datum:     gebruik.Datum.Format(dateLayout),
		Uren:      gebruik.Uren,
		UurTarief: gebruik.UurTarief,
		Kosten:    gebruik.Kosten,
		CreatedAt: gebruik.CreatedAt.Format(timestampLayout),
	}
}

// ToNacalculatieDTO converts Nacalculatie to NacalculatieDTO
func ToNacalculatieDTO(nacalc *domain.Nacalculatie, projectNummer string, geplandeMachinekosten float64) domain.NacalculatieDTO {
	var perScope []domain.NacalculatieScopeDTO
	if nacalc.PerScope != "" {
		_ = json.Unmarshal([]byte(nacalc.PerScope), &perScope)
	}

	return domain.NacalculatieDTO{
		ID:                      nacalc.ID,
		ProjectID:               nacalc.ProjectID,
		ProjectNummer:           projectNummer,
		GeplandeUren:            nacalc.GeplandeUren,
		WerkelijkeUren:          nacalc.WerkelijkeUren,
		AfwijkingUren:           nacalc.AfwijkingUren,
		AfwijkingPercentage:     nacalc.AfwijkingPercentage,
		GeplandeMachinekosten:   geplandeMachinekosten,
		WerkelijkeMachinekosten: nacalc.WerkelijkeMachinekosten,
		Werkdagen:               nacalc.Werkdagen,
		PerScope:                perScope,
		CreatedAt:               nacalc.CreatedAt.Format(timestampLayout),
	}
}

// ToInkooporderDTO converts Inkooporder to InkooporderDTO
func ToInkooporderDTO(order *domain.Inkooporder) domain.InkooporderDTO {
	regels := make([]domain.InkooporderRegelDTO, len(order.Regels))
	for i, regel := range order.Regels {
		regels[i] = domain.InkooporderRegelDTO{
			ID:              regel.ID,
			Omschrijving:    regel.Artikel,
			Eenheid:         regel.Eenheid,
			Hoeveelheid:     regel.Hoeveelheid,
			PrijsPerEenheid: regel.PrijsPerEenheid,
			Totaal:          regel.Totaal,
		}
	}

	return domain.InkooporderDTO{
		ID:          order.ID,
		OrderNummer: order.OrderNummer,
		Leverancier: order.Leverancier,
		ProjectID:   order.ProjectID,
		CompanyID:   order.CompanyID,
		Status:      order.Status,
		Regels:      regels,
		Totaal:      order.Totaal,
		CreatedAt:   order.CreatedAt.Format(timestampLayout),
		UpdatedAt:   order.UpdatedAt.Format(timestampLayout),
	}
}

// ToVoorraadItemDTO converts VoorraadItem to VoorraadItemDTO
func ToVoorraadItemDTO(item *domain.VoorraadItem) domain.VoorraadItemDTO {
	return domain.VoorraadItemDTO{
		ID:              item.ID,
		Naam:            item.Artikel,
		Eenheid:         item.Eenheid,
		Voorraad:        item.Aantal,
		MinimumVoorraad: item.MinimumVoorraad,
		PrijsPerEenheid: item.PrijsPerEenheid,
		CompanyID:       item.CompanyID,
		OnderMinimum:    item.IsOnderMinimum(),
		CreatedAt:       item.CreatedAt.Format(timestampLayout),
		UpdatedAt:       item.UpdatedAt.Format(timestampLayout),
	}
}

// ToFactuurDTO converts Factuur to FactuurDTO
func ToFactuurDTO(factuur *domain.Factuur) domain.FactuurDTO {
	vervaldatum := factuur.VervalDatum.Format(dateLayout)

	dto := domain.FactuurDTO{
		ID:               factuur.ID,
		FactuurNummer:    factuur.FactuurNummer,
		OfferteID:        factuur.OfferteID,
		KlantID:          factuur.KlantID,
		KlantNaam:        factuur.KlantNaam,
		CompanyID:        factuur.CompanyID,
		Status:           factuur.Status,
		TotaalExBtw:      factuur.TotaalExBtw,
		Btw:              factuur.Btw,
		TotaalInclBtw:    factuur.TotaalInclBtw,
		Vervaldatum:      &vervaldatum,
		BetaaldOp:        formatDate(factuur.BetaaldOp),
		ExternReferentie: factuur.ExternReferentie,
		CreatedAt:        factuur.CreatedAt.Format(timestampLayout),
		UpdatedAt:        factuur.UpdatedAt.Format(timestampLayout),
	}

	return dto
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		CreatedAt:  notification.CreatedAt.Format(timestampLayout),
		EntityID:   notification.EntityID,
		EntityType: notification.EntityType,
	}
}

// ToFileDTO converts File to FileDTO
func ToFileDTO(file *domain.File) domain.FileDTO {
	return domain.FileDTO{
		ID:          file.ID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		OfferteID:   file.OfferteID,
		CreatedAt:   file.CreatedAt.Format(timestampLayout),
	}
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:    user.ID,
		Name:  user.DisplayName,
		Email: user.Email,
		Roles: user.Roles,
	}
}
