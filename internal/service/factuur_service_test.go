package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"github.com/groenwerk/offerte-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupFactuurTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createFactuurService(db *gorm.DB) *service.FactuurService {
	logger := zap.NewNop()
	return service.NewFactuurService(
		repository.NewFactuurRepository(db),
		repository.NewOfferteRepository(db),
		service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), logger),
		service.NewNotificationService(repository.NewNotificationRepository(db), logger),
		logger,
	)
}

// insertAcceptedOfferte seeds an already-accepted offerte with totals,
// bypassing the calculation flow.
func insertAcceptedOfferte(t *testing.T, db *gorm.DB, companyID domain.CompanyID) *domain.Offerte {
	t.Helper()

	klant := testutil.CreateTestKlant(t, db, "Factuur Klant "+testutil.UniqueSuffix(), companyID)
	now := time.Now().UTC()
	offerte := &domain.Offerte{
		OfferteNummer:  fmt.Sprintf("%s-%d-%s", domain.GetCompanyPrefix(companyID), now.Year(), testutil.UniqueSuffix()),
		Titel:          "Geaccepteerde tuinaanleg",
		KlantID:        klant.ID,
		KlantNaam:      klant.Naam,
		CompanyID:      companyID,
		OfferteType:    domain.OfferteTypeAanleg,
		Status:         domain.OfferteStatusGeaccepteerd,
		Terreintoegang: domain.ToegangNormaal,
		ScopeInvoer:    "[]",
		UurTarief:      45,
		BtwPercentage:  21,
		BeslistOp:      &now,
		TotaalExBtw:    1000,
		Btw:            210,
		TotaalInclBtw:  1210,
		OwnerID:        "user-owner",
		OwnerName:      "Eigenaar Test",
	}
	require.NoError(t, db.Create(offerte).Error)
	return offerte
}

func TestFactuurService_Create(t *testing.T) {
	db := setupFactuurTestDB(t)
	svc := createFactuurService(db)
	ctx := context.Background()

	offerte := insertAcceptedOfferte(t, db, domain.CompanyHoveniers)

	dto, err := svc.Create(ctx, &domain.CreateFactuurRequest{
		OfferteID:        offerte.ID,
		ExternReferentie: "EXACT-12345",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FactuurStatusOpen, dto.Status)
	assert.Equal(t, offerte.ID, dto.OfferteID)
	assert.Equal(t, 1000.0, dto.TotaalExBtw, "totals copied from the offerte")
	assert.Equal(t, 1210.0, dto.TotaalInclBtw)
	assert.Contains(t, dto.FactuurNummer, "HV-")
	require.NotNil(t, dto.Vervaldatum, "default betalingstermijn sets a vervaldatum")
}

func TestFactuurService_Create_RequiresAcceptedOfferte(t *testing.T) {
	db := setupFactuurTestDB(t)
	svc := createFactuurService(db)
	ctx := context.Background()

	offerte := insertAcceptedOfferte(t, db, domain.CompanyHoveniers)
	require.NoError(t, db.Model(offerte).Update("status", domain.OfferteStatusConcept).Error)

	_, err := svc.Create(ctx, &domain.CreateFactuurRequest{OfferteID: offerte.ID})
	assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
}

func TestFactuurService_UpdateStatus(t *testing.T) {
	db := setupFactuurTestDB(t)
	svc := createFactuurService(db)
	ctx := context.Background()

	offerte := insertAcceptedOfferte(t, db, domain.CompanyBoomverzorging)
	created, err := svc.Create(ctx, &domain.CreateFactuurRequest{OfferteID: offerte.ID})
	require.NoError(t, err)

	herinnering, err := svc.UpdateStatus(ctx, created.ID, domain.FactuurStatusHerinnering)
	require.NoError(t, err)
	assert.Equal(t, domain.FactuurStatusHerinnering, herinnering.Status)

	betaald, err := svc.UpdateStatus(ctx, created.ID, domain.FactuurStatusBetaald)
	require.NoError(t, err)
	assert.Equal(t, domain.FactuurStatusBetaald, betaald.Status)
	assert.NotNil(t, betaald.BetaaldOp)

	// Betaald is final
	_, err = svc.UpdateStatus(ctx, created.ID, domain.FactuurStatusOpen)
	assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
}

func TestFactuurService_MarkBetaald_NotifiesOwner(t *testing.T) {
	db := setupFactuurTestDB(t)
	svc := createFactuurService(db)
	ctx := context.Background()

	offerte := insertAcceptedOfferte(t, db, domain.CompanyHoveniers)
	created, err := svc.Create(ctx, &domain.CreateFactuurRequest{OfferteID: offerte.ID})
	require.NoError(t, err)

	factuurRepo := repository.NewFactuurRepository(db)
	factuur, err := factuurRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	betaaldOp := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, svc.MarkBetaald(ctx, factuur, betaaldOp))

	updated, err := factuurRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FactuurStatusBetaald, updated.Status)
	require.NotNil(t, updated.BetaaldOp)

	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).
		Where("user_id = ? AND type = ?", offerte.OwnerID, domain.NotificationTypeFactuurBetaald).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Marking an already paid factuur again is a no-op
	require.NoError(t, svc.MarkBetaald(ctx, updated, time.Now().UTC()))
}

func TestFactuurService_ListOpen(t *testing.T) {
	db := setupFactuurTestDB(t)
	svc := createFactuurService(db)
	ctx := context.Background()

	first := insertAcceptedOfferte(t, db, domain.CompanyHoveniers)
	second := insertAcceptedOfferte(t, db, domain.CompanyHoveniers)

	withRef, err := svc.Create(ctx, &domain.CreateFactuurRequest{
		OfferteID:        first.ID,
		ExternReferentie: "EXACT-777",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateFactuurRequest{OfferteID: second.ID})
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1, "only invoices with an extern referentie are reconciled")
	assert.Equal(t, withRef.ID, open[0].ID)
}
