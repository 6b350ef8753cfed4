package service_test

import (
	"testing"

	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"github.com/groenwerk/offerte-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupVoorraadTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createVoorraadService(db *gorm.DB) *service.VoorraadService {
	logger := zap.NewNop()
	notificationSvc := service.NewNotificationService(repository.NewNotificationRepository(db), logger)
	return service.NewVoorraadService(
		repository.NewVoorraadRepository(db),
		notificationSvc,
		repository.NewUserRepository(db),
		logger,
	)
}

func TestVoorraadService_UpsertCreatesAndUpdates(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	req := &domain.UpsertVoorraadItemRequest{
		Naam:            "Betontegels 30x30",
		Eenheid:         "m2",
		Voorraad:        120,
		MinimumVoorraad: 20,
		PrijsPerEenheid: 24.50,
	}

	created, err := svc.Upsert(ctx, domain.CompanyHoveniers, req)
	require.NoError(t, err)
	assert.Equal(t, "Betontegels 30x30", created.Naam)
	assert.Equal(t, 120.0, created.Voorraad)
	assert.False(t, created.OnderMinimum)

	// Same artikel for the same company updates in place
	req.Voorraad = 80
	updated, err := svc.Upsert(ctx, domain.CompanyHoveniers, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 80.0, updated.Voorraad)

	// Same artikel for another company is a separate item
	other, err := svc.Upsert(ctx, domain.CompanyGroenonderhoud, req)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
}

func TestVoorraadService_Mutatie(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	item, err := svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam:            "Graszoden",
		Eenheid:         "m2",
		Voorraad:        50,
		MinimumVoorraad: 10,
	})
	require.NoError(t, err)

	// Withdrawal
	after, err := svc.Mutatie(ctx, item.ID, -30, "project HV-2026-001")
	require.NoError(t, err)
	assert.Equal(t, 20.0, after.Voorraad)

	// Delivery
	after, err = svc.Mutatie(ctx, item.ID, 15, "levering")
	require.NoError(t, err)
	assert.Equal(t, 35.0, after.Voorraad)
}

func TestVoorraadService_Mutatie_OnvoldoendeVoorraad(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	item, err := svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam:     "Bodemverbeteraar",
		Eenheid:  "zak",
		Voorraad: 5,
	})
	require.NoError(t, err)

	_, err = svc.Mutatie(ctx, item.ID, -6, "te veel")
	assert.ErrorIs(t, err, service.ErrOnvoldoendeVoorraad)

	// Level unchanged after the rejected withdrawal
	got, err := svc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Voorraad)
}

func TestVoorraadService_Mutatie_ZeroDelta(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	item, err := svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam:     "Opsluitbanden",
		Eenheid:  "m",
		Voorraad: 100,
	})
	require.NoError(t, err)

	_, err = svc.Mutatie(ctx, item.ID, 0, "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestVoorraadService_MutatieBelowMinimum_NotifiesAdmins(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	adminID := "admin-" + testutil.UniqueSuffix()
	companyID := domain.CompanyHoveniers
	require.NoError(t, db.Create(&domain.User{
		ID:          adminID,
		ExternalID:  adminID,
		Email:       adminID + "@groenwerk.nl",
		DisplayName: "Voorraad Admin",
		Roles:       []string{string(domain.RoleCompanyAdmin)},
		CompanyID:   &companyID,
		IsActive:    true,
	}).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", adminID)
	})

	item, err := svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam:            "Graszaad",
		Eenheid:         "kg",
		Voorraad:        12,
		MinimumVoorraad: 10,
	})
	require.NoError(t, err)

	_, err = svc.Mutatie(ctx, item.ID, -5, "verbruik")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).
		Where("user_id = ? AND type = ?", adminID, string(domain.NotificationTypeVoorraadLaag)).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVoorraadService_List_OnderMinimumFilter(t *testing.T) {
	db := setupVoorraadTestDB(t)
	svc := createVoorraadService(db)
	ctx := groepTestContext()

	_, err := svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam: "Ruim Op Voorraad", Eenheid: "stuks", Voorraad: 100, MinimumVoorraad: 5,
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, domain.CompanyHoveniers, &domain.UpsertVoorraadItemRequest{
		Naam: "Bijna Op", Eenheid: "stuks", Voorraad: 2, MinimumVoorraad: 5,
	})
	require.NoError(t, err)

	result, err := svc.List(ctx, 1, 20, "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = svc.List(ctx, 1, 20, "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}
