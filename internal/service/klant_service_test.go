package service_test

import (
	"context"
	"testing"

	"github.com/groenwerk/offerte-api/internal/auth"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/service"
	"github.com/groenwerk/offerte-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupKlantServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createKlantService(db *gorm.DB) *service.KlantService {
	return service.NewKlantService(repository.NewKlantRepository(db), zap.NewNop())
}

func groepTestContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      "test-user",
		DisplayName: "Test User",
		Email:       "test@groenwerk.nl",
		Roles:       []domain.UserRoleType{domain.RoleSuperAdmin},
		CompanyID:   domain.CompanyGroep,
	})
}

func hoveniersTestContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      "hovenier-user",
		DisplayName: "Hovenier User",
		Email:       "hovenier@groenwerk.nl",
		Roles:       []domain.UserRoleType{domain.RoleCalculator},
		CompanyID:   domain.CompanyHoveniers,
	})
}

func TestKlantService_Create(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)
	ctx := groepTestContext()

	req := &domain.CreateKlantRequest{
		Naam:      "Familie Jansen",
		KlantType: domain.KlantTypeParticulier,
		Email:     "jansen@example.com",
		Telefoon:  "0612345678",
		Postcode:  "1234ab",
		Plaats:    "Utrecht",
		CompanyID: domain.CompanyHoveniers,
	}

	dto, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Familie Jansen", dto.Naam)
	assert.Equal(t, domain.CompanyHoveniers, dto.CompanyID)
	assert.Equal(t, "1234 AB", dto.Postcode, "postcode should be normalized")
}

func TestKlantService_Create_CompanyFromUserContext(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)

	req := &domain.CreateKlantRequest{
		Naam:      "Gemeente Amersfoort",
		KlantType: domain.KlantTypeZakelijk,
		Email:     "groen@amersfoort.nl",
	}

	dto, err := svc.Create(hoveniersTestContext(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyHoveniers, dto.CompanyID)
}

func TestKlantService_Create_InvalidPostcode(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)

	req := &domain.CreateKlantRequest{
		Naam:      "Foute Postcode",
		KlantType: domain.KlantTypeParticulier,
		Postcode:  "12AB",
		CompanyID: domain.CompanyHoveniers,
	}

	_, err := svc.Create(groepTestContext(), req)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestKlantService_Create_ParticulierDropsKvk(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)

	req := &domain.CreateKlantRequest{
		Naam:      "Particulier Met Kvk",
		KlantType: domain.KlantTypeParticulier,
		KvkNummer: "12345678",
		BtwNummer: "NL123456789B01",
		CompanyID: domain.CompanyHoveniers,
	}

	dto, err := svc.Create(groepTestContext(), req)
	require.NoError(t, err)
	assert.Empty(t, dto.KvkNummer)
	assert.Empty(t, dto.BtwNummer)
}

func TestKlantService_UpdateAndGet(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)
	ctx := groepTestContext()

	klant := testutil.CreateTestKlant(t, db, "Voor Update", domain.CompanyHoveniers)

	updated, err := svc.Update(ctx, klant.ID, &domain.UpdateKlantRequest{
		Naam:      "Na Update",
		KlantType: domain.KlantTypeParticulier,
		Email:     "nieuw@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Na Update", updated.Naam)

	got, err := svc.GetByID(ctx, klant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Na Update", got.Naam)
	assert.Equal(t, "nieuw@example.com", got.Email)
}

func TestKlantService_List_CompanyIsolation(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)

	testutil.CreateTestKlant(t, db, "Hoveniers Klant", domain.CompanyHoveniers)
	testutil.CreateTestKlant(t, db, "Boomverzorging Klant", domain.CompanyBoomverzorging)

	// Subsidiary user only sees their own company's klanten
	result, err := svc.List(hoveniersTestContext(), 1, 20, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	// Groep user sees the whole group
	result, err = svc.List(groepTestContext(), 1, 20, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestKlantService_Search(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)
	ctx := groepTestContext()

	testutil.CreateTestKlant(t, db, "Tuincentrum De Boomgaard", domain.CompanyHoveniers)
	testutil.CreateTestKlant(t, db, "Familie Pietersen", domain.CompanyHoveniers)

	results, err := svc.Search(ctx, "boomgaard", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tuincentrum De Boomgaard", results[0].Naam)
}

func TestKlantService_Delete(t *testing.T) {
	db := setupKlantServiceTestDB(t)
	svc := createKlantService(db)
	ctx := groepTestContext()

	klant := testutil.CreateTestKlant(t, db, "Te Verwijderen", domain.CompanyHoveniers)

	require.NoError(t, svc.Delete(ctx, klant.ID))

	_, err := svc.GetByID(ctx, klant.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
