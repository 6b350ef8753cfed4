package service_test

import (
	"context"
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

func setupReferentieTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createReferentieService(db *gorm.DB) *service.ReferentieService {
	return service.NewReferentieService(
		repository.NewNormUurRepository(db),
		repository.NewCorrectieFactorRepository(db),
		zap.NewNop(),
	)
}

func TestReferentieService_UpsertNormUur(t *testing.T) {
	db := setupReferentieTestDB(t)
	svc := createReferentieService(db)
	ctx := context.Background()

	req := &domain.UpsertNormUurRequest{
		Scope:          domain.ScopeGrondwerk,
		Activiteit:     "graven_standaard",
		UrenPerEenheid: 0.5,
		Eenheid:        "m2",
	}

	created, err := svc.UpsertNormUur(ctx, domain.CompanyHoveniers, req)
	require.NoError(t, err)
	assert.Equal(t, 0.5, created.UrenPerEenheid)

	// Second upsert on the same key updates in place
	req.UrenPerEenheid = 0.6
	updated, err := svc.UpsertNormUur(ctx, domain.CompanyHoveniers, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 0.6, updated.UrenPerEenheid)

	uren, err := svc.ListNormUren(ctx, domain.CompanyHoveniers, domain.ScopeGrondwerk)
	require.NoError(t, err)
	require.Len(t, uren, 1)
	assert.Equal(t, 0.6, uren[0].UrenPerEenheid)
}

func TestReferentieService_UpsertNormUur_InvalidScope(t *testing.T) {
	db := setupReferentieTestDB(t)
	svc := createReferentieService(db)

	_, err := svc.UpsertNormUur(context.Background(), domain.CompanyHoveniers, &domain.UpsertNormUurRequest{
		Scope:          domain.Scope("zwembaden"),
		Activiteit:     "graven",
		UrenPerEenheid: 1,
		Eenheid:        "m2",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestReferentieService_FactorOverridePrecedence(t *testing.T) {
	db := setupReferentieTestDB(t)
	svc := createReferentieService(db)
	ctx := context.Background()

	// System default
	_, err := svc.UpsertCorrectieFactor(ctx, nil, &domain.UpsertCorrectieFactorRequest{
		FactorType:   domain.FactorOnkruiddruk,
		FactorWaarde: "zwaar",
		Factor:       1.4,
	})
	require.NoError(t, err)

	// Company override for the same key
	companyID := domain.CompanyGroenonderhoud
	_, err = svc.UpsertCorrectieFactor(ctx, &companyID, &domain.UpsertCorrectieFactorRequest{
		FactorType:   domain.FactorOnkruiddruk,
		FactorWaarde: "zwaar",
		Factor:       1.6,
	})
	require.NoError(t, err)

	// The override wins inside the snapshot
	ref, err := svc.BuildReferenceSet(ctx, domain.CompanyGroenonderhoud)
	require.NoError(t, err)
	assert.Equal(t, 1.6, ref.CorrectieFactor(domain.FactorOnkruiddruk, "zwaar"))

	// A company without an override sees the default
	ref, err = svc.BuildReferenceSet(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	assert.Equal(t, 1.4, ref.CorrectieFactor(domain.FactorOnkruiddruk, "zwaar"))

	// An unknown key resolves to neutral
	assert.Equal(t, 1.0, ref.CorrectieFactor(domain.FactorOnkruiddruk, "onbekend"))
}

func TestReferentieService_BuildReferenceSet_NormUren(t *testing.T) {
	db := setupReferentieTestDB(t)
	svc := createReferentieService(db)
	ctx := context.Background()

	_, err := svc.UpsertNormUur(ctx, domain.CompanyHoveniers, &domain.UpsertNormUurRequest{
		Scope:          domain.ScopeBestrating,
		Activiteit:     "leggen",
		UrenPerEenheid: 0.75,
		Eenheid:        "m2",
	})
	require.NoError(t, err)

	ref, err := svc.BuildReferenceSet(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	assert.Equal(t, 0.75, ref.NormUur(domain.ScopeBestrating, "leggen"))
	assert.Equal(t, 0.0, ref.NormUur(domain.ScopeBestrating, "zandbed"))
}
