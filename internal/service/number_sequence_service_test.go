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

func setupNumberSequenceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createNumberSequenceService(db *gorm.DB) *service.NumberSequenceService {
	repo := repository.NewNumberSequenceRepository(db)
	return service.NewNumberSequenceService(repo, zap.NewNop())
}

func TestNumberSequenceService_GenerateOfferteNummer(t *testing.T) {
	db := setupNumberSequenceTestDB(t)
	svc := createNumberSequenceService(db)
	ctx := context.Background()

	year := time.Now().Year()

	first, err := svc.GenerateOfferteNummer(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("HV-%d-001", year), first)

	second, err := svc.GenerateOfferteNummer(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("HV-%d-002", year), second)
}

func TestNumberSequenceService_CompaniesGetSeparateSequences(t *testing.T) {
	db := setupNumberSequenceTestDB(t)
	svc := createNumberSequenceService(db)
	ctx := context.Background()

	year := time.Now().Year()

	hv, err := svc.GenerateOfferteNummer(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	go1, err := svc.GenerateProjectNummer(ctx, domain.CompanyGroenonderhoud)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("HV-%d-001", year), hv)
	assert.Equal(t, fmt.Sprintf("GO-%d-001", year), go1)
}

func TestNumberSequenceService_SharedCounterAcrossEntityTypes(t *testing.T) {
	db := setupNumberSequenceTestDB(t)
	svc := createNumberSequenceService(db)
	ctx := context.Background()

	year := time.Now().Year()

	offerte, err := svc.GenerateOfferteNummer(ctx, domain.CompanyBoomverzorging)
	require.NoError(t, err)
	factuur, err := svc.GenerateFactuurNummer(ctx, domain.CompanyBoomverzorging)
	require.NoError(t, err)
	order, err := svc.GenerateOrderNummer(ctx, domain.CompanyBoomverzorging)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("BV-%d-001", year), offerte)
	assert.Equal(t, fmt.Sprintf("BV-%d-002", year), factuur)
	assert.Equal(t, fmt.Sprintf("BV-%d-003", year), order)
}

func TestNumberSequenceService_InvalidCompany(t *testing.T) {
	db := setupNumberSequenceTestDB(t)
	svc := createNumberSequenceService(db)

	_, err := svc.GenerateOfferteNummer(context.Background(), domain.CompanyID("onbekend"))
	assert.ErrorIs(t, err, service.ErrInvalidCompanyID)
}

func TestNumberSequenceService_InitializeAndCurrent(t *testing.T) {
	db := setupNumberSequenceTestDB(t)
	svc := createNumberSequenceService(db)
	ctx := context.Background()

	year := time.Now().Year()

	require.NoError(t, svc.InitializeSequence(ctx, domain.CompanyHoveniers, year, 41))

	current, err := svc.GetCurrentNumber(ctx, domain.CompanyHoveniers, year)
	require.NoError(t, err)
	assert.Equal(t, 41, current)

	next, err := svc.GenerateOfferteNummer(ctx, domain.CompanyHoveniers)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("HV-%d-042", year), next)
}
