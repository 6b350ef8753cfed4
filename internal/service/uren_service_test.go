package service_test

import (
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

func setupUrenTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createUrenService(db *gorm.DB) *service.UrenService {
	return service.NewUrenService(
		repository.NewUrenregistratieRepository(db),
		repository.NewMachinegebruikRepository(db),
		repository.NewProjectRepository(db),
		zap.NewNop(),
	)
}

func insertProjectInUitvoering(t *testing.T, db *gorm.DB, companyID domain.CompanyID) *domain.Project {
	t.Helper()

	klant := testutil.CreateTestKlant(t, db, "Project Klant "+testutil.UniqueSuffix(), companyID)
	project := &domain.Project{
		ProjectNummer:        fmt.Sprintf("%s-%d-%s", domain.GetCompanyPrefix(companyID), time.Now().Year(), testutil.UniqueSuffix()),
		Naam:                 "Lopend project",
		KlantID:              klant.ID,
		KlantNaam:            klant.Naam,
		CompanyID:            companyID,
		Status:               domain.ProjectStatusInUitvoering,
		ManagerID:            "user-manager",
		ManagerNaam:          "Manager Test",
		GeplandeUren:         40,
		GeplandeUrenPerScope: "{}",
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func TestUrenService_RegisterUren_KwartierAfronding(t *testing.T) {
	db := setupUrenTestDB(t)
	svc := createUrenService(db)
	ctx := hoveniersTestContext()

	project := insertProjectInUitvoering(t, db, domain.CompanyHoveniers)

	dto, err := svc.RegisterUren(ctx, project.ID, &domain.CreateUrenregistratieRequest{
		Datum: time.Now().UTC(),
		Scope: domain.ScopeGrondwerk,
		Uren:  3.4,
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, dto.Uren, "hours round to the nearest quarter")
}

func TestUrenService_RegisterUren_ProjectNietInUitvoering(t *testing.T) {
	db := setupUrenTestDB(t)
	svc := createUrenService(db)
	ctx := hoveniersTestContext()

	project := insertProjectInUitvoering(t, db, domain.CompanyHoveniers)
	require.NoError(t, db.Model(project).Update("status", domain.ProjectStatusGepland).Error)

	_, err := svc.RegisterUren(ctx, project.ID, &domain.CreateUrenregistratieRequest{
		Datum: time.Now().UTC(),
		Scope: domain.ScopeGrondwerk,
		Uren:  2,
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
}

func TestUrenService_RegisterMachinegebruik_KostenUitAfgerondeUren(t *testing.T) {
	db := setupUrenTestDB(t)
	svc := createUrenService(db)
	ctx := hoveniersTestContext()

	project := insertProjectInUitvoering(t, db, domain.CompanyHoveniers)

	// 1.1 h rounds down to a full hour; kosten follow the stored hours
	dto, err := svc.RegisterMachinegebruik(ctx, project.ID, &domain.CreateMachinegebruikRequest{
		Machine:   "Minigraver",
		Datum:     time.Now().UTC(),
		Uren:      1.1,
		UurTarief: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, dto.Uren)
	assert.Equal(t, 80.0, dto.UurTarief)
	assert.Equal(t, 80.0, dto.Kosten, "kosten is uren maal uurtarief after rounding")
}

func TestUrenService_DeleteUren_AndereGebruiker(t *testing.T) {
	db := setupUrenTestDB(t)
	svc := createUrenService(db)

	project := insertProjectInUitvoering(t, db, domain.CompanyHoveniers)

	created, err := svc.RegisterUren(hoveniersTestContext(), project.ID, &domain.CreateUrenregistratieRequest{
		Datum: time.Now().UTC(),
		Scope: domain.ScopeGrondwerk,
		Uren:  4,
	})
	require.NoError(t, err)

	// A groep admin may remove entries of other users
	require.NoError(t, svc.DeleteUren(groepTestContext(), project.ID, created.ID))
}
