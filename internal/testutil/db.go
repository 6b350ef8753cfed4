// Package testutil provides shared helpers for tests that run against a
// real PostgreSQL database (started via docker-compose).
package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "offerte_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "offerte_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "offerte")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	EnsureTestCompanies(t, db)

	return db
}

// CleanupTestData removes test data from all tables, child tables first so
// foreign key constraints hold.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	tables := []string{
		"notifications",
		"files",
		"facturen",
		"inkooporder_regels",
		"inkooporders",
		"nacalculaties",
		"machinegebruik",
		"urenregistraties",
		"projecten",
		"offerte_regels",
		"offertes",
		"voorraad_items",
		"norm_uren",
		"klanten",
		"number_sequences",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			// Table might not exist, that's ok
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}

	// Company overrides only; system defaults stay seeded
	if err := db.Exec("DELETE FROM correctie_factoren WHERE company_id IS NOT NULL").Error; err != nil {
		t.Logf("Note: Could not clean table correctie_factoren: %v", err)
	}
}

// CreateTestKlant creates a customer for the given company and returns it
func CreateTestKlant(t *testing.T, db *gorm.DB, naam string, companyID domain.CompanyID) *domain.Klant {
	klant := &domain.Klant{
		Naam:      naam,
		KlantType: domain.KlantTypeParticulier,
		Email:     "test@example.com",
		Telefoon:  "0612345678",
		Postcode:  "1234 AB",
		Plaats:    "Utrecht",
		IsActive:  true,
		CompanyID: companyID,
	}
	// Omit associations to avoid GORM trying to validate/create related records
	err := db.Omit(clause.Associations).Create(klant).Error
	require.NoError(t, err)
	return klant
}

// UniqueSuffix returns a string suitable for making test data unique
func UniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// EnsureTestCompanies creates the group company records if they don't exist
func EnsureTestCompanies(t *testing.T, db *gorm.DB) {
	companies := []struct {
		id        string
		name      string
		shortName string
	}{
		{string(domain.CompanyGroep), "GroenWerk Groep B.V.", "GW"},
		{string(domain.CompanyHoveniers), "GroenWerk Hoveniers B.V.", "HV"},
		{string(domain.CompanyGroenonderhoud), "GroenWerk Groenonderhoud B.V.", "GO"},
		{string(domain.CompanyBoomverzorging), "GroenWerk Boomverzorging B.V.", "BV"},
	}

	for _, c := range companies {
		err := db.Exec(`
			INSERT INTO companies (id, name, short_name, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, true, NOW(), NOW())
			ON CONFLICT (id) DO NOTHING
		`, c.id, c.name, c.shortName).Error
		if err != nil {
			t.Logf("Note: Could not insert company %s: %v", c.id, err)
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
