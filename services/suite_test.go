package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// newTestDB opens a fresh in-memory database with the full schema. The
// pool is pinned to a single connection so the memory database survives
// for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.Resident{},
		&models.FeeType{},
		&models.Payment{},
		&models.HouseholdHistory{},
		&models.TemporaryResidence{},
		&models.UtilityService{},
		&models.UtilityPayment{},
		&models.Vehicle{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:  "test-secret",
		TokenTTLHours: 1,
	}
}

func f64(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func seedHousehold(t *testing.T, db *gorm.DB, number, headName string) *models.Household {
	t.Helper()
	h := &models.Household{
		HouseholdNumber: number,
		HeadName:        headName,
		Address:         "12 Trần Phú, Hà Đông, Hà Nội",
		Active:          true,
	}
	require.NoError(t, db.Create(h).Error)
	return h
}

func seedResident(t *testing.T, db *gorm.DB, name, nationalID string, householdID *uint) *models.Resident {
	t.Helper()
	r := &models.Resident{
		FullName:    name,
		BirthDate:   models.NewDate(1990, time.March, 15),
		Gender:      "Nam",
		NationalID:  nationalID,
		HouseholdID: householdID,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedFee(t *testing.T, db *gorm.DB, name string, amount float64, due models.Date) *models.FeeType {
	t.Helper()
	f := &models.FeeType{
		Name:      name,
		Mandatory: true,
		Amount:    amount,
		DueDate:   due,
		Active:    true,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}
