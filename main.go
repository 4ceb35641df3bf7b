// @title           Thien Nguyet Dong Phu API
// @version         1.0
// @description     Residential administration backend: households, residents, fees, utilities and vehicles

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/database"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/routes"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("logger setup failed: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		config.Warning("no .env file loaded: %v", err)
	} else {
		config.Info(".env file loaded")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	db := pool.DB

	if err := autoMigrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ensureAdminExists(db, cfg)

	r := routes.SetupRouter(db, cfg)

	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}
	config.Info("server listening on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("server failed: %v", err)
		os.Exit(1)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

// ensureAdminExists seeds a default admin account on first boot.
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	password := cfg.DefaultAdminPassword
	if password == "" {
		password = "admin123"
	}

	admin := models.User{
		Username: "admin",
		Password: password,
		FullName: "Quản trị viên",
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("default admin creation failed: %v", err)
		return
	}
	config.Info("default admin account created (username: admin)")
}
