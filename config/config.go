package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

// InitDB connects to Postgres from environment config and migrates the
// schema. The handle is returned rather than stored in a package global so
// every service receives its store explicitly.
func InitDB() (*gorm.DB, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the schema migration for every model. Split out so tests can
// run it against their own store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.NutritionProfile{},
		&models.DailyNutritionLog{},
		&models.NutritionAnalyticsSnapshot{},
		&models.ConsumptionModel{},
		&models.HealthAlert{},
		&models.ExpenseItem{},
		&models.DailyTargets{},
		&models.UserDevice{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
