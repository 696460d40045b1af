package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`

	FirstName string
	LastName  string
	Birthday  time.Time
	Sex       string `gorm:"size:10"` // "male" | "female"

	HeightCm float64
	WeightKg float64

	ActivityLevel string `gorm:"size:16"` // sedentary | light | moderate | active | very_active
	FitnessGoal   string `gorm:"size:16"` // lose | maintain | gain

	Disabled  bool `gorm:"default:false"`
	Onboarded bool `gorm:"default:false"`
}
