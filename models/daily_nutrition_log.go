package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyNutritionLog is one resolved consumption event. Quantities are
// absolute (already scaled by servings), nil when unknown, never negative.
// Rows are created once per logging action and never mutated.
type DailyNutritionLog struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	ItemKey   string `gorm:"index;size:128;not null"`
	ItemLabel string

	ConsumedServings float64
	LoggedAt         time.Time `gorm:"index;not null"`

	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Fiber    *float64
	Sugar    *float64
	Sodium   *float64

	ConfidenceScore float64 // 0..1
	Source          string  `gorm:"size:20"` // inherited from the resolving profile
}

func (l *DailyNutritionLog) Nutrient(key string) *float64 {
	switch key {
	case NutrientCalories:
		return l.Calories
	case NutrientProtein:
		return l.Protein
	case NutrientCarbs:
		return l.Carbs
	case NutrientFat:
		return l.Fat
	case NutrientFiber:
		return l.Fiber
	case NutrientSugar:
		return l.Sugar
	case NutrientSodium:
		return l.Sodium
	}
	return nil
}

func (l *DailyNutritionLog) SetNutrient(key string, v float64) {
	switch key {
	case NutrientCalories:
		l.Calories = &v
	case NutrientProtein:
		l.Protein = &v
	case NutrientCarbs:
		l.Carbs = &v
	case NutrientFat:
		l.Fat = &v
	case NutrientFiber:
		l.Fiber = &v
	case NutrientSugar:
		l.Sugar = &v
	case NutrientSodium:
		l.Sodium = &v
	}
}

// HasMacro reports whether at least one macro field is populated.
func (l *DailyNutritionLog) HasMacro() bool {
	for _, key := range MacroNutrients {
		if l.Nutrient(key) != nil {
			return true
		}
	}
	return false
}
