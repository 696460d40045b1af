package models

import "gorm.io/gorm"

// DailyTargets holds each user's daily nutrient-intake targets.
// Calories in kcal, sodium in mg, everything else in grams.
type DailyTargets struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Calories float64 // e.g. 2200 kcal
	Protein  float64 // e.g. 120 g
	Carbs    float64 // e.g. 275 g
	Fat      float64 // e.g. 70 g
	Fiber    float64 // e.g. 30 g
	Sugar    float64 // e.g. 50 g
	Sodium   float64 // e.g. 2300 mg
}

// Target returns the daily target for a tracked nutrient key.
func (t *DailyTargets) Target(key string) float64 {
	switch key {
	case NutrientCalories:
		return t.Calories
	case NutrientProtein:
		return t.Protein
	case NutrientCarbs:
		return t.Carbs
	case NutrientFat:
		return t.Fat
	case NutrientFiber:
		return t.Fiber
	case NutrientSugar:
		return t.Sugar
	case NutrientSodium:
		return t.Sodium
	}
	return 0
}
