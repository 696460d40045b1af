package utils

import (
	"errors"
	"time"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// Single source of truth for valid activity levels.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// goalAdjustments shifts the calorie budget relative to TDEE.
var goalAdjustments = map[string]float64{
	"lose":     0.85,
	"maintain": 1.0,
	"gain":     1.10,
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

func CalculateAge(birthday time.Time) int {
	today := time.Now()
	age := today.Year() - birthday.Year()
	if today.Before(birthday.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

func sodiumLimitByAge(age int) float64 {
	switch {
	case age > 0 && age <= 3:
		return 1200 // mg/day
	case age >= 4 && age <= 8:
		return 1500
	case age >= 9 && age <= 13:
		return 1800
	default:
		return 2300
	}
}

// DeriveDailyTargets is a pure function of body metrics and goals. BMR via
// Mifflin-St Jeor, scaled by activity level, adjusted for the fitness goal;
// macro split 20/50/30 (protein/carbs/fat) of the calorie budget, fiber at
// 14 g per 1000 kcal, added-sugar cap at 10% of calories, sodium per the
// age-specific CDRR.
func DeriveDailyTargets(user *models.User) (*models.DailyTargets, error) {
	if user == nil {
		return nil, errors.New("user required")
	}
	if user.HeightCm <= 0 || user.WeightKg <= 0 {
		return nil, errors.New("height and weight must be set")
	}
	if user.Birthday.IsZero() {
		return nil, errors.New("birthday must be set")
	}
	age := CalculateAge(user.Birthday)
	if age < 0 || age > 130 {
		return nil, errors.New("implausible age")
	}

	bmr := 10*user.WeightKg + 6.25*user.HeightCm - 5*float64(age)
	if user.Sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[user.ActivityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	adj, ok := goalAdjustments[user.FitnessGoal]
	if !ok {
		adj = 1.0
	}
	calories := bmr * mult * adj

	return &models.DailyTargets{
		UserID:   user.ID,
		Calories: Round2(calories),
		Protein:  Round2(0.20 * calories / 4.0),
		Carbs:    Round2(0.50 * calories / 4.0),
		Fat:      Round2(0.30 * calories / 9.0),
		Fiber:    Round2(14.0 * calories / 1000.0),
		Sugar:    Round2(0.10 * calories / 4.0),
		Sodium:   sodiumLimitByAge(age),
	}, nil
}
