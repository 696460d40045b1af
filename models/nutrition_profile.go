package models

import "gorm.io/gorm"

// NutritionProfile is a per-serving nutrient estimate for an item, tagged
// with its provenance. Profiles are append-only: a better estimate is a new
// row, and the most recent row per (user, item) is authoritative.
type NutritionProfile struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	ItemKey   string `gorm:"index;size:128;not null"`
	ItemLabel string

	Source          string   `gorm:"size:20;not null"` // label_scan | barcode_api | ai_inferred | manual
	ConfidenceScore *float64 // 0..1, optional (typically set for ai_inferred)
	RawText         string   `gorm:"type:text"` // supporting text from the extractor

	// Per-serving quantities. Nil means unknown, never negative.
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Fiber    *float64
	Sugar    *float64
	Sodium   *float64
}

// PerServing returns the per-serving quantity for a tracked nutrient key,
// nil when unknown.
func (p *NutritionProfile) PerServing(key string) *float64 {
	switch key {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientCarbs:
		return p.Carbs
	case NutrientFat:
		return p.Fat
	case NutrientFiber:
		return p.Fiber
	case NutrientSugar:
		return p.Sugar
	case NutrientSodium:
		return p.Sodium
	}
	return nil
}
