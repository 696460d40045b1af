package models

import (
	"time"

	"gorm.io/gorm"
)

// Alert types emitted by the alert engine.
const (
	AlertDeficiency    = "deficiency"
	AlertExcess        = "excess"
	AlertExpiryWarning = "expiry_warning"
)

// Severity tiers, ascending.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// HealthAlert is created by the alert engine and dismissed by the user
// surface. Only IsRead is ever mutated. At most one unread alert exists per
// (AlertType, NutrientKey, Severity) key.
type HealthAlert struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	AlertType   string `gorm:"size:32;not null"`
	NutrientKey string `gorm:"size:64"` // nutrient key, or item ref for expiry alerts

	CurrentValue float64
	TargetValue  float64

	Severity    string `gorm:"size:12;not null"`
	Message     string `gorm:"type:text"`
	IsRead      bool   `gorm:"default:false;index"`
	TriggeredAt time.Time
}

// DedupKey is the unread-suppression key. Severity is part of the key, so
// the same nutrient can hold unread alerts at different severities.
func (a *HealthAlert) DedupKey() string {
	return a.AlertType + ":" + a.NutrientKey + ":" + a.Severity
}
