package models

import (
	"time"

	"gorm.io/gorm"
)

// ConsumptionModel captures per-item consumption rate, trend, and
// variability. At most one row per (user, item); overwritten on recompute.
// Variability and Confidence are clamped to [0,1].
type ConsumptionModel struct {
	gorm.Model
	UserID  uint   `gorm:"not null;uniqueIndex:uidx_consumption_user_item"`
	ItemKey string `gorm:"size:128;not null;uniqueIndex:uidx_consumption_user_item"`

	AvgDailyServings float64
	TrendSlope       float64
	Variability      float64
	Confidence       float64

	PredictedDepletionAt *time.Time
}
