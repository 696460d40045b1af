package models

import (
	"time"

	"gorm.io/gorm"
)

// NutrientMetric is the per-nutrient slice of a snapshot.
type NutrientMetric struct {
	Key            string  `json:"key"`
	RecentAvg      float64 `json:"recent_avg"`
	Median         float64 `json:"median"`
	P90            float64 `json:"p90"`
	ZScore         float64 `json:"z_score"`
	TrendSlope     float64 `json:"trend_slope"`
	TargetGapRatio float64 `json:"target_gap_ratio"`
}

// NutritionAnalyticsSnapshot is a point-in-time rollup over [FromDate,ToDate].
// History is retained; the latest by ToDate is authoritative for alerting.
// Metrics always holds exactly one entry per tracked nutrient key.
type NutritionAnalyticsSnapshot struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	FromDate time.Time `gorm:"not null"`
	ToDate   time.Time `gorm:"index;not null"`

	ReliabilityScore float64
	CoverageScore    float64
	AnomalyCount     int

	Metrics []NutrientMetric `gorm:"serializer:json"`
}

// Metric returns the metric for a tracked key, nil if absent.
func (s *NutritionAnalyticsSnapshot) Metric(key string) *NutrientMetric {
	for i := range s.Metrics {
		if s.Metrics[i].Key == key {
			return &s.Metrics[i]
		}
	}
	return nil
}
