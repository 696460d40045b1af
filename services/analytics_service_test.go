package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

func TestRecomputeEmptyWindowReturnsNoSnapshot(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())

	snap, err := svc.Recompute(context.Background(), 1, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Nil(t, snap)

	latest, err := svc.Latest(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRecomputeDayCoverage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())
	ctx := context.Background()

	to := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -13) // 14-day window

	// 7 of 14 days logged
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.DailyNutritionLog{
			UserID:           3,
			ItemKey:          "granola",
			ConsumedServings: 1,
			LoggedAt:         from.AddDate(0, 0, i*2),
			Calories:         ptr(2000.0),
			ConfidenceScore:  0.8,
			Source:           models.SourceManual,
		}).Error)
	}

	snap, err := svc.Recompute(ctx, 3, from, to)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.InDelta(t, 0.5, snap.CoverageScore, 1e-9)
	assert.Len(t, snap.Metrics, len(models.TrackedNutrients))
	assert.Greater(t, snap.ReliabilityScore, 0.0)
	assert.LessOrEqual(t, snap.ReliabilityScore, 1.0)

	cal := snap.Metric(models.NutrientCalories)
	require.NotNil(t, cal)
	assert.InDelta(t, 2000, cal.Median, 1e-9)
}

func TestRecomputeFlagsCalorieSpike(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())
	ctx := context.Background()

	to := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -13)

	// steady-ish baseline, then a 5x spike on the final day
	for i := 0; i < 13; i++ {
		kcal := 1900.0
		if i%2 == 1 {
			kcal = 2100
		}
		require.NoError(t, db.Create(&models.DailyNutritionLog{
			UserID:           4,
			ItemKey:          "granola",
			ConsumedServings: 1,
			LoggedAt:         from.AddDate(0, 0, i),
			Calories:         ptr(kcal),
			ConfidenceScore:  0.8,
			Source:           models.SourceManual,
		}).Error)
	}
	require.NoError(t, db.Create(&models.DailyNutritionLog{
		UserID:           4,
		ItemKey:          "granola",
		ConsumedServings: 1,
		LoggedAt:         to,
		Calories:         ptr(10000.0),
		ConfidenceScore:  0.8,
		Source:           models.SourceManual,
	}).Error)

	snap, err := svc.Recompute(ctx, 4, from, to)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.GreaterOrEqual(t, snap.AnomalyCount, 1)

	cal := snap.Metric(models.NutrientCalories)
	require.NotNil(t, cal)
	assert.GreaterOrEqual(t, cal.ZScore, DefaultTuning().AnomalyZThreshold)
	assert.Greater(t, cal.TrendSlope, 0.0)
}

func TestRecomputeComputesTargetGap(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.DailyTargets{
		UserID:   5,
		Calories: 2000,
		Protein:  100,
	}).Error)

	to := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.DailyNutritionLog{
			UserID:           5,
			ItemKey:          "granola",
			ConsumedServings: 1,
			LoggedAt:         from.AddDate(0, 0, i),
			Calories:         ptr(1500.0),
			Protein:          ptr(40.0),
			ConfidenceScore:  0.8,
			Source:           models.SourceManual,
		}).Error)
	}

	snap, err := svc.Recompute(ctx, 5, from, to)
	require.NoError(t, err)
	require.NotNil(t, snap)

	cal := snap.Metric(models.NutrientCalories)
	require.NotNil(t, cal)
	assert.InDelta(t, -0.25, cal.TargetGapRatio, 1e-9)

	prot := snap.Metric(models.NutrientProtein)
	require.NotNil(t, prot)
	assert.InDelta(t, -0.6, prot.TargetGapRatio, 1e-9)

	// fat has no target configured, so the gap stays unset
	fat := snap.Metric(models.NutrientFat)
	require.NotNil(t, fat)
	assert.Zero(t, fat.TargetGapRatio)
}

func TestLatestReturnsNewestByWindowEnd(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())
	ctx := context.Background()

	old := models.NutritionAnalyticsSnapshot{
		UserID: 6, ToDate: time.Now().AddDate(0, 0, -10), ReliabilityScore: 0.4,
	}
	fresh := models.NutritionAnalyticsSnapshot{
		UserID: 6, ToDate: time.Now(), ReliabilityScore: 0.9,
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	got, err := svc.Latest(ctx, 6)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 0.9, got.ReliabilityScore, 1e-9)
}

func TestLatestBreaksSameDayTieTowardNewestWrite(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAnalyticsService(db, DefaultTuning())
	ctx := context.Background()

	// repeated recomputes within one day share the window end
	windowEnd := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	morning := models.NutritionAnalyticsSnapshot{
		UserID: 7, ToDate: windowEnd, ReliabilityScore: 0.5,
	}
	evening := models.NutritionAnalyticsSnapshot{
		UserID: 7, ToDate: windowEnd, ReliabilityScore: 0.85,
	}
	require.NoError(t, db.Create(&morning).Error)
	require.NoError(t, db.Create(&evening).Error)

	got, err := svc.Latest(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, evening.ID, got.ID)
	assert.InDelta(t, 0.85, got.ReliabilityScore, 1e-9)
}
