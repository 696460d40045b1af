package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

func TestBuildConsumptionModelSteadyConsumer(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := make([]models.DailyNutritionLog, 0, 14)
	for i := 0; i < 14; i++ {
		rows = append(rows, models.DailyNutritionLog{
			UserID:           1,
			ItemKey:          "granola",
			ConsumedServings: 2,
			LoggedAt:         now.AddDate(0, 0, -i),
			ConfidenceScore:  0.8,
		})
	}

	m := buildConsumptionModel(1, "granola", rows, now, DefaultTuning())

	assert.InDelta(t, 2, m.AvgDailyServings, 1e-9)
	assert.InDelta(t, 0, m.Variability, 1e-9)
	// 0.6*0.8 + 0.25*1 (14 rows saturates volume) + 0.15*1
	assert.InDelta(t, 0.88, m.Confidence, 1e-9)

	require.NotNil(t, m.PredictedDepletionAt)
	// 2 servings/day still floors the estimate at one day out
	assert.Equal(t, now.AddDate(0, 0, 1), *m.PredictedDepletionAt)
}

func TestBuildConsumptionModelSlowConsumer(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := []models.DailyNutritionLog{
		{UserID: 1, ItemKey: "tea", ConsumedServings: 0.25, LoggedAt: now.AddDate(0, 0, -2), ConfidenceScore: 0.6},
		{UserID: 1, ItemKey: "tea", ConsumedServings: 0.25, LoggedAt: now.AddDate(0, 0, -1), ConfidenceScore: 0.6},
	}

	m := buildConsumptionModel(1, "tea", rows, now, DefaultTuning())

	assert.InDelta(t, 0.25, m.AvgDailyServings, 1e-9)
	require.NotNil(t, m.PredictedDepletionAt)
	assert.Equal(t, now.AddDate(0, 0, 4), *m.PredictedDepletionAt)
}

func TestBuildConsumptionModelZeroConsumption(t *testing.T) {
	t.Parallel()

	now := time.Now()
	rows := []models.DailyNutritionLog{
		{UserID: 1, ItemKey: "spice", ConsumedServings: 0, LoggedAt: now, ConfidenceScore: 0.9},
	}

	m := buildConsumptionModel(1, "spice", rows, now, DefaultTuning())

	assert.Zero(t, m.AvgDailyServings)
	assert.Nil(t, m.PredictedDepletionAt)
}

func TestRecomputeUpsertsOneModelPerItem(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewConsumptionModelService(db, DefaultTuning())
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.DailyNutritionLog{
			UserID:           9,
			ItemKey:          "granola",
			ConsumedServings: 1,
			LoggedAt:         now.AddDate(0, 0, -i),
			ConfidenceScore:  0.7,
			Source:           models.SourceManual,
		}).Error)
	}

	first, err := svc.Recompute(ctx, 9, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// a second pass overwrites in place instead of accumulating rows
	require.NoError(t, db.Create(&models.DailyNutritionLog{
		UserID:           9,
		ItemKey:          "granola",
		ConsumedServings: 3,
		LoggedAt:         now,
		ConfidenceScore:  0.7,
		Source:           models.SourceManual,
	}).Error)

	second, err := svc.Recompute(ctx, 9, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Greater(t, second[0].AvgDailyServings, first[0].AvgDailyServings)

	var count int64
	require.NoError(t, db.Model(&models.ConsumptionModel{}).
		Where("user_id = ?", 9).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	listed, err := svc.ListModels(ctx, 9)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "granola", listed[0].ItemKey)
}

func TestRecomputeWindowExcludesOldLogs(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewConsumptionModelService(db, DefaultTuning())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.DailyNutritionLog{
		UserID:           10,
		ItemKey:          "granola",
		ConsumedServings: 1,
		LoggedAt:         time.Now().AddDate(0, 0, -(DefaultTuning().ModelWindowDays + 10)),
		ConfidenceScore:  0.7,
		Source:           models.SourceManual,
	}).Error)

	out, err := svc.Recompute(ctx, 10, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
