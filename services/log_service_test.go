package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

func fullProfile(userID uint, itemKey, source string) *models.NutritionProfile {
	return &models.NutritionProfile{
		UserID:    userID,
		ItemKey:   itemKey,
		ItemLabel: "Oat Granola",
		Source:    source,
		Calories:  ptr(200),
		Protein:   ptr(6),
		Carbs:     ptr(30),
		Fat:       ptr(7),
		Fiber:     ptr(4),
		Sugar:     ptr(9),
		Sodium:    ptr(120),
	}
}

func TestResolveLogScalesProfileByServings(t *testing.T) {
	t.Parallel()

	now := time.Now()
	profile := fullProfile(1, "granola", models.SourceLabelScan)
	profile.CreatedAt = now.Add(-24 * time.Hour)

	entry := ResolveLog(1, LogRequest{
		ItemKey:          "granola",
		ConsumedServings: 2,
	}, profile, now, DefaultTuning())

	require.NotNil(t, entry.Calories)
	assert.InDelta(t, 400, *entry.Calories, 1e-9)
	require.NotNil(t, entry.Sodium)
	assert.InDelta(t, 240, *entry.Sodium, 1e-9)

	// complete, fresh, scanner-sourced data should score well past 0.7
	assert.Greater(t, entry.ConfidenceScore, 0.7)
	assert.LessOrEqual(t, entry.ConfidenceScore, 1.0)
	assert.Equal(t, models.SourceLabelScan, entry.Source)
	assert.Equal(t, "Oat Granola", entry.ItemLabel)
}

func TestResolveLogDirectValuesOverrideProfile(t *testing.T) {
	t.Parallel()

	now := time.Now()
	profile := fullProfile(1, "granola", models.SourceLabelScan)

	entry := ResolveLog(1, LogRequest{
		ItemKey:          "granola",
		ConsumedServings: 2,
		Calories:         ptr(500),
		Protein:          ptr(0),
	}, profile, now, DefaultTuning())

	// direct values are absolute, never scaled by servings
	require.NotNil(t, entry.Calories)
	assert.InDelta(t, 500, *entry.Calories, 1e-9)
	require.NotNil(t, entry.Protein)
	assert.Zero(t, *entry.Protein)
	// nutrients not provided directly stay unknown in override mode
	assert.Nil(t, entry.Carbs)
}

func TestResolveLogZeroFilledDirectDoesNotOverride(t *testing.T) {
	t.Parallel()

	now := time.Now()
	profile := fullProfile(1, "granola", models.SourceLabelScan)

	entry := ResolveLog(1, LogRequest{
		ItemKey:          "granola",
		ConsumedServings: 1,
		Calories:         ptr(0),
		Protein:          ptr(0),
	}, profile, now, DefaultTuning())

	// all-zero direct values are a placeholder, not an override
	require.NotNil(t, entry.Calories)
	assert.InDelta(t, 200, *entry.Calories, 1e-9)
}

func TestResolveLogWithoutProfile(t *testing.T) {
	t.Parallel()

	entry := ResolveLog(1, LogRequest{
		ItemKey:          "mystery-snack",
		ConsumedServings: 0,
	}, nil, time.Now(), DefaultTuning())

	for _, key := range models.TrackedNutrients {
		assert.Nil(t, entry.Nutrient(key), key)
	}
	assert.Equal(t, models.SourceManual, entry.Source)
	assert.Less(t, entry.ConfidenceScore, 0.45)
	assert.Greater(t, entry.ConfidenceScore, 0.0)
}

func TestResolveLogClampsNegativeProfileValues(t *testing.T) {
	t.Parallel()

	profile := fullProfile(1, "granola", models.SourceManual)
	profile.Sugar = ptr(-5)

	entry := ResolveLog(1, LogRequest{ItemKey: "granola", ConsumedServings: 1},
		profile, time.Now(), DefaultTuning())

	require.NotNil(t, entry.Sugar)
	assert.Zero(t, *entry.Sugar)
}

func TestLogConsumptionPersistsAgainstLatestProfile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	svc := NewLogService(db, DefaultTuning())

	stale := fullProfile(7, "granola", models.SourceManual)
	stale.Calories = ptr(150)
	require.NoError(t, db.Create(stale).Error)

	fresh := fullProfile(7, "granola", models.SourceLabelScan)
	fresh.CreatedAt = time.Now().Add(time.Minute)
	require.NoError(t, db.Create(fresh).Error)

	entry, err := svc.LogConsumption(ctx, 7, LogRequest{
		ItemKey:          "granola",
		ConsumedServings: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Calories)
	assert.InDelta(t, 200, *entry.Calories, 1e-9)

	var count int64
	require.NoError(t, db.Model(&models.DailyNutritionLog{}).
		Where("user_id = ?", 7).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogConsumptionRequiresItemKey(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLogService(db, DefaultTuning())

	_, err := svc.LogConsumption(context.Background(), 1, LogRequest{ConsumedServings: 1})
	require.Error(t, err)
}
