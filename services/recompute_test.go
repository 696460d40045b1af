package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

func newRecomputerFixture(t *testing.T) (*Recomputer, func(userID uint)) {
	t.Helper()
	db := newTestDB(t)
	tuning := DefaultTuning()
	analytics := NewAnalyticsService(db, tuning)
	consumption := NewConsumptionModelService(db, tuning)
	alerts := NewAlertService(db, tuning, analytics, &stubNotifier{}, nil, nil, zap.NewNop().Sugar())
	rec := NewRecomputer(analytics, consumption, alerts, nil, zap.NewNop().Sugar())

	seed := func(userID uint) {
		for i := 0; i < 3; i++ {
			require.NoError(t, db.Create(&models.DailyNutritionLog{
				UserID:           userID,
				ItemKey:          "granola",
				ConsumedServings: 1,
				LoggedAt:         time.Now().AddDate(0, 0, -i),
				Calories:         ptr(2000.0),
				ConfidenceScore:  0.8,
				Source:           models.SourceManual,
			}).Error)
		}
	}
	return rec, seed
}

func TestRunChainsSnapshotModelsAlerts(t *testing.T) {
	t.Parallel()

	rec, seed := newRecomputerFixture(t)
	seed(11)

	res := rec.Run(context.Background(), 11)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Snapshot)
	assert.Len(t, res.Models, 1)
	assert.NotEmpty(t, res.JobID)
}

func TestSubmitOutlivesCallerContext(t *testing.T) {
	t.Parallel()

	rec, seed := newRecomputerFixture(t)
	seed(12)

	// request contexts die as soon as the handler returns; the job must not.
	// Cancelling up front makes the race deterministic.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := rec.Submit(ctx, 12)

	res := <-ch
	require.NoError(t, res.Err)
	require.NotNil(t, res.Snapshot)
}
