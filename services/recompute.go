package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

// RecomputeResult is delivered exactly once per submitted job. A caller may
// await the channel or drop it; the channel is buffered so the worker never
// blocks on an uninterested caller.
type RecomputeResult struct {
	JobID    string
	UserID   uint
	Snapshot *models.NutritionAnalyticsSnapshot
	Models   []models.ConsumptionModel
	Alerts   []models.HealthAlert
	Err      error
}

// Recomputer chains the pipeline (snapshot → models → alerts) for one user.
// Each engine call stays synchronous; this type only owns the task
// submission. Failures are logged and never retried: recompute is
// idempotent and the next trigger starts over from fresh state.
type Recomputer struct {
	analytics *AnalyticsService
	models    *ConsumptionModelService
	alerts    *AlertService
	hub       *RealtimeHub
	log       *zap.SugaredLogger
}

func NewRecomputer(
	analytics *AnalyticsService,
	consumption *ConsumptionModelService,
	alerts *AlertService,
	hub *RealtimeHub,
	log *zap.SugaredLogger,
) *Recomputer {
	return &Recomputer{analytics: analytics, models: consumption, alerts: alerts, hub: hub, log: log}
}

// Submit schedules a full recompute for the user and returns the result
// channel. Typical call sites fire and forget. The job outlives the
// caller: request contexts are cancelled as soon as the handler returns,
// which must not kill an in-flight recompute.
func (r *Recomputer) Submit(ctx context.Context, userID uint) <-chan RecomputeResult {
	jobID := uuid.NewString()
	ch := make(chan RecomputeResult, 1)
	detached := context.WithoutCancel(ctx)

	go func() {
		res := r.run(detached, jobID, userID)
		if res.Err != nil {
			r.log.Errorw("recompute failed",
				"job_id", jobID, "user_id", userID, "error", res.Err)
		}
		ch <- res
		close(ch)
	}()
	return ch
}

// Run executes the pipeline synchronously; exposed for call sites that want
// the result inline (e.g. an explicit recompute endpoint).
func (r *Recomputer) Run(ctx context.Context, userID uint) RecomputeResult {
	return r.run(ctx, uuid.NewString(), userID)
}

func (r *Recomputer) run(ctx context.Context, jobID string, userID uint) RecomputeResult {
	res := RecomputeResult{JobID: jobID, UserID: userID}

	res.Snapshot, res.Err = r.analytics.Recompute(ctx, userID, time.Time{}, time.Time{})
	if res.Err != nil {
		return res
	}
	if res.Snapshot != nil && r.hub != nil {
		r.hub.Broadcast(userID, EventSnapshotUpdated, res.Snapshot)
	}

	res.Models, res.Err = r.models.Recompute(ctx, userID, time.Time{}, time.Time{})
	if res.Err != nil {
		return res
	}

	res.Alerts, res.Err = r.alerts.Recompute(ctx, userID)
	return res
}
