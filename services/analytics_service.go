package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

type AnalyticsService struct {
	db     *gorm.DB
	tuning Tuning
}

func NewAnalyticsService(db *gorm.DB, tuning Tuning) *AnalyticsService {
	return &AnalyticsService{db: db, tuning: tuning}
}

// dayPoint is one calendar day with at least one log: summed nutrient
// totals, averaged confidence, and the log count.
type dayPoint struct {
	date       time.Time
	totals     map[string]float64
	confidence float64
	logCount   int
}

// Recompute builds a fresh snapshot over [from,to] and persists it. Zero
// bounds default to the trailing window. A window with no log activity at
// all returns (nil, nil): an explicit absence, not a zero-valued snapshot.
func (s *AnalyticsService) Recompute(ctx context.Context, userID uint, from, to time.Time) (*models.NutritionAnalyticsSnapshot, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -(s.tuning.DefaultWindowDays - 1))
	}
	from, to = dayStart(from), dayEnd(to)

	var logs []models.DailyNutritionLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, from, to).
		Order("logged_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}

	targets, err := s.targetsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	series := buildDailySeries(logs)

	snap := &models.NutritionAnalyticsSnapshot{
		UserID:   userID,
		FromDate: from,
		ToDate:   to,
		Metrics:  make([]models.NutrientMetric, 0, len(models.TrackedNutrients)),
	}

	for _, key := range models.TrackedNutrients {
		values := make([]float64, len(series))
		for i, d := range series {
			values[i] = d.totals[key]
		}

		recent := values
		if len(recent) > s.tuning.RecentWindowDays {
			recent = recent[len(recent)-s.tuning.RecentWindowDays:]
		}
		recentAvg := utils.Mean(recent)

		metric := models.NutrientMetric{
			Key:        key,
			RecentAvg:  recentAvg,
			Median:     utils.Median(values),
			P90:        utils.Percentile(values, 0.9),
			ZScore:     utils.RobustZScore(recentAvg, values),
			TrendSlope: utils.LinearRegressionSlope(values),
		}
		if target := targets.Target(key); target > 0 {
			metric.TargetGapRatio = (recentAvg - target) / target
		}
		if len(values) >= s.tuning.AnomalyMinPoints &&
			abs(metric.ZScore) >= s.tuning.AnomalyZThreshold {
			snap.AnomalyCount++
		}
		snap.Metrics = append(snap.Metrics, metric)
	}

	snap.CoverageScore = s.dayCoverage(series, from, to)
	reliability, err := s.reliabilityScore(ctx, userID, logs, series, snap.CoverageScore)
	if err != nil {
		return nil, err
	}
	snap.ReliabilityScore = reliability

	// All metrics are computed before this single write; a partial snapshot
	// is never persisted.
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

// Latest returns the most recent snapshot by window end, nil when the user
// has never produced one. Recomputes within one day share a to_date, so id
// breaks the tie toward the newest write.
func (s *AnalyticsService) Latest(ctx context.Context, userID uint) (*models.NutritionAnalyticsSnapshot, error) {
	var snap models.NutritionAnalyticsSnapshot
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("to_date DESC, id DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func buildDailySeries(logs []models.DailyNutritionLog) []dayPoint {
	idx := map[string]*dayPoint{}
	for i := range logs {
		l := &logs[i]
		key := l.LoggedAt.Format("2006-01-02")
		d, ok := idx[key]
		if !ok {
			d = &dayPoint{date: dayStart(l.LoggedAt), totals: map[string]float64{}}
			idx[key] = d
		}
		for _, nk := range models.TrackedNutrients {
			if v := l.Nutrient(nk); v != nil {
				d.totals[nk] += *v
			}
		}
		d.confidence += l.ConfidenceScore
		d.logCount++
	}

	series := make([]dayPoint, 0, len(idx))
	for _, d := range idx {
		d.confidence /= float64(d.logCount)
		series = append(series, *d)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].date.Before(series[j].date) })
	return series
}

func (s *AnalyticsService) dayCoverage(series []dayPoint, from, to time.Time) float64 {
	totalDays := int(dayStart(to).Sub(dayStart(from)).Hours()/24) + 1
	if totalDays <= 0 {
		return 0
	}
	return utils.Clamp01(float64(len(series)) / float64(totalDays))
}

// reliabilityScore blends logging consistency, data completeness,
// profile-match provenance, and raw confidence. Consistency carries the
// biggest weight: reliability first measures how much signal exists, and
// only then how trustworthy it is.
func (s *AnalyticsService) reliabilityScore(
	ctx context.Context, userID uint,
	logs []models.DailyNutritionLog, series []dayPoint, dayCoverage float64,
) (float64, error) {

	withMacro := 0
	logConfSum := 0.0
	items := map[string]struct{}{}
	for i := range logs {
		if logs[i].HasMacro() {
			withMacro++
		}
		logConfSum += logs[i].ConfidenceScore
		items[logs[i].ItemKey] = struct{}{}
	}
	macroCoverage := float64(withMacro) / float64(len(logs))
	avgLogConf := logConfSum / float64(len(logs))

	itemKeys := make([]string, 0, len(items))
	for k := range items {
		itemKeys = append(itemKeys, k)
	}

	// Latest profile per distinct logged item; items without one drag both
	// the match coverage and the confidence blend.
	var profiles []models.NutritionProfile
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_key IN ?", userID, itemKeys).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		return 0, err
	}
	latest := map[string]*models.NutritionProfile{}
	for i := range profiles {
		latest[profiles[i].ItemKey] = &profiles[i]
	}

	profConfSum := 0.0
	for _, k := range itemKeys {
		profConfSum += profileConfidence(latest[k], s.tuning)
	}
	profileMatch := float64(len(latest)) / float64(len(itemKeys))
	avgProfConf := profConfSum / float64(len(itemKeys))

	blend := s.tuning.LogConfidenceShare*avgLogConf + s.tuning.ProfileConfShare*avgProfConf

	return utils.Clamp01(
		s.tuning.DayCoverageWeight*dayCoverage +
			s.tuning.MacroCoverageWeight*macroCoverage +
			s.tuning.ProfileMatchWeight*profileMatch +
			s.tuning.ConfidenceBlendWeight*blend,
	), nil
}

func (s *AnalyticsService) targetsFor(ctx context.Context, userID uint) (*models.DailyTargets, error) {
	var t models.DailyTargets
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyTargets{}, nil
		}
		return nil, err
	}
	return &t, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
