package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

// Source priors for profiles that carry no explicit confidence score, and
// the provenance weight of each source inside the final blend.
var (
	sourceConfidencePriors = map[string]float64{
		models.SourceLabelScan:  0.92,
		models.SourceBarcodeAPI: 0.92,
		models.SourceManual:     0.82,
	}
	defaultConfidencePrior = 0.68

	sourceWeights = map[string]float64{
		models.SourceLabelScan:  0.96,
		models.SourceBarcodeAPI: 0.93,
		models.SourceManual:     0.82,
		models.SourceAIInferred: 0.72,
	}
	defaultSourceWeight = 0.5
)

type LogService struct {
	db     *gorm.DB
	tuning Tuning
}

func NewLogService(db *gorm.DB, tuning Tuning) *LogService {
	return &LogService{db: db, tuning: tuning}
}

// LogRequest is a raw consumption event from the UI. Direct nutrient values
// are optional overrides for when the user types amounts in by hand.
type LogRequest struct {
	ItemKey          string     `json:"item_key"`
	ItemLabel        string     `json:"item_label"`
	ConsumedServings float64    `json:"consumed_servings"`
	LoggedAt         *time.Time `json:"logged_at"`

	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`
}

func (r *LogRequest) direct(key string) *float64 {
	switch key {
	case models.NutrientCalories:
		return r.Calories
	case models.NutrientProtein:
		return r.Protein
	case models.NutrientCarbs:
		return r.Carbs
	case models.NutrientFat:
		return r.Fat
	case models.NutrientFiber:
		return r.Fiber
	case models.NutrientSugar:
		return r.Sugar
	case models.NutrientSodium:
		return r.Sodium
	}
	return nil
}

// LogConsumption resolves a raw request against the latest nutrition
// profile for the item and persists the resulting log entry. The only side
// effects are the profile read and the single insert.
func (s *LogService) LogConsumption(ctx context.Context, userID uint, req LogRequest) (*models.DailyNutritionLog, error) {
	if req.ItemKey == "" {
		return nil, errors.New("item_key is required")
	}

	profile, err := s.latestProfile(ctx, userID, req.ItemKey)
	if err != nil {
		return nil, err
	}

	entry := ResolveLog(userID, req, profile, time.Now(), s.tuning)
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LogService) latestProfile(ctx context.Context, userID uint, itemKey string) (*models.NutritionProfile, error) {
	var p models.NutritionProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_key = ?", userID, itemKey).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *LogService) ListLogs(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyNutritionLog, error) {
	var logs []models.DailyNutritionLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, from, to).
		Order("logged_at DESC").
		Find(&logs).Error
	return logs, err
}

// ResolveLog turns a raw request plus the best-known profile (nil when none
// exists) into a fully-populated, confidence-scored log entry. Deterministic
// given its inputs; no I/O.
func ResolveLog(userID uint, req LogRequest, profile *models.NutritionProfile, now time.Time, t Tuning) *models.DailyNutritionLog {
	entry := &models.DailyNutritionLog{
		UserID:           userID,
		ItemKey:          req.ItemKey,
		ItemLabel:        req.ItemLabel,
		ConsumedServings: req.ConsumedServings,
		LoggedAt:         now,
		Source:           models.SourceManual,
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}
	if profile != nil {
		entry.Source = profile.Source
		if entry.ItemLabel == "" {
			entry.ItemLabel = profile.ItemLabel
		}
	}

	// Direct values only win when at least one is present AND at least one
	// present value is strictly positive; a zero-filled placeholder must not
	// silently override profile data.
	directAuthoritative := false
	for _, key := range models.TrackedNutrients {
		if v := req.direct(key); v != nil && *v > 0 {
			directAuthoritative = true
			break
		}
	}

	scale := math.Max(t.MinServingScale, req.ConsumedServings)
	populated := 0
	for _, key := range models.TrackedNutrients {
		switch {
		case directAuthoritative:
			if v := req.direct(key); v != nil {
				entry.SetNutrient(key, math.Max(0, *v))
				populated++
			}
		case profile != nil:
			if v := profile.PerServing(key); v != nil {
				entry.SetNutrient(key, math.Max(0, *v)*scale)
				populated++
			}
		}
	}

	completeness := float64(populated) / float64(len(models.TrackedNutrients))
	profConf := profileConfidence(profile, t)
	recency := profileRecency(profile, now, t)
	srcWeight := defaultSourceWeight
	if profile != nil {
		if w, ok := sourceWeights[profile.Source]; ok {
			srcWeight = w
		}
	}

	entry.ConfidenceScore = utils.Clamp01(
		t.BaseConfidence +
			t.CompletenessWeight*completeness +
			t.ProfileConfidenceWeight*profConf +
			t.RecencyWeight*recency +
			t.SourceWeight*srcWeight,
	)
	return entry
}

// profileConfidence prefers an explicit extractor score (clamped to
// [0.2,1]) over the source prior.
func profileConfidence(profile *models.NutritionProfile, t Tuning) float64 {
	if profile == nil {
		return t.MissingProfileScore
	}
	if profile.ConfidenceScore != nil {
		return math.Min(1, math.Max(0.2, *profile.ConfidenceScore))
	}
	if prior, ok := sourceConfidencePriors[profile.Source]; ok {
		return prior
	}
	return defaultConfidencePrior
}

func profileRecency(profile *models.NutritionProfile, now time.Time, t Tuning) float64 {
	if profile == nil {
		return t.MissingProfileScore
	}
	ageDays := now.Sub(profile.CreatedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	w := math.Exp(-ageDays / t.RecencyDecayDays)
	return math.Min(1, math.Max(t.RecencyFloor, w))
}
