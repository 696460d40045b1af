package services

import (
	"context"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

// ConsumptionModelService maintains one trend/variability model per
// (user, item). Models are overwritten on every recompute; items with no
// rows in the window keep their last model (stale models are not pruned
// here — see DESIGN.md).
type ConsumptionModelService struct {
	db     *gorm.DB
	tuning Tuning
}

func NewConsumptionModelService(db *gorm.DB, tuning Tuning) *ConsumptionModelService {
	return &ConsumptionModelService{db: db, tuning: tuning}
}

func (s *ConsumptionModelService) Recompute(ctx context.Context, userID uint, from, to time.Time) ([]models.ConsumptionModel, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -(s.tuning.ModelWindowDays - 1))
	}

	var logs []models.DailyNutritionLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, dayStart(from), dayEnd(to)).
		Order("logged_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	byItem := map[string][]models.DailyNutritionLog{}
	for _, l := range logs {
		byItem[l.ItemKey] = append(byItem[l.ItemKey], l)
	}

	now := time.Now()
	out := make([]models.ConsumptionModel, 0, len(byItem))
	for itemKey, rows := range byItem {
		model := buildConsumptionModel(userID, itemKey, rows, now, s.tuning)

		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND item_key = ?", userID, itemKey).
			Assign(map[string]any{
				"avg_daily_servings":     model.AvgDailyServings,
				"trend_slope":            model.TrendSlope,
				"variability":            model.Variability,
				"confidence":             model.Confidence,
				"predicted_depletion_at": model.PredictedDepletionAt,
			}).
			FirstOrCreate(&model).Error; err != nil {
			return nil, err
		}
		out = append(out, model)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ItemKey < out[j].ItemKey })
	return out, nil
}

func (s *ConsumptionModelService) ListModels(ctx context.Context, userID uint) ([]models.ConsumptionModel, error) {
	var ms []models.ConsumptionModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("item_key ASC").
		Find(&ms).Error
	return ms, err
}

// buildConsumptionModel derives rate, trend, variability, and a depletion
// estimate from an item's serving history. Confidence rewards both data
// volume and stability.
func buildConsumptionModel(userID uint, itemKey string, rows []models.DailyNutritionLog, now time.Time, t Tuning) models.ConsumptionModel {
	// servings per time-ordered day
	perDay := map[string]float64{}
	order := []string{}
	confSum := 0.0
	for _, r := range rows {
		day := r.LoggedAt.Format("2006-01-02")
		if _, ok := perDay[day]; !ok {
			order = append(order, day)
		}
		perDay[day] += r.ConsumedServings
		confSum += r.ConfidenceScore
	}
	sort.Strings(order)
	servings := make([]float64, len(order))
	for i, day := range order {
		servings[i] = perDay[day]
	}

	avg := utils.Mean(servings)
	variability := utils.Clamp01(utils.CoefficientOfVariation(servings))
	avgRowConf := confSum / float64(len(rows))
	volume := utils.Clamp01(float64(len(rows)) / t.ModelVolumeRows)

	model := models.ConsumptionModel{
		UserID:           userID,
		ItemKey:          itemKey,
		AvgDailyServings: avg,
		TrendSlope:       utils.LinearRegressionSlope(servings),
		Variability:      variability,
		Confidence: utils.Clamp01(
			t.ModelRowConfWeight*avgRowConf +
				t.ModelVolumeWeight*volume +
				t.ModelStabilityWeight*(1-variability),
		),
	}

	// Zero-consumption items get no depletion estimate rather than a
	// nonsensical "depletes today".
	if avg > 0 {
		days := int(math.Round(math.Max(1, 1/avg)))
		at := now.AddDate(0, 0, days)
		model.PredictedDepletionAt = &at
	}
	return model
}
