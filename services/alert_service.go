package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

// Nutrient keys eligible for deficiency/excess alerting. Carbs and fat are
// tracked but never alert under this rule set.
var (
	deficiencyKeys = map[string]bool{
		models.NutrientProtein:  true,
		models.NutrientFiber:    true,
		models.NutrientCalories: true,
	}
	excessKeys = map[string]bool{
		models.NutrientSugar:  true,
		models.NutrientSodium: true,
	}
)

var nutrientUnits = map[string]string{
	models.NutrientCalories: "kcal",
	models.NutrientProtein:  "g",
	models.NutrientCarbs:    "g",
	models.NutrientFat:      "g",
	models.NutrientFiber:    "g",
	models.NutrientSugar:    "g",
	models.NutrientSodium:   "mg",
}

// AlertService turns the latest snapshot and expiry data into
// severity-classified alerts, suppressing duplicates against the unread set.
type AlertService struct {
	db        *gorm.DB
	tuning    Tuning
	analytics *AnalyticsService
	notifier  Notifier
	hub       *RealtimeHub
	mailer    *utils.Mailer
	log       *zap.SugaredLogger
}

func NewAlertService(
	db *gorm.DB, tuning Tuning, analytics *AnalyticsService,
	notifier Notifier, hub *RealtimeHub, mailer *utils.Mailer,
	log *zap.SugaredLogger,
) *AlertService {
	return &AlertService{
		db: db, tuning: tuning, analytics: analytics,
		notifier: notifier, hub: hub, mailer: mailer, log: log,
	}
}

// Recompute evaluates nutrient and expiry alerts for the user and returns
// the alerts it created. The unread set is read once per invocation;
// single-writer-per-user semantics are assumed, not enforced.
func (s *AlertService) Recompute(ctx context.Context, userID uint) ([]models.HealthAlert, error) {
	var unread []models.HealthAlert
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Find(&unread).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(unread))
	for i := range unread {
		seen[unread[i].DedupKey()] = struct{}{}
	}

	var created []models.HealthAlert

	nutrientAlerts, err := s.nutrientAlerts(ctx, userID, seen)
	if err != nil {
		return nil, err
	}
	created = append(created, nutrientAlerts...)

	expiryAlerts, err := s.expiryAlerts(ctx, userID, seen)
	if err != nil {
		return nil, err
	}
	created = append(created, expiryAlerts...)

	return created, nil
}

func (s *AlertService) nutrientAlerts(ctx context.Context, userID uint, seen map[string]struct{}) ([]models.HealthAlert, error) {
	snap, err := s.analytics.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap, err = s.analytics.Recompute(ctx, userID, time.Time{}, time.Time{})
		if err != nil {
			return nil, err
		}
	}
	if snap == nil {
		return nil, nil // no signal at all
	}
	// Below the reliability floor there is not enough signal to act on.
	if snap.ReliabilityScore < s.tuning.MinReliability {
		return nil, nil
	}

	targets, err := s.analytics.targetsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created []models.HealthAlert
	for _, m := range snap.Metrics {
		alertType := ""
		switch {
		case deficiencyKeys[m.Key] && m.TargetGapRatio < s.tuning.DeficiencyGap:
			alertType = models.AlertDeficiency
		case excessKeys[m.Key] && m.TargetGapRatio > s.tuning.ExcessGap:
			alertType = models.AlertExcess
		}
		if alertType == "" {
			continue
		}

		severity := s.classifySeverity(m.TargetGapRatio, m.ZScore, snap.ReliabilityScore)
		if severity == "" {
			continue
		}

		alert := models.HealthAlert{
			UserID:       userID,
			AlertType:    alertType,
			NutrientKey:  m.Key,
			CurrentValue: utils.Round2(m.RecentAvg),
			TargetValue:  utils.Round2(targets.Target(m.Key)),
			Severity:     severity,
			Message:      nutrientAlertMessage(alertType, m, targets.Target(m.Key), snap.ReliabilityScore),
			TriggeredAt:  time.Now(),
		}
		if _, dup := seen[alert.DedupKey()]; dup {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
			return nil, err
		}
		seen[alert.DedupKey()] = struct{}{}
		created = append(created, alert)

		notify := severity == models.SeverityHigh || severity == models.SeverityCritical
		s.dispatch(ctx, userID, alert, notify)
	}
	return created, nil
}

// classifySeverity grades a deviation by |gap| plus a z-score contribution.
// Low-trust plus low-magnitude deviations are suppressed outright.
func (s *AlertService) classifySeverity(gapRatio, zScore, reliability float64) string {
	magnitude := math.Abs(gapRatio) + s.tuning.ZScoreMagnitude*math.Abs(zScore)
	if reliability < s.tuning.LowTrustReliability && magnitude < s.tuning.LowTrustMagnitude {
		return ""
	}
	switch {
	case magnitude >= s.tuning.CriticalMagnitude:
		return models.SeverityCritical
	case magnitude >= s.tuning.HighMagnitude:
		return models.SeverityHigh
	case magnitude >= s.tuning.MediumMagnitude:
		return models.SeverityMedium
	case magnitude >= s.tuning.LowMagnitude:
		return models.SeverityLow
	}
	return ""
}

// Expiry alerts are independent of snapshot reliability: a date is a date.
func (s *AlertService) expiryAlerts(ctx context.Context, userID uint, seen map[string]struct{}) ([]models.HealthAlert, error) {
	now := time.Now()
	horizon := now.AddDate(0, 0, s.tuning.ExpiryLookaheadDays)

	var items []models.ExpenseItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", userID, horizon).
		Find(&items).Error; err != nil {
		return nil, err
	}

	var created []models.HealthAlert
	for _, item := range items {
		expiry := *item.ExpiryDate
		daysLeft := expiry.Sub(now).Hours() / 24

		severity := models.SeverityLow
		switch {
		case expiry.Before(now):
			severity = models.SeverityHigh
		case daysLeft <= 1:
			severity = models.SeverityMedium
		}

		alert := models.HealthAlert{
			UserID:       userID,
			AlertType:    models.AlertExpiryWarning,
			NutrientKey:  strconv.FormatUint(uint64(item.ID), 10),
			CurrentValue: utils.Round2(daysLeft),
			Severity:     severity,
			Message:      expiryAlertMessage(item, expiry, now),
			TriggeredAt:  now,
		}
		if _, dup := seen[alert.DedupKey()]; dup {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
			return nil, err
		}
		seen[alert.DedupKey()] = struct{}{}
		created = append(created, alert)

		// already-expired or same-day expiry warrants a notification even
		// at medium severity
		s.dispatch(ctx, userID, alert, expiry.Before(now) || daysLeft <= 1)
	}
	return created, nil
}

// dispatch fans an alert out to websocket always, push when the caller
// decided the alert warrants a notification, and email for critical. The
// notify decision belongs to the emitting rule: nutrient alerts notify on
// high/critical, expiry alerts on expired-or-immediate regardless of
// severity. Best effort; delivery failures never fail the recompute.
func (s *AlertService) dispatch(ctx context.Context, userID uint, alert models.HealthAlert, notify bool) {
	if s.hub != nil {
		s.hub.Broadcast(userID, EventAlertCreated, alert)
	}
	if !notify {
		return
	}
	if s.notifier != nil {
		s.notifier.Notify(userID, alertTitle(alert), alert.Message, map[string]string{
			"type":    alert.AlertType,
			"alertId": strconv.FormatUint(uint64(alert.ID), 10),
		})
	}
	if alert.Severity == models.SeverityCritical && s.mailer != nil {
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, userID).Error; err == nil {
			if err := s.mailer.SendAlertEmail(ctx, user.Email, alert.Message); err != nil {
				s.log.Warnw("alert email failed", "user_id", userID, "error", err)
			}
		}
	}
}

func (s *AlertService) ListAlerts(ctx context.Context, userID uint, unreadOnly bool) ([]models.HealthAlert, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var alerts []models.HealthAlert
	err := q.Order("triggered_at DESC").Find(&alerts).Error
	return alerts, err
}

func (s *AlertService) MarkRead(ctx context.Context, userID, alertID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.HealthAlert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func alertTitle(a models.HealthAlert) string {
	switch a.AlertType {
	case models.AlertDeficiency:
		return fmt.Sprintf("Low %s intake", a.NutrientKey)
	case models.AlertExcess:
		return fmt.Sprintf("High %s intake", a.NutrientKey)
	case models.AlertExpiryWarning:
		return "Item expiring"
	}
	return "Nutrition alert"
}

func nutrientAlertMessage(alertType string, m models.NutrientMetric, target, reliability float64) string {
	unit := nutrientUnits[m.Key]
	direction := "below"
	if alertType == models.AlertExcess {
		direction = "above"
	}
	return fmt.Sprintf(
		"Recent %s intake is %.0f%% %s target (avg %.1f %s vs %.1f %s; data reliability %.0f%%).",
		m.Key, math.Abs(m.TargetGapRatio)*100, direction,
		m.RecentAvg, unit, target, unit,
		reliability*100,
	)
}

func expiryAlertMessage(item models.ExpenseItem, expiry time.Time, now time.Time) string {
	if expiry.Before(now) {
		return fmt.Sprintf("%s expired on %s — check before use.", item.Name, expiry.Format("Jan 2"))
	}
	return fmt.Sprintf("%s expires on %s — use it soon.", item.Name, expiry.Format("Jan 2"))
}
