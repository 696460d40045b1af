package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/models"
)

func TestCalculateBMI(t *testing.T) {
	t.Parallel()

	bmi, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 1e-9)
	assert.Equal(t, "Overweight", BMICategory(bmi))

	_, err = CalculateBMI(0, 80)
	assert.Error(t, err)
	_, err = CalculateBMI(180, 500)
	assert.Error(t, err)
}

func TestDeriveDailyTargets(t *testing.T) {
	t.Parallel()

	user := &models.User{
		Sex:           "male",
		HeightCm:      180,
		WeightKg:      80,
		Birthday:      time.Now().AddDate(-30, 0, -1),
		ActivityLevel: "moderate",
		FitnessGoal:   "maintain",
	}

	targets, err := DeriveDailyTargets(user)
	require.NoError(t, err)

	// Mifflin-St Jeor: 10*80 + 6.25*180 - 5*30 + 5 = 1780; *1.55 = 2759
	assert.InDelta(t, 2759, targets.Calories, 0.01)
	assert.InDelta(t, 0.20*2759/4.0, targets.Protein, 0.01)
	assert.InDelta(t, 0.50*2759/4.0, targets.Carbs, 0.01)
	assert.InDelta(t, 0.30*2759/9.0, targets.Fat, 0.01)
	assert.InDelta(t, 14.0*2759/1000.0, targets.Fiber, 0.01)
	assert.InDelta(t, 0.10*2759/4.0, targets.Sugar, 0.01)
	assert.InDelta(t, 2300, targets.Sodium, 1e-9)
}

func TestDeriveDailyTargetsGoalAdjustment(t *testing.T) {
	t.Parallel()

	base := models.User{
		Sex:           "female",
		HeightCm:      165,
		WeightKg:      60,
		Birthday:      time.Now().AddDate(-25, 0, -1),
		ActivityLevel: "light",
	}

	lose := base
	lose.FitnessGoal = "lose"
	gain := base
	gain.FitnessGoal = "gain"

	lt, err := DeriveDailyTargets(&lose)
	require.NoError(t, err)
	gt, err := DeriveDailyTargets(&gain)
	require.NoError(t, err)

	assert.Less(t, lt.Calories, gt.Calories)
}

func TestDeriveDailyTargetsRejectsMissingMetrics(t *testing.T) {
	t.Parallel()

	_, err := DeriveDailyTargets(nil)
	assert.Error(t, err)

	_, err = DeriveDailyTargets(&models.User{HeightCm: 180})
	assert.Error(t, err)

	_, err = DeriveDailyTargets(&models.User{HeightCm: 180, WeightKg: 80})
	assert.Error(t, err)
}
