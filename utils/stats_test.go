package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
	}{
		{name: "ordered", values: []float64{1, 2, 3, 4, 5}},
		{name: "unordered", values: []float64{9.5, -3, 0, 42, 7}},
		{name: "single", values: []float64{3.14}},
		{name: "duplicates", values: []float64{2, 2, 2, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := tt.values[0], tt.values[0]
			for _, v := range tt.values {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			assert.Equal(t, lo, Percentile(tt.values, 0))
			assert.Equal(t, hi, Percentile(tt.values, 1))
			// out-of-range p clamps instead of panicking
			assert.Equal(t, lo, Percentile(tt.values, -0.5))
			assert.Equal(t, hi, Percentile(tt.values, 1.5))
		})
	}
}

func TestPercentileInterpolates(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 2.5, Percentile([]float64{1, 2, 3, 4}, 0.5), 1e-9)
	assert.InDelta(t, 3.7, Percentile([]float64{1, 2, 3, 4}, 0.9), 1e-9)
}

func TestMedianEvenLength(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 2.5, Median([]float64{4, 1, 3, 2}), 1e-9)
	assert.InDelta(t, 3, Median([]float64{5, 1, 3}), 1e-9)
}

func TestRobustZScoreOfMedianIsZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
	}{
		{name: "odd", values: []float64{1, 5, 9, 13, 2}},
		{name: "skewed", values: []float64{0, 0, 1, 40, 41}},
		{name: "constant", values: []float64{7, 7, 7, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			med := Median(tt.values)
			assert.InDelta(t, 0, RobustZScore(med, tt.values), 1e-9)
		})
	}
}

func TestConstantSeriesDegenerates(t *testing.T) {
	t.Parallel()

	values := []float64{4, 4, 4, 4, 4}
	assert.Zero(t, StdDev(values))
	assert.Zero(t, MAD(values))
	assert.Zero(t, CoefficientOfVariation(values))
	// no division blow-up for any element
	assert.Zero(t, RobustZScore(4, values))
	assert.Zero(t, RobustZScore(99, values))
}

func TestEmptyInputsAreNeutral(t *testing.T) {
	t.Parallel()

	var empty []float64
	assert.Zero(t, Mean(empty))
	assert.Zero(t, Median(empty))
	assert.Zero(t, Percentile(empty, 0.5))
	assert.Zero(t, StdDev(empty))
	assert.Zero(t, MAD(empty))
	assert.Zero(t, RobustZScore(1, empty))
	assert.Zero(t, LinearRegressionSlope(empty))
	assert.Zero(t, CoefficientOfVariation(empty))
}

func TestLinearRegressionSlope(t *testing.T) {
	t.Parallel()

	// perfectly linear series recovers its slope
	assert.InDelta(t, 2, LinearRegressionSlope([]float64{1, 3, 5, 7, 9}), 1e-9)
	assert.InDelta(t, -0.5, LinearRegressionSlope([]float64{4, 3.5, 3, 2.5}), 1e-9)
	assert.Zero(t, LinearRegressionSlope([]float64{42}))
}

func TestRobustZScoreFallsBackToStdDev(t *testing.T) {
	t.Parallel()

	// MAD is 0 here (majority identical) but stddev is not; the fallback
	// keeps the score finite.
	values := []float64{5, 5, 5, 5, 30}
	z := RobustZScore(30, values)
	require.False(t, z != z, "z must not be NaN")
	assert.Greater(t, z, 0.0)
}

func TestMADOutlierResistance(t *testing.T) {
	t.Parallel()

	base := []float64{10, 11, 9, 10, 12, 10, 9}
	spiked := append(append([]float64(nil), base...), 500)
	// a single spike should barely move MAD while it wrecks stddev
	assert.Less(t, MAD(spiked), 3.0)
	assert.Greater(t, StdDev(spiked), 100.0)
}
