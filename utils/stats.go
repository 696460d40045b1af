package utils

import (
	"math"
	"sort"
)

// Robust statistics over small, noisy series. Every function is total:
// empty or degenerate input yields 0, never a panic or NaN.

// madScale converts a median absolute deviation into a stddev-equivalent
// scale under normality.
const madScale = 1.4826

// negligible is the scale below which a denominator is treated as zero.
const negligible = 1e-9

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Percentile interpolates linearly between order statistics. p is clamped
// to [0,1], so Percentile(v, 0) == min(v) and Percentile(v, 1) == max(v).
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// StdDev is the population standard deviation; 0 for fewer than 2 points.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance)
}

// MAD is the median absolute deviation from the median.
func MAD(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	med := Median(values)
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - med)
	}
	return Median(devs)
}

// RobustZScore standardizes value against the series using median/MAD.
// When MAD is negligible it falls back to the standard deviation, and to 0
// when that is negligible too, so near-constant series never blow up.
func RobustZScore(value float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	med := Median(values)
	mad := MAD(values)
	if mad > negligible {
		return (value - med) / (madScale * mad)
	}
	sd := StdDev(values)
	if sd > negligible {
		return (value - med) / sd
	}
	return 0
}

// LinearRegressionSlope is the OLS slope of values against their index
// (0..n-1); 0 for fewer than 2 points.
func LinearRegressionSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	meanX := float64(n-1) / 2
	meanY := Mean(values)
	var num, den float64
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den <= negligible {
		return 0
	}
	return num / den
}

// CoefficientOfVariation is stdDev/|mean|; 0 when the mean is ~0.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if math.Abs(mean) <= negligible {
		return 0
	}
	return StdDev(values) / math.Abs(mean)
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
