package utils

import (
	"math"
	"sort"
)

// Quantile returns the p-quantile (0 <= p <= 1) of values using linear
// interpolation between the two nearest order statistics.
// Returns NaN for an empty input.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p * float64(n-1)
	lower := int(math.Floor(pos))
	if lower < 0 {
		lower = 0
	}
	upper := lower + 1
	if upper > n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Median is the 0.5-quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(round))
	return math.Round(f*pow) / pow
}
