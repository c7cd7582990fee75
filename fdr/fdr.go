// Package fdr adjusts families of p-values for multiple comparisons.
package fdr

import (
	"math"
	"sort"
)

// DefaultAlpha is the adjusted-p-value level at which a scanned
// variable is called significant.
const DefaultAlpha = 0.05

// BenjaminiHochberg returns FDR-adjusted p-values in the input
// order: ranked ascending, each raw value is scaled by n/rank, made
// monotone by a running minimum from the largest rank down, and
// clipped to [0, 1].
func BenjaminiHochberg(pvalues []float64) []float64 {
	n := len(pvalues)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pvalues[order[a]] < pvalues[order[b]]
	})

	adjusted := make([]float64, n)
	running := math.Inf(1)
	for rank := n; rank >= 1; rank-- {
		i := order[rank-1]
		scaled := pvalues[i] * float64(n) / float64(rank)
		// multiply-then-divide can round one ulp below the raw
		// value at the top rank; the adjusted value must never
		// undercut the raw one
		if scaled < pvalues[i] {
			scaled = pvalues[i]
		}
		if scaled < running {
			running = scaled
		}
		adjusted[i] = math.Min(running, 1)
	}
	return adjusted
}

// CountSignificant counts adjusted p-values below alpha.
func CountSignificant(adjusted []float64, alpha float64) int {
	count := 0
	for _, p := range adjusted {
		if p < alpha {
			count++
		}
	}
	return count
}
