package logrank

import (
	"github.com/uyouii/survival-analysis/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Test computes the generalized (multi-group) log-rank chi-square
// statistic for the survival difference between the groups named by
// labels, and its upper-tail p-value on groups-1 degrees of freedom.
//
// Degenerate input never fails: fewer than two groups, or a singular
// variance matrix, reports ChiSquare 0 and PValue 1. Threshold scans
// routinely produce near-degenerate partitions and must keep going.
func Test(durations []float64, events []bool, labels []string) model.TestResult {
	gidx, k := groupIndex(labels)
	return testIndexed(durations, events, gidx, k)
}

// SplitTest partitions values at threshold (value > threshold vs.
// not) and runs the two-group test. Reports ok=false when the split
// leaves a single group.
func SplitTest(durations []float64, events []bool, values []float64, threshold float64) (model.TestResult, bool) {
	gidx, k := splitGroups(values, threshold)
	if k < 2 {
		return model.TestResult{PValue: 1}, false
	}
	return testIndexed(durations, events, gidx, 2), true
}

func testIndexed(durations []float64, events []bool, gidx []int, k int) model.TestResult {
	df := k - 1
	if k < 2 {
		return model.TestResult{DF: df, PValue: 1}
	}

	oe := make([]float64, k)
	v := make([]float64, k*k)

	for _, rs := range riskSets(durations, events, gidx, k) {
		n := rs.TotalAtRisk
		d := rs.TotalEvents
		// the variance factor's denominator contains n-1
		if d == 0 || n <= 1 {
			continue
		}
		factor := d * (n - d) / (n * n * (n - 1))
		for i := 0; i < k; i++ {
			oe[i] += rs.Events[i] - d*rs.AtRisk[i]/n
			for j := 0; j < k; j++ {
				if i == j {
					v[i*k+i] += rs.AtRisk[i] * (n - rs.AtRisk[i]) * factor
				} else {
					v[i*k+j] -= rs.AtRisk[i] * rs.AtRisk[j] * factor
				}
			}
		}
	}

	// The per-group terms sum to zero across groups, so the last
	// row/column is linearly dependent and is dropped.
	vm := mat.NewDense(df, df, nil)
	for i := 0; i < df; i++ {
		for j := 0; j < df; j++ {
			vm.Set(i, j, v[i*k+j])
		}
	}
	b := mat.NewVecDense(df, oe[:df])

	var x mat.VecDense
	if err := x.SolveVec(vm, b); err != nil {
		return model.TestResult{DF: df, PValue: 1}
	}

	chi2 := mat.Dot(b, &x)
	dist := distuv.ChiSquared{K: float64(df)}
	return model.TestResult{
		ChiSquare: chi2,
		DF:        df,
		PValue:    dist.Survival(chi2),
	}
}

// splitGroups assigns 1 to values above the threshold and 0 to the
// rest; k is the number of non-empty sides.
func splitGroups(values []float64, threshold float64) ([]int, int) {
	gidx := make([]int, len(values))
	high, low := false, false
	for i, v := range values {
		if v > threshold {
			gidx[i] = 1
			high = true
		} else {
			low = true
		}
	}
	if !high || !low {
		return gidx, 1
	}
	return gidx, 2
}
