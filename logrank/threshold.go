package logrank

import (
	"math"

	"github.com/uyouii/survival-analysis/model"
	"github.com/uyouii/survival-analysis/utils"
)

// OptimalThreshold scans cut-point candidates for a continuous
// variable and picks the one whose induced two-group partition
// minimizes the log-rank p-value.
//
// Candidates are the 20th through 80th percentiles of values in
// 1-point steps, evaluated in ascending order; the first candidate
// reaching the minimum wins. With fewer than three observations, or
// when no candidate separates the cohort into two non-empty groups,
// the overall median is reported unsearched.
func OptimalThreshold(values, durations []float64, events []bool) model.ThresholdResult {
	threshold := utils.Median(values)

	if len(values) >= getMinSearchObservations() {
		low, high := getSearchPercentiles()
		minP := math.Inf(1)
		for pct := low; pct <= high; pct++ {
			candidate := utils.Quantile(values, float64(pct)/100)
			res, ok := SplitTest(durations, events, values, candidate)
			if !ok {
				continue
			}
			if res.PValue < minP {
				minP = res.PValue
				threshold = candidate
			}
		}
	}

	groups, _ := splitGroups(values, threshold)
	res, ok := SplitTest(durations, events, values, threshold)
	if !ok {
		res = model.TestResult{PValue: 1}
	}
	return model.ThresholdResult{
		Threshold: threshold,
		Groups:    groups,
		Result:    res,
	}
}
