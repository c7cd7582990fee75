package logrank

import (
	"sort"

	"github.com/uyouii/survival-analysis/model"
	"gonum.org/v1/gonum/floats"
)

// RiskSets computes, for every distinct time at which at least one
// event occurred, the per-group and aggregate at-risk and event
// counts. Groups are indexed in sorted label order. A subject is at
// risk at time t iff its duration >= t, so at-risk counts are
// non-increasing over the returned sets.
func RiskSets(durations []float64, events []bool, labels []string) []model.RiskSet {
	gidx, k := groupIndex(labels)
	return riskSets(durations, events, gidx, k)
}

func riskSets(durations []float64, events []bool, gidx []int, k int) []model.RiskSet {
	n := len(durations)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return durations[order[a]] < durations[order[b]]
	})

	atRisk := make([]float64, k)
	for _, g := range gidx {
		atRisk[g]++
	}

	sets := []model.RiskSet{}
	for pos := 0; pos < n; {
		t := durations[order[pos]]

		// all subjects tied at t leave the risk set together
		end := pos
		eventsAt := make([]float64, k)
		totalEvents := 0.0
		for end < n && durations[order[end]] == t {
			i := order[end]
			if events[i] {
				eventsAt[gidx[i]]++
				totalEvents++
			}
			end++
		}

		if totalEvents > 0 {
			snapshot := make([]float64, k)
			copy(snapshot, atRisk)
			sets = append(sets, model.RiskSet{
				Time:        t,
				AtRisk:      snapshot,
				Events:      eventsAt,
				TotalAtRisk: floats.Sum(snapshot),
				TotalEvents: totalEvents,
			})
		}

		for ; pos < end; pos++ {
			atRisk[gidx[order[pos]]]--
		}
	}
	return sets
}

// groupIndex maps each label to its rank in sorted label order and
// returns the number of distinct groups.
func groupIndex(labels []string) ([]int, int) {
	uniq := []string{}
	seen := map[string]bool{}
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			uniq = append(uniq, l)
		}
	}
	sort.Strings(uniq)

	rank := make(map[string]int, len(uniq))
	for i, l := range uniq {
		rank[l] = i
	}

	gidx := make([]int, len(labels))
	for i, l := range labels {
		gidx[i] = rank[l]
	}
	return gidx, len(uniq)
}
