// Package km estimates product-limit (Kaplan-Meier) survival curves
// from right-censored observations.
package km

import (
	"sort"

	"github.com/uyouii/survival-analysis/model"
)

// Curves builds one step-function survival curve per distinct group
// label, in sorted label order. Each curve starts at (0, 1); all
// events tied at a distinct time are applied as one combined at-risk
// reduction, so the steps carry exactly one point per distinct
// duration. Censoring markers record the curve height at each
// censoring time.
func Curves(obs []model.Observation) []model.SurvivalCurve {
	byGroup := map[string][]model.Observation{}
	groups := []string{}
	for _, o := range obs {
		if _, ok := byGroup[o.Group]; !ok {
			groups = append(groups, o.Group)
		}
		byGroup[o.Group] = append(byGroup[o.Group], o)
	}
	sort.Strings(groups)

	curves := make([]model.SurvivalCurve, 0, len(groups))
	for _, g := range groups {
		curves = append(curves, estimate(g, byGroup[g]))
	}
	return curves
}

func estimate(group string, obs []model.Observation) model.SurvivalCurve {
	sort.SliceStable(obs, func(a, b int) bool {
		return obs[a].Duration < obs[b].Duration
	})

	curve := model.SurvivalCurve{
		Group:    group,
		N:        len(obs),
		Steps:    []model.CurvePoint{{Time: 0, Probability: 1}},
		Censored: []model.CurvePoint{},
	}

	atRisk := float64(len(obs))
	survival := 1.0

	for i := 0; i < len(obs); {
		t := obs[i].Duration

		nEvents, nCensored := 0.0, 0.0
		for i < len(obs) && obs[i].Duration == t {
			if obs[i].Event {
				nEvents++
			} else {
				nCensored++
			}
			i++
		}

		if nEvents > 0 {
			survival *= (atRisk - nEvents) / atRisk
		}
		if t > 0 || nEvents > 0 {
			curve.Steps = append(curve.Steps, model.CurvePoint{Time: t, Probability: survival})
		}
		if nCensored > 0 {
			curve.Censored = append(curve.Censored, model.CurvePoint{Time: t, Probability: survival})
		}
		atRisk -= nEvents + nCensored
	}
	return curve
}
