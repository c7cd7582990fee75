package km

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/survival-analysis/model"
)

func obsOf(durations []float64, events []bool, group string) []model.Observation {
	obs := make([]model.Observation, len(durations))
	for i := range durations {
		obs[i] = model.Observation{Duration: durations[i], Event: events[i], Group: group}
	}
	return obs
}

func TestCurvesNoCensoring(t *testing.T) {
	obs := obsOf([]float64{1, 2, 3, 4}, []bool{true, true, true, true}, "a")
	curves := Curves(obs)
	require.Len(t, curves, 1)

	c := curves[0]
	assert.Equal(t, "a", c.Group)
	assert.Equal(t, 4, c.N)
	assert.Empty(t, c.Censored)

	expected := []model.CurvePoint{
		{Time: 0, Probability: 1},
		{Time: 1, Probability: 0.75},
		{Time: 2, Probability: 0.5},
		{Time: 3, Probability: 0.25},
		{Time: 4, Probability: 0},
	}
	require.Len(t, c.Steps, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.Time, c.Steps[i].Time)
		assert.InDelta(t, e.Probability, c.Steps[i].Probability, 1e-12)
	}
}

// An event and a censoring tied at the same time are one combined
// step; the censoring marker sits at the curve height at that time.
func TestCurvesTiedEventAndCensoring(t *testing.T) {
	obs := obsOf([]float64{1, 2, 2, 3}, []bool{true, false, true, true}, "a")
	curves := Curves(obs)
	require.Len(t, curves, 1)

	c := curves[0]
	probs := []float64{1, 0.75, 0.5, 0}
	times := []float64{0, 1, 2, 3}
	require.Len(t, c.Steps, 4)
	for i := range probs {
		assert.Equal(t, times[i], c.Steps[i].Time)
		assert.InDelta(t, probs[i], c.Steps[i].Probability, 1e-12)
	}

	require.Len(t, c.Censored, 1)
	assert.Equal(t, 2.0, c.Censored[0].Time)
	assert.InDelta(t, 0.5, c.Censored[0].Probability, 1e-12)
}

// A censoring-only time still produces a step point, at the
// unchanged probability.
func TestCurvesCensoringOnlyTime(t *testing.T) {
	obs := obsOf([]float64{1, 2, 3}, []bool{true, false, true}, "a")
	curves := Curves(obs)
	require.Len(t, curves, 1)

	c := curves[0]
	require.Len(t, c.Steps, 4)
	assert.InDelta(t, 2.0/3.0, c.Steps[1].Probability, 1e-12)
	assert.Equal(t, 2.0, c.Steps[2].Time)
	assert.InDelta(t, 2.0/3.0, c.Steps[2].Probability, 1e-12)
	assert.InDelta(t, 0.0, c.Steps[3].Probability, 1e-12)

	require.Len(t, c.Censored, 1)
	assert.InDelta(t, 2.0/3.0, c.Censored[0].Probability, 1e-12)
}

func TestCurvesGroupOrdering(t *testing.T) {
	obs := append(
		obsOf([]float64{4, 5}, []bool{true, true}, "late"),
		obsOf([]float64{1, 2, 3}, []bool{true, true, false}, "early")...,
	)
	curves := Curves(obs)
	require.Len(t, curves, 2)
	assert.Equal(t, "early", curves[0].Group)
	assert.Equal(t, 3, curves[0].N)
	assert.Equal(t, "late", curves[1].Group)
	assert.Equal(t, 2, curves[1].N)
}

func TestCurvesMonotoneFromOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 80
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		group := "a"
		if i%2 == 1 {
			group = "b"
		}
		obs[i] = model.Observation{
			Duration: float64(rng.Intn(15) + 1),
			Event:    rng.Float64() < 0.6,
			Group:    group,
		}
	}

	for _, c := range Curves(obs) {
		require.NotEmpty(t, c.Steps)
		assert.Equal(t, model.CurvePoint{Time: 0, Probability: 1}, c.Steps[0])
		for i := 1; i < len(c.Steps); i++ {
			assert.Greater(t, c.Steps[i].Time, c.Steps[i-1].Time)
			assert.LessOrEqual(t, c.Steps[i].Probability, c.Steps[i-1].Probability)
			assert.GreaterOrEqual(t, c.Steps[i].Probability, 0.0)
		}
	}
}
