package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.InDelta(t, 5.5, Quantile(data, 0.5), 1e-12)
	assert.InDelta(t, 3.25, Quantile(data, 0.25), 1e-12)
	assert.InDelta(t, 7.75, Quantile(data, 0.75), 1e-12)
	assert.InDelta(t, 2.8, Quantile(data, 0.20), 1e-12)
	assert.InDelta(t, 8.2, Quantile(data, 0.80), 1e-12)
	assert.Equal(t, 1.0, Quantile(data, 0))
	assert.Equal(t, 10.0, Quantile(data, 1))
}

func TestQuantileUnsortedInput(t *testing.T) {
	data := []float64{5, 2, 8, 1, 9}
	assert.InDelta(t, 5.0, Median(data), 1e-12)
	// input order untouched
	assert.Equal(t, []float64{5, 2, 8, 1, 9}, data)
}

func TestQuantileDegenerate(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.Equal(t, 42.0, Quantile([]float64{42}, 0.9))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 1.235, FormatFloat(1.23456, 3))
	assert.Equal(t, 1.23, FormatFloat(1.23456, 2))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(1), 3), 1))
}
