package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.Percentile(0.5))
	assert.Equal(t, 0.0, s.Median())
}

func TestSummarizeEqualWeights(t *testing.T) {
	s := Summarize([]float64{10, 20, 30}, []float64{1, 1, 1})
	assert.InDelta(t, 20.0, s.Mean, 1e-9)
	// Population stddev of {10,20,30} is sqrt(200/3).
	assert.InDelta(t, 8.1649658, s.StdDev, 1e-6)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 3.0, s.TotalWeight, 1e-9)
}

func TestSummarizeUnequalWeights(t *testing.T) {
	// Heavy weight on 100 should pull the mean toward it.
	s := Summarize([]float64{100, 200}, []float64{3, 1})
	assert.InDelta(t, 125.0, s.Mean, 1e-9)
}

func TestPercentileWeightedMedian(t *testing.T) {
	// Cumulative normalized weights are 0.1, 0.3, 0.6, 1.0; the median is
	// the first value reaching 0.5, which is 30.
	s := Summarize([]float64{10, 20, 30, 40}, []float64{1, 2, 3, 4})
	assert.Equal(t, 30.0, s.Median())
}

func TestPercentileSortsUnorderedInput(t *testing.T) {
	s := Summarize([]float64{40, 10, 30, 20}, []float64{1, 1, 1, 1})
	assert.Equal(t, 10.0, s.Percentile(0.25))
	assert.Equal(t, 40.0, s.Percentile(1.0))
}

func TestPercentileMonotonic(t *testing.T) {
	s := Summarize([]float64{5, 1, 9, 3, 7}, []float64{2, 1, 3, 1, 2})
	previous := s.Percentile(0)
	for p := 0.05; p <= 1.0; p += 0.05 {
		current := s.Percentile(p)
		assert.GreaterOrEqual(t, current, previous, "percentile must be non-decreasing at p=%f", p)
		previous = current
	}
}

func TestPercentileClampsBeyondTotalWeight(t *testing.T) {
	s := Summarize([]float64{1, 2, 3}, []float64{1, 1, 1})
	assert.Equal(t, 3.0, s.Percentile(1.5))
	assert.Equal(t, 1.0, s.Percentile(-0.1))
}

func TestCoefficientOfVariation(t *testing.T) {
	s := Summarize([]float64{100, 100, 100}, []float64{1, 1, 1})
	assert.Equal(t, 0.0, s.CoefficientOfVariation())

	s = Summarize([]float64{90, 110}, []float64{1, 1})
	assert.InDelta(t, 0.1, s.CoefficientOfVariation(), 1e-9)
}

func TestSummarizeZeroTotalWeight(t *testing.T) {
	s := Summarize([]float64{10, 20}, []float64{0, 0})
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.Percentile(0.5))
}
