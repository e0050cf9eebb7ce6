// Package stats provides weighted descriptive statistics over parallel
// value/weight series. It is the statistical foundation the forecasting
// components are built on.
package stats

import (
	"math"
	"sort"
)

// Summary holds weighted descriptive statistics for a series. Percentile is
// computed against the weight-normalized, value-sorted series.
type Summary struct {
	Mean        float64
	StdDev      float64
	TotalWeight float64
	Count       int

	percentile func(p float64) float64
}

// Summarize computes weighted mean, weighted standard deviation and a
// percentile function for the given series. Weights need not be normalized.
// A zero-length series is legal and yields an all-zero summary whose
// percentile function always returns 0.
func Summarize(values, weights []float64) Summary {
	n := len(values)
	if n == 0 || len(weights) != n {
		return Summary{percentile: func(float64) float64 { return 0 }}
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for i := 0; i < n; i++ {
		totalWeight += weights[i]
		weightedSum += values[i] * weights[i]
	}
	if totalWeight <= 0 {
		return Summary{Count: n, percentile: func(float64) float64 { return 0 }}
	}

	mean := weightedSum / totalWeight
	variance := 0.0
	for i := 0; i < n; i++ {
		diff := values[i] - mean
		variance += weights[i] * diff * diff
	}
	variance /= totalWeight

	return Summary{
		Mean:        mean,
		StdDev:      math.Sqrt(variance),
		TotalWeight: totalWeight,
		Count:       n,
		percentile:  buildPercentile(values, weights, totalWeight),
	}
}

// Percentile returns the smallest value whose cumulative normalized weight
// reaches p. Requests beyond the total weight clamp to the maximum value.
func (s Summary) Percentile(p float64) float64 {
	if s.percentile == nil {
		return 0
	}
	return s.percentile(p)
}

// Median is the weighted median, Percentile(0.5).
func (s Summary) Median() float64 {
	return s.Percentile(0.5)
}

// CoefficientOfVariation returns stddev/mean, the volatility measure used by
// the bid recommender. Zero mean yields zero.
func (s Summary) CoefficientOfVariation() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / s.Mean
}

type weightedValue struct {
	value  float64
	weight float64
}

func buildPercentile(values, weights []float64, totalWeight float64) func(p float64) float64 {
	sorted := make([]weightedValue, len(values))
	for i := range values {
		sorted[i] = weightedValue{value: values[i], weight: weights[i]}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

	return func(p float64) float64 {
		if p <= 0 {
			return sorted[0].value
		}
		cumulative := 0.0
		for _, wv := range sorted {
			cumulative += wv.weight / totalWeight
			if cumulative >= p {
				return wv.value
			}
		}
		return sorted[len(sorted)-1].value
	}
}
