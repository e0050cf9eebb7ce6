package forecast

import (
	"math"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/mathutil"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// TrendDetector runs a weighted least-squares regression of price against
// normalized term index and tests the slope for statistical significance.
type TrendDetector struct {
	cfg config.ForecastConfig
}

// NewTrendDetector creates a trend detector from engine configuration.
func NewTrendDetector(cfg config.ForecastConfig) *TrendDetector {
	return &TrendDetector{cfg: cfg}
}

// TrendEstimate is the regression outcome for one phase series.
type TrendEstimate struct {
	Direction models.TrendDirection
	Strength  float64
	PValue    float64

	// FractionalSlope is the fitted slope expressed as a fraction of the
	// mean price over the normalized [0,1] term range.
	FractionalSlope float64
}

// Multiplier converts the trend into the price projection factor composed
// with the other adjustments. Insignificant or unknown trends are neutral.
func (e TrendEstimate) Multiplier() float64 {
	if e.Direction != models.TrendRising && e.Direction != models.TrendFalling {
		return 1.0
	}
	// Project half a normalized step forward, damped by strength so weak
	// marginal trends do not swing the forecast.
	return 1.0 + e.FractionalSlope*0.5*e.Strength
}

// Detect classifies the weighted (price, term index) series as rising,
// falling or stable. Fewer points than the configured minimum yields
// unknown with zero strength; degenerate term-index variance short-circuits
// to stable without dividing by near-zero.
func (d *TrendDetector) Detect(prices, termIndexes, weights []float64) TrendEstimate {
	unknown := TrendEstimate{Direction: models.TrendUnknown, PValue: 1.0}
	n := len(prices)
	if n < d.cfg.MinTrendPoints || len(termIndexes) != n || len(weights) != n {
		return unknown
	}

	x := normalizeIndexes(termIndexes)

	sumW := 0.0
	sumW2 := 0.0
	sumWX := 0.0
	sumWY := 0.0
	for i := 0; i < n; i++ {
		sumW += weights[i]
		sumW2 += weights[i] * weights[i]
		sumWX += weights[i] * x[i]
		sumWY += weights[i] * prices[i]
	}
	if sumW <= 0 {
		return unknown
	}

	meanX := sumWX / sumW
	meanY := sumWY / sumW

	sxx := 0.0
	sxy := 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxx += weights[i] * dx * dx
		sxy += weights[i] * dx * (prices[i] - meanY)
	}

	stable := TrendEstimate{Direction: models.TrendStable, PValue: 1.0}
	if sxx < 1e-9 {
		return stable
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	// Weighted residual sum of squares.
	rss := 0.0
	for i := 0; i < n; i++ {
		residual := prices[i] - (intercept + slope*x[i])
		rss += weights[i] * residual * residual
	}

	// Effective sample size accounts for uneven weighting.
	effectiveN := sumW * sumW / sumW2
	degreesOfFreedom := effectiveN - 2.0
	if degreesOfFreedom < 1.0 {
		return stable
	}

	// Rescale weights so they sum to the effective sample size, then the
	// usual OLS variance formulas apply.
	residualVariance := (rss * effectiveN / sumW) / degreesOfFreedom
	standardError := math.Sqrt(residualVariance * sumW / (effectiveN * sxx))
	if standardError < 1e-12 {
		// A perfect fit with a non-zero slope is as significant as it gets;
		// a perfect flat fit is stable.
		if math.Abs(slope) < 1e-12 {
			return stable
		}
		standardError = 1e-12
	}

	tStatistic := slope / standardError
	pValue := mathutil.TwoTailedPValue(tStatistic, degreesOfFreedom)

	fractionalSlope := 0.0
	if meanY != 0 {
		fractionalSlope = slope / meanY
	}

	estimate := TrendEstimate{
		Direction:       models.TrendStable,
		PValue:          pValue,
		FractionalSlope: fractionalSlope,
	}

	if pValue < d.cfg.PValueThreshold && math.Abs(fractionalSlope) > d.cfg.SlopeSignificanceBand {
		if slope > 0 {
			estimate.Direction = models.TrendRising
		} else {
			estimate.Direction = models.TrendFalling
		}
		estimate.Strength = math.Min(math.Abs(fractionalSlope)/d.cfg.TrendStrengthScale, 1.0)
	}

	return estimate
}

// normalizeIndexes maps term indexes onto [0,1]. A constant series maps to
// all zeros, which the caller detects as degenerate variance.
func normalizeIndexes(indexes []float64) []float64 {
	minIdx := indexes[0]
	maxIdx := indexes[0]
	for _, idx := range indexes[1:] {
		if idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	span := maxIdx - minIdx
	normalized := make([]float64, len(indexes))
	if span <= 0 {
		return normalized
	}
	for i, idx := range indexes {
		normalized[i] = (idx - minIdx) / span
	}
	return normalized
}
