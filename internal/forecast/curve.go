package forecast

import (
	"math"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/mathutil"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// CurveBuilder produces the bid-to-win-probability curve by blending an
// empirical estimator over the weighted price history with a parametric
// log-normal estimator.
type CurveBuilder struct {
	cfg config.ForecastConfig
}

// NewCurveBuilder creates a curve builder from engine configuration.
func NewCurveBuilder(cfg config.ForecastConfig) *CurveBuilder {
	return &CurveBuilder{cfg: cfg}
}

// Build samples the curve across the configured span around the expected
// price. Prices are the inflation-adjusted, multiplier-applied observations
// with their decay weights; effectiveStdDev parameterizes the log-normal
// fallback. With zero observations the curve is purely parametric.
// Probabilities are whole percentages and non-decreasing in the bid.
func (b *CurveBuilder) Build(prices, weights []float64, expectedPrice, effectiveStdDev float64) []models.CurvePoint {
	if expectedPrice <= 0 {
		return nil
	}

	low := expectedPrice * (1.0 - b.cfg.CurveSpan)
	high := expectedPrice * (1.0 + b.cfg.CurveSpan)
	step := (high - low) / float64(b.cfg.CurvePoints-1)
	if step < 1.0 {
		step = 1.0
	}

	mu, sigma := logNormalParameters(expectedPrice, effectiveStdDev)
	empiricalWeight := math.Min(float64(len(prices))/float64(b.cfg.CurveEmpiricalCount), 1.0)

	var curve []models.CurvePoint
	for bid := low; bid <= high+step/2; bid += step {
		parametric := mathutil.LogNormalCDF(bid, mu, sigma)

		probability := parametric
		if len(prices) > 0 {
			empirical := b.empiricalProbability(bid, prices, weights)
			probability = empiricalWeight*empirical + (1.0-empiricalWeight)*parametric
		}

		curve = append(curve, models.CurvePoint{
			Bid:         math.Round(bid),
			Probability: math.Round(probability * 100.0),
		})
	}

	return monotone(curve)
}

// empiricalProbability is the weighted fraction of historical prices the bid
// beats, with half credit for prices within the configured band above the
// bid, shrunk toward 50% as the sample count falls below the shrink count.
func (b *CurveBuilder) empiricalProbability(bid float64, prices, weights []float64) float64 {
	beaten := 0.0
	total := 0.0
	for i, price := range prices {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		total += w
		switch {
		case price < bid:
			beaten += w
		case price <= bid*(1.0+b.cfg.CurveHalfCreditBand):
			beaten += 0.5 * w
		}
	}
	if total <= 0 {
		return 0.5
	}

	probability := beaten / total
	if n := len(prices); n < b.cfg.CurveShrinkCount {
		// Thin samples get pulled toward a coin flip to avoid
		// overconfident 0%/100% estimates.
		blend := float64(n) / float64(b.cfg.CurveShrinkCount)
		probability = blend*probability + (1.0-blend)*0.5
	}
	return probability
}

// logNormalParameters converts a normal mean/stddev pair into log-space
// mu/sigma by moment matching.
func logNormalParameters(mean, stdDev float64) (float64, float64) {
	if mean <= 0 {
		return 0, 1
	}
	if stdDev <= 0 {
		// Nearly deterministic prices still need a usable CDF.
		stdDev = mean * 0.05
	}
	cv := stdDev / mean
	sigma2 := math.Log(1.0 + cv*cv)
	mu := math.Log(mean) - sigma2/2.0
	return mu, math.Sqrt(sigma2)
}

// monotone enforces non-decreasing probability across the curve; blending
// rounded estimators can otherwise produce one-percent dips.
func monotone(curve []models.CurvePoint) []models.CurvePoint {
	for i := 1; i < len(curve); i++ {
		if curve[i].Probability < curve[i-1].Probability {
			curve[i].Probability = curve[i-1].Probability
		}
	}
	return curve
}

// ProbabilityForBid interpolates the win probability for a bid between the
// two bracketing curve points, clamped at the curve boundaries.
func ProbabilityForBid(curve []models.CurvePoint, bid float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if bid <= curve[0].Bid {
		return curve[0].Probability
	}
	last := curve[len(curve)-1]
	if bid >= last.Bid {
		return last.Probability
	}

	for i := 1; i < len(curve); i++ {
		if bid <= curve[i].Bid {
			return interpolate(bid, curve[i-1].Bid, curve[i].Bid, curve[i-1].Probability, curve[i].Probability)
		}
	}
	return last.Probability
}

// BidForTargetProbability interpolates the bid that reaches the target win
// probability, clamped at the curve boundaries.
func BidForTargetProbability(curve []models.CurvePoint, probability float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if probability <= curve[0].Probability {
		return curve[0].Bid
	}
	last := curve[len(curve)-1]
	if probability >= last.Probability {
		return last.Bid
	}

	for i := 1; i < len(curve); i++ {
		if probability <= curve[i].Probability {
			return interpolate(probability, curve[i-1].Probability, curve[i].Probability, curve[i-1].Bid, curve[i].Bid)
		}
	}
	return last.Bid
}

func interpolate(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
