package forecast

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// BidRecommender converts an expected price and a data-scarcity/volatility
// measure into the safe/aggressive/minimum bid triple.
type BidRecommender struct {
	cfg config.ForecastConfig
}

// NewBidRecommender creates a bid recommender from engine configuration.
func NewBidRecommender(cfg config.ForecastConfig) *BidRecommender {
	return &BidRecommender{cfg: cfg}
}

// BidTiers holds the three recommended bid amounts, rounded to whole bid
// points. Ordering minimum <= aggressive <= safe always holds.
type BidTiers struct {
	Safe       float64
	Aggressive float64
	Minimum    float64
}

// Recommend computes the bid tiers around the expected price. The
// uncertainty margin grows with the shortfall below the high-confidence
// observation count and with series volatility, clamped to the configured
// range.
func (r *BidRecommender) Recommend(expectedPrice float64, observationCount int, volatility float64) BidTiers {
	if expectedPrice <= 0 {
		return BidTiers{}
	}

	margin := r.Margin(observationCount, volatility)
	return BidTiers{
		Safe:       roundToPoint(expectedPrice * (1.0 + margin)),
		Aggressive: roundToPoint(expectedPrice),
		Minimum:    roundToPoint(expectedPrice * (1.0 - margin/2.0)),
	}
}

// Margin is the uncertainty margin: base, plus a penalty proportional to the
// shortfall below the high-confidence count, plus a fraction of volatility.
func (r *BidRecommender) Margin(observationCount int, volatility float64) float64 {
	margin := r.cfg.BaseMargin

	if observationCount < r.cfg.HighConfidenceCount {
		shortfall := 1.0 - float64(observationCount)/float64(r.cfg.HighConfidenceCount)
		margin += r.cfg.ShortfallPenalty * shortfall
	}

	margin += r.cfg.VolatilityMarginFraction * math.Max(volatility, 0)

	return math.Min(math.Max(margin, r.cfg.MinMargin), r.cfg.MaxMargin)
}

// Confidence maps an observation count onto its tier.
func (r *BidRecommender) Confidence(observationCount int) models.ConfidenceTier {
	switch {
	case observationCount >= r.cfg.HighConfidenceCount:
		return models.ConfidenceHigh
	case observationCount >= r.cfg.MediumConfidenceCount:
		return models.ConfidenceMedium
	case observationCount >= r.cfg.LowConfidenceCount:
		return models.ConfidenceLow
	default:
		return models.ConfidenceInsufficient
	}
}

// roundToPoint rounds a bid amount to a whole bid point.
func roundToPoint(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(0).Float64()
	return rounded
}
