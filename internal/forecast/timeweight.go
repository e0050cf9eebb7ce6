// Package forecast implements the course-bid forecasting engine: per-phase
// price forecasts, risk-tiered bid recommendations and bid-to-win-probability
// curves computed from sparse multi-term clearing-price history.
package forecast

import (
	"math"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// TimeWeightModel maps a historical term to a recency decay weight and an
// inflation adjustment relative to the current term. Pure function of its
// inputs and the fixed configuration.
type TimeWeightModel struct {
	decayRate     float64
	inflationRate float64
}

// NewTimeWeightModel creates a time weight model from engine configuration.
func NewTimeWeightModel(cfg config.ForecastConfig) *TimeWeightModel {
	return &TimeWeightModel{
		decayRate:     cfg.DecayRate,
		inflationRate: cfg.InflationRate,
	}
}

// Weight returns the decay weight exp(-lambda * years) for an observation
// from term relative to current. Unparsed terms carry order value 0 and so
// fall out as maximally stale; future terms clamp to distance 0.
func (m *TimeWeightModel) Weight(term, current models.Term) float64 {
	return math.Exp(-m.decayRate * m.yearsAgo(term, current))
}

// InflationFactor returns (1+r)^years, the multiplier that expresses a
// historical price in current-term terms.
func (m *TimeWeightModel) InflationFactor(term, current models.Term) float64 {
	return math.Pow(1.0+m.inflationRate, m.yearsAgo(term, current))
}

func (m *TimeWeightModel) yearsAgo(term, current models.Term) float64 {
	years := term.YearsBefore(current)
	if years < 0 {
		return 0
	}
	// Unparsed terms have index 0, which produces an absurdly large
	// distance; cap it so the weight underflows smoothly instead of the
	// inflation factor exploding.
	if !term.Valid() {
		years = staleHorizonYears
	}
	return years
}

// staleHorizonYears is the distance assigned to unparsable terms: far enough
// back to be effectively weightless, bounded so the inflation multiplier
// stays sane.
const staleHorizonYears = 20.0
