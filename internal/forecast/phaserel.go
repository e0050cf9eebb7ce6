package forecast

import (
	"fmt"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
	"github.com/mwu243/kellogg-course-biddier/internal/stats"
)

// PhaseRelationshipEstimator synthesizes a forecast for a phase with no
// direct observations by scaling a sibling phase's fully computed result
// through a phase-to-phase price ratio. Ratios are data-driven medians over
// same-term co-occurrences of raw clearing prices, falling back to the
// configured defaults when too few terms co-occur. Estimation is a
// one-level lookup: the base result must itself be non-derived.
type PhaseRelationshipEstimator struct {
	cfg config.ForecastConfig
}

// NewPhaseRelationshipEstimator creates an estimator from configuration.
func NewPhaseRelationshipEstimator(cfg config.ForecastConfig) *PhaseRelationshipEstimator {
	return &PhaseRelationshipEstimator{cfg: cfg}
}

// Ratio computes the target/base price ratio. The boolean reports whether
// the ratio came from co-occurrence data rather than the configured default.
func (e *PhaseRelationshipEstimator) Ratio(observations []models.HistoricalObservation, base, target models.Phase) (float64, bool) {
	baseByTerm := meanPriceByTerm(observations, base)
	targetByTerm := meanPriceByTerm(observations, target)

	var ratios []float64
	for termIndex, basePrice := range baseByTerm {
		targetPrice, ok := targetByTerm[termIndex]
		if !ok || basePrice <= 0 {
			continue
		}
		ratios = append(ratios, targetPrice/basePrice)
	}

	if len(ratios) >= e.cfg.MinRatioTerms {
		weights := make([]float64, len(ratios))
		for i := range weights {
			weights[i] = 1.0
		}
		return stats.Summarize(ratios, weights).Median(), true
	}

	return e.defaultRatio(base, target), false
}

// Derive scales the base phase's result into a forecast for the target
// phase. Confidence degrades one tier; derived estimates are never high. A
// base result with no data yields an insufficient all-zero result.
func (e *PhaseRelationshipEstimator) Derive(base *models.ForecastResult, target models.Phase, ratio float64, dataDriven bool) *models.ForecastResult {
	if base == nil || base.Derived || base.Confidence == models.ConfidenceInsufficient || base.ExpectedPrice <= 0 {
		return InsufficientResult(target)
	}

	provenance := "configured default"
	if dataDriven {
		provenance = "same-term co-occurrence data"
	}

	result := &models.ForecastResult{
		Phase:            target,
		ExpectedPrice:    roundToPoint(base.ExpectedPrice * ratio),
		SafeBid:          roundToPoint(base.SafeBid * ratio),
		AggressiveBid:    roundToPoint(base.AggressiveBid * ratio),
		MinimumBid:       roundToPoint(base.MinimumBid * ratio),
		Confidence:       base.Confidence.Degrade(),
		Trend:            models.Trend{Direction: models.TrendUnknown, PValue: 1.0},
		Volatility:       base.Volatility,
		DemandPressure:   base.DemandPressure,
		ObservationCount: 0,
		Derived:          true,
		Factors: []models.ForecastFactor{{
			Name:        "phase_relationship",
			Impact:      ratio,
			Description: fmt.Sprintf("Derived from phase %d at ratio %.2f (%s)", base.Phase, ratio, provenance),
		}},
	}
	return result
}

// InsufficientResult is the all-zero degraded result for a phase with no
// usable data anywhere.
func InsufficientResult(phase models.Phase) *models.ForecastResult {
	return &models.ForecastResult{
		Phase:      phase,
		Confidence: models.ConfidenceInsufficient,
		Trend:      models.Trend{Direction: models.TrendUnknown, PValue: 1.0},
		Factors: []models.ForecastFactor{{
			Name:        "insufficient_data",
			Impact:      0,
			Description: "No clearing history for this phase and no usable sibling phase",
		}},
	}
}

func (e *PhaseRelationshipEstimator) defaultRatio(base, target models.Phase) float64 {
	baseLevel := e.phaseLevel(base)
	if baseLevel <= 0 {
		return 1.0
	}
	return e.phaseLevel(target) / baseLevel
}

func (e *PhaseRelationshipEstimator) phaseLevel(phase models.Phase) float64 {
	levels := e.cfg.PhaseLevels
	switch phase {
	case models.Phase1:
		return levels.Phase1
	case models.Phase2:
		return levels.Phase2
	case models.Phase3:
		return levels.Phase3
	case models.Phase4:
		return levels.Phase4
	}
	return 1.0
}

// meanPriceByTerm averages raw clearing prices per term for one phase.
// Unparsed terms (index 0) are excluded; they cannot be matched across
// phases meaningfully.
func meanPriceByTerm(observations []models.HistoricalObservation, phase models.Phase) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, obs := range observations {
		if obs.Phase != phase || !obs.Term.Valid() {
			continue
		}
		idx := obs.Term.Index()
		sums[idx] += obs.ClearingPrice
		counts[idx]++
	}

	means := make(map[int]float64, len(sums))
	for idx, sum := range sums {
		means[idx] = sum / float64(counts[idx])
	}
	return means
}
