package models

import (
	"time"

	"github.com/google/uuid"
)

// TrendDirection classifies how clearing prices move across terms.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
	TrendUnknown TrendDirection = "unknown"
)

// ConfidenceTier is a coarse summary of how much data backs a forecast.
type ConfidenceTier string

const (
	ConfidenceHigh         ConfidenceTier = "high"
	ConfidenceMedium       ConfidenceTier = "medium"
	ConfidenceLow          ConfidenceTier = "low"
	ConfidenceInsufficient ConfidenceTier = "insufficient"
)

// Degrade steps the tier down one level. Derived estimates are never high.
func (c ConfidenceTier) Degrade() ConfidenceTier {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	default:
		return ConfidenceInsufficient
	}
}

// ForecastFactor records one named contribution to a forecast. Factors are
// transparency records only; nothing downstream computes with them.
type ForecastFactor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// CurvePoint is one sample of the bid-to-win-probability curve. Probability
// is a whole percentage in [0,100].
type CurvePoint struct {
	Bid         float64 `json:"bid"`
	Probability float64 `json:"probability"`
}

// Trend summarizes the regression outcome for one phase.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Strength  float64        `json:"strength"`
	PValue    float64        `json:"p_value"`
}

// ForecastResult is the forecast for a single bidding phase. All monetary
// fields are non-negative; probabilities are whole percentages.
type ForecastResult struct {
	Phase            Phase            `json:"phase"`
	ExpectedPrice    float64          `json:"expected_price"`
	SafeBid          float64          `json:"safe_bid"`
	AggressiveBid    float64          `json:"aggressive_bid"`
	MinimumBid       float64          `json:"minimum_bid"`
	Confidence       ConfidenceTier   `json:"confidence"`
	Trend            Trend            `json:"trend"`
	Volatility       float64          `json:"volatility"`
	DemandPressure   float64          `json:"demand_pressure"`
	ObservationCount int              `json:"observation_count"`
	Derived          bool             `json:"derived"`
	Factors          []ForecastFactor `json:"factors"`
	Curve            []CurvePoint     `json:"curve,omitempty"`
}

// CompleteForecast is the full four-phase output handed to the presentation
// layer. Built fresh on every invocation and never mutated afterward.
type CompleteForecast struct {
	ID             uuid.UUID                 `json:"id"`
	CourseID       uuid.UUID                 `json:"course_id"`
	CourseName     string                    `json:"course_name"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Phases         map[Phase]*ForecastResult `json:"phases"`
	Recommendation string                    `json:"recommendation"`
	StrategyNotes  []string                  `json:"strategy_notes"`
}
