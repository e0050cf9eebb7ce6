package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/logger"
	"github.com/mwu243/kellogg-course-biddier/internal/metrics"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
	"github.com/mwu243/kellogg-course-biddier/internal/stats"
)

// Engine wires the forecasting components into the full per-phase pipeline
// and aggregates the four phase results into a CompleteForecast.
type Engine struct {
	cfg         config.ForecastConfig
	timeWeights *TimeWeightModel
	trend       *TrendDetector
	adjustments *AdjustmentEngine
	recommender *BidRecommender
	curves      *CurveBuilder
	phaseRel    *PhaseRelationshipEstimator
	log         *logger.ForecastLogger
}

// NewEngine creates a forecasting engine. A nil logger falls back to the
// default configuration.
func NewEngine(cfg config.ForecastConfig, baseLogger *logrus.Logger) *Engine {
	if baseLogger == nil {
		baseLogger = logger.NewLogger("info")
	}
	return &Engine{
		cfg:         cfg,
		timeWeights: NewTimeWeightModel(cfg),
		trend:       NewTrendDetector(cfg),
		adjustments: NewAdjustmentEngine(cfg),
		recommender: NewBidRecommender(cfg),
		curves:      NewCurveBuilder(cfg),
		phaseRel:    NewPhaseRelationshipEstimator(cfg),
		log:         logger.NewForecastLogger(baseLogger),
	}
}

// Forecast computes the four-phase forecast for one course context. The only
// error condition is a malformed context; data sparsity degrades confidence
// instead of failing, so a valid context always yields a renderable result.
func (e *Engine) Forecast(ctx *models.CourseContext) (*models.CompleteForecast, error) {
	start := time.Now()
	if ctx == nil {
		return nil, models.ErrInvalidContext
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	phases := make(map[models.Phase]*models.ForecastResult, len(models.AllPhases))

	// Direct computation for every phase with history.
	for _, phase := range models.AllPhases {
		observations := ctx.ObservationsForPhase(phase)
		if len(observations) == 0 {
			continue
		}
		phases[phase] = e.forecastPhase(ctx, phase, observations)
	}

	// Cross-phase estimation for the rest, one level deep from the direct
	// phase with the most data.
	base := e.bestBasePhase(phases)
	for _, phase := range models.AllPhases {
		if phases[phase] != nil {
			continue
		}
		if base == nil {
			phases[phase] = InsufficientResult(phase)
			metrics.RecordInsufficientPhase()
			continue
		}
		ratio, dataDriven := e.phaseRel.Ratio(ctx.Observations, base.Phase, phase)
		phases[phase] = e.phaseRel.Derive(base, phase, ratio, dataDriven)
		metrics.RecordDerivedPhase()
		e.log.LogDerivedPhase(ctx.ID.String(), int(phase), int(base.Phase), ratio, dataDriven)
	}

	for _, phase := range models.AllPhases {
		result := phases[phase]
		e.log.LogPhaseForecast(ctx.ID.String(), int(phase), result.ObservationCount,
			result.ExpectedPrice, string(result.Confidence), string(result.Trend.Direction), result.Derived)
	}

	forecast := &models.CompleteForecast{
		ID:             uuid.New(),
		CourseID:       ctx.ID,
		CourseName:     ctx.CourseName,
		GeneratedAt:    time.Now(),
		Phases:         phases,
		Recommendation: e.recommendation(phases),
		StrategyNotes:  e.strategyNotes(ctx, phases),
	}

	duration := time.Since(start)
	metrics.RecordForecast(duration.Seconds())
	e.log.LogForecastComplete(ctx.ID.String(), ctx.CourseName, len(ctx.Observations), float64(duration.Milliseconds()))

	return forecast, nil
}

// forecastPhase runs the full pipeline for one phase with direct history.
func (e *Engine) forecastPhase(ctx *models.CourseContext, phase models.Phase, observations []models.HistoricalObservation) *models.ForecastResult {
	prices := make([]float64, len(observations))
	termIndexes := make([]float64, len(observations))
	weights := make([]float64, len(observations))
	for i, obs := range observations {
		prices[i] = obs.ClearingPrice * e.timeWeights.InflationFactor(obs.Term, ctx.CurrentTerm)
		termIndexes[i] = float64(obs.Term.Index())
		weights[i] = e.timeWeights.Weight(obs.Term, ctx.CurrentTerm)
	}

	summary := stats.Summarize(prices, weights)
	trend := e.trend.Detect(prices, termIndexes, weights)
	adjustments := e.adjustments.Compute(ctx, observations, weights)

	totalMultiplier := adjustments.Total(trend.Multiplier())
	expectedPrice := summary.Mean * totalMultiplier
	volatility := summary.CoefficientOfVariation()

	tiers := e.recommender.Recommend(expectedPrice, len(observations), volatility)

	factors := make([]models.ForecastFactor, 0, len(adjustments.Factors)+2)
	factors = append(factors, models.ForecastFactor{
		Name:        "weighted_history",
		Impact:      summary.Mean,
		Description: fmt.Sprintf("Recency-weighted mean of %d inflation-adjusted clearing prices", len(observations)),
	})
	if trend.Direction == models.TrendRising || trend.Direction == models.TrendFalling {
		factors = append(factors, models.ForecastFactor{
			Name:        "price_trend",
			Impact:      trend.Multiplier(),
			Description: fmt.Sprintf("Prices %s across terms (p=%.3f)", trend.Direction, trend.PValue),
		})
	}
	factors = append(factors, adjustments.Factors...)

	// Curve over the multiplier-applied observations so the empirical and
	// parametric estimators live on the same scale.
	curvePrices := make([]float64, len(prices))
	for i, price := range prices {
		curvePrices[i] = price * totalMultiplier
	}
	curve := e.curves.Build(curvePrices, weights, expectedPrice, summary.StdDev*totalMultiplier)

	return &models.ForecastResult{
		Phase:            phase,
		ExpectedPrice:    roundToPoint(expectedPrice),
		SafeBid:          tiers.Safe,
		AggressiveBid:    tiers.Aggressive,
		MinimumBid:       tiers.Minimum,
		Confidence:       e.recommender.Confidence(len(observations)),
		Trend:            models.Trend{Direction: trend.Direction, Strength: trend.Strength, PValue: trend.PValue},
		Volatility:       volatility,
		DemandPressure:   adjustments.DemandPressure,
		ObservationCount: len(observations),
		Factors:          factors,
		Curve:            curve,
	}
}

// bestBasePhase picks the direct phase with the most observations to serve
// as the source for cross-phase estimation. Derived or empty results never
// qualify.
func (e *Engine) bestBasePhase(phases map[models.Phase]*models.ForecastResult) *models.ForecastResult {
	var best *models.ForecastResult
	for _, phase := range models.DirectPhases {
		result := phases[phase]
		if result == nil || result.Derived || result.Confidence == models.ConfidenceInsufficient {
			continue
		}
		if best == nil || result.ObservationCount > best.ObservationCount {
			best = result
		}
	}
	return best
}

func (e *Engine) recommendation(phases map[models.Phase]*models.ForecastResult) string {
	best := e.cheapestUsablePhase(phases)
	if best == nil {
		return "Not enough clearing history to recommend a bid; budget conservatively and favor the add/drop phase."
	}
	return fmt.Sprintf(
		"Target phase %d: bid %.0f points to balance cost and certainty (aggressive %.0f, floor %.0f).",
		best.Phase, best.SafeBid, best.AggressiveBid, best.MinimumBid,
	)
}

func (e *Engine) cheapestUsablePhase(phases map[models.Phase]*models.ForecastResult) *models.ForecastResult {
	var usable []*models.ForecastResult
	for _, result := range phases {
		if result.Confidence != models.ConfidenceInsufficient && result.SafeBid > 0 {
			usable = append(usable, result)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	sort.Slice(usable, func(i, j int) bool {
		if usable[i].SafeBid != usable[j].SafeBid {
			return usable[i].SafeBid < usable[j].SafeBid
		}
		return usable[i].Phase < usable[j].Phase
	})
	return usable[0]
}

func (e *Engine) strategyNotes(ctx *models.CourseContext, phases map[models.Phase]*models.ForecastResult) []string {
	var notes []string

	for _, phase := range models.AllPhases {
		result := phases[phase]
		switch {
		case result.Trend.Direction == models.TrendRising:
			notes = append(notes, fmt.Sprintf("Phase %d prices are trending up; recent terms matter more than the long-run mean.", phase))
		case result.Trend.Direction == models.TrendFalling:
			notes = append(notes, fmt.Sprintf("Phase %d prices are trending down; the safe bid may overshoot.", phase))
		}
		if result.DemandPressure > 0.7 {
			notes = append(notes, fmt.Sprintf("Phase %d shows heavy oversubscription; expect clearing prices above the historical mean.", phase))
		}
		if result.Derived {
			notes = append(notes, fmt.Sprintf("Phase %d has no direct history; its numbers are scaled from phase ratios.", phase))
		}
	}

	total := len(ctx.Observations)
	if total > 0 && total < e.cfg.MediumConfidenceCount {
		notes = append(notes, "Overall history is thin; treat the safe bid as a starting point, not a ceiling.")
	}

	return notes
}
