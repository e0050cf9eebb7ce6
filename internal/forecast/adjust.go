package forecast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// AdjustmentEngine computes the independent multiplicative price adjustments:
// professor rating, demand pressure, meeting time slot and campus. Each
// adjustment is deterministic and side-effect-free; applied adjustments are
// recorded as ForecastFactors.
type AdjustmentEngine struct {
	cfg config.ForecastConfig
}

// NewAdjustmentEngine creates an adjustment engine from engine configuration.
func NewAdjustmentEngine(cfg config.ForecastConfig) *AdjustmentEngine {
	return &AdjustmentEngine{cfg: cfg}
}

// Adjustments bundles the individual multipliers and their audit factors.
type Adjustments struct {
	RatingMultiplier   float64
	DemandMultiplier   float64
	TimeSlotMultiplier float64
	CampusMultiplier   float64
	DemandPressure     float64
	Factors            []models.ForecastFactor
}

// Total composes the four adjustments with the trend multiplier.
func (a Adjustments) Total(trendMultiplier float64) float64 {
	return a.RatingMultiplier * a.DemandMultiplier * a.TimeSlotMultiplier * a.CampusMultiplier * trendMultiplier
}

// Compute evaluates every adjustment for the given context and phase series.
func (e *AdjustmentEngine) Compute(ctx *models.CourseContext, observations []models.HistoricalObservation, weights []float64) Adjustments {
	adj := Adjustments{
		RatingMultiplier:   1.0,
		DemandMultiplier:   1.0,
		TimeSlotMultiplier: 1.0,
		CampusMultiplier:   1.0,
		DemandPressure:     0.5,
	}

	if rating := ctx.Rating(); rating > 0 {
		adj.RatingMultiplier = e.RatingMultiplier(rating)
		adj.Factors = append(adj.Factors, models.ForecastFactor{
			Name:        "professor_rating",
			Impact:      adj.RatingMultiplier,
			Description: fmt.Sprintf("Instructor rated %.1f/6.0", rating),
		})
	}

	pressure, hasDemand := e.DemandPressure(observations, weights)
	if hasDemand {
		adj.DemandPressure = pressure
		adj.DemandMultiplier = 1.0 + (pressure-0.5)*e.cfg.DemandMultiplierSpread
		adj.Factors = append(adj.Factors, models.ForecastFactor{
			Name:        "demand_pressure",
			Impact:      adj.DemandMultiplier,
			Description: fmt.Sprintf("Demand pressure %.2f from bids-per-seat history", pressure),
		})
	}

	if multiplier, bucket, ok := e.TimeSlotMultiplier(ctx.MeetingTime); ok {
		adj.TimeSlotMultiplier = multiplier
		adj.Factors = append(adj.Factors, models.ForecastFactor{
			Name:        "time_slot",
			Impact:      multiplier,
			Description: fmt.Sprintf("Meets in the %s", bucket),
		})
	}

	if multiplier, ok := e.CampusMultiplier(ctx.Campus); ok {
		adj.CampusMultiplier = multiplier
		adj.Factors = append(adj.Factors, models.ForecastFactor{
			Name:        "campus",
			Impact:      multiplier,
			Description: fmt.Sprintf("Section meets at the %s campus", ctx.Campus),
		})
	}

	return adj
}

// RatingMultiplier maps a 1-6 professor rating through a tanh sigmoid
// centered at the configured midpoint. The midpoint rating is exactly
// neutral; a top rating approaches 1+scale.
func (e *AdjustmentEngine) RatingMultiplier(rating float64) float64 {
	return 1.0 + e.cfg.RatingImpactScale*math.Tanh((rating-e.cfg.RatingMidpoint)/e.cfg.RatingSpread)
}

// DemandPressure computes the weighted mean bids-per-seat ratio across
// observations with valid denominators and maps it through a sigmoid
// centered at the configured ratio. Returns (0.5, false) when no
// observation carries usable demand data.
func (e *AdjustmentEngine) DemandPressure(observations []models.HistoricalObservation, weights []float64) (float64, bool) {
	ratioSum := 0.0
	weightSum := 0.0
	for i, obs := range observations {
		if obs.SeatsAvailable <= 0 || obs.BidsPlaced <= 0 {
			continue
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		ratioSum += w * float64(obs.BidsPlaced) / float64(obs.SeatsAvailable)
		weightSum += w
	}
	if weightSum <= 0 {
		return 0.5, false
	}

	meanRatio := ratioSum / weightSum
	pressure := 1.0 / (1.0 + math.Exp(-e.cfg.DemandSigmoidSteepness*(meanRatio-e.cfg.DemandSigmoidCenter)))
	return pressure, true
}

var meetingTimePattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)?`)

// TimeSlotMultiplier parses a meeting time such as "8:30AM" or "13:30" and
// returns the multiplier for its start-hour bucket. Unparsable or empty
// times return ok=false and leave the adjustment neutral.
func (e *AdjustmentEngine) TimeSlotMultiplier(meetingTime string) (float64, string, bool) {
	matches := meetingTimePattern.FindStringSubmatch(meetingTime)
	if matches == nil {
		return 1.0, "", false
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil || hour > 23 {
		return 1.0, "", false
	}
	switch strings.ToUpper(matches[3]) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	slots := e.cfg.TimeSlots
	switch {
	case hour < 9:
		return slots.EarlyMorning, "early morning", true
	case hour < 12:
		return slots.Morning, "morning", true
	case hour < 17:
		return slots.Afternoon, "afternoon", true
	default:
		return slots.Evening, "evening", true
	}
}

// CampusMultiplier returns the multiplier for the campus token. The
// designated secondary campus is matched by substring; anything else is
// neutral and unreported.
func (e *AdjustmentEngine) CampusMultiplier(campus string) (float64, bool) {
	if campus == "" {
		return 1.0, false
	}
	if e.cfg.SecondaryCampus != "" &&
		strings.Contains(strings.ToLower(campus), strings.ToLower(e.cfg.SecondaryCampus)) {
		return e.cfg.SecondaryCampusMultiplier, true
	}
	return 1.0, false
}
