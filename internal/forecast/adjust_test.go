package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

func TestRatingMultiplierMidpointIsNeutral(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	engine := NewAdjustmentEngine(cfg)

	assert.InDelta(t, 1.0, engine.RatingMultiplier(5.0), 1e-9)

	top := engine.RatingMultiplier(6.0)
	assert.Greater(t, top, 1.0)
	assert.LessOrEqual(t, top, 1.0+cfg.RatingImpactScale)

	bottom := engine.RatingMultiplier(1.0)
	assert.Less(t, bottom, 1.0)
	assert.GreaterOrEqual(t, bottom, 1.0-cfg.RatingImpactScale)
}

func TestAbsentRatingIsNeutral(t *testing.T) {
	engine := NewAdjustmentEngine(config.DefaultForecastConfig())
	ctx := &models.CourseContext{}

	adjustments := engine.Compute(ctx, nil, nil)
	assert.Equal(t, 1.0, adjustments.RatingMultiplier)
	assert.Empty(t, adjustments.Factors)
}

func TestDemandPressureNoData(t *testing.T) {
	engine := NewAdjustmentEngine(config.DefaultForecastConfig())

	observations := []models.HistoricalObservation{
		{Phase: models.Phase1, ClearingPrice: 100},
		{Phase: models.Phase1, ClearingPrice: 120, SeatsAvailable: 60},
	}
	pressure, ok := engine.DemandPressure(observations, equalWeights(2))
	assert.False(t, ok)
	assert.Equal(t, 0.5, pressure)
}

func TestDemandPressureAtSigmoidCenter(t *testing.T) {
	engine := NewAdjustmentEngine(config.DefaultForecastConfig())

	// Two bids per seat is the sigmoid center: pressure 0.5, neutral
	// multiplier.
	observations := []models.HistoricalObservation{
		{Phase: models.Phase1, ClearingPrice: 100, SeatsAvailable: 50, BidsPlaced: 100},
	}
	pressure, ok := engine.DemandPressure(observations, equalWeights(1))
	require.True(t, ok)
	assert.InDelta(t, 0.5, pressure, 1e-9)
}

func TestDemandPressureOversubscribed(t *testing.T) {
	engine := NewAdjustmentEngine(config.DefaultForecastConfig())

	observations := []models.HistoricalObservation{
		{Phase: models.Phase1, ClearingPrice: 100, SeatsAvailable: 20, BidsPlaced: 200},
	}
	pressure, ok := engine.DemandPressure(observations, equalWeights(1))
	require.True(t, ok)
	assert.Greater(t, pressure, 0.9)

	ctx := &models.CourseContext{}
	adjustments := engine.Compute(ctx, observations, equalWeights(1))
	assert.Greater(t, adjustments.DemandMultiplier, 1.0)
	assert.LessOrEqual(t, adjustments.DemandMultiplier, 1.1)
}

func TestTimeSlotMultiplier(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	engine := NewAdjustmentEngine(cfg)

	tests := []struct {
		name     string
		time     string
		expected float64
		bucket   string
		ok       bool
	}{
		{"early morning", "8:30AM", cfg.TimeSlots.EarlyMorning, "early morning", true},
		{"morning", "10:00AM", cfg.TimeSlots.Morning, "morning", true},
		{"afternoon", "1:30PM", cfg.TimeSlots.Afternoon, "afternoon", true},
		{"evening", "6:00PM", cfg.TimeSlots.Evening, "evening", true},
		{"24 hour clock", "13:30", cfg.TimeSlots.Afternoon, "afternoon", true},
		{"noon", "12:00PM", cfg.TimeSlots.Afternoon, "afternoon", true},
		{"midnight", "12:30AM", cfg.TimeSlots.EarlyMorning, "early morning", true},
		{"unparsable", "TBA", 1.0, "", false},
		{"empty", "", 1.0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			multiplier, bucket, ok := engine.TimeSlotMultiplier(tt.time)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, multiplier)
			assert.Equal(t, tt.bucket, bucket)
		})
	}
}

func TestCampusMultiplier(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	engine := NewAdjustmentEngine(cfg)

	multiplier, ok := engine.CampusMultiplier("Chicago (Downtown)")
	assert.True(t, ok)
	assert.Equal(t, cfg.SecondaryCampusMultiplier, multiplier)

	multiplier, ok = engine.CampusMultiplier("Evanston")
	assert.False(t, ok)
	assert.Equal(t, 1.0, multiplier)

	_, ok = engine.CampusMultiplier("")
	assert.False(t, ok)
}

func TestComputeRecordsFactors(t *testing.T) {
	engine := NewAdjustmentEngine(config.DefaultForecastConfig())

	ctx := &models.CourseContext{
		Signal:      &models.ProfessorSignal{Rating: 6.0},
		MeetingTime: "10:00AM",
		Campus:      "Chicago",
	}
	observations := []models.HistoricalObservation{
		{Phase: models.Phase1, ClearingPrice: 100, SeatsAvailable: 10, BidsPlaced: 40},
	}

	adjustments := engine.Compute(ctx, observations, equalWeights(1))
	require.Len(t, adjustments.Factors, 4)

	names := make([]string, len(adjustments.Factors))
	for i, factor := range adjustments.Factors {
		names[i] = factor.Name
	}
	assert.ElementsMatch(t, []string{"professor_rating", "demand_pressure", "time_slot", "campus"}, names)

	total := adjustments.Total(1.0)
	expected := adjustments.RatingMultiplier * adjustments.DemandMultiplier *
		adjustments.TimeSlotMultiplier * adjustments.CampusMultiplier
	assert.InDelta(t, expected, total, 1e-9)
}
