package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

func buildTestCurve(t *testing.T) []models.CurvePoint {
	t.Helper()
	builder := NewCurveBuilder(config.DefaultForecastConfig())
	prices := []float64{180, 200, 210, 220, 240, 260, 215, 225}
	curve := builder.Build(prices, equalWeights(len(prices)), 220, 25)
	require.NotEmpty(t, curve)
	return curve
}

func TestCurveSpansExpectedPrice(t *testing.T) {
	curve := buildTestCurve(t)

	assert.InDelta(t, 110, curve[0].Bid, 1.0)
	assert.InDelta(t, 330, curve[len(curve)-1].Bid, 6.0)
	assert.GreaterOrEqual(t, len(curve), 30)
}

func TestCurveProbabilityMonotonic(t *testing.T) {
	curve := buildTestCurve(t)

	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i].Probability, curve[i-1].Probability)
		assert.Greater(t, curve[i].Bid, curve[i-1].Bid)
	}
}

func TestCurveProbabilitiesAreWholePercentages(t *testing.T) {
	curve := buildTestCurve(t)

	for _, point := range curve {
		assert.GreaterOrEqual(t, point.Probability, 0.0)
		assert.LessOrEqual(t, point.Probability, 100.0)
		assert.Equal(t, float64(int64(point.Probability)), point.Probability)
	}
}

func TestCurveEndpointsMakeSense(t *testing.T) {
	curve := buildTestCurve(t)

	// Bidding half the expected price should rarely win; 1.5x should
	// almost always win.
	assert.Less(t, curve[0].Probability, 35.0)
	assert.Greater(t, curve[len(curve)-1].Probability, 85.0)
}

func TestCurveZeroObservationsFallsBackToParametric(t *testing.T) {
	builder := NewCurveBuilder(config.DefaultForecastConfig())

	curve := builder.Build(nil, nil, 200, 40)
	require.NotEmpty(t, curve)

	// A log-normal centered near the expected price crosses 50% close to it.
	mid := ProbabilityForBid(curve, 200)
	assert.InDelta(t, 50.0, mid, 12.0)

	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i].Probability, curve[i-1].Probability)
	}
}

func TestCurveThinSampleIsShrunk(t *testing.T) {
	builder := NewCurveBuilder(config.DefaultForecastConfig())

	// A single observation must not produce overconfident 0/100 tails at
	// moderate distances from the expected price.
	curve := builder.Build([]float64{200}, []float64{1}, 200, 30)
	require.NotEmpty(t, curve)

	low := ProbabilityForBid(curve, 170)
	high := ProbabilityForBid(curve, 230)
	assert.Greater(t, low, 5.0)
	assert.Less(t, high, 95.0)
}

func TestCurveZeroExpectedPrice(t *testing.T) {
	builder := NewCurveBuilder(config.DefaultForecastConfig())
	assert.Nil(t, builder.Build(nil, nil, 0, 10))
}

func TestProbabilityForBidClamps(t *testing.T) {
	curve := buildTestCurve(t)

	assert.Equal(t, curve[0].Probability, ProbabilityForBid(curve, 0))
	assert.Equal(t, curve[len(curve)-1].Probability, ProbabilityForBid(curve, 10000))
}

func TestBidForTargetProbabilityClamps(t *testing.T) {
	curve := buildTestCurve(t)

	assert.Equal(t, curve[0].Bid, BidForTargetProbability(curve, -5))
	assert.Equal(t, curve[len(curve)-1].Bid, BidForTargetProbability(curve, 200))
}

func TestLookupRoundTrip(t *testing.T) {
	curve := buildTestCurve(t)

	// Whole-percent rounding leaves flat runs where the inverse lookup
	// cannot recover the exact bid, so round-trip only where the curve is
	// strictly increasing around the sample point.
	step := curve[1].Bid - curve[0].Bid
	tested := 0
	for i := 1; i < len(curve)-1; i++ {
		if curve[i-1].Probability >= curve[i].Probability || curve[i].Probability >= curve[i+1].Probability {
			continue
		}
		bid := curve[i].Bid
		back := BidForTargetProbability(curve, ProbabilityForBid(curve, bid))
		assert.InDelta(t, bid, back, step+1e-9, "curve point %d", i)
		tested++
	}
	assert.Greater(t, tested, 0, "curve should have strictly increasing stretches")
}

func TestEmptyCurveLookups(t *testing.T) {
	assert.Equal(t, 0.0, ProbabilityForBid(nil, 100))
	assert.Equal(t, 0.0, BidForTargetProbability(nil, 50))
}
