package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

func TestWeightDecaysWithAge(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	model := NewTimeWeightModel(cfg)
	current := models.Term{Season: models.SeasonFall, Year: 2024}

	sameTerm := model.Weight(current, current)
	oneYear := model.Weight(models.Term{Season: models.SeasonFall, Year: 2023}, current)
	threeYears := model.Weight(models.Term{Season: models.SeasonFall, Year: 2021}, current)

	assert.InDelta(t, 1.0, sameTerm, 1e-9)
	assert.InDelta(t, math.Exp(-cfg.DecayRate), oneYear, 1e-9)
	assert.InDelta(t, math.Exp(-3*cfg.DecayRate), threeYears, 1e-9)
	assert.Greater(t, oneYear, threeYears)
}

func TestWeightQuarterResolution(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	model := NewTimeWeightModel(cfg)
	current := models.Term{Season: models.SeasonFall, Year: 2024}
	summer := models.Term{Season: models.SeasonSummer, Year: 2024}

	// One term back is a quarter of a year.
	assert.InDelta(t, math.Exp(-cfg.DecayRate*0.25), model.Weight(summer, current), 1e-9)
}

func TestInflationFactor(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	model := NewTimeWeightModel(cfg)
	current := models.Term{Season: models.SeasonFall, Year: 2024}
	twoYearsAgo := models.Term{Season: models.SeasonFall, Year: 2022}

	expected := math.Pow(1.0+cfg.InflationRate, 2.0)
	assert.InDelta(t, expected, model.InflationFactor(twoYearsAgo, current), 1e-9)
	assert.InDelta(t, 1.0, model.InflationFactor(current, current), 1e-9)
}

func TestFutureTermClampsToNeutral(t *testing.T) {
	model := NewTimeWeightModel(config.DefaultForecastConfig())
	current := models.Term{Season: models.SeasonFall, Year: 2024}
	future := models.Term{Season: models.SeasonFall, Year: 2025}

	assert.InDelta(t, 1.0, model.Weight(future, current), 1e-9)
	assert.InDelta(t, 1.0, model.InflationFactor(future, current), 1e-9)
}

func TestUnparsedTermIsEffectivelyWeightless(t *testing.T) {
	cfg := config.DefaultForecastConfig()
	model := NewTimeWeightModel(cfg)
	current := models.Term{Season: models.SeasonFall, Year: 2024}

	weight := model.Weight(models.Term{}, current)
	assert.Less(t, weight, model.Weight(models.Term{Season: models.SeasonFall, Year: 2015}, current))
	assert.Greater(t, weight, 0.0)

	// The inflation multiplier stays bounded rather than exploding over a
	// two-thousand-year gap.
	assert.Less(t, model.InflationFactor(models.Term{}, current), math.Pow(1.0+cfg.InflationRate, 25))
}
