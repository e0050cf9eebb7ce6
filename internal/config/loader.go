package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with the documented forecaster
// defaults filled in for anything the file or environment leaves unset. A
// missing config file is not an error; defaults and environment variables
// apply alone.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("COURSE_BIDDER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "course-bidder")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.max_entries", 512)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	fc := DefaultForecastConfig()
	v.SetDefault("forecast.decay_rate", fc.DecayRate)
	v.SetDefault("forecast.inflation_rate", fc.InflationRate)
	v.SetDefault("forecast.p_value_threshold", fc.PValueThreshold)
	v.SetDefault("forecast.slope_significance_band", fc.SlopeSignificanceBand)
	v.SetDefault("forecast.trend_strength_scale", fc.TrendStrengthScale)
	v.SetDefault("forecast.min_trend_points", fc.MinTrendPoints)
	v.SetDefault("forecast.rating_impact_scale", fc.RatingImpactScale)
	v.SetDefault("forecast.rating_midpoint", fc.RatingMidpoint)
	v.SetDefault("forecast.rating_spread", fc.RatingSpread)
	v.SetDefault("forecast.demand_sigmoid_center", fc.DemandSigmoidCenter)
	v.SetDefault("forecast.demand_sigmoid_steepness", fc.DemandSigmoidSteepness)
	v.SetDefault("forecast.demand_multiplier_spread", fc.DemandMultiplierSpread)
	v.SetDefault("forecast.time_slots.early_morning", fc.TimeSlots.EarlyMorning)
	v.SetDefault("forecast.time_slots.morning", fc.TimeSlots.Morning)
	v.SetDefault("forecast.time_slots.afternoon", fc.TimeSlots.Afternoon)
	v.SetDefault("forecast.time_slots.evening", fc.TimeSlots.Evening)
	v.SetDefault("forecast.secondary_campus", fc.SecondaryCampus)
	v.SetDefault("forecast.secondary_campus_multiplier", fc.SecondaryCampusMultiplier)
	v.SetDefault("forecast.base_margin", fc.BaseMargin)
	v.SetDefault("forecast.min_margin", fc.MinMargin)
	v.SetDefault("forecast.max_margin", fc.MaxMargin)
	v.SetDefault("forecast.shortfall_penalty", fc.ShortfallPenalty)
	v.SetDefault("forecast.volatility_margin_fraction", fc.VolatilityMarginFraction)
	v.SetDefault("forecast.high_confidence_count", fc.HighConfidenceCount)
	v.SetDefault("forecast.medium_confidence_count", fc.MediumConfidenceCount)
	v.SetDefault("forecast.low_confidence_count", fc.LowConfidenceCount)
	v.SetDefault("forecast.phase_levels.phase_1", fc.PhaseLevels.Phase1)
	v.SetDefault("forecast.phase_levels.phase_2", fc.PhaseLevels.Phase2)
	v.SetDefault("forecast.phase_levels.phase_3", fc.PhaseLevels.Phase3)
	v.SetDefault("forecast.phase_levels.phase_4", fc.PhaseLevels.Phase4)
	v.SetDefault("forecast.min_ratio_terms", fc.MinRatioTerms)
	v.SetDefault("forecast.curve_points", fc.CurvePoints)
	v.SetDefault("forecast.curve_span", fc.CurveSpan)
	v.SetDefault("forecast.curve_shrink_count", fc.CurveShrinkCount)
	v.SetDefault("forecast.curve_empirical_count", fc.CurveEmpiricalCount)
	v.SetDefault("forecast.curve_half_credit_band", fc.CurveHalfCreditBand)
}
