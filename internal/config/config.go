// Package config provides configuration management for the course bid
// forecaster.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Forecast ForecastConfig `mapstructure:"forecast" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ForecastConfig holds every engine tunable. It is passed explicitly into
// component constructors; nothing in the engine reads package-level state.
type ForecastConfig struct {
	// Time weighting
	DecayRate     float64 `mapstructure:"decay_rate" validate:"gte=0"`
	InflationRate float64 `mapstructure:"inflation_rate" validate:"gte=0"`

	// Trend detection
	PValueThreshold       float64 `mapstructure:"p_value_threshold" validate:"gt=0,lte=1"`
	SlopeSignificanceBand float64 `mapstructure:"slope_significance_band" validate:"gte=0"`
	TrendStrengthScale    float64 `mapstructure:"trend_strength_scale" validate:"gt=0"`
	MinTrendPoints        int     `mapstructure:"min_trend_points" validate:"gte=3"`

	// Price adjustments
	RatingImpactScale      float64 `mapstructure:"rating_impact_scale" validate:"gte=0"`
	RatingMidpoint         float64 `mapstructure:"rating_midpoint" validate:"gt=0"`
	RatingSpread           float64 `mapstructure:"rating_spread" validate:"gt=0"`
	DemandSigmoidCenter    float64 `mapstructure:"demand_sigmoid_center" validate:"gt=0"`
	DemandSigmoidSteepness float64 `mapstructure:"demand_sigmoid_steepness" validate:"gt=0"`
	DemandMultiplierSpread float64 `mapstructure:"demand_multiplier_spread" validate:"gte=0"`

	TimeSlots TimeSlotConfig `mapstructure:"time_slots"`

	SecondaryCampus           string  `mapstructure:"secondary_campus"`
	SecondaryCampusMultiplier float64 `mapstructure:"secondary_campus_multiplier" validate:"gt=0"`

	// Bid recommendation
	BaseMargin               float64 `mapstructure:"base_margin" validate:"gte=0"`
	MinMargin                float64 `mapstructure:"min_margin" validate:"gte=0"`
	MaxMargin                float64 `mapstructure:"max_margin" validate:"gte=0"`
	ShortfallPenalty         float64 `mapstructure:"shortfall_penalty" validate:"gte=0"`
	VolatilityMarginFraction float64 `mapstructure:"volatility_margin_fraction" validate:"gte=0"`

	// Confidence tiers (observation-count step function)
	HighConfidenceCount   int `mapstructure:"high_confidence_count" validate:"gt=0"`
	MediumConfidenceCount int `mapstructure:"medium_confidence_count" validate:"gt=0"`
	LowConfidenceCount    int `mapstructure:"low_confidence_count" validate:"gt=0"`

	// Cross-phase estimation: default per-phase price levels relative to
	// phase 1; the default ratio between two phases is the quotient of
	// their levels. MinRatioTerms co-occurring terms are required before a
	// data-driven ratio is trusted over the default.
	PhaseLevels   PhaseLevelConfig `mapstructure:"phase_levels"`
	MinRatioTerms int              `mapstructure:"min_ratio_terms" validate:"gte=2"`

	// Win-probability curve
	CurvePoints         int     `mapstructure:"curve_points" validate:"gt=1"`
	CurveSpan           float64 `mapstructure:"curve_span" validate:"gt=0,lt=1"`
	CurveShrinkCount    int     `mapstructure:"curve_shrink_count" validate:"gt=0"`
	CurveEmpiricalCount int     `mapstructure:"curve_empirical_count" validate:"gt=0"`
	CurveHalfCreditBand float64 `mapstructure:"curve_half_credit_band" validate:"gte=0"`
}

// TimeSlotConfig maps meeting start-hour buckets to price multipliers.
type TimeSlotConfig struct {
	EarlyMorning float64 `mapstructure:"early_morning" validate:"gt=0"`
	Morning      float64 `mapstructure:"morning" validate:"gt=0"`
	Afternoon    float64 `mapstructure:"afternoon" validate:"gt=0"`
	Evening      float64 `mapstructure:"evening" validate:"gt=0"`
}

// PhaseLevelConfig holds default per-phase price levels relative to phase 1.
type PhaseLevelConfig struct {
	Phase1 float64 `mapstructure:"phase_1" validate:"gt=0"`
	Phase2 float64 `mapstructure:"phase_2" validate:"gt=0"`
	Phase3 float64 `mapstructure:"phase_3" validate:"gt=0"`
	Phase4 float64 `mapstructure:"phase_4" validate:"gt=0"`
}

// CacheConfig controls the in-memory forecast cache.
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DefaultForecastConfig returns the tuned engine constants.
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		DecayRate:     0.35,
		InflationRate: 0.03,

		PValueThreshold:       0.10,
		SlopeSignificanceBand: 0.05,
		TrendStrengthScale:    0.5,
		MinTrendPoints:        3,

		RatingImpactScale:      0.25,
		RatingMidpoint:         5.0,
		RatingSpread:           1.5,
		DemandSigmoidCenter:    2.0,
		DemandSigmoidSteepness: 1.5,
		DemandMultiplierSpread: 0.20,

		TimeSlots: TimeSlotConfig{
			EarlyMorning: 0.90,
			Morning:      1.05,
			Afternoon:    1.02,
			Evening:      0.95,
		},

		SecondaryCampus:           "chicago",
		SecondaryCampusMultiplier: 0.95,

		BaseMargin:               0.10,
		MinMargin:                0.10,
		MaxMargin:                0.50,
		ShortfallPenalty:         0.15,
		VolatilityMarginFraction: 0.25,

		HighConfidenceCount:   10,
		MediumConfidenceCount: 5,
		LowConfidenceCount:    1,

		PhaseLevels: PhaseLevelConfig{
			Phase1: 1.00,
			Phase2: 0.65,
			Phase3: 0.40,
			Phase4: 0.25,
		},
		MinRatioTerms: 2,

		CurvePoints:         40,
		CurveSpan:           0.5,
		CurveShrinkCount:    10,
		CurveEmpiricalCount: 6,
		CurveHalfCreditBand: 0.05,
	}
}
