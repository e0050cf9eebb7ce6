package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/forecast"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// Forecaster runs full course forecasts through the engine, with an optional
// fingerprint cache in front of it.
type Forecaster struct {
	engine *forecast.Engine
	cache  *ForecastCache
	logger *logrus.Logger
}

// NewForecaster creates the application-facing forecasting service. Caching
// is skipped entirely when disabled in configuration.
func NewForecaster(cfg *config.Config, logger *logrus.Logger) *Forecaster {
	f := &Forecaster{
		engine: forecast.NewEngine(cfg.Forecast, logger),
		logger: logger,
	}
	if cfg.Cache.Enabled {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		f.cache = NewForecastCache(ttl, cfg.Cache.MaxEntries)
	}
	return f
}

// Forecast returns the four-phase forecast for one course context, serving
// from cache when an identical context was forecast recently.
func (f *Forecaster) Forecast(ctx *models.CourseContext) (*models.CompleteForecast, error) {
	if f.cache == nil {
		return f.engine.Forecast(ctx)
	}

	fingerprint := ContextFingerprint(ctx)
	if fingerprint != "" {
		if cached := f.cache.Get(fingerprint); cached != nil {
			f.logger.WithFields(logrus.Fields{
				"course": ctx.CourseName,
				"key":    fingerprint[:12],
			}).Debug("Forecast served from cache")
			return cached, nil
		}
	}

	result, err := f.engine.Forecast(ctx)
	if err != nil {
		return nil, err
	}
	if fingerprint != "" {
		f.cache.Set(fingerprint, result)
	}
	return result, nil
}

// ForecastAll forecasts a batch of courses, sharing the cache across them.
// A context that fails validation is logged and skipped rather than aborting
// the rest of the batch.
func (f *Forecaster) ForecastAll(contexts []*models.CourseContext) []*models.CompleteForecast {
	forecasts := make([]*models.CompleteForecast, 0, len(contexts))
	for _, ctx := range contexts {
		result, err := f.Forecast(ctx)
		if err != nil {
			name := ""
			if ctx != nil {
				name = ctx.CourseName
			}
			f.logger.WithError(err).WithField("course", name).Warn("Skipping unforecastable course")
			continue
		}
		forecasts = append(forecasts, result)
	}
	return forecasts
}

// CacheStats exposes the cache counters, or zeros when caching is disabled.
func (f *Forecaster) CacheStats() (hits, misses uint64, ratio float64) {
	if f.cache == nil {
		return 0, 0, 0
	}
	return f.cache.Stats()
}

// ClearCache drops all cached forecasts.
func (f *Forecaster) ClearCache() {
	if f.cache != nil {
		f.cache.Clear()
	}
}
