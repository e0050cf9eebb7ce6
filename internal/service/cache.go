// Package service exposes the forecasting engine behind a cached,
// application-facing API.
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/mwu243/kellogg-course-biddier/internal/metrics"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
)

// ForecastCache provides in-memory caching for completed forecasts keyed by
// a fingerprint of the full course context. Identical inputs always produce
// identical forecasts, so a fingerprint hit can skip the engine entirely.
type ForecastCache struct {
	cache      *cache.Cache
	ttl        time.Duration
	maxEntries int
	mu         sync.Mutex
	hitCount   uint64
	missCount  uint64
}

// NewForecastCache creates a forecast cache with the given entry lifetime
// and soft size cap.
func NewForecastCache(ttl time.Duration, maxEntries int) *ForecastCache {
	return &ForecastCache{
		cache:      cache.New(ttl, ttl*2),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// ContextFingerprint hashes every forecast-relevant field of the context. Two
// contexts with the same fingerprint are interchangeable inputs.
func ContextFingerprint(ctx *models.CourseContext) string {
	payload, err := json.Marshal(ctx)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached forecast by fingerprint, or nil on a miss.
func (fc *ForecastCache) Get(fingerprint string) *models.CompleteForecast {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if cached, found := fc.cache.Get(fingerprint); found {
		if forecast, ok := cached.(*models.CompleteForecast); ok {
			fc.hitCount++
			metrics.RecordCacheHit()
			return forecast
		}
	}

	fc.missCount++
	metrics.RecordCacheMiss()
	return nil
}

// Set stores a forecast under its context fingerprint.
func (fc *ForecastCache) Set(fingerprint string, forecast *models.CompleteForecast) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.cache.ItemCount() >= fc.maxEntries {
		fc.cache.DeleteExpired()
	}
	fc.cache.Set(fingerprint, forecast, fc.ttl)
}

// Clear flushes the cache and resets the counters.
func (fc *ForecastCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.Flush()
	fc.hitCount = 0
	fc.missCount = 0
}

// Stats returns hit and miss counts and the hit ratio.
func (fc *ForecastCache) Stats() (hits, misses uint64, ratio float64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	hits = fc.hitCount
	misses = fc.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of cached forecasts.
func (fc *ForecastCache) ItemCount() int {
	return fc.cache.ItemCount()
}
