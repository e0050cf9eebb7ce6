// Package logger provides forecast-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ForecastLogger provides dedicated logging for forecast computations.
type ForecastLogger struct {
	*logrus.Entry
}

// NewForecastLogger creates a new forecast logger.
func NewForecastLogger(baseLogger *logrus.Logger) *ForecastLogger {
	return &ForecastLogger{
		Entry: baseLogger.WithField("component", "forecast"),
	}
}

// LogPhaseForecast logs the outcome of one phase's computation.
func (fl *ForecastLogger) LogPhaseForecast(courseID string, phase int, observations int, expectedPrice float64, confidence, trend string, derived bool) {
	fl.WithFields(logrus.Fields{
		"course_id":      courseID,
		"phase":          phase,
		"observations":   observations,
		"expected_price": expectedPrice,
		"confidence":     confidence,
		"trend":          trend,
		"derived":        derived,
	}).Info("Phase forecast computed")
}

// LogForecastComplete logs a finished four-phase forecast.
func (fl *ForecastLogger) LogForecastComplete(courseID, courseName string, observations int, durationMs float64) {
	fl.WithFields(logrus.Fields{
		"course_id":    courseID,
		"course_name":  courseName,
		"observations": observations,
		"duration_ms":  durationMs,
	}).Info("Forecast complete")
}

// LogDerivedPhase logs a cross-phase estimation decision.
func (fl *ForecastLogger) LogDerivedPhase(courseID string, targetPhase, basePhase int, ratio float64, dataDriven bool) {
	fl.WithFields(logrus.Fields{
		"course_id":    courseID,
		"target_phase": targetPhase,
		"base_phase":   basePhase,
		"ratio":        ratio,
		"data_driven":  dataDriven,
	}).Debug("Derived phase from sibling")
}
