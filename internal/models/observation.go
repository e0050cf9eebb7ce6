package models

import (
	"strings"

	"github.com/google/uuid"
)

// Phase identifies a bidding round within a term. Phases 1 and 2 are the
// primary rounds and normally hold most of the history; phases 3 and 4 are
// late rounds that are often sparse and get derived from a sibling phase.
type Phase int

const (
	Phase1 Phase = 1
	Phase2 Phase = 2
	Phase3 Phase = 3
	Phase4 Phase = 4
)

// AllPhases lists every phase a CompleteForecast covers, in order.
var AllPhases = []Phase{Phase1, Phase2, Phase3, Phase4}

// DirectPhases are the rounds rich enough in data to serve as the base for
// cross-phase estimation.
var DirectPhases = []Phase{Phase1, Phase2}

// ParsePhase maps a raw phase tag to a Phase. Add/drop-style catch-all tags
// map to Phase 4. Unrecognized tags return (0, false).
func ParsePhase(tag string) (Phase, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "1", "phase 1", "phase1":
		return Phase1, true
	case "2", "phase 2", "phase2":
		return Phase2, true
	case "3", "phase 3", "phase3":
		return Phase3, true
	case "4", "phase 4", "phase4", "add/drop", "add-drop", "adddrop":
		return Phase4, true
	}
	return 0, false
}

// HistoricalObservation is one clearing event supplied by the ingestion
// layer. Observations are never mutated by the engine.
type HistoricalObservation struct {
	Term           Term    `json:"term"`
	Phase          Phase   `json:"phase" validate:"required,min=1,max=4"`
	ClearingPrice  float64 `json:"clearing_price" validate:"gte=0"`
	SeatsAvailable int     `json:"seats_available" validate:"gte=0"`
	BidsPlaced     int     `json:"bids_placed" validate:"gte=0"`
}

// ProfessorSignal carries an optional 1-6 instructor rating.
type ProfessorSignal struct {
	Rating float64 `json:"rating" validate:"gte=1,lte=6"`
}

// CourseContext aggregates everything the engine needs for one forecast.
// Course and professor identifiers are opaque pass-through values. The
// context has no lifecycle beyond the call that consumes it.
type CourseContext struct {
	ID           uuid.UUID               `json:"id"`
	CourseName   string                  `json:"course_name"`
	Professor    string                  `json:"professor"`
	Observations []HistoricalObservation `json:"observations" validate:"dive"`
	Signal       *ProfessorSignal        `json:"professor_signal,omitempty"`
	MeetingTime  string                  `json:"meeting_time,omitempty"`
	Campus       string                  `json:"campus,omitempty"`
	CurrentTerm  Term                    `json:"current_term"`
}

// ObservationsForPhase filters the context's history down to one phase.
func (c *CourseContext) ObservationsForPhase(phase Phase) []HistoricalObservation {
	var filtered []HistoricalObservation
	for _, obs := range c.Observations {
		if obs.Phase == phase {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}

// Rating returns the professor rating or 0 when no signal was supplied.
func (c *CourseContext) Rating() float64 {
	if c.Signal == nil {
		return 0
	}
	return c.Signal.Rating
}
