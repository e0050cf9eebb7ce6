package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	tests := []struct {
		tag      string
		expected Phase
		ok       bool
	}{
		{"1", Phase1, true},
		{"Phase 2", Phase2, true},
		{"phase3", Phase3, true},
		{"4", Phase4, true},
		{"Add/Drop", Phase4, true},
		{"add-drop", Phase4, true},
		{" 2 ", Phase2, true},
		{"5", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		phase, ok := ParsePhase(tt.tag)
		assert.Equal(t, tt.ok, ok, "tag %q", tt.tag)
		assert.Equal(t, tt.expected, phase, "tag %q", tt.tag)
	}
}

func TestObservationsForPhase(t *testing.T) {
	ctx := &CourseContext{
		Observations: []HistoricalObservation{
			{Phase: Phase1, ClearingPrice: 100},
			{Phase: Phase2, ClearingPrice: 80},
			{Phase: Phase1, ClearingPrice: 120},
		},
	}

	phase1 := ctx.ObservationsForPhase(Phase1)
	require.Len(t, phase1, 2)
	assert.Equal(t, 100.0, phase1[0].ClearingPrice)
	assert.Equal(t, 120.0, phase1[1].ClearingPrice)

	assert.Empty(t, ctx.ObservationsForPhase(Phase3))
}

func TestRating(t *testing.T) {
	ctx := &CourseContext{}
	assert.Equal(t, 0.0, ctx.Rating())

	ctx.Signal = &ProfessorSignal{Rating: 5.5}
	assert.Equal(t, 5.5, ctx.Rating())
}

func TestValidateRejectsNegativePrice(t *testing.T) {
	ctx := &CourseContext{
		Observations: []HistoricalObservation{
			{Phase: Phase1, ClearingPrice: -10},
		},
	}
	err := ctx.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContext)
	assert.Contains(t, err.Error(), "negative_price")
}

func TestValidateRejectsOutOfRangeRating(t *testing.T) {
	ctx := &CourseContext{
		Signal: &ProfessorSignal{Rating: 9},
	}
	err := ctx.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestValidateAcceptsEmptyContext(t *testing.T) {
	ctx := &CourseContext{}
	assert.NoError(t, ctx.Validate())
}

func TestConfidenceDegrade(t *testing.T) {
	assert.Equal(t, ConfidenceMedium, ConfidenceHigh.Degrade())
	assert.Equal(t, ConfidenceLow, ConfidenceMedium.Degrade())
	assert.Equal(t, ConfidenceInsufficient, ConfidenceLow.Degrade())
	assert.Equal(t, ConfidenceInsufficient, ConfidenceInsufficient.Degrade())
}
