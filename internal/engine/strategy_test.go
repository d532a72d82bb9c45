package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "empty resolves to default", input: "", want: StrategySmartBalance},
		{name: "smart balance", input: "smart_balance", want: StrategySmartBalance},
		{name: "fastest wins", input: "fastest_wins", want: StrategyFastestWins},
		{name: "high impact", input: "high_impact", want: StrategyHighImpact},
		{name: "deadline driven", input: "deadline_driven", want: StrategyDeadlineDriven},
		{name: "unknown name", input: "balanced", wantErr: true},
		{name: "case sensitive", input: "Smart_Balance", wantErr: true},
		{name: "whitespace not trimmed", input: " smart_balance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownStrategy)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategyWeightsSumToOne(t *testing.T) {
	for _, s := range Strategies() {
		w := s.Weights()
		sum := w.Urgency + w.Importance + w.Effort + w.Dependency
		assert.InDelta(t, 1.0, sum, 1e-9, "strategy %s", s)
	}
}

func TestStrategyWeights(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     Weights
	}{
		{StrategySmartBalance, Weights{Urgency: 0.35, Importance: 0.35, Effort: 0.15, Dependency: 0.15}},
		{StrategyFastestWins, Weights{Urgency: 0.20, Importance: 0.20, Effort: 0.50, Dependency: 0.10}},
		{StrategyHighImpact, Weights{Urgency: 0.15, Importance: 0.60, Effort: 0.05, Dependency: 0.20}},
		{StrategyDeadlineDriven, Weights{Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependency: 0.15}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.strategy.Weights(), "strategy %s", tt.strategy)
	}
}

func TestStrategies_DefaultFirst(t *testing.T) {
	all := Strategies()
	require.Len(t, all, 4)
	assert.Equal(t, DefaultStrategy, all[0])

	seen := make(map[Strategy]bool)
	for _, s := range all {
		assert.True(t, s.IsValid())
		assert.False(t, seen[s], "strategy %s listed twice", s)
		seen[s] = true
	}
}

func TestStrategyIsValid(t *testing.T) {
	assert.True(t, StrategySmartBalance.IsValid())
	assert.False(t, Strategy("made_up").IsValid())
	assert.False(t, Strategy("").IsValid())
}
