package engine

import (
	"errors"
	"fmt"
)

// Strategy selects the weighting profile applied to component scores.
type Strategy string

const (
	// StrategySmartBalance weighs urgency and importance evenly with a
	// modest effort and dependency contribution. It is the default.
	StrategySmartBalance Strategy = "smart_balance"
	// StrategyFastestWins favors low-effort tasks for quick momentum.
	StrategyFastestWins Strategy = "fastest_wins"
	// StrategyHighImpact favors importance above everything else.
	StrategyHighImpact Strategy = "high_impact"
	// StrategyDeadlineDriven favors urgency above everything else.
	StrategyDeadlineDriven Strategy = "deadline_driven"
)

// DefaultStrategy applies when a request omits the strategy field.
const DefaultStrategy = StrategySmartBalance

// ErrUnknownStrategy indicates a strategy name outside the fixed set.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Weights is the weighting profile of a strategy. The four weights of
// every profile sum to 1.
type Weights struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// strategyWeights is the fixed strategy registry. It is constructed once
// and never mutated.
var strategyWeights = map[Strategy]Weights{
	StrategySmartBalance:   {Urgency: 0.35, Importance: 0.35, Effort: 0.15, Dependency: 0.15},
	StrategyFastestWins:    {Urgency: 0.20, Importance: 0.20, Effort: 0.50, Dependency: 0.10},
	StrategyHighImpact:     {Urgency: 0.15, Importance: 0.60, Effort: 0.05, Dependency: 0.20},
	StrategyDeadlineDriven: {Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependency: 0.15},
}

// ParseStrategy resolves a strategy name. The empty string resolves to
// DefaultStrategy; any other unrecognized name is an error, never a
// silent fallback.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return DefaultStrategy, nil
	}
	s := Strategy(name)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// IsValid reports whether the strategy is one of the fixed profiles.
func (s Strategy) IsValid() bool {
	_, ok := strategyWeights[s]
	return ok
}

// Weights returns the weighting profile for the strategy.
func (s Strategy) Weights() Weights {
	return strategyWeights[s]
}

func (s Strategy) String() string {
	return string(s)
}

// Strategies returns all strategies in display order, default first.
func Strategies() []Strategy {
	return []Strategy{
		StrategySmartBalance,
		StrategyFastestWins,
		StrategyHighImpact,
		StrategyDeadlineDriven,
	}
}
