package engine

import "math"

// Tuning constants for the component curves.
const (
	importanceExponent = 1.8
	effortDecayRate    = 18.0
	effortFloor        = 5.0
)

// urgencyScore maps days-until-due to 0..100. Overdue tasks saturate at
// 100 within three days. Past a week the score follows a hyperbolic
// decay that clamps to 100 through day 10; the jump between day 7 and
// day 8 is part of the curve, not smoothed.
func urgencyScore(daysUntilDue int) float64 {
	days := float64(daysUntilDue)
	switch {
	case daysUntilDue < 0:
		return math.Min(100, 95+(-days)*2)
	case daysUntilDue == 0:
		return 95
	case daysUntilDue <= 7:
		return 90 - days*3
	default:
		return clamp(35/(1+(days-30)/30), 0, 100)
	}
}

// importanceScore maps importance 1..10 onto a convex 0..100 curve so
// the gap between 8 and 10 outweighs the gap between 1 and 3.
func importanceScore(importance int) float64 {
	score := math.Pow(float64(importance), importanceExponent) / math.Pow(10, importanceExponent) * 100
	return clamp(score, 0, 100)
}

// effortScore rewards small estimates. Each tier interpolates linearly
// between its boundary scores; past 16 hours the score decays
// logarithmically to a floor of 5.
func effortScore(hours float64) float64 {
	switch {
	case hours <= 1:
		return 100 - hours*10
	case hours <= 4:
		return 90 - (hours-1)*20/3
	case hours <= 8:
		return 70 - (hours-4)*5
	case hours <= 16:
		return 50 - (hours-8)*2.5
	default:
		return math.Max(effortFloor, 30-effortDecayRate*math.Log(hours/16))
	}
}

// dependencyScore rises with the number of direct dependents, with
// diminishing increments, and clamps at 100 from four dependents on.
func dependencyScore(blockedCount int) float64 {
	k := float64(blockedCount)
	return clamp(20+k*25-math.Pow(k, 1.5), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
