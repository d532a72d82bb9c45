package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const scoreDelta = 0.01

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name string
		days int
		want float64
	}{
		{name: "overdue one day", days: -1, want: 97},
		{name: "overdue two days", days: -2, want: 99},
		{name: "overdue three days saturates", days: -3, want: 100},
		{name: "overdue one month saturates", days: -30, want: 100},
		{name: "due today", days: 0, want: 95},
		{name: "due tomorrow", days: 1, want: 87},
		{name: "due in three days", days: 3, want: 81},
		{name: "due in a week", days: 7, want: 69},
		{name: "due in eight days clamps high", days: 8, want: 100},
		{name: "due in ten days clamps high", days: 10, want: 100},
		{name: "due in eleven days", days: 11, want: 95.45},
		{name: "due in fifteen days", days: 15, want: 70},
		{name: "due in thirty days", days: 30, want: 35},
		{name: "due in sixty days", days: 60, want: 17.5},
		{name: "due in a year", days: 365, want: 2.88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, urgencyScore(tt.days), scoreDelta)
		})
	}
}

func TestUrgencyScore_WeekBoundaryJump(t *testing.T) {
	// The hand-off from the linear week tier to the hyperbolic tail is
	// deliberately discontinuous.
	assert.InDelta(t, 69.0, urgencyScore(7), scoreDelta)
	assert.InDelta(t, 100.0, urgencyScore(8), scoreDelta)
}

func TestUrgencyScore_DecreasesWithinTiers(t *testing.T) {
	for days := 1; days < 7; days++ {
		assert.Greater(t, urgencyScore(days), urgencyScore(days+1),
			"week tier must fall from day %d to %d", days, days+1)
	}
	for days := 11; days < 120; days++ {
		assert.Greater(t, urgencyScore(days), urgencyScore(days+1),
			"tail must fall from day %d to %d", days, days+1)
	}
}

func TestImportanceScore(t *testing.T) {
	tests := []struct {
		importance int
		want       float64
	}{
		{importance: 1, want: 1.58},
		{importance: 2, want: 5.52},
		{importance: 3, want: 11.45},
		{importance: 4, want: 19.22},
		{importance: 5, want: 28.72},
		{importance: 6, want: 39.87},
		{importance: 7, want: 52.62},
		{importance: 8, want: 66.92},
		{importance: 9, want: 82.72},
		{importance: 10, want: 100},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, importanceScore(tt.importance), scoreDelta,
			"importance %d", tt.importance)
	}
}

func TestImportanceScore_ConvexAndIncreasing(t *testing.T) {
	for i := 1; i < 10; i++ {
		assert.Greater(t, importanceScore(i+1), importanceScore(i))
	}
	// Convexity: the top of the scale is worth more per step than the
	// bottom.
	lowGap := importanceScore(3) - importanceScore(1)
	highGap := importanceScore(10) - importanceScore(8)
	assert.Greater(t, highGap, lowGap)
}

func TestEffortScore(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{name: "half hour", hours: 0.5, want: 95},
		{name: "one hour", hours: 1, want: 90},
		{name: "two hours", hours: 2, want: 83.33},
		{name: "three hours", hours: 3, want: 76.67},
		{name: "four hours", hours: 4, want: 70},
		{name: "five hours", hours: 5, want: 65},
		{name: "one working day", hours: 8, want: 50},
		{name: "twelve hours", hours: 12, want: 40},
		{name: "two working days", hours: 16, want: 30},
		{name: "twenty hours", hours: 20, want: 25.98},
		{name: "one working week", hours: 40, want: 13.51},
		{name: "hundred hours hits floor", hours: 100, want: 5},
		{name: "thousand hours stays at floor", hours: 1000, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, effortScore(tt.hours), scoreDelta)
		})
	}
}

func TestEffortScore_ContinuousAtTierBoundaries(t *testing.T) {
	boundaries := []float64{1, 4, 8, 16}
	for _, h := range boundaries {
		below := effortScore(h)
		above := effortScore(h + 1e-9)
		assert.InDelta(t, below, above, 1e-6, "tier boundary at %gh", h)
	}
}

func TestEffortScore_NonIncreasing(t *testing.T) {
	prev := effortScore(0.1)
	for h := 0.2; h <= 60; h += 0.1 {
		cur := effortScore(h)
		assert.LessOrEqual(t, cur, prev, "effort score rose at %.1fh", h)
		prev = cur
	}
}

func TestDependencyScore(t *testing.T) {
	tests := []struct {
		blocked int
		want    float64
	}{
		{blocked: 0, want: 20},
		{blocked: 1, want: 44},
		{blocked: 2, want: 67.17},
		{blocked: 3, want: 89.80},
		{blocked: 4, want: 100},
		{blocked: 10, want: 100},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, dependencyScore(tt.blocked), scoreDelta,
			"%d dependents", tt.blocked)
	}
}

func TestDependencyScore_DiminishingIncrements(t *testing.T) {
	prev := dependencyScore(1) - dependencyScore(0)
	for k := 1; k < 4; k++ {
		gain := dependencyScore(k+1) - dependencyScore(k)
		assert.Less(t, gain, prev, "increment must shrink at %d dependents", k)
		prev = gain
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-3, 0, 100))
	assert.Equal(t, 100.0, clamp(150, 0, 100))
	assert.Equal(t, 42.5, clamp(42.5, 0, 100))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 69.87, round2(69.8725))
	assert.Equal(t, 61.7, round2(61.7045))
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, 100.0, round2(100))
}
