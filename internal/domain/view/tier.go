package view

import "math"

// Tier is the color band a score falls in.
type Tier string

const (
	TierGood    Tier = "good"
	TierWarning Tier = "warning"
	TierBad     Tier = "bad"
)

// Tier boundaries, inclusive on the high side.
const (
	GoodThreshold    = 0.8
	WarningThreshold = 0.6
)

var tierColors = map[Tier]string{
	TierGood:    "#28a745",
	TierWarning: "#ffc107",
	TierBad:     "#dc3545",
}

// TierFor maps a score in [0,1] to its tier.
func TierFor(v float64) Tier {
	switch {
	case v >= GoodThreshold:
		return TierGood
	case v >= WarningThreshold:
		return TierWarning
	default:
		return TierBad
	}
}

// Color returns the display color of the tier.
func (t Tier) Color() string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return tierColors[TierBad]
}

// Class returns the CSS class carrying the tier.
func (t Tier) Class() string { return "tier-" + string(t) }

// Percentage is round(100*x/max(1,total)) clamped to [0,100].
// A zero total yields 0 for every x.
func Percentage(x, total int) int {
	if total < 1 {
		return 0
	}
	p := int(math.Round(100 * float64(x) / float64(total)))
	return clampPercent(p)
}

// ScorePercent converts a score in [0,1] to a whole percentage in [0,100].
func ScorePercent(v float64) int {
	return clampPercent(int(math.Round(v * 100)))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
