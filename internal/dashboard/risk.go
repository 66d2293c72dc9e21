package dashboard

import "math"

// Risk is the profile badge derived from a strategy's maximum drawdown.
type Risk string

const (
	RiskConservative Risk = "Conservative"
	RiskBalanced     Risk = "Balanced"
	RiskAggressive   Risk = "Aggressive"
)

// ClassifyRisk buckets a drawdown by magnitude: below 20 is conservative,
// below 50 balanced, anything else (NaN included) aggressive.
func ClassifyRisk(drawdown float64) Risk {
	dd := math.Abs(drawdown)
	switch {
	case dd < 20:
		return RiskConservative
	case dd < 50:
		return RiskBalanced
	default:
		return RiskAggressive
	}
}

// Class is the CSS modifier used for the badge.
func (r Risk) Class() string {
	switch r {
	case RiskConservative:
		return "conservative"
	case RiskBalanced:
		return "balanced"
	default:
		return "aggressive"
	}
}
