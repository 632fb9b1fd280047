package analysis

import (
	"math"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// VolatilityScorer maps a price-change percentage onto a bounded [0,100]
// score with a band label. Pure; no failure modes.
type VolatilityScorer struct {
	t Thresholds
}

func NewVolatilityScorer(t Thresholds) VolatilityScorer {
	return VolatilityScorer{t: t}
}

// Score classifies changePct by absolute magnitude.
//
// NaN gets an explicit guard: every comparison against NaN is false, so
// without it a NaN input would silently fall into the low band with a NaN
// score that survives the clamp. A malformed field must resolve to exactly
// {0, low}.
func (s VolatilityScorer) Score(changePct float64) market.VolatilityResult {
	abs := math.Abs(changePct)
	if math.IsNaN(abs) {
		return market.VolatilityResult{Score: 0, Level: market.VolatilityLow}
	}

	var raw float64
	var level market.VolatilityLevel
	switch {
	case abs >= s.t.VolatilityHighPct:
		level = market.VolatilityHigh
		raw = math.Round(math.Min(100, abs/s.t.VolatilityFullScalePct*100))
	case abs >= s.t.VolatilityMediumPct:
		level = market.VolatilityMedium
		raw = math.Round(abs / s.t.VolatilityHighPct * 70)
	default:
		level = market.VolatilityLow
		raw = math.Round(abs / s.t.VolatilityMediumPct * 30)
	}

	return market.VolatilityResult{Score: clampScore(raw), Level: level}
}

// clampScore bounds the rounded raw score to [0,100] whatever the formula
// produced.
func clampScore(raw float64) int {
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return int(raw)
}
