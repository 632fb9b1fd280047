package analysis

import "errors"

// Thresholds are the classification constants. They are read-only to the
// analysis core and supplied at construction so boundary values can be tested
// without code changes.
type Thresholds struct {
	// Volatility bands: |changePct| >= High is the high band, >= Medium the
	// medium band, else low. FullScale is the |changePct| at which the high
	// band saturates at score 100.
	VolatilityMediumPct    float64 `yaml:"volatility_medium_pct" envconfig:"AEGIS_VOLATILITY_MEDIUM_PCT"`
	VolatilityHighPct      float64 `yaml:"volatility_high_pct" envconfig:"AEGIS_VOLATILITY_HIGH_PCT"`
	VolatilityFullScalePct float64 `yaml:"volatility_full_scale_pct" envconfig:"AEGIS_VOLATILITY_FULL_SCALE_PCT"`

	// Whale rule: changePct > WhaleChangePct AND quoteVolume > WhaleQuoteVolume,
	// both strict. Panic rule: changePct < PanicChangePct, strict.
	WhaleChangePct   float64 `yaml:"whale_change_pct" envconfig:"AEGIS_WHALE_CHANGE_PCT"`
	WhaleQuoteVolume float64 `yaml:"whale_quote_volume" envconfig:"AEGIS_WHALE_QUOTE_VOLUME"`
	PanicChangePct   float64 `yaml:"panic_change_pct" envconfig:"AEGIS_PANIC_CHANGE_PCT"`
}

// DefaultThresholds reproduces the canonical rules: medium at 2%, high at 5%,
// saturation at 10%, whale above +3% on >1M quote volume, panic below -3%.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VolatilityMediumPct:    2.0,
		VolatilityHighPct:      5.0,
		VolatilityFullScalePct: 10.0,
		WhaleChangePct:         3.0,
		WhaleQuoteVolume:       1_000_000,
		PanicChangePct:         -3.0,
	}
}

// Validate rejects misconfiguration at construction time; Process never sees
// an invalid Thresholds value.
func (t Thresholds) Validate() error {
	if t.VolatilityMediumPct <= 0 {
		return errors.New("volatility_medium_pct must be > 0")
	}
	if t.VolatilityHighPct <= t.VolatilityMediumPct {
		return errors.New("volatility_high_pct must be > volatility_medium_pct")
	}
	if t.VolatilityFullScalePct < t.VolatilityHighPct {
		return errors.New("volatility_full_scale_pct must be >= volatility_high_pct")
	}
	if t.WhaleQuoteVolume <= 0 {
		return errors.New("whale_quote_volume must be > 0")
	}
	if t.PanicChangePct >= 0 {
		return errors.New("panic_change_pct must be negative")
	}
	return nil
}
