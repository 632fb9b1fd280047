package analysis

import "github.com/BayhanR/aegis-crypto-engine/internal/market"

// DiffEngine reports signal-state transitions between consecutive snapshots.
// It is pure with respect to its two inputs; the retained previous set is
// owned and swapped by the Pipeline, never mutated here.
type DiffEngine struct{}

// Diff returns, in curr order, every non-neutral entry of curr whose symbol
// either was not signaling in prev or was signaling a different type.
//
// An empty prev means no prior snapshot, so every non-neutral entry is new by
// policy: first observation is always reported. A symbol transitioning to
// NEUTRAL is never reported, and a symbol that vanished from curr produces
// nothing.
func (DiffEngine) Diff(prev, curr []market.EnrichedTicker) []market.EnrichedTicker {
	prevSignals := make(map[string]market.SignalType, len(prev))
	for _, et := range prev {
		if et.Signal.Type != market.SignalNeutral {
			prevSignals[et.Symbol] = et.Signal.Type
		}
	}

	var fresh []market.EnrichedTicker
	for _, et := range curr {
		if et.Signal.Type == market.SignalNeutral {
			continue
		}
		if prevType, ok := prevSignals[et.Symbol]; !ok || prevType != et.Signal.Type {
			fresh = append(fresh, et)
		}
	}
	return fresh
}
