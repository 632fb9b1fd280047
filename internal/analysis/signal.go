package analysis

import (
	"math"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// Signal messages shown to consumers alongside the classification.
const (
	MsgWhaleActivity = "WHALE ACTIVITY - Strong Buy Signal"
	MsgPanicSell     = "PANIC SELL - Market Downturn"
	MsgNeutral       = "Normal Market Activity"
)

// SignalClassifier derives the discrete market signal for one ticker.
// Rules are evaluated in fixed order, first match wins; all comparisons are
// strict, so sitting exactly on a threshold does not qualify.
type SignalClassifier struct {
	t Thresholds
}

func NewSignalClassifier(t Thresholds) SignalClassifier {
	return SignalClassifier{t: t}
}

// Classify picks exactly one signal per ticker.
//
// NaN inputs must never satisfy a threshold. The guards are explicit rather
// than relying on NaN comparisons evaluating false: a NaN quote volume only
// disqualifies the whale rule, a NaN change percentage disqualifies both.
func (c SignalClassifier) Classify(changePct, quoteVolume float64) market.SignalResult {
	whale := !math.IsNaN(changePct) && !math.IsNaN(quoteVolume) &&
		changePct > c.t.WhaleChangePct && quoteVolume > c.t.WhaleQuoteVolume
	if whale {
		return market.SignalResult{
			Type:     market.SignalWhaleActivity,
			Message:  MsgWhaleActivity,
			Priority: market.PriorityHigh,
		}
	}

	if !math.IsNaN(changePct) && changePct < c.t.PanicChangePct {
		return market.SignalResult{
			Type:     market.SignalPanicSell,
			Message:  MsgPanicSell,
			Priority: market.PriorityHigh,
		}
	}

	return market.SignalResult{
		Type:     market.SignalNeutral,
		Message:  MsgNeutral,
		Priority: market.PriorityLow,
	}
}
