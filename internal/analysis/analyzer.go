package analysis

import (
	"strings"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// TickerAnalyzer turns one RawTicker into an EnrichedTicker: parses every
// numeric field (failure degrades to NaN), derives the base asset, and runs
// both classifiers. No I/O and no shared state, so records may be analyzed
// independently.
type TickerAnalyzer struct {
	scorer     VolatilityScorer
	classifier SignalClassifier
	quoteAsset string
}

func NewTickerAnalyzer(t Thresholds, quoteAsset string) TickerAnalyzer {
	return TickerAnalyzer{
		scorer:     NewVolatilityScorer(t),
		classifier: NewSignalClassifier(t),
		quoteAsset: strings.ToUpper(strings.TrimSpace(quoteAsset)),
	}
}

func (a TickerAnalyzer) Analyze(raw market.RawTicker) market.EnrichedTicker {
	changePct := market.ParseFloat(raw.PriceChangePercent)
	quoteVolume := market.ParseFloat(raw.QuoteVolume)

	return market.EnrichedTicker{
		Symbol:             raw.Symbol,
		BaseAsset:          a.baseAsset(raw.Symbol),
		LastPrice:          market.Float(market.ParseFloat(raw.LastPrice)),
		PriceChange:        market.Float(market.ParseFloat(raw.PriceChange)),
		PriceChangePercent: market.Float(changePct),
		Volume:             market.Float(market.ParseFloat(raw.Volume)),
		QuoteVolume:        market.Float(quoteVolume),
		HighPrice:          market.Float(market.ParseFloat(raw.HighPrice)),
		LowPrice:           market.Float(market.ParseFloat(raw.LowPrice)),
		Volatility:         a.scorer.Score(changePct),
		Signal:             a.classifier.Classify(changePct, quoteVolume),
		Raw:                raw,
	}
}

// baseAsset strips the quote-asset suffix from a symbol ("BTCUSDT" -> "BTC").
// A symbol without the suffix is returned unchanged.
func (a TickerAnalyzer) baseAsset(symbol string) string {
	if a.quoteAsset != "" && len(symbol) > len(a.quoteAsset) && strings.HasSuffix(symbol, a.quoteAsset) {
		return strings.TrimSuffix(symbol, a.quoteAsset)
	}
	return symbol
}
