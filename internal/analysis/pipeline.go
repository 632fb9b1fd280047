package analysis

import (
	"fmt"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// Result carries the three products of one processed snapshot.
type Result struct {
	// Analyzed is the full enriched set, in snapshot order.
	Analyzed []market.EnrichedTicker `json:"analyzed"`
	// TopGainers is the ranked positive movers (possibly empty).
	TopGainers []market.EnrichedTicker `json:"topGainers"`
	// NewSignals are the entries whose signal state changed since the
	// previous snapshot (possibly empty).
	NewSignals []market.EnrichedTicker `json:"newSignals"`
}

// Pipeline drives the per-ticker analysis over a snapshot and owns the single
// piece of retained state: the enriched set of the most recent snapshot.
//
// Process is not safe for concurrent use. It reads the previous set for the
// diff and swaps in the new set at the end, so callers must serialize
// invocations; the engine's pump goroutine is the sole caller in this
// program. No locks are held inside.
type Pipeline struct {
	analyzer  TickerAnalyzer
	ranker    Ranker
	diff      DiffEngine
	rankLimit int

	prev []market.EnrichedTicker
}

func NewPipeline(t Thresholds, quoteAsset string, rankLimit int) (*Pipeline, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	if rankLimit < 0 {
		return nil, fmt.Errorf("rank limit must be >= 0, got %d", rankLimit)
	}
	return &Pipeline{
		analyzer:  NewTickerAnalyzer(t, quoteAsset),
		rankLimit: rankLimit,
	}, nil
}

// Process analyzes one snapshot and returns all three products. An empty
// snapshot is valid and yields empty products. A record whose fields fail to
// parse degrades to NaN/NEUTRAL on its own; it never aborts the batch.
func (p *Pipeline) Process(snap market.Snapshot) Result {
	curr := make([]market.EnrichedTicker, 0, len(snap.Tickers))
	for _, raw := range snap.Tickers {
		curr = append(curr, p.analyzer.Analyze(raw))
	}

	// Diff against the previous set before it is replaced.
	newSignals := p.diff.Diff(p.prev, curr)
	topGainers := p.ranker.TopGainers(curr, p.rankLimit)

	// Single atomic swap of the retained state; the old set is superseded
	// wholesale, never partially updated.
	p.prev = curr

	return Result{
		Analyzed:   curr,
		TopGainers: topGainers,
		NewSignals: newSignals,
	}
}
