package analysis

import (
	"sort"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// Ranker selects the top gainers of a snapshot: strictly positive price
// change, descending, ties keeping their snapshot order.
type Ranker struct{}

// TopGainers never fails: a non-positive limit or a set with no gainers
// yields an empty slice. NaN change percentages are not > 0 and are excluded.
func (Ranker) TopGainers(set []market.EnrichedTicker, limit int) []market.EnrichedTicker {
	if limit <= 0 {
		return nil
	}

	gainers := make([]market.EnrichedTicker, 0, len(set))
	for _, et := range set {
		if et.PriceChangePercent > 0 {
			gainers = append(gainers, et)
		}
	}

	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].PriceChangePercent > gainers[j].PriceChangePercent
	})

	if len(gainers) > limit {
		gainers = gainers[:limit]
	}
	return gainers
}
