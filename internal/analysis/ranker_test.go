package analysis

import (
	"math"
	"testing"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

func mover(symbol string, changePct float64) market.EnrichedTicker {
	return market.EnrichedTicker{Symbol: symbol, PriceChangePercent: market.Float(changePct)}
}

func TestTopGainersFiltersAndSorts(t *testing.T) {
	set := []market.EnrichedTicker{
		mover("A", -1), mover("B", 2.5), mover("C", -0.2), mover("D", 7.1),
		mover("E", -3), mover("F", -4), mover("G", 0.9), mover("H", -5),
		mover("I", -6), mover("J", -7),
	}

	got := Ranker{}.TopGainers(set, 5)
	if len(got) != 3 {
		t.Fatalf("got %d gainers want 3", len(got))
	}
	want := []string{"D", "B", "G"}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Fatalf("rank %d got %s want %s", i, got[i].Symbol, sym)
		}
	}
}

func TestTopGainersStableTies(t *testing.T) {
	set := []market.EnrichedTicker{
		mover("FIRST", 2.0), mover("BIG", 5.0), mover("SECOND", 2.0), mover("THIRD", 2.0),
	}
	got := Ranker{}.TopGainers(set, 10)
	want := []string{"BIG", "FIRST", "SECOND", "THIRD"}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Fatalf("rank %d got %s want %s (ties must keep input order)", i, got[i].Symbol, sym)
		}
	}
}

func TestTopGainersTruncatesToLimit(t *testing.T) {
	set := []market.EnrichedTicker{
		mover("A", 1), mover("B", 2), mover("C", 3), mover("D", 4), mover("E", 5), mover("F", 6),
	}
	got := Ranker{}.TopGainers(set, 5)
	if len(got) != 5 {
		t.Fatalf("got %d want 5", len(got))
	}
	if got[0].Symbol != "F" || got[4].Symbol != "B" {
		t.Fatalf("unexpected order: %v...%v", got[0].Symbol, got[4].Symbol)
	}
}

func TestTopGainersEdgeInputs(t *testing.T) {
	if got := (Ranker{}).TopGainers(nil, 5); len(got) != 0 {
		t.Fatal("nil set should rank empty")
	}
	if got := (Ranker{}).TopGainers([]market.EnrichedTicker{mover("A", 1)}, 0); len(got) != 0 {
		t.Fatal("limit 0 should rank empty")
	}
	// zero and NaN changes are not gainers
	set := []market.EnrichedTicker{mover("Z", 0), mover("N", math.NaN()), mover("P", 0.1)}
	got := Ranker{}.TopGainers(set, 5)
	if len(got) != 1 || got[0].Symbol != "P" {
		t.Fatalf("got %v want only P", got)
	}
}
