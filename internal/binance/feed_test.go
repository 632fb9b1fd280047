package binance

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/24hr" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"65000","priceChange":"100","priceChangePercent":"1.5","volume":"10","quoteVolume":"650000","highPrice":"66000","lowPrice":"64000"},
			{"symbol":"ETHUSDT","lastPrice":"3000","priceChange":"-50","priceChangePercent":"-1.6","volume":"20","quoteVolume":"60000","highPrice":"3100","lowPrice":"2900"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	tickers, err := c.FetchTickers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tickers) != 2 || tickers[0].Symbol != "BTCUSDT" {
		t.Fatalf("got %+v", tickers)
	}
	if tickers[0].QuoteVolume != "650000" {
		t.Fatalf("quoteVolume must stay textual, got %q", tickers[0].QuoteVolume)
	}
}

func TestFetchTickersNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	if _, err := c.FetchTickers(context.Background()); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestSelectTickersFiltersSortsAndTrims(t *testing.T) {
	f := NewPollingFeed(nil, "usdt", 2, time.Second, testLogger())

	got := f.selectTickers([]market.RawTicker{
		{Symbol: "AAAUSDT", QuoteVolume: "100"},
		{Symbol: "BBBBUSD", QuoteVolume: "999999"}, // wrong quote asset
		{Symbol: "CCCUSDT", QuoteVolume: "broken"}, // unparseable: sorts last
		{Symbol: "DDDUSDT", QuoteVolume: "500"},
		{Symbol: "EEEUSDT", QuoteVolume: "300"},
	})

	if len(got) != 2 {
		t.Fatalf("got %d want 2", len(got))
	}
	if got[0].Symbol != "DDDUSDT" || got[1].Symbol != "EEEUSDT" {
		t.Fatalf("got %s,%s want DDDUSDT,EEEUSDT", got[0].Symbol, got[1].Symbol)
	}
}

func TestPollingFeedEmitsSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"symbol":"BTCUSDT","lastPrice":"65000","priceChange":"100","priceChangePercent":"1.5","volume":"10","quoteVolume":"650000","highPrice":"66000","lowPrice":"64000"}]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewPollingFeed(NewClient(srv.URL, testLogger()), "USDT", 100, time.Minute, testLogger())

	statusCh := make(chan bool, 4)
	go f.Run(ctx, func(c bool) { statusCh <- c })

	select {
	case snap := <-f.Updates():
		if len(snap.Tickers) != 1 || snap.Tickers[0].Symbol != "BTCUSDT" {
			t.Fatalf("got %+v", snap.Tickers)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
	}

	select {
	case c := <-statusCh:
		if !c {
			t.Fatal("expected connected status")
		}
	case <-time.After(time.Second):
		t.Fatal("no status")
	}
	if !f.Connected() {
		t.Fatal("feed should report connected")
	}
}

func TestPollingFeedBackoffOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewPollingFeed(NewClient(srv.URL, testLogger()), "USDT", 100, time.Minute, testLogger())
	go f.Run(ctx, func(bool) {})

	select {
	case err := <-f.Errors():
		if err == nil {
			t.Fatal("expected non-nil error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error emitted")
	}
	if f.Connected() {
		t.Fatal("feed should report disconnected")
	}
}

func TestMockFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := NewMockFeed().(*MockFeed)

	statusCh := make(chan bool, 1)
	mock.Run(ctx, func(c bool) { statusCh <- c })

	select {
	case c := <-statusCh:
		if !c {
			t.Fatal("expected connected status")
		}
	case <-time.After(time.Second):
		t.Fatal("no status")
	}

	mock.SendSnapshot(market.Snapshot{Tickers: []market.RawTicker{{Symbol: "BTCUSDT"}}})

	select {
	case got := <-mock.Updates():
		if len(got.Tickers) != 1 || got.Tickers[0].Symbol != "BTCUSDT" {
			t.Fatal("bad snapshot")
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot")
	}

	mock.Close()
}
