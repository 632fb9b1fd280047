package binance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// TickerFeed delivers market snapshots on a cycle. The consumer makes no
// assumption about timing or transport; it just drains Updates and Errors.
type TickerFeed interface {
	Run(ctx context.Context, onStatus func(connected bool))
	Updates() <-chan market.Snapshot
	Errors() <-chan error
	Connected() bool
	Close()
}

// PollingFeed implements TickerFeed by polling the REST 24hr ticker endpoint
// on a fixed interval, with exponential backoff while the endpoint is down.
// Each cycle is filtered to one quote asset and trimmed to the top symbols by
// quote volume before being emitted as a snapshot.
type PollingFeed struct {
	client *Client
	log    *slog.Logger

	quoteAsset  string
	topByVolume int
	interval    time.Duration

	mu        sync.RWMutex
	connected bool

	updCh chan market.Snapshot
	errCh chan error

	ctx    context.Context
	cancel context.CancelFunc
}

func NewPollingFeed(client *Client, quoteAsset string, topByVolume int, interval time.Duration, logger *slog.Logger) *PollingFeed {
	return &PollingFeed{
		client:      client,
		log:         logger,
		quoteAsset:  strings.ToUpper(strings.TrimSpace(quoteAsset)),
		topByVolume: topByVolume,
		interval:    interval,
		updCh:       make(chan market.Snapshot, 16),
		errCh:       make(chan error, 16),
	}
}

func (f *PollingFeed) Updates() <-chan market.Snapshot { return f.updCh }
func (f *PollingFeed) Errors() <-chan error            { return f.errCh }

func (f *PollingFeed) Connected() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.connected
}

func (f *PollingFeed) setConnected(v bool) {
	f.mu.Lock()
	f.connected = v
	f.mu.Unlock()
}

func (f *PollingFeed) Close() {
	if f.cancel != nil {
		f.cancel()
	}
	close(f.errCh)
	close(f.updCh)
}

// Run polls until the context is cancelled. Failures back off exponentially
// (1s..30s); the first successful fetch resets the backoff and the poll
// cadence takes over.
func (f *PollingFeed) Run(ctx context.Context, onStatus func(connected bool)) {
	if f.cancel != nil {
		return
	}
	f.ctx, f.cancel = context.WithCancel(ctx)

	backoff := time.Second
	for {
		select {
		case <-f.ctx.Done():
			return
		default:
		}

		tickers, err := f.client.FetchTickers(f.ctx)
		if err != nil {
			if f.ctx.Err() != nil {
				return
			}
			f.setConnected(false)
			onStatus(false)
			f.emitErr(fmt.Errorf("fetch tickers: %w", err))
			if !f.sleep(backoff) {
				return
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}

		f.setConnected(true)
		onStatus(true)
		backoff = time.Second

		snap := market.Snapshot{
			At:      time.Now(),
			Tickers: f.selectTickers(tickers),
		}
		select {
		case f.updCh <- snap:
		case <-f.ctx.Done():
			return
		}

		if !f.sleep(f.interval) {
			return
		}
	}
}

// selectTickers filters to the configured quote asset and keeps the top
// symbols by quote volume, descending. Input order is preserved within the
// cut via stable sort; unparseable volumes sort last.
func (f *PollingFeed) selectTickers(all []market.RawTicker) []market.RawTicker {
	filtered := make([]market.RawTicker, 0, len(all))
	for _, t := range all {
		if f.quoteAsset == "" || strings.HasSuffix(t.Symbol, f.quoteAsset) {
			filtered = append(filtered, t)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		// NaN fails both comparisons, which leaves malformed rows at the tail.
		return market.ParseFloat(filtered[i].QuoteVolume) > market.ParseFloat(filtered[j].QuoteVolume)
	})

	if f.topByVolume > 0 && len(filtered) > f.topByVolume {
		filtered = filtered[:f.topByVolume]
	}
	return filtered
}

func (f *PollingFeed) sleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-f.ctx.Done():
		return false
	}
}

func (f *PollingFeed) emitErr(err error) {
	select {
	case f.errCh <- err:
	default:
		// drop if buffer full
	}
}

// ---------- Test/mock feed (handy for integration tests & demos) ----------

type MockFeed struct {
	updates   chan market.Snapshot
	errors    chan error
	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewMockFeed() TickerFeed {
	return &MockFeed{
		updates:   make(chan market.Snapshot, 10),
		errors:    make(chan error, 10),
		connected: true,
	}
}

func (m *MockFeed) Run(ctx context.Context, onStatus func(connected bool)) {
	m.ctx, m.cancel = context.WithCancel(ctx)
	go func() {
		onStatus(m.connected)
		<-m.ctx.Done()
	}()
}

func (m *MockFeed) Updates() <-chan market.Snapshot { return m.updates }
func (m *MockFeed) Errors() <-chan error            { return m.errors }
func (m *MockFeed) Connected() bool                 { return m.connected }

func (m *MockFeed) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	close(m.updates)
	close(m.errors)
}

// Helpers for tests
func (m *MockFeed) SendSnapshot(s market.Snapshot) { m.updates <- s }
func (m *MockFeed) SendError(e error)              { m.errors <- e }
func (m *MockFeed) SetConnected(c bool)            { m.connected = c }
