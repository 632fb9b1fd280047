package state

import (
	"sync"
	"sync/atomic"
	"time"
)

// State is the engine's runtime status: feed connectivity plus counters for
// the health endpoint and status broadcasts. Analysis state (the previous
// snapshot) lives in the pipeline, not here.
type State struct {
	connected atomic.Bool

	snapshots atomic.Int64
	signals   atomic.Int64

	mu             sync.RWMutex
	lastSnapshotAt time.Time
	lastSymbols    int
}

func NewState() *State {
	return &State{}
}

func (s *State) SetConnected(v bool) { s.connected.Store(v) }
func (s *State) Connected() bool     { return s.connected.Load() }

// RecordSnapshot notes one processed snapshot and its symbol count.
func (s *State) RecordSnapshot(symbols int, at time.Time) {
	s.snapshots.Add(1)
	s.mu.Lock()
	s.lastSnapshotAt = at
	s.lastSymbols = symbols
	s.mu.Unlock()
}

// RecordSignals notes n newly detected signals.
func (s *State) RecordSignals(n int) {
	if n > 0 {
		s.signals.Add(int64(n))
	}
}

func (s *State) Snapshots() int64 { return s.snapshots.Load() }
func (s *State) Signals() int64   { return s.signals.Load() }

func (s *State) LastSnapshot() (time.Time, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSnapshotAt, s.lastSymbols
}
