package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/BayhanR/aegis-crypto-engine/internal/analysis"
	"github.com/BayhanR/aegis-crypto-engine/internal/config"
	"github.com/BayhanR/aegis-crypto-engine/internal/market"
	"github.com/BayhanR/aegis-crypto-engine/internal/state"
)

// HTTPServer exposes the engine's products over a JSON API and a WebSocket
// hub. Each product goes out as its own message type: "snapshot" and
// "gainers" on every processed snapshot, "signals" only when non-empty.
type HTTPServer struct {
	cfg config.Config
	st  *state.State
	hub *hub
	log *slog.Logger
	mux *http.ServeMux

	mu     sync.RWMutex
	latest analysis.Result
}

func NewHTTPServer(cfg config.Config, st *state.State, logger *slog.Logger) *HTTPServer {
	s := &HTTPServer{
		cfg: cfg,
		st:  st,
		hub: newHub(logger),
		log: logger,
		mux: http.NewServeMux(),
	}
	s.routes()
	go s.hub.run()
	return s
}

func (s *HTTPServer) Router() http.Handler { return s.mux }

// SetLatest caches the most recent result for the REST endpoints.
func (s *HTTPServer) SetLatest(res analysis.Result) {
	s.mu.Lock()
	s.latest = res
	s.mu.Unlock()
}

func (s *HTTPServer) getLatest() analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// --------- WS broadcasts ----------

func (s *HTTPServer) BroadcastStatus() {
	msg := map[string]any{
		"connected": s.st.Connected(),
		"snapshots": s.st.Snapshots(),
	}
	s.hub.broadcast <- marshalWS("status", msg)
}

func (s *HTTPServer) BroadcastSnapshot(at time.Time, analyzed []market.EnrichedTicker) {
	s.hub.broadcast <- marshalWS("snapshot", map[string]any{
		"at":      at.UTC().Format(time.RFC3339Nano),
		"tickers": analyzed,
	})
}

func (s *HTTPServer) BroadcastGainers(gainers []market.EnrichedTicker) {
	s.hub.broadcast <- marshalWS("gainers", gainers)
}

func (s *HTTPServer) BroadcastSignals(signals []market.EnrichedTicker) {
	s.hub.broadcast <- marshalWS("signals", signals)
}

func (s *HTTPServer) BroadcastError(msg string) {
	s.hub.broadcast <- marshalWS("error", map[string]string{"message": msg})
}

// --------- Routes ----------

func (s *HTTPServer) routes() {
	// WS
	s.mux.HandleFunc("/ws", s.hub.serveWS)

	// API
	s.mux.HandleFunc("/api/health", s.apiHealth)
	s.mux.HandleFunc("/api/config", s.apiConfig)
	s.mux.HandleFunc("/api/snapshot", s.apiSnapshot)
	s.mux.HandleFunc("/api/gainers", s.apiGainers)
	s.mux.HandleFunc("/api/signals", s.apiSignals)
}

func (s *HTTPServer) apiHealth(w http.ResponseWriter, r *http.Request) {
	lastAt, lastSymbols := s.st.LastSnapshot()
	writeJSON(w, map[string]any{
		"ok":          true,
		"connected":   s.st.Connected(),
		"snapshots":   s.st.Snapshots(),
		"signals":     s.st.Signals(),
		"lastAt":      lastAt,
		"lastSymbols": lastSymbols,
	})
}

func (s *HTTPServer) apiConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"pollSeconds": s.cfg.PollSeconds,
		"quoteAsset":  s.cfg.QuoteAsset,
		"topByVolume": s.cfg.TopByVolume,
		"rankLimit":   s.cfg.RankLimit,
		"thresholds":  s.cfg.Thresholds,
	})
}

func (s *HTTPServer) apiSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.getLatest().Analyzed)
}

func (s *HTTPServer) apiGainers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.getLatest().TopGainers)
}

func (s *HTTPServer) apiSignals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.getLatest().NewSignals)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
