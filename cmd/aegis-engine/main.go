package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BayhanR/aegis-crypto-engine/internal/analysis"
	"github.com/BayhanR/aegis-crypto-engine/internal/binance"
	"github.com/BayhanR/aegis-crypto-engine/internal/config"
	"github.com/BayhanR/aegis-crypto-engine/internal/server"
	"github.com/BayhanR/aegis-crypto-engine/internal/state"
)

func main() {
	_ = godotenv.Load() // best-effort: .env is optional

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.LogLevel)

	logger.Info("aegis-crypto-engine starting",
		slog.Int("port", cfg.Port),
		slog.String("binance_url", cfg.BinanceURL),
		slog.Int("poll_seconds", cfg.PollSeconds),
		slog.String("quote_asset", cfg.QuoteAsset),
	)

	// Runtime status
	st := state.NewState()

	// Feed: REST poller against the 24hr ticker endpoint
	client := binance.NewClient(cfg.BinanceURL, logger)
	feed := binance.NewPollingFeed(client, cfg.QuoteAsset, cfg.TopByVolume,
		time.Duration(cfg.PollSeconds)*time.Second, logger)

	// Analysis pipeline; configuration misuse is rejected here, never mid-run.
	pipeline, err := analysis.NewPipeline(cfg.Thresholds, cfg.QuoteAsset, cfg.RankLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build pipeline: %v\n", err)
		os.Exit(1)
	}

	// HTTP server + WS hub
	srv := server.NewHTTPServer(cfg, st, logger)

	// Context & signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start feed (poll loop)
	go feed.Run(ctx, func(connected bool) {
		st.SetConnected(connected)
		srv.BroadcastStatus()
	})

	// Pump: feed → pipeline → broadcasts. This goroutine is the only caller
	// of Process, which serializes the read-then-swap of the retained set.
	go func() {
		for {
			select {
			case snap, ok := <-feed.Updates():
				if !ok {
					return
				}
				res := pipeline.Process(snap)
				st.RecordSnapshot(len(res.Analyzed), snap.At)
				srv.SetLatest(res)
				srv.BroadcastSnapshot(snap.At, res.Analyzed)
				srv.BroadcastGainers(res.TopGainers)
				if len(res.NewSignals) > 0 {
					st.RecordSignals(len(res.NewSignals))
					srv.BroadcastSignals(res.NewSignals)
					logger.Info("new signals detected", slog.Int("count", len(res.NewSignals)))
				}
			case err := <-feed.Errors():
				if err != nil {
					logger.Error("ticker feed error", slog.String("err", err.Error()))
					srv.BroadcastError(err.Error())
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// HTTP serving
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Router(),
	}

	done := make(chan struct{})
	go func() {
		logger.Info("HTTP server listening", slog.Int("port", cfg.Port))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("err", err.Error()))
			cancel()
		}
		close(done)
	}()

	// Graceful shutdown
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info("shutting down...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shCancel()

	_ = httpSrv.Shutdown(shCtx)
	feed.Close()
	<-done
	logger.Info("bye")
}
