package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BayhanR/aegis-crypto-engine/internal/market"
)

// Client is a thin REST client for the public 24hr ticker statistics
// endpoint. The endpoint is unauthenticated; no session handling is needed.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(p string) string {
	return fmt.Sprintf("%s%s", c.baseURL, p)
}

// FetchTickers retrieves the full 24hr ticker list. Numeric fields stay as
// strings; parsing happens downstream in the analyzer so malformed values can
// degrade per record instead of failing the whole fetch.
func (c *Client) FetchTickers(ctx context.Context) ([]market.RawTicker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/v3/ticker/24hr"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticker endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticker endpoint status %d", resp.StatusCode)
	}

	var tickers []market.RawTicker
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil {
		return nil, fmt.Errorf("decode tickers: %w", err)
	}
	return tickers, nil
}
