package market

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// RawTicker is one symbol's 24hr ticker statistics as delivered upstream.
// All numeric fields arrive as strings; they are parsed during analysis and a
// field that fails to parse becomes NaN rather than an error.
type RawTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
}

// Snapshot is one batch of tickers representing market state at a point in time.
type Snapshot struct {
	At      time.Time   `json:"at"`
	Tickers []RawTicker `json:"tickers"`
}

// Float carries analysis numerics. encoding/json refuses NaN and ±Inf, and a
// record degraded to NaN must still appear in broadcasts, so those values
// marshal as null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// ParseFloat parses a numeric-as-text ticker field. Failure yields NaN, never
// an error: one malformed field must not abort its record or the batch.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// VolatilityResult is a bounded [0,100] magnitude plus its band.
type VolatilityResult struct {
	Score int             `json:"score"`
	Level VolatilityLevel `json:"level"`
}

type SignalType string

const (
	SignalWhaleActivity SignalType = "WHALE_ACTIVITY"
	SignalPanicSell     SignalType = "PANIC_SELL"
	SignalNeutral       SignalType = "NEUTRAL"
)

type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityLow  Priority = "low"
)

// SignalResult is the discrete market-signal classification for one ticker.
type SignalResult struct {
	Type     SignalType `json:"type"`
	Message  string     `json:"message"`
	Priority Priority   `json:"priority"`
}

// EnrichedTicker is the analyzed form of one RawTicker. Created fresh each
// snapshot, never mutated afterwards; the whole set is superseded by the next
// snapshot's set.
type EnrichedTicker struct {
	Symbol             string           `json:"symbol"`
	BaseAsset          string           `json:"baseAsset"`
	LastPrice          Float            `json:"lastPrice"`
	PriceChange        Float            `json:"priceChange"`
	PriceChangePercent Float            `json:"priceChangePercent"`
	Volume             Float            `json:"volume"`
	QuoteVolume        Float            `json:"quoteVolume"`
	HighPrice          Float            `json:"highPrice"`
	LowPrice           Float            `json:"lowPrice"`
	Volatility         VolatilityResult `json:"volatility"`
	Signal             SignalResult     `json:"signal"`
	Raw                RawTicker        `json:"raw"`
}
