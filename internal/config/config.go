package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/BayhanR/aegis-crypto-engine/internal/analysis"
)

type Config struct {
	Port        int    `yaml:"port" envconfig:"AEGIS_PORT"`
	LogLevel    string `yaml:"log_level" envconfig:"AEGIS_LOG_LEVEL"`
	BinanceURL  string `yaml:"binance_url" envconfig:"AEGIS_BINANCE_URL"`
	PollSeconds int    `yaml:"poll_seconds" envconfig:"AEGIS_POLL_SECONDS"`
	QuoteAsset  string `yaml:"quote_asset" envconfig:"AEGIS_QUOTE_ASSET"`
	TopByVolume int    `yaml:"top_by_volume" envconfig:"AEGIS_TOP_BY_VOLUME"`
	RankLimit   int    `yaml:"rank_limit" envconfig:"AEGIS_RANK_LIMIT"`

	Thresholds analysis.Thresholds `yaml:"thresholds"`
}

func defaults() Config {
	return Config{
		Port:        8087,
		LogLevel:    "info",
		BinanceURL:  "https://api.binance.com",
		PollSeconds: 10,
		QuoteAsset:  "USDT",
		TopByVolume: 100,
		RankLimit:   5,
		Thresholds:  analysis.DefaultThresholds(),
	}
}

// Load reads the yaml file over the defaults, applies AEGIS_* environment
// overrides on top, then validates. A missing file is not an error; env-only
// deployments are fine.
func Load(path string) (Config, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("invalid port")
	}
	if c.PollSeconds < 1 {
		return errors.New("poll_seconds must be >= 1")
	}
	if c.TopByVolume < 1 {
		return errors.New("top_by_volume must be >= 1")
	}
	if c.RankLimit < 0 {
		return errors.New("rank_limit must be >= 0")
	}
	if c.BinanceURL == "" {
		return errors.New("binance_url must not be empty")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
