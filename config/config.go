package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/stockstat/market"
)

// Config is the complete stockstat configuration.
type Config struct {
	Symbols   []string       `json:"symbols" yaml:"symbols"`
	Benchmark string         `json:"benchmark" yaml:"benchmark"`
	Provider  ProviderConfig `json:"provider" yaml:"provider"`
	Journal   JournalConfig  `json:"journal" yaml:"journal"`
	Log       LogConfig      `json:"log" yaml:"log"`
	Plot      PlotConfig     `json:"plot" yaml:"plot"`
}

// ProviderConfig configures price downloads.
type ProviderConfig struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	Timeout   string `json:"timeout" yaml:"timeout"` // e.g. "30s"
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	DataDir   string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"` // serve CSV files instead of Yahoo
}

// ParseTimeout converts the timeout string to a time.Duration.
func (p ProviderConfig) ParseTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Timeout)
}

// JournalConfig controls the SQLite analysis journal and price cache.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"` // empty means stderr
}

type PlotConfig struct {
	HistogramBins int `json:"histogram_bins" yaml:"histogram_bins"`
}

// Load reads .env (if present), the config file at path (if non-empty) and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML) and validates it.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOCKSTAT_SYMBOLS"); v != "" {
		c.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("STOCKSTAT_BENCHMARK"); v != "" {
		c.Benchmark = v
	}
	if v := os.Getenv("STOCKSTAT_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("STOCKSTAT_JOURNAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Journal.Enabled = b
		}
	}
	if v := os.Getenv("STOCKSTAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STOCKSTAT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("STOCKSTAT_YAHOO_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("STOCKSTAT_DATA_DIR"); v != "" {
		c.Provider.DataDir = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Universe().Len() == 0 {
		return fmt.Errorf("symbols must list at least one ticker")
	}
	if strings.TrimSpace(c.Benchmark) == "" {
		return fmt.Errorf("benchmark is required")
	}
	if c.Provider.DataDir == "" && c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	d, err := c.Provider.ParseTimeout()
	if err != nil {
		return fmt.Errorf("provider.timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("provider.timeout must not be negative")
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required when journal is enabled")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Plot.HistogramBins < 1 {
		return fmt.Errorf("plot.histogram_bins must be positive")
	}
	return nil
}

// Universe returns the configured tickers.
func (c *Config) Universe() market.Universe {
	return market.NewUniverse(c.Symbols)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Symbols:   append([]string(nil), market.DefaultSymbols...),
		Benchmark: "^GSPC",
		Provider: ProviderConfig{
			BaseURL: "https://query1.finance.yahoo.com",
			Timeout: "30s",
		},
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  "./stockstat.sqlite",
		},
		Log: LogConfig{
			Level: "info",
			File:  "./stockstat.log",
		},
		Plot: PlotConfig{
			HistogramBins: 20,
		},
	}
}
