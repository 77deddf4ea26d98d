// Package config provides configuration management for the risk-graph core.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"riskgraph/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Feed    FeedConfig    `mapstructure:"feed"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Gravity GravityConfig `mapstructure:"gravity"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
}

// FeedConfig holds live tick feed configuration.
type FeedConfig struct {
	URL            string        `mapstructure:"url"`
	Symbol         string        `mapstructure:"symbol"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

// ChartConfig holds chart geometry defaults.
type ChartConfig struct {
	ProfileRows   int     `mapstructure:"profile_rows"`
	GexMode       string  `mapstructure:"gex_mode"` // "combined", "net"
	GridStep      float64 `mapstructure:"grid_step"`
	GridMargin    float64 `mapstructure:"grid_margin"`
	DefaultHeight float64 `mapstructure:"default_height"`
	DefaultWidth  float64 `mapstructure:"default_width"`
}

// GravityConfig holds rolling-statistics configuration.
type GravityConfig struct {
	Timeframe     string `mapstructure:"timeframe"`
	HistoryLimit  int    `mapstructure:"history_limit"`
	MemoCacheSize int    `mapstructure:"memo_cache_size"`
}

// StoreConfig holds candle store configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig mirrors logging.LogConfig for file-based configuration.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".riskgraph"
	}
	return filepath.Join(home, ".config", "riskgraph")
}

// Load reads configuration from the given directory, falling back to
// defaults when no config file exists.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("RISKGRAPH")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.url", "wss://localhost:8443/ticks")
	v.SetDefault("feed.symbol", "SPX")
	v.SetDefault("feed.reconnect_delay", 5*time.Second)

	v.SetDefault("chart.profile_rows", 48)
	v.SetDefault("chart.gex_mode", "net")
	v.SetDefault("chart.grid_step", 1.0)
	v.SetDefault("chart.grid_margin", 50.0)
	v.SetDefault("chart.default_height", 600.0)
	v.SetDefault("chart.default_width", 900.0)

	v.SetDefault("gravity.timeframe", "5m")
	v.SetDefault("gravity.history_limit", 200)
	v.SetDefault("gravity.memo_cache_size", 64)

	v.SetDefault("store.path", filepath.Join(DefaultConfigDir(), "riskgraph.db"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", true)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Chart.GexMode {
	case "combined", "net":
	default:
		return fmt.Errorf("chart.gex_mode must be combined or net, got %q", c.Chart.GexMode)
	}
	if c.Chart.ProfileRows <= 0 {
		return fmt.Errorf("chart.profile_rows must be positive, got %d", c.Chart.ProfileRows)
	}
	if c.Chart.GridStep <= 0 {
		return fmt.Errorf("chart.grid_step must be positive, got %v", c.Chart.GridStep)
	}
	if c.Feed.ReconnectDelay <= 0 {
		return fmt.Errorf("feed.reconnect_delay must be positive, got %v", c.Feed.ReconnectDelay)
	}
	return nil
}

// LogSettings converts the file-based log config into a logging.LogConfig.
func (c *Config) LogSettings() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	lc.Console = c.Log.Console
	lc.File = c.Log.File
	return lc
}
