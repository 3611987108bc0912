package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string `yaml:"provider"` // finnhub, yahoo or mock
		APIKey       string `yaml:"api_key"`
		Symbol       string `yaml:"symbol"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Chart struct {
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
		Margin     int    `yaml:"margin"`
		Period     string `yaml:"period"`
		SMAPeriods []int  `yaml:"sma_periods"`
		Format     string `yaml:"format"`
	} `yaml:"chart"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CHART_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("CHART_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		if cfg.DataSource.APIKey != "" {
			cfg.DataSource.Provider = "finnhub"
		} else {
			cfg.DataSource.Provider = "yahoo"
		}
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "AAPL"
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 365
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1024
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 768
	}
	if cfg.Chart.Margin == 0 {
		cfg.Chart.Margin = 48
	}
	if cfg.Chart.Period == "" {
		cfg.Chart.Period = "weekly"
	}
	if cfg.Chart.Format == "" {
		cfg.Chart.Format = "png"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "static"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "finnhub":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for the finnhub provider (set FINNHUB_API_KEY)")
		}
	case "yahoo", "mock":
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.DataSource.LookbackDays <= 0 {
		return fmt.Errorf("data_source.lookback_days must be positive")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	if c.Chart.Margin < 0 || 2*c.Chart.Margin >= c.Chart.Width || 2*c.Chart.Margin >= c.Chart.Height {
		return fmt.Errorf("chart.margin %d leaves no plot area on a %dx%d canvas",
			c.Chart.Margin, c.Chart.Width, c.Chart.Height)
	}
	for _, p := range c.Chart.SMAPeriods {
		if p <= 0 {
			return fmt.Errorf("chart.sma_periods entries must be positive, got %d", p)
		}
	}
	switch c.Chart.Format {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("unsupported chart.format %q", c.Chart.Format)
	}
	return nil
}
