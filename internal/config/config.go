// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Data points at the CSV price panels for the two backtest periods.
type Data struct {
	FormationCSV string `yaml:"formation_csv"`
	TradingCSV   string `yaml:"trading_csv"`
}

// Engine groups the pair-formation and signal-generation knobs.
type Engine struct {
	NumTop     int     `yaml:"num_top"`
	SkipTop    int     `yaml:"skip_top"`
	Divergence float64 `yaml:"divergence"`
	CloseAtEnd bool    `yaml:"close_at_end"`
	Measure    string  `yaml:"measure"`
}

// Feed configures the live price collector used by the stream binary.
type Feed struct {
	Provider   string   `yaml:"provider"`
	Symbols    []string `yaml:"symbols"`
	IntervalMs int      `yaml:"interval_ms"`
}

// Risk encodes guard-rails on how many pair positions may be open at once.
type Risk struct {
	MaxOpenPairs int `yaml:"max_open_pairs"`
}

// Report configures where signal events are recorded.
type Report struct {
	SignalsPath string `yaml:"signals_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Data   Data   `yaml:"data"`
	Engine Engine `yaml:"engine"`
	Feed   Feed   `yaml:"feed"`
	Risk   Risk   `yaml:"risk"`
	Report Report `yaml:"report"`
}

// Load reads a YAML file from disk, hydrates a Config struct, and applies
// environment overrides (a .env file is honored when present).
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	_ = godotenv.Load() // best-effort
	if addr := os.Getenv("PAIRSBOT_METRICS_ADDR"); addr != "" {
		config.App.MetricsAddr = addr
	}
	if level := os.Getenv("PAIRSBOT_LOG_LEVEL"); level != "" {
		config.App.LogLevel = level
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
