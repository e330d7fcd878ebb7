package config

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "pairsbot-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected App.LogLevel: %s", cfg.App.LogLevel)
	}
	if cfg.Data.FormationCSV != "testdata/formation.csv" {
		t.Fatalf("unexpected Data.FormationCSV: %s", cfg.Data.FormationCSV)
	}
	if cfg.Data.TradingCSV != "testdata/trading.csv" {
		t.Fatalf("unexpected Data.TradingCSV: %s", cfg.Data.TradingCSV)
	}
	if cfg.Engine.NumTop != 2 {
		t.Fatalf("unexpected Engine.NumTop: %d", cfg.Engine.NumTop)
	}
	if cfg.Engine.SkipTop != 1 {
		t.Fatalf("unexpected Engine.SkipTop: %d", cfg.Engine.SkipTop)
	}
	if cfg.Engine.Divergence != 1.5 {
		t.Fatalf("unexpected Engine.Divergence: %.2f", cfg.Engine.Divergence)
	}
	if !cfg.Engine.CloseAtEnd {
		t.Fatalf("expected close_at_end enabled")
	}
	if cfg.Engine.Measure != "correlation" {
		t.Fatalf("unexpected Engine.Measure: %s", cfg.Engine.Measure)
	}
	if cfg.Feed.Provider != "stub" {
		t.Fatalf("unexpected Feed.Provider: %s", cfg.Feed.Provider)
	}
	if len(cfg.Feed.Symbols) != 2 || cfg.Feed.Symbols[0] != "BTCUSDT" {
		t.Fatalf("unexpected Feed.Symbols: %+v", cfg.Feed.Symbols)
	}
	if cfg.Feed.IntervalMs != 250 {
		t.Fatalf("unexpected Feed.IntervalMs: %d", cfg.Feed.IntervalMs)
	}
	if cfg.Risk.MaxOpenPairs != 1 {
		t.Fatalf("unexpected Risk.MaxOpenPairs: %d", cfg.Risk.MaxOpenPairs)
	}
	if cfg.Report.SignalsPath != "out/test-signals.jsonl" {
		t.Fatalf("unexpected Report.SignalsPath: %s", cfg.Report.SignalsPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAIRSBOT_METRICS_ADDR", ":9999")
	t.Setenv("PAIRSBOT_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.MetricsAddr != ":9999" {
		t.Fatalf("metrics addr override not applied: %s", cfg.App.MetricsAddr)
	}
	if cfg.App.LogLevel != "warn" {
		t.Fatalf("log level override not applied: %s", cfg.App.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("re-load returned error: %v", err)
	}
	if again.Engine != cfg.Engine {
		t.Fatalf("engine section changed in round trip: %+v vs %+v", again.Engine, cfg.Engine)
	}

	if err := Save(path, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
