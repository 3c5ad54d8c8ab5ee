package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if len(cfg.Pairs) != 2 || cfg.Pairs[0] != "EUR/USD" || cfg.Pairs[1] != "GBP/USD" {
		t.Errorf("default pairs = %v", cfg.Pairs)
	}
	if cfg.StartCapital != 1000 {
		t.Errorf("default start capital = %v", cfg.StartCapital)
	}
	if cfg.RiskPercent != 2 || cfg.RiskReward != 2 {
		t.Errorf("default risk = %v / rr = %v", cfg.RiskPercent, cfg.RiskReward)
	}
	if cfg.Simulate {
		t.Error("simulation should default off")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("default metrics addr = %q", cfg.MetricsAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAIRS", "USD/JPY, AUD/USD ,")
	t.Setenv("START_CAPITAL", "2500")
	t.Setenv("SIMULATE_OUTCOMES", "1")
	t.Setenv("TWELVEDATA_KEY", "  abc123  ")

	cfg := Load()
	if len(cfg.Pairs) != 2 || cfg.Pairs[0] != "USD/JPY" || cfg.Pairs[1] != "AUD/USD" {
		t.Errorf("pairs = %v", cfg.Pairs)
	}
	if cfg.StartCapital != 2500 {
		t.Errorf("start capital = %v", cfg.StartCapital)
	}
	if !cfg.Simulate {
		t.Error("simulation should be enabled")
	}
	if cfg.TwelveDataKey != "abc123" {
		t.Errorf("key = %q, want trimmed", cfg.TwelveDataKey)
	}
}

func TestLoad_MalformedNumericFallsBack(t *testing.T) {
	t.Setenv("START_CAPITAL", "not-a-number")
	t.Setenv("LEVERAGE", "10x")

	cfg := Load()
	if cfg.StartCapital != 1000 {
		t.Errorf("start capital = %v, want default 1000", cfg.StartCapital)
	}
	if cfg.Leverage != 100 {
		t.Errorf("leverage = %v, want default 100", cfg.Leverage)
	}
}
