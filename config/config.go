// Package config loads application configuration from environment
// variables. Every key has a default; malformed numerics fall back to the
// default with a log line.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	// Telegram
	TelegramToken  string
	TelegramChatID string

	// Trading
	Pairs        []string
	StartCapital float64
	RiskPercent  float64
	RiskReward   float64
	Simulate     bool
	Lot          string
	Leverage     int

	// Market data
	TwelveDataKey     string // optional; empty disables the primary provider
	TwelveDataBaseURL string

	// Infrastructure
	RedisAddr     string // optional; empty disables the candle cache
	RedisPassword string
	MetricsAddr   string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),

		Pairs:        splitList(getEnv("PAIRS", "EUR/USD,GBP/USD")),
		StartCapital: getEnvFloat("START_CAPITAL", 1000),
		RiskPercent:  getEnvFloat("RISK_PERCENT", 2),
		RiskReward:   getEnvFloat("RISK_REWARD", 2),
		Simulate:     getEnv("SIMULATE_OUTCOMES", "0") == "1",
		Lot:          getEnv("LOT", "0.10"),
		Leverage:     getEnvInt("LEVERAGE", 100),

		TwelveDataKey:     strings.TrimSpace(getEnv("TWELVEDATA_KEY", "")),
		TwelveDataBaseURL: getEnv("TWELVEDATA_BASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid numeric env value, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env value, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
