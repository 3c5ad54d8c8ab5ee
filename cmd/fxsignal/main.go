package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxsignal/config"
	"fxsignal/internal/dispatcher"
	"fxsignal/internal/gateway"
	"fxsignal/internal/ledger"
	"fxsignal/internal/logger"
	"fxsignal/internal/marketdata"
	"fxsignal/internal/marketdata/cache"
	"fxsignal/internal/marketdata/twelvedata"
	"fxsignal/internal/marketdata/yahoo"
	"fxsignal/internal/markethours"
	"fxsignal/internal/metrics"
	"fxsignal/internal/model"
	"fxsignal/internal/notification"
	"fxsignal/internal/scheduler"
	"fxsignal/internal/strategy"
)

func main() {
	logger.Init("fxsignal", slog.LevelInfo)
	slog.Info("starting", "pid", os.Getpid())

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// ---- Market data: key-gated primary, keyless fallback ----
	var providers []marketdata.Provider
	if cfg.TwelveDataKey != "" {
		providers = append(providers, twelvedata.New(twelvedata.Config{
			APIKey:  cfg.TwelveDataKey,
			BaseURL: cfg.TwelveDataBaseURL,
		}))
	}
	providers = append(providers, yahoo.New(yahoo.Config{}))
	var source marketdata.Source = marketdata.NewChain(model.MinWindow, providers...)

	// ---- Optional redis candle cache ----
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Warn("redis unavailable, running uncached", "err", err)
		} else {
			defer rdb.Close()
			source = cache.New(source, rdb, 0)
			slog.Info("candle cache enabled", "addr", cfg.RedisAddr)
		}
	}

	// ---- Core state ----
	led := ledger.New(cfg.StartCapital, cfg.RiskPercent, cfg.RiskReward)
	analyzer := strategy.NewAnalyzer(cfg.RiskReward)

	// ---- Notification backends ----
	hub := gateway.NewHub()
	var tg *notification.TelegramNotifier
	backends := []notification.Notifier{hub}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		tg = notification.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		backends = append(backends, tg)
	} else {
		slog.Warn("telegram credentials missing, logging notifications instead")
		backends = append(backends, notification.LogNotifier{})
	}
	notifier := notification.NewFanout(backends...)

	prom := metrics.New()
	prom.Balance.Set(led.Balance())

	disp := dispatcher.New(dispatcher.Config{
		Pairs:    cfg.Pairs,
		Simulate: cfg.Simulate,
		Lot:      cfg.Lot,
		Leverage: cfg.Leverage,
	}, source, analyzer, led, notifier, prom)

	// ---- HTTP surface: /metrics, /healthz, /api/v1/status, /ws ----
	srv := metrics.NewServer(cfg.MetricsAddr, disp.Snapshot, hub.HandleWS)
	srv.Start()
	defer srv.Stop()

	// ---- /status command listener ----
	if tg != nil {
		listener := notification.NewListener(tg, disp.Status)
		go listener.Run(ctx)
	}

	// ---- Schedule ----
	sched := scheduler.New(markethours.Dhaka)
	sched.DailyAt(10, 0, "morning", disp.Morning)
	sched.Every(40*time.Minute, "heartbeat", disp.Heartbeat)
	sched.HourlyAt(0, "scan", disp.Scan)
	sched.DailyAt(10, 10, "monthly-reset", disp.MonthlyReset)

	disp.Startup(ctx)

	go func() {
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	sched.Run(ctx)
	slog.Info("stopped")
}
