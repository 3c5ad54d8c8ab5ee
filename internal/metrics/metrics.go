// Package metrics exposes Prometheus metrics and the operational HTTP
// surface (health, status snapshot, WebSocket feed).
package metrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the signal bot.
type Metrics struct {
	ScansTotal         prometheus.Counter
	SignalsTotal       *prometheus.CounterVec // labels: pair, direction
	FetchFailuresTotal *prometheus.CounterVec // labels: pair
	NotifyFailures     prometheus.Counter
	OutcomesTotal      *prometheus.CounterVec // labels: result=win|loss
	Balance            prometheus.Gauge
}

// New registers and returns all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxsignal_scans_total",
			Help: "Total signal scan cycles executed",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsignal_signals_total",
			Help: "Total signals published",
		}, []string{"pair", "direction"}),
		FetchFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsignal_fetch_failures_total",
			Help: "Candle fetches where all providers failed",
		}, []string{"pair"}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxsignal_notify_failures_total",
			Help: "Notification deliveries that failed",
		}),
		OutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsignal_outcomes_total",
			Help: "Simulated trade outcomes applied to the balance",
		}, []string{"result"}),
		Balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxsignal_balance",
			Help: "Current simulated account balance",
		}),
	}
	prometheus.MustRegister(
		m.ScansTotal, m.SignalsTotal, m.FetchFailuresTotal,
		m.NotifyFailures, m.OutcomesTotal, m.Balance,
	)
	return m
}

// StatusSnapshot is the JSON body served on /api/v1/status.
type StatusSnapshot struct {
	Balance     float64  `json:"balance"`
	RiskPercent float64  `json:"risk_percent"`
	Pairs       []string `json:"pairs"`
	RestDay     bool     `json:"rest_day"`
	Time        string   `json:"time"`
}

// SnapshotFunc produces the current status snapshot.
type SnapshotFunc func() StatusSnapshot

// Server serves /metrics, /healthz, /api/v1/status and /ws.
type Server struct {
	srv *http.Server
}

// NewServer builds the HTTP server. wsHandler may be nil to disable /ws.
func NewServer(addr string, snapshot SnapshotFunc, wsHandler http.HandlerFunc) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot())
	})
	if wsHandler != nil {
		mux.HandleFunc("/ws", wsHandler)
	}
	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

// Start runs the server in a background goroutine.
func (s *Server) Start() {
	go func() {
		slog.Info("metrics server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "err", err)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.srv.Shutdown(ctx)
}
