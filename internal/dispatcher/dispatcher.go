// Package dispatcher wires the scheduled jobs: signal scan, heartbeat,
// morning activation and monthly reset. Each job is a plain function of
// injected collaborators so it can be driven directly from tests.
package dispatcher

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"fxsignal/internal/format"
	"fxsignal/internal/ledger"
	"fxsignal/internal/marketdata"
	"fxsignal/internal/markethours"
	"fxsignal/internal/metrics"
	"fxsignal/internal/model"
	"fxsignal/internal/notification"
	"fxsignal/internal/strategy"
)

// Simulated outcomes win with probability 0.65.
const winThreshold = 0.35

// Config holds the dispatcher's static settings.
type Config struct {
	Pairs    []string
	Simulate bool
	Lot      string
	Leverage int
}

// Dispatcher orchestrates fetch → analyze → render → publish and the
// balance simulation.
type Dispatcher struct {
	cfg      Config
	source   marketdata.Source
	analyzer *strategy.Analyzer
	ledger   *ledger.Ledger
	notifier notification.Notifier
	metrics  *metrics.Metrics

	now  func() time.Time
	rand func() float64
}

// New creates a Dispatcher.
func New(cfg Config, source marketdata.Source, analyzer *strategy.Analyzer,
	led *ledger.Ledger, notifier notification.Notifier, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		source:   source,
		analyzer: analyzer,
		ledger:   led,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
		rand:     rand.Float64,
	}
}

func (d *Dispatcher) publish(ctx context.Context, text string) {
	if err := d.notifier.Send(ctx, text); err != nil {
		d.metrics.NotifyFailures.Inc()
		slog.Warn("publish failed", "err", err)
	}
}

// Scan is the hourly signal job. Rest days are skipped entirely; otherwise
// each pair is fetched, analyzed and announced. An unavailable pair is
// skipped for this cycle, never fatal.
func (d *Dispatcher) Scan(ctx context.Context) {
	if markethours.IsRestDay(d.now()) {
		return
	}
	d.metrics.ScansTotal.Inc()

	risk, reward := d.ledger.RiskAmounts()
	for _, pair := range d.cfg.Pairs {
		series, err := d.source.Fetch(ctx, pair)
		if err != nil {
			d.metrics.FetchFailuresTotal.WithLabelValues(pair).Inc()
			slog.Warn("scan: candles unavailable", "pair", pair, "err", err)
			continue
		}
		sig, ok := d.analyzer.Analyze(pair, series)
		if !ok {
			slog.Info("scan: insufficient history", "pair", pair, "candles", len(series))
			continue
		}

		d.publish(ctx, format.Signal(sig, risk, reward, d.now()))
		d.metrics.SignalsTotal.WithLabelValues(pair, string(sig.Direction)).Inc()

		if d.cfg.Simulate {
			d.applyOutcome(ctx, sig, risk, reward)
		}
	}
}

func (d *Dispatcher) applyOutcome(ctx context.Context, sig model.Signal, risk, reward float64) {
	won := d.rand() > winThreshold
	out := model.Outcome{Pair: sig.Pair, Won: won, Risk: risk, Reward: reward}

	balance := d.ledger.Apply(won, risk, reward)
	d.metrics.Balance.Set(balance)
	result := "loss"
	if won {
		result = "win"
	}
	d.metrics.OutcomesTotal.WithLabelValues(result).Inc()

	d.publish(ctx, format.Outcome(out, sig, balance))
}

// Heartbeat publishes the candle-feed check: last close per pair, or a
// missing marker when no provider delivered.
func (d *Dispatcher) Heartbeat(ctx context.Context) {
	lastClose := make(map[string]float64, len(d.cfg.Pairs))
	for _, pair := range d.cfg.Pairs {
		series, err := d.source.Fetch(ctx, pair)
		if err != nil || len(series) == 0 {
			d.metrics.FetchFailuresTotal.WithLabelValues(pair).Inc()
			continue
		}
		lastClose[pair] = series.Latest().Close
	}
	d.publish(ctx, format.Heartbeat(d.cfg.Pairs, lastClose, d.now()))
}

// Morning publishes the session-open message, or the weekend-rest message
// on rest days.
func (d *Dispatcher) Morning(ctx context.Context) {
	if markethours.IsRestDay(d.now()) {
		d.publish(ctx, format.WeekendRest())
		return
	}
	d.publish(ctx, format.Morning(
		d.ledger.StartCapital(), d.ledger.RiskPercent(), d.cfg.Lot, d.cfg.Leverage))
}

// MonthlyReset restores the balance to the starting capital on the first
// day of the month; any other day it is a no-op.
func (d *Dispatcher) MonthlyReset(ctx context.Context) {
	now := d.now()
	if !markethours.IsResetDay(now) {
		return
	}
	balance := d.ledger.Reset()
	d.metrics.Balance.Set(balance)
	d.publish(ctx, format.MonthlyReset(d.ledger.StartCapital(), now))
}

// Startup publishes the deployment announcement once at boot.
func (d *Dispatcher) Startup(ctx context.Context) {
	d.publish(ctx, format.Startup(d.cfg.Pairs, d.now()))
}

// Status renders the /status reply from current state.
func (d *Dispatcher) Status() string {
	return format.Status(format.StatusInfo{
		Balance:     d.ledger.Balance(),
		RiskPercent: d.ledger.RiskPercent(),
		Lot:         d.cfg.Lot,
		Leverage:    d.cfg.Leverage,
		Pairs:       d.cfg.Pairs,
	}, d.now())
}

// Snapshot serves the HTTP status endpoint.
func (d *Dispatcher) Snapshot() metrics.StatusSnapshot {
	now := d.now()
	return metrics.StatusSnapshot{
		Balance:     d.ledger.Balance(),
		RiskPercent: d.ledger.RiskPercent(),
		Pairs:       d.cfg.Pairs,
		RestDay:     markethours.IsRestDay(now),
		Time:        markethours.Stamp(now),
	}
}
