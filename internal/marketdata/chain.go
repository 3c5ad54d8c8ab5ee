// Package marketdata fetches hourly candle series for currency pairs.
//
// Providers are tried in configured order until one yields a usable series;
// any provider failure falls through to the next. Callers see either a
// newest-first series or ErrUnavailable — never a provider error.
package marketdata

import (
	"context"
	"errors"
	"log/slog"

	"fxsignal/internal/model"
)

// ErrUnavailable is returned when no provider yields a usable series.
// Callers treat it as "skip this pair this cycle", never as fatal.
var ErrUnavailable = errors.New("marketdata: no provider returned usable candles")

// Provider fetches hourly candles for one pair, newest first.
type Provider interface {
	Name() string
	Candles(ctx context.Context, pair string) (model.Series, error)
}

// Source is the candle-fetching capability consumed by the dispatcher.
type Source interface {
	Fetch(ctx context.Context, pair string) (model.Series, error)
}

// Chain tries an ordered list of providers and rejects series shorter than
// the minimum window.
type Chain struct {
	providers  []Provider
	minCandles int
}

// NewChain creates a Chain over the given providers. minCandles is the
// shortest series considered usable.
func NewChain(minCandles int, providers ...Provider) *Chain {
	return &Chain{providers: providers, minCandles: minCandles}
}

// Fetch returns the first usable series, or ErrUnavailable when every
// provider fails or returns too few candles.
func (c *Chain) Fetch(ctx context.Context, pair string) (model.Series, error) {
	for _, p := range c.providers {
		series, err := p.Candles(ctx, pair)
		if err != nil {
			slog.Warn("provider fetch failed", "provider", p.Name(), "pair", pair, "err", err)
			continue
		}
		if len(series) < c.minCandles {
			slog.Warn("provider returned short series",
				"provider", p.Name(), "pair", pair, "candles", len(series), "min", c.minCandles)
			continue
		}
		return series, nil
	}
	return nil, ErrUnavailable
}
