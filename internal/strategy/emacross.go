// Package strategy derives trade signals from candle series.
//
// The single strategy is a trend-following EMA20/EMA50 crossover: long when
// the fast average sits above the slow one at the latest candle, short
// otherwise. Stops and targets are sized from the latest candle's high-low
// range. Analysis is a pure function of its input — no retained state.
package strategy

import (
	"math"

	"fxsignal/internal/model"
)

const (
	fastSpan = 20
	slowSpan = 50

	// MinRange floors the volatility proxy so a flat candle can never
	// produce a zero-width stop.
	MinRange = 0.0008
)

// Analyzer computes signals from candle series.
type Analyzer struct {
	riskReward float64
}

// NewAnalyzer creates an Analyzer with the given risk:reward ratio.
func NewAnalyzer(riskReward float64) *Analyzer {
	return &Analyzer{riskReward: riskReward}
}

// RiskReward returns the configured risk:reward ratio.
func (a *Analyzer) RiskReward() float64 { return a.riskReward }

// Analyze derives a signal from a newest-first candle series.
// Returns ok=false when the series is shorter than the minimum window —
// that is "no signal", not an error.
func (a *Analyzer) Analyze(pair string, series model.Series) (model.Signal, bool) {
	if len(series) < model.MinWindow {
		return model.Signal{}, false
	}

	// Series arrives newest-first; the EMA recursion runs oldest-first.
	closes := make([]float64, len(series))
	for i, c := range series {
		closes[len(series)-1-i] = c.Close
	}

	fast := ema(closes, fastSpan)
	slow := ema(closes, slowSpan)

	// Non-strict comparison: a tie resolves short.
	direction := model.DirectionShort
	if fast > slow {
		direction = model.DirectionLong
	}

	latest := series.Latest()
	rng := math.Abs(latest.High - latest.Low)
	if rng < MinRange {
		rng = MinRange
	}

	sig := model.Signal{
		Pair:       pair,
		Direction:  direction,
		Entry:      latest.Close,
		Range:      rng,
		RiskReward: a.riskReward,
	}
	if direction == model.DirectionLong {
		sig.StopLoss = sig.Entry - rng
		sig.TakeProfit = sig.Entry + rng*a.riskReward
	} else {
		sig.StopLoss = sig.Entry + rng
		sig.TakeProfit = sig.Entry - rng*a.riskReward
	}
	return sig, true
}
