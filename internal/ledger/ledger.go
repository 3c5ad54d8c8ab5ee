// Package ledger tracks the simulated account balance.
//
// The balance is the only state shared across scan cycles. The scheduled
// scan applies outcomes while the /status listener reads concurrently, so
// every access goes through the mutex.
package ledger

import (
	"log/slog"
	"math"
	"sync"
)

// Ledger holds the simulated account balance under a fixed risk-per-trade model.
type Ledger struct {
	mu          sync.RWMutex
	start       float64
	capital     float64
	riskPercent float64
	riskReward  float64
}

// New creates a Ledger with the given starting capital, risk percent per
// trade and risk:reward ratio.
func New(startCapital, riskPercent, riskReward float64) *Ledger {
	return &Ledger{
		start:       startCapital,
		capital:     startCapital,
		riskPercent: riskPercent,
		riskReward:  riskReward,
	}
}

// Apply records a simulated outcome and returns the new balance.
// Wins add the reward, losses subtract the risk. There is no floor —
// the balance may go negative.
func (l *Ledger) Apply(won bool, risk, reward float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if won {
		l.capital += reward
	} else {
		l.capital -= risk
	}
	slog.Info("balance updated", "won", won, "balance", l.capital)
	return l.capital
}

// Reset restores the balance to the starting capital unconditionally and
// returns it. The triggering policy (first of month) is the dispatcher's.
func (l *Ledger) Reset() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.capital = l.start
	slog.Info("balance reset", "balance", l.capital)
	return l.capital
}

// Balance returns the current balance.
func (l *Ledger) Balance() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capital
}

// StartCapital returns the configured starting capital.
func (l *Ledger) StartCapital() float64 { return l.start }

// RiskPercent returns the configured risk percent per trade.
func (l *Ledger) RiskPercent() float64 { return l.riskPercent }

// RiskAmounts returns the dollar risk and reward for the next trade,
// sized from the current balance and rounded to cents.
func (l *Ledger) RiskAmounts() (risk, reward float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	risk = round2(l.capital * l.riskPercent / 100)
	reward = round2(risk * l.riskReward)
	return risk, reward
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
