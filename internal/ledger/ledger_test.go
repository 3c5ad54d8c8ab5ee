package ledger

import (
	"math"
	"sync"
	"testing"
)

func TestApply(t *testing.T) {
	l := New(1000, 2, 2)

	if got := l.Apply(true, 20, 40); got != 1040 {
		t.Errorf("win: balance = %v, want 1040", got)
	}

	l = New(1000, 2, 2)
	if got := l.Apply(false, 20, 40); got != 980 {
		t.Errorf("loss: balance = %v, want 980", got)
	}
}

func TestApply_NoFloor(t *testing.T) {
	l := New(10, 2, 2)
	if got := l.Apply(false, 25, 50); got != -15 {
		t.Errorf("balance = %v, want -15 (no floor)", got)
	}
}

func TestReset(t *testing.T) {
	l := New(1000, 2, 2)
	l.Apply(false, 20, 40)
	l.Apply(false, 20, 40)
	if got := l.Reset(); got != 1000 {
		t.Errorf("reset balance = %v, want 1000", got)
	}
	if got := l.Balance(); got != 1000 {
		t.Errorf("balance after reset = %v, want 1000", got)
	}
}

func TestRiskAmounts(t *testing.T) {
	l := New(1000, 2, 2)
	risk, reward := l.RiskAmounts()
	if risk != 20 {
		t.Errorf("risk = %v, want 20", risk)
	}
	if reward != 40 {
		t.Errorf("reward = %v, want 40", reward)
	}

	// Sized from the current balance, rounded to cents.
	l.Apply(true, 20, 40) // 1040
	risk, reward = l.RiskAmounts()
	if math.Abs(risk-20.80) > 1e-9 {
		t.Errorf("risk = %v, want 20.80", risk)
	}
	if math.Abs(reward-41.60) > 1e-9 {
		t.Errorf("reward = %v, want 41.60", reward)
	}
}

func TestConcurrentAccess(t *testing.T) {
	l := New(1000, 2, 2)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.Apply(true, 1, 1)
		}()
		go func() {
			defer wg.Done()
			_ = l.Balance()
			_, _ = l.RiskAmounts()
		}()
	}
	wg.Wait()
	if got := l.Balance(); got != 1050 {
		t.Errorf("balance = %v, want 1050 after 50 unit wins", got)
	}
}
