package cache

import (
	"context"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"fxsignal/internal/model"
)

type stubSource struct {
	calls  int
	series model.Series
}

func (s *stubSource) Fetch(ctx context.Context, pair string) (model.Series, error) {
	s.calls++
	return s.series, nil
}

// An unreachable redis must degrade to a direct fetch, never fail the cycle.
func TestFetch_DegradesWhenRedisDown(t *testing.T) {
	inner := &stubSource{series: model.Series{
		{TS: time.Now().UTC(), Open: 1.1, High: 1.2, Low: 1.0, Close: 1.15},
	}}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1", // nothing listens here
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	src := New(inner, rdb, time.Minute)
	series, err := src.Fetch(context.Background(), "EUR/USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d candles, want 1", len(series))
	}
	if inner.calls != 1 {
		t.Errorf("inner source called %d times, want 1", inner.calls)
	}
}

func TestKey(t *testing.T) {
	if got := key("EUR/USD"); got != "candles:1h:EUR/USD" {
		t.Errorf("key = %q", got)
	}
}
