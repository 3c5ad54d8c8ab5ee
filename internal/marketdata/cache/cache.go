// Package cache wraps a candle source with a short-TTL redis read-through
// cache so the heartbeat and the hourly scan don't double-hit providers.
//
// The cache holds only transient candle series — balance and signal history
// are never written anywhere.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"fxsignal/internal/marketdata"
	"fxsignal/internal/model"
)

const defaultTTL = 5 * time.Minute

// Source is a read-through caching wrapper around another marketdata.Source.
type Source struct {
	inner marketdata.Source
	rdb   *goredis.Client
	ttl   time.Duration
}

// New creates a caching source. A TTL of 0 uses the default.
func New(inner marketdata.Source, rdb *goredis.Client, ttl time.Duration) *Source {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Source{inner: inner, rdb: rdb, ttl: ttl}
}

// Connect dials redis and pings it. Returns nil client on failure so callers
// can run uncached.
func Connect(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func key(pair string) string {
	return "candles:1h:" + pair
}

// Fetch returns the cached series when fresh, otherwise delegates to the
// inner source and caches the result. Cache errors degrade to a direct fetch.
func (s *Source) Fetch(ctx context.Context, pair string) (model.Series, error) {
	if raw, err := s.rdb.Get(ctx, key(pair)).Bytes(); err == nil {
		var series model.Series
		if err := json.Unmarshal(raw, &series); err == nil && len(series) > 0 {
			return series, nil
		}
		// Corrupt entry: drop it and fall through to a real fetch.
		s.rdb.Del(ctx, key(pair))
	}

	series, err := s.inner.Fetch(ctx, pair)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, key(pair), series.JSON(), s.ttl).Err(); err != nil {
		slog.Warn("candle cache write failed", "pair", pair, "err", err)
	}
	return series, nil
}
