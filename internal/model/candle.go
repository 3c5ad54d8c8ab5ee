package model

import (
	"encoding/json"
	"time"
)

// Candle represents one hourly OHLC observation for a currency pair.
// Prices are float64 quote-currency values (e.g. 1.10235 for EUR/USD).
type Candle struct {
	TS    time.Time `json:"ts"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Series is an ordered sequence of candles for one pair, newest first.
type Series []Candle

// MinWindow is the minimum number of candles required to produce a signal.
const MinWindow = 60

// Latest returns the most recent candle. Callers must check Len first.
func (s Series) Latest() Candle { return s[0] }

// JSON returns the JSON-encoded series (errors ignored; used for cache writes).
func (s Series) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}
