// Package twelvedata implements the key-gated primary candle provider
// against the Twelve Data time_series endpoint.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fxsignal/internal/model"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Config holds the Twelve Data client configuration.
type Config struct {
	APIKey     string
	BaseURL    string        // defaults to the public endpoint when empty
	OutputSize int           // candles requested per call
	Timeout    time.Duration // per-request timeout
}

// Client fetches hourly candles from Twelve Data.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Twelve Data client. The API key must be non-empty —
// key-less setups should not put this provider in the chain at all.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.OutputSize == 0 {
		cfg.OutputSize = 2 * model.MinWindow
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 12 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "twelvedata" }

// timeSeriesResponse is the time_series JSON envelope. OHLC fields arrive
// as strings.
type timeSeriesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
	} `json:"values"`
}

// Candles fetches the most recent hourly candles for pair (e.g. "EUR/USD").
// Twelve Data returns values newest-first, which is the order callers expect.
func (c *Client) Candles(ctx context.Context, pair string) (model.Series, error) {
	q := url.Values{}
	q.Set("symbol", pair)
	q.Set("interval", "1h")
	q.Set("outputsize", strconv.Itoa(c.cfg.OutputSize))
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/time_series?%s", c.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twelvedata: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata: http %d", res.StatusCode)
	}

	var body timeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("twelvedata: decode: %w", err)
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}
	if len(body.Values) == 0 {
		return nil, fmt.Errorf("twelvedata: response has no values")
	}

	series := make(model.Series, 0, len(body.Values))
	for _, v := range body.Values {
		ts, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			ts, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				continue // unparseable row, drop it
			}
		}
		o, err1 := strconv.ParseFloat(v.Open, 64)
		h, err2 := strconv.ParseFloat(v.High, 64)
		l, err3 := strconv.ParseFloat(v.Low, 64)
		cl, err4 := strconv.ParseFloat(v.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue // rows that fail numeric coercion are dropped, not fatal
		}
		series = append(series, model.Candle{TS: ts, Open: o, High: h, Low: l, Close: cl})
	}
	return series, nil
}
