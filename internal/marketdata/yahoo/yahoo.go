// Package yahoo implements the keyless fallback candle provider against the
// Yahoo Finance chart endpoint.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fxsignal/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds the Yahoo chart client configuration.
type Config struct {
	BaseURL string        // defaults to the public endpoint when empty
	Timeout time.Duration // per-request timeout
}

// Client fetches hourly candles from the Yahoo Finance chart API.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Yahoo chart client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 12 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "yahoo" }

// Ticker maps a pair to its Yahoo FX ticker: "EUR/USD" -> "EURUSD=X".
func Ticker(pair string) string {
	return strings.ReplaceAll(pair, "/", "") + "=X"
}

// chartResponse is the subset of the v8 chart envelope we consume.
// Quote fields use pointers because Yahoo emits null for gap rows.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Candles fetches the last ~2 days of hourly candles for pair and returns
// them newest-first (the chart API delivers oldest-first).
func (c *Client) Candles(ctx context.Context, pair string) (model.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=2d&interval=60m", c.cfg.BaseURL, Ticker(pair))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (fxsignal)")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo: http %d", res.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("yahoo: decode: %w", err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: response has no quote data")
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(model.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// Null quote entries are gap rows; drop them.
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		series = append(series, model.Candle{
			TS:    time.Unix(ts, 0).UTC(),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		})
	}

	// Oldest-first from the API; callers expect newest-first.
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series, nil
}
