package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"ChartForge/internal/model"
)

const defaultFinnhubBaseURL = "https://finnhub.io"

// FinnhubFetcher implements Fetcher using the Finnhub stock candle API.
type FinnhubFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFinnhubFetcher creates a new fetcher with optional proxy support.
func NewFinnhubFetcher(apiKey, proxyURL string) *FinnhubFetcher {
	return &FinnhubFetcher{
		BaseURL: defaultFinnhubBaseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *FinnhubFetcher) Name() string { return "finnhub" }

// finnhubCandles is the column-oriented response of /api/v1/stock/candle.
type finnhubCandles struct {
	Close     []float64 `json:"c"`
	High      []float64 `json:"h"`
	Low       []float64 `json:"l"`
	Open      []float64 `json:"o"`
	Status    string    `json:"s"`
	Timestamp []int64   `json:"t"`
	Volume    []int64   `json:"v"`
}

func (f *FinnhubFetcher) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.Bar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stock/candle?symbol=%s&resolution=D&from=%d&to=%d&token=%s",
		f.BaseURL, url.QueryEscape(symbol), from.Unix(), to.Unix(), url.QueryEscape(f.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("finnhub build request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch %s: %w: %v", symbol, model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("finnhub read body: %w: %v", model.ErrNetwork, err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("finnhub %s: %w: status %d", symbol, model.ErrAuth, resp.StatusCode)
	default:
		return nil, fmt.Errorf("finnhub %s: %w: status %d, body: %s", symbol, model.ErrNetwork, resp.StatusCode, string(body))
	}

	var candles finnhubCandles
	if err := json.Unmarshal(body, &candles); err != nil {
		return nil, fmt.Errorf("finnhub decode: %w: %v", model.ErrNetwork, err)
	}
	if candles.Status == "no_data" {
		return nil, fmt.Errorf("finnhub %s: %w", symbol, model.ErrNotFound)
	}
	if candles.Status != "ok" {
		return nil, fmt.Errorf("finnhub %s: %w: status %q", symbol, model.ErrNetwork, candles.Status)
	}

	n := len(candles.Timestamp)
	if len(candles.Open) != n || len(candles.High) != n || len(candles.Low) != n ||
		len(candles.Close) != n || len(candles.Volume) != n {
		return nil, fmt.Errorf("finnhub %s: %w: ragged column lengths", symbol, model.ErrNetwork)
	}
	if n == 0 {
		return nil, fmt.Errorf("finnhub %s: %w", symbol, model.ErrNotFound)
	}

	bars := make([]model.Bar, 0, n)
	for i, ts := range candles.Timestamp {
		b := model.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   candles.Open[i],
			High:   candles.High[i],
			Low:    candles.Low[i],
			Close:  candles.Close[i],
			Volume: candles.Volume[i],
		}
		if b.Validate() != nil {
			continue // skip malformed bars (holidays, partial sessions)
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
