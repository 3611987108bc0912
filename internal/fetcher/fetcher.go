package fetcher

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"time"

	"ChartForge/internal/model"
)

// Fetcher defines the interface for retrieving daily price history.
type Fetcher interface {
	// FetchDailyBars returns daily bars for symbol in [from, to],
	// sorted ascending by date.
	FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.Bar, error)
	Name() string
}

// newHTTPClient builds an HTTP client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	BasePrice float64
	Bars      []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, from, to time.Time) ([]model.Bar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.BasePrice, from, to), nil
}

// generateMockBars produces a deterministic gentle sine walk over the
// weekdays in [from, to].
func generateMockBars(basePrice float64, from, to time.Time) []model.Bar {
	if basePrice <= 0 {
		basePrice = 100
	}
	var bars []model.Bar
	i := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/9))
		bars = append(bars, model.Bar{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 + int64(i%7)*50000,
		})
		i++
	}
	return bars
}
