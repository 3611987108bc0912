package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ChartForge/internal/model"
)

func finnhubServer(t *testing.T, status int, body string) *FinnhubFetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			t.Error("request is missing the token parameter")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	f := NewFinnhubFetcher("test-key", "")
	f.BaseURL = srv.URL
	return f
}

func TestFinnhubFetchDailyBars(t *testing.T) {
	body := `{"s":"ok",
		"t":[1709510400,1709596800,1709683200],
		"o":[100,102,103],"h":[105,104,106],"l":[99,101,102],"c":[102,103,101],
		"v":[1000,1100,900]}`
	f := finnhubServer(t, http.StatusOK, body)

	bars, err := f.FetchDailyBars(context.Background(), "AAPL",
		time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	if bars[0].Open != 100 || bars[0].Volume != 1000 {
		t.Errorf("first bar mismatch: %+v", bars[0])
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			t.Fatal("bars must be sorted ascending by date")
		}
	}
}

func TestFinnhubSkipsMalformedBars(t *testing.T) {
	// Second column set violates OHLC ordering and must be dropped.
	body := `{"s":"ok",
		"t":[1709510400,1709596800],
		"o":[100,200],"h":[105,104],"l":[99,101],"c":[102,103],
		"v":[1000,1100]}`
	f := finnhubServer(t, http.StatusOK, body)

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected the malformed bar to be skipped, got %d bars", len(bars))
	}
}

func TestFinnhubErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"no data", http.StatusOK, `{"s":"no_data"}`, model.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, `{}`, model.ErrAuth},
		{"forbidden", http.StatusForbidden, `{}`, model.ErrAuth},
		{"server error", http.StatusInternalServerError, `{}`, model.ErrNetwork},
		{"ragged columns", http.StatusOK, `{"s":"ok","t":[1709510400],"o":[],"h":[],"l":[],"c":[],"v":[]}`, model.ErrNetwork},
	}
	for _, tt := range cases {
		f := finnhubServer(t, tt.status, tt.body)
		_, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now())
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestFinnhubNetworkError(t *testing.T) {
	f := NewFinnhubFetcher("test-key", "")
	f.BaseURL = "http://127.0.0.1:1" // nothing listens here
	_, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now())
	if !errors.Is(err, model.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestMockFetcherDeterministic(t *testing.T) {
	m := &MockFetcher{BasePrice: 100}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	a, err := m.FetchDailyBars(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := m.FetchDailyBars(context.Background(), "AAPL", from, to)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("mock bars not stable: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mock bars differ at %d", i)
		}
		if err := a[i].Validate(); err != nil {
			t.Fatalf("mock bar %d invalid: %v", i, err)
		}
		if wd := a[i].Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("mock bar %d falls on a weekend", i)
		}
	}
}
