package model

import (
	"fmt"
	"time"
)

// Bar represents a single day's OHLCV observation for one symbol.
// Bars are immutable once produced by a fetcher.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Validate checks the OHLC ordering invariant. Fetchers drop bars
// that fail validation rather than passing them downstream.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("%w: non-positive price on %s", ErrInvalidInput, b.Date.Format("2006-01-02"))
	}
	if b.Volume < 0 {
		return fmt.Errorf("%w: negative volume on %s", ErrInvalidInput, b.Date.Format("2006-01-02"))
	}
	if b.Low > b.Open || b.Low > b.Close || b.Open > b.High || b.Close > b.High {
		return fmt.Errorf("%w: OHLC ordering violated on %s", ErrInvalidInput, b.Date.Format("2006-01-02"))
	}
	return nil
}
