package model

import "time"

// Candle is one aggregated OHLCV observation over a coarser period,
// derived from one or more daily Bars.
type Candle struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      int64
	BarCount    int
}
