// Package resample aggregates ordered daily bars into coarser-period candles.
//
// Buckets are derived from the bars that are actually present: missing
// trading days inside a week or month produce no gap-filling candle, and a
// partial first or last bucket is emitted with whatever bars it has.
package resample

import (
	"fmt"

	"ChartForge/internal/model"
)

// Resample groups a date-sorted sequence of daily bars into candles under
// the given period. Daily is a pass-through (one candle per bar).
func Resample(bars []model.Bar, p model.Period) ([]model.Candle, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("resample: %w: empty bar sequence", model.ErrInvalidInput)
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			return nil, fmt.Errorf("resample: %w: bars out of order at index %d (%s before %s)",
				model.ErrInvalidInput, i,
				bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}

	candles := make([]model.Candle, 0, len(bars))
	cur := startCandle(bars[0])
	curKey := p.Key(bars[0].Date)

	for _, b := range bars[1:] {
		key := p.Key(b.Date)
		if key != curKey {
			candles = append(candles, cur)
			cur = startCandle(b)
			curKey = key
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
		cur.PeriodEnd = b.Date
		cur.BarCount++
	}
	candles = append(candles, cur)
	return candles, nil
}

// startCandle opens a new bucket seeded from its first bar.
func startCandle(b model.Bar) model.Candle {
	return model.Candle{
		PeriodStart: b.Date,
		PeriodEnd:   b.Date,
		Open:        b.Open,
		High:        b.High,
		Low:         b.Low,
		Close:       b.Close,
		Volume:      b.Volume,
		BarCount:    1,
	}
}
