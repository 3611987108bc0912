package model

import (
	"fmt"
	"strings"
	"time"
)

// Period selects how daily bars are bucketed into candles.
type Period int

const (
	PeriodDaily Period = iota
	PeriodWeekly
	PeriodMonthly
)

// ParsePeriod converts a user-supplied string into a Period.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return PeriodDaily, nil
	case "weekly", "week", "w", "":
		return PeriodWeekly, nil
	case "monthly", "month", "m":
		return PeriodMonthly, nil
	default:
		return 0, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, s)
	}
}

func (p Period) String() string {
	switch p {
	case PeriodDaily:
		return "daily"
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// BucketKey identifies the bucket a date falls into under this period.
// Keys compare equal iff two dates share a bucket; for date-sorted input
// the key sequence is non-decreasing, so buckets are contiguous runs.
type BucketKey struct {
	Year int
	Sub  int
}

// Key returns the bucket key for t under period p.
//   - daily:   (year, day of year)
//   - weekly:  ISO 8601 (year, week number)
//   - monthly: (year, month)
func (p Period) Key(t time.Time) BucketKey {
	switch p {
	case PeriodWeekly:
		y, w := t.ISOWeek()
		return BucketKey{Year: y, Sub: w}
	case PeriodMonthly:
		return BucketKey{Year: t.Year(), Sub: int(t.Month())}
	default:
		return BucketKey{Year: t.Year(), Sub: t.YearDay()}
	}
}
