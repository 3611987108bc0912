package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"ChartForge/internal/chart"
	"ChartForge/internal/fetcher"
	"ChartForge/internal/model"
	"ChartForge/internal/recorder"
	"ChartForge/internal/resample"
	"ChartForge/internal/sink"
)

// Options are the chart parameters one render runs with.
type Options struct {
	Width        int
	Height       int
	Margin       int
	SMAPeriods   []int
	LookbackDays int
}

// Pipeline wires the data source, the core transformation stages and the
// image sink into one render pass. The core stages themselves are pure;
// all logging happens here.
type Pipeline struct {
	Fetcher  fetcher.Fetcher
	Sink     sink.Sink
	Recorder recorder.Recorder
	Opts     Options
}

// New creates a Pipeline.
func New(f fetcher.Fetcher, s sink.Sink, rec recorder.Recorder, opts Options) *Pipeline {
	return &Pipeline{Fetcher: f, Sink: s, Recorder: rec, Opts: opts}
}

// Run fetches the symbol's daily history, resamples it to the requested
// period, renders the candlestick chart and writes it to outPath. Any
// stage error aborts the run and is returned with stage context.
func (p *Pipeline) Run(ctx context.Context, symbol string, period model.Period, outPath string) error {
	start := time.Now()
	to := start
	from := to.AddDate(0, 0, -p.Opts.LookbackDays)

	log.Printf("[INFO] fetching %s price data from %s to %s via %s",
		symbol, from.Format("2006-01-02"), to.Format("2006-01-02"), p.Fetcher.Name())
	bars, err := p.Fetcher.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}
	log.Printf("[INFO] fetched %d daily bars for %s", len(bars), symbol)

	candles, err := resample.Resample(bars, period)
	if err != nil {
		return fmt.Errorf("resample %s to %s: %w", symbol, period, err)
	}

	geom, err := chart.Layout(candles, p.Opts.Width, p.Opts.Height, p.Opts.Margin)
	if err != nil {
		return fmt.Errorf("layout %d candles: %w", len(candles), err)
	}
	if elided := len(candles) - geom.VisibleCount; elided > 0 {
		log.Printf("[WARN] canvas fits %d of %d candles, eliding the earliest %d",
			geom.VisibleCount, len(candles), elided)
	}

	r := chart.NewRenderer(fmt.Sprintf("%s Stock Price", symbol), period, p.Opts.SMAPeriods)
	img := r.Render(candles, geom)

	if err := p.Sink.Encode(img, outPath); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	rec := &recorder.RenderRecord{
		Symbol:      symbol,
		Period:      period.String(),
		BarCount:    len(bars),
		CandleCount: len(candles),
		Elided:      len(candles) - geom.VisibleCount,
		PriceMin:    geom.PriceMin,
		PriceMax:    geom.PriceMax,
		OutputPath:  outPath,
		DurationMs:  time.Since(start).Milliseconds(),
	}
	if err := p.Recorder.RecordRender(rec); err != nil {
		log.Printf("[WARN] record render history: %v", err)
	}

	log.Printf("[INFO] chart saved to %s (%d %s candles, %.2f..%.2f)",
		outPath, geom.VisibleCount, period, geom.PriceMin, geom.PriceMax)
	return nil
}
