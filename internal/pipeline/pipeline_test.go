package pipeline

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ChartForge/internal/fetcher"
	"ChartForge/internal/model"
	"ChartForge/internal/recorder"
	"ChartForge/internal/sink"
)

type failingFetcher struct{ err error }

func (f *failingFetcher) Name() string { return "failing" }
func (f *failingFetcher) FetchDailyBars(context.Context, string, time.Time, time.Time) ([]model.Bar, error) {
	return nil, f.err
}

// memorySink captures the rendered canvas instead of touching disk.
type memorySink struct{ img image.Image }

func (m *memorySink) Extension() string { return "png" }
func (m *memorySink) Encode(img image.Image, _ string) error {
	m.img = img
	return nil
}

func defaultOpts() Options {
	return Options{Width: 640, Height: 480, Margin: 40, LookbackDays: 180}
}

func TestPipelineRunWritesChart(t *testing.T) {
	out := filepath.Join(t.TempDir(), "AAPL.png")
	p := New(&fetcher.MockFetcher{BasePrice: 100}, sink.NewSink("png"), recorder.NewNoopRecorder(), defaultOpts())

	if err := p.Run(context.Background(), "AAPL", model.PeriodWeekly, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestPipelineRendersExpectedCanvas(t *testing.T) {
	ms := &memorySink{}
	p := New(&fetcher.MockFetcher{BasePrice: 250}, ms, recorder.NewNoopRecorder(), defaultOpts())

	if err := p.Run(context.Background(), "MSFT", model.PeriodMonthly, "ignored.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.img == nil {
		t.Fatal("sink never received a canvas")
	}
	if b := ms.img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("canvas size: expected 640x480, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPipelineSurfacesFetchErrors(t *testing.T) {
	for _, sentinel := range []error{model.ErrNetwork, model.ErrAuth, model.ErrNotFound} {
		p := New(&failingFetcher{err: sentinel}, &memorySink{}, recorder.NewNoopRecorder(), defaultOpts())
		err := p.Run(context.Background(), "AAPL", model.PeriodWeekly, "x.png")
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to surface unchanged, got %v", sentinel, err)
		}
	}
}

func TestPipelineRejectsEmptyHistory(t *testing.T) {
	empty := &fetcher.MockFetcher{Bars: []model.Bar{}}
	p := New(empty, &memorySink{}, recorder.NewNoopRecorder(), defaultOpts())
	err := p.Run(context.Background(), "AAPL", model.PeriodWeekly, "x.png")
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty history, got %v", err)
	}
}
