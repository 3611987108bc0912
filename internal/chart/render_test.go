package chart

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"ChartForge/internal/model"
)

func twoCandles() []model.Candle {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return []model.Candle{
		{PeriodStart: mon, PeriodEnd: mon.AddDate(0, 0, 4),
			Open: 100, High: 112, Low: 98, Close: 110, Volume: 1000, BarCount: 5},
		{PeriodStart: mon.AddDate(0, 0, 7), PeriodEnd: mon.AddDate(0, 0, 11),
			Open: 110, High: 112, Low: 98, Close: 100, Volume: 1000, BarCount: 5},
	}
}

func renderOnce(t *testing.T, candles []model.Candle, w, h, margin int) (image.Image, Geometry) {
	t.Helper()
	geom, err := Layout(candles, w, h, margin)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	r := NewRenderer("TEST Stock Price", model.PeriodWeekly, nil)
	return r.Render(candles, geom), geom
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRender_CanvasSize(t *testing.T) {
	img, _ := renderOnce(t, twoCandles(), 400, 300, 40)
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("canvas size: expected 400x300, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRender_UpDownColors(t *testing.T) {
	candles := twoCandles()
	img, geom := renderOnce(t, candles, 400, 300, 40)

	sample := func(i int, c model.Candle) color.RGBA {
		x := int(math.Round(geom.XCenter(i)))
		y := int(math.Round((geom.Y(c.Open) + geom.Y(c.Close)) / 2))
		return rgbaAt(img, x, y)
	}

	up := DefaultTheme.Up.(color.RGBA)
	down := DefaultTheme.Down.(color.RGBA)
	if got := sample(0, candles[0]); got != up {
		t.Errorf("up candle body: expected %v, got %v", up, got)
	}
	if got := sample(1, candles[1]); got != down {
		t.Errorf("down candle body: expected %v, got %v", down, got)
	}
}

func TestRender_TieRendersAsUp(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	candles := []model.Candle{
		{PeriodStart: mon, PeriodEnd: mon, Open: 100, High: 105, Low: 95, Close: 100, Volume: 1, BarCount: 1},
	}
	img, geom := renderOnce(t, candles, 400, 300, 40)

	// The flat body is drawn as a 1px-high line; scan a few rows around
	// Y(open) at the candle center for the up color.
	x := int(math.Round(geom.XCenter(0)))
	yc := int(math.Round(geom.Y(100)))
	up := DefaultTheme.Up.(color.RGBA)
	found := false
	for y := yc - 2; y <= yc+2; y++ {
		if rgbaAt(img, x, y) == up {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("flat candle should render a visible up-colored body line near y=%d", yc)
	}
}

func TestRender_WickSpansHighToLow(t *testing.T) {
	candles := twoCandles()
	img, geom := renderOnce(t, candles, 400, 300, 40)

	x := int(math.Round(geom.XCenter(0)))
	bg := DefaultTheme.Background.(color.RGBA)
	// A point between the body top and the high should be on the wick,
	// not background.
	y := int(math.Round((geom.Y(candles[0].High) + geom.Y(candles[0].Close)) / 2))
	if rgbaAt(img, x, y) == bg {
		t.Errorf("expected wick pixel at (%d,%d), found background", x, y)
	}
}

func TestRender_Idempotent(t *testing.T) {
	candles := twoCandles()
	img1, _ := renderOnce(t, candles, 400, 300, 40)
	img2, _ := renderOnce(t, candles, 400, 300, 40)

	a, ok1 := img1.(*image.RGBA)
	b, ok2 := img2.(*image.RGBA)
	if !ok1 || !ok2 {
		t.Fatalf("expected *image.RGBA canvases")
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two renders of identical input differ pixel-wise")
	}
}

func TestRender_WithSMAOverlayStaysDeterministic(t *testing.T) {
	var candles []model.Candle
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		p := 100 + math.Sin(float64(i)/4)*5
		candles = append(candles, model.Candle{
			PeriodStart: d, PeriodEnd: d,
			Open: p, High: p + 2, Low: p - 2, Close: p + 1,
			Volume: 1000, BarCount: 1,
		})
		d = d.AddDate(0, 0, 7)
	}
	geom, err := Layout(candles, 640, 480, 40)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	r := NewRenderer("SMA", model.PeriodWeekly, []int{10})
	a := r.Render(candles, geom).(*image.RGBA)
	b := r.Render(candles, geom).(*image.RGBA)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("overlay render is not deterministic")
	}
}
