package chart

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"ChartForge/internal/calculator"
	"ChartForge/internal/model"
)

const (
	priceTicks    = 5    // horizontal gridlines across PriceMin..PriceMax
	bodyWidthFrac = 0.35 // body half-width as a fraction of the slot width
	minLabelGap   = 60.0 // minimum pixels between date labels
	dateFormat    = "02-01-2006"
)

// Renderer draws a candle sequence onto a canvas using a precomputed
// Geometry. It is a pure transformation: the same inputs always produce a
// pixel-identical image.
type Renderer struct {
	Theme      Theme
	Title      string
	Period     model.Period // controls x-label granularity
	SMAPeriods []int        // rolling-average overlays; empty means none
}

// NewRenderer creates a Renderer with the default theme.
func NewRenderer(title string, period model.Period, smaPeriods []int) *Renderer {
	return &Renderer{Theme: DefaultTheme, Title: title, Period: period, SMAPeriods: smaPeriods}
}

// Render draws gridlines, candles, overlays and labels and returns the
// finished canvas. Candles beyond geom.VisibleCount are elided from the
// left, matching the window the geometry was computed over.
func (r *Renderer) Render(candles []model.Candle, geom Geometry) image.Image {
	dc := gg.NewContext(geom.Width, geom.Height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(r.Theme.Background)
	dc.Clear()

	visible := geom.Visible(candles)

	r.drawGrid(dc, geom)
	r.drawCandles(dc, visible, geom)
	r.drawOverlays(dc, candles, geom)
	r.drawDateLabels(dc, visible, geom)

	if r.Title != "" {
		dc.SetColor(r.Theme.Text)
		dc.DrawStringAnchored(r.Title, float64(geom.Width)/2, float64(geom.Margin)/2, 0.5, 0.5)
	}

	return dc.Image()
}

// drawGrid draws the axis frame plus evenly spaced horizontal gridlines,
// each labeled with its price to two decimals.
func (r *Renderer) drawGrid(dc *gg.Context, geom Geometry) {
	left := float64(geom.Margin)
	right := float64(geom.Width - geom.Margin)
	top := float64(geom.Margin)
	bottom := float64(geom.Height - geom.Margin)

	dc.SetLineWidth(1)
	step := (geom.PriceMax - geom.PriceMin) / float64(priceTicks-1)
	for i := 0; i < priceTicks; i++ {
		price := geom.PriceMin + float64(i)*step
		y := geom.Y(price)

		dc.SetColor(r.Theme.Grid)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()

		dc.SetColor(r.Theme.Text)
		dc.DrawStringAnchored(fmt.Sprintf("%.2f", price), left-6, y, 1, 0.5)
	}

	dc.SetColor(r.Theme.Axis)
	dc.DrawLine(left, top, left, bottom)
	dc.Stroke()
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()
}

// drawCandles draws one wick and body per visible candle. A candle is "up"
// when close >= open (a tie counts as up) and "down" otherwise.
func (r *Renderer) drawCandles(dc *gg.Context, visible []model.Candle, geom Geometry) {
	bodyHalf := geom.SlotWidth * bodyWidthFrac
	if bodyHalf < 1 {
		bodyHalf = 1
	}

	for i, c := range visible {
		x := geom.XCenter(i)
		if c.Close >= c.Open {
			dc.SetColor(r.Theme.Up)
		} else {
			dc.SetColor(r.Theme.Down)
		}

		// Wick: high to low, hairline.
		dc.SetLineWidth(1)
		dc.DrawLine(x, geom.Y(c.High), x, geom.Y(c.Low))
		dc.Stroke()

		// Body: open to close. A flat candle still gets a visible
		// 1-pixel line instead of a zero-height rectangle.
		yTop := geom.Y(math.Max(c.Open, c.Close))
		h := math.Abs(geom.Y(c.Open) - geom.Y(c.Close))
		if h < 1 {
			h = 1
		}
		dc.DrawRectangle(x-bodyHalf, yTop, bodyHalf*2, h)
		dc.Fill()
	}
}

// drawOverlays draws one SMA polyline per configured period, clipped to
// the plot area. Series are computed over the full candle history so the
// leading visible values are still correct after eliding.
func (r *Renderer) drawOverlays(dc *gg.Context, candles []model.Candle, geom Geometry) {
	if len(r.SMAPeriods) == 0 {
		return
	}
	offset := len(candles) - geom.VisibleCount

	dc.Push()
	dc.DrawRectangle(float64(geom.Margin), float64(geom.Margin),
		float64(geom.Width-2*geom.Margin), float64(geom.Height-2*geom.Margin))
	dc.Clip()

	for oi, period := range r.SMAPeriods {
		series := calculator.SMASeries(candles, period)
		dc.SetColor(r.Theme.OverlayColor(oi))
		dc.SetLineWidth(1.5)
		started := false
		for i := 0; i < geom.VisibleCount; i++ {
			v := series[offset+i]
			if math.IsNaN(v) {
				started = false
				continue
			}
			x, y := geom.XCenter(i), geom.Y(v)
			if !started {
				dc.MoveTo(x, y)
				started = true
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	dc.ResetClip()
	dc.Pop()
}

// drawDateLabels labels the x axis at period boundaries: the last candle of
// each month (each year for monthly candles) and the final candle, skipping
// labels that would crowd closer than minLabelGap pixels.
func (r *Renderer) drawDateLabels(dc *gg.Context, visible []model.Candle, geom Geometry) {
	bottom := float64(geom.Height - geom.Margin)
	dc.SetColor(r.Theme.Text)
	dc.SetLineWidth(1)

	lastX := math.Inf(-1)
	for i, c := range visible {
		if !r.shouldLabel(visible, i) {
			continue
		}
		x := geom.XCenter(i)
		if x-lastX < minLabelGap {
			continue
		}
		lastX = x

		dc.DrawLine(x, bottom, x, bottom+4)
		dc.Stroke()
		dc.DrawStringAnchored(c.PeriodStart.Format(dateFormat), x, bottom+14, 0.5, 0.5)
	}
}

// shouldLabel reports whether visible[i] closes out a month, or a year when
// the candles themselves are monthly.
func (r *Renderer) shouldLabel(visible []model.Candle, i int) bool {
	if i == len(visible)-1 {
		return true
	}
	cur, next := visible[i].PeriodStart, visible[i+1].PeriodStart
	if r.Period == model.PeriodMonthly {
		return cur.Year() != next.Year()
	}
	return cur.Month() != next.Month() || cur.Year() != next.Year()
}
