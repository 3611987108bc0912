package chart

import (
	"fmt"

	"ChartForge/internal/model"
)

const (
	// pricePadFrac pads the price range outward so wicks never touch the
	// plot edge.
	pricePadFrac = 0.05

	// minSlotWidth is the narrowest x-slot a candle may occupy. When more
	// candles arrive than fit at this width, the earliest are elided and
	// only the most recent VisibleCount are drawn.
	minSlotWidth = 1.0
)

// Geometry is the pixel-space mapping for one render. It is derived from
// the candle sequence and canvas size, recomputed per render, never stored.
type Geometry struct {
	PriceMin  float64 // padded below the lowest visible low
	PriceMax  float64 // padded above the highest visible high
	SlotWidth float64 // pixels per candle
	YScale    float64 // pixels per unit price

	Width  int
	Height int
	Margin int

	// VisibleCount is how many trailing candles fit the plot area.
	VisibleCount int
}

// Layout computes the chart geometry for a candle sequence on a
// width×height canvas with the given margin on all four sides.
func Layout(candles []model.Candle, width, height, margin int) (Geometry, error) {
	if len(candles) == 0 {
		return Geometry{}, fmt.Errorf("layout: %w: empty candle sequence", model.ErrInvalidInput)
	}
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("layout: %w: canvas %dx%d", model.ErrInvalidInput, width, height)
	}
	if margin < 0 {
		return Geometry{}, fmt.Errorf("layout: %w: negative margin %d", model.ErrInvalidInput, margin)
	}

	plotW := float64(width - 2*margin)
	plotH := float64(height - 2*margin)
	if plotW < 1 || plotH < 1 {
		return Geometry{}, fmt.Errorf("layout: %w: %dx%d leaves no plot area inside margin %d",
			model.ErrCanvasTooSmall, width, height, margin)
	}

	visible := len(candles)
	if max := int(plotW / minSlotWidth); visible > max {
		visible = max
	}

	lo, hi := priceExtent(candles[len(candles)-visible:])
	if hi > lo {
		pad := (hi - lo) * pricePadFrac
		lo -= pad
		hi += pad
	} else {
		// Flat price: substitute a synthetic span so YScale stays finite.
		half := lo * 0.01
		if half < 0.01 {
			half = 0.01
		}
		lo -= half
		hi += half
	}

	return Geometry{
		PriceMin:     lo,
		PriceMax:     hi,
		SlotWidth:    plotW / float64(visible),
		YScale:       plotH / (hi - lo),
		Width:        width,
		Height:       height,
		Margin:       margin,
		VisibleCount: visible,
	}, nil
}

// Y maps a price to a y pixel. The axis is inverted: higher prices map to
// smaller y because the image origin is top-left.
func (g Geometry) Y(price float64) float64 {
	return float64(g.Margin) + (g.PriceMax-price)*g.YScale
}

// XCenter returns the x pixel at the center of visible slot i.
func (g Geometry) XCenter(i int) float64 {
	return float64(g.Margin) + float64(i)*g.SlotWidth + g.SlotWidth/2
}

// Visible returns the trailing window of candles this geometry was
// computed for.
func (g Geometry) Visible(candles []model.Candle) []model.Candle {
	return candles[len(candles)-g.VisibleCount:]
}

func priceExtent(candles []model.Candle) (lo, hi float64) {
	lo, hi = candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	return lo, hi
}
