package chart

import "image/color"

// Theme holds the chart palette.
type Theme struct {
	Background color.Color
	Grid       color.Color
	Axis       color.Color
	Text       color.Color
	Up         color.Color
	Down       color.Color
	Overlays   []color.Color
}

// DefaultTheme matches the classic white-background green/red candlestick look.
var DefaultTheme = Theme{
	Background: color.RGBA{255, 255, 255, 255},
	Grid:       color.RGBA{225, 225, 225, 255},
	Axis:       color.RGBA{120, 120, 120, 255},
	Text:       color.RGBA{60, 60, 60, 255},
	Up:         color.RGBA{22, 160, 74, 255},
	Down:       color.RGBA{220, 38, 38, 255},
	Overlays: []color.Color{
		color.RGBA{37, 99, 235, 255},  // blue
		color.RGBA{234, 140, 8, 255},  // orange
		color.RGBA{139, 92, 246, 255}, // violet
	},
}

// OverlayColor cycles through the overlay palette.
func (t Theme) OverlayColor(i int) color.Color {
	if len(t.Overlays) == 0 {
		return t.Axis
	}
	return t.Overlays[i%len(t.Overlays)]
}
