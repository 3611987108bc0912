// Package sink encodes a finished chart canvas to an image file. The
// renderer hands over the canvas by value; the sink owns the file write.
package sink

import (
	"image"
	"strings"
)

// Sink writes a rendered canvas to a file path.
type Sink interface {
	Encode(img image.Image, path string) error
	Extension() string
}

// NewSink creates an implementation by format (png, jpeg).
// Returns nil if the format is not supported.
func NewSink(format string) Sink {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png", "":
		return PNGSink{}
	case "jpg", "jpeg":
		return JPEGSink{}
	default:
		return nil
	}
}
