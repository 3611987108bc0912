package sink

import (
	"fmt"
	"image"
	"image/jpeg"

	"ChartForge/internal/model"
)

// JPEGSink writes the canvas as a JPEG file.
type JPEGSink struct{}

func (JPEGSink) Extension() string { return "jpg" }

func (JPEGSink) Encode(img image.Image, path string) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 92}); err != nil {
		return fmt.Errorf("encode jpeg %s: %w: %v", path, model.ErrIO, err)
	}
	return nil
}
