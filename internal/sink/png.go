package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"ChartForge/internal/model"
)

// PNGSink writes the canvas as a PNG file.
type PNGSink struct{}

func (PNGSink) Extension() string { return "png" }

func (PNGSink) Encode(img image.Image, path string) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png %s: %w: %v", path, model.ErrIO, err)
	}
	return nil
}

// createOutputFile creates the parent directory if needed and opens the
// output file for writing.
func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w: %v", dir, model.ErrIO, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w: %v", path, model.ErrIO, err)
	}
	return f, nil
}
