package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/menta2k/circlecrop/internal/utils"
)

// ErrEmptyImage is returned when encoding a zero-size artifact
var ErrEmptyImage = errors.New("empty image")

// Result reports the outcome of writing one artifact
type Result struct {
	Name string
	Path string
	Err  error
}

// Encode writes a in the configured format
func (e *Exporter) Encode(w io.Writer, a Artifact) error {
	if a.Image == nil || a.Image.Bounds().Empty() {
		return fmt.Errorf("failed to encode %s: %w", a.Name, ErrEmptyImage)
	}

	var err error
	switch e.opts.Format {
	case FormatWebP:
		err = webp.Encode(w, a.Image, &webp.Options{Lossless: e.opts.Lossless, Quality: float32(e.opts.Quality)})
	case FormatJPEG:
		err = imaging.Encode(w, a.Image, imaging.JPEG, imaging.JPEGQuality(e.opts.Quality))
	default:
		err = imaging.Encode(w, a.Image, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", a.Name, err)
	}
	return nil
}

// WriteAll writes each artifact into dir. Artifacts are independent: a
// failure is recorded in its Result and the rest are still written.
func (e *Exporter) WriteAll(dir string, artifacts []Artifact) ([]Result, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]Result, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		err := e.writeFile(path, a)
		if err != nil {
			e.logger.Warn("export failed", slog.String("name", a.Name), slog.Any("error", err))
		} else {
			e.logger.Info("wrote crop", slog.String("path", path))
		}
		results = append(results, Result{Name: a.Name, Path: path, Err: err})
	}
	return results, nil
}

func (e *Exporter) writeFile(path string, a Artifact) (err error) {
	if a.Image == nil || a.Image.Bounds().Empty() {
		return fmt.Errorf("failed to encode %s: %w", a.Name, ErrEmptyImage)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return e.Encode(f, a)
}
