// Package export renders crop regions at full resolution with a circular
// mask and writes them out as image files named crop1, crop2, ...
package export

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/internal/utils"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/render"
)

// Format is an output encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatWebP Format = "webp"
)

// ParseFormat maps a file extension or format name to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Options controls naming and encoding
type Options struct {
	Format   Format
	Quality  int
	Lossless bool
	Prefix   string
}

// DefaultOptions returns PNG output named crop<N>.png
func DefaultOptions() Options {
	return Options{
		Format:  FormatPNG,
		Quality: 90,
		Prefix:  "crop",
	}
}

// Artifact is one exported crop
type Artifact struct {
	Index       int
	Name        string
	Image       *image.NRGBA
	DisplayName string
	Username    string
}

// Exporter renders and encodes artifacts
type Exporter struct {
	opts   Options
	logger *slog.Logger
}

// New creates an exporter with default options
func New() *Exporter {
	return NewWithOptions(DefaultOptions(), nil)
}

// NewWithOptions creates an exporter with custom options
func NewWithOptions(opts Options, logger *slog.Logger) *Exporter {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	opts.Prefix = utils.SanitizeFilename(opts.Prefix)
	if opts.Prefix == "" {
		opts.Prefix = "crop"
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Exporter{opts: opts, logger: logging.WithComponent(logger, "export")}
}

// Options returns the effective options
func (e *Exporter) Options() Options { return e.opts }

// FileName returns the positional name for the artifact at a 0-based index
func FileName(prefix string, index int, format Format) string {
	return fmt.Sprintf("%s%d.%s", prefix, index+1, format)
}

// Export renders every region at its native size, in collection order.
// Region coordinates are relative to the image's top-left corner. Zero and
// negative sizes produce an empty raster. A nil image exports nothing.
func (e *Exporter) Export(img image.Image, regions []*crop.Region) []Artifact {
	if img == nil {
		return nil
	}

	artifacts := make([]Artifact, 0, len(regions))
	origin := img.Bounds().Min
	for i, r := range regions {
		artifacts = append(artifacts, Artifact{
			Index:       i,
			Name:        FileName(e.opts.Prefix, i, e.opts.Format),
			Image:       render.Circular(img, r.PixelRect(origin)),
			DisplayName: r.DisplayName,
			Username:    r.Username,
		})
	}
	return artifacts
}
