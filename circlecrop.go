// Package circlecrop provides an editor core for cutting circular avatar
// crops out of a single image.
//
// A session holds one image and an ordered list of square crop regions.
// Pointer events draw, move, resize and delete regions; every change redraws
// an overlay through a Viewport and refreshes small circular previews. On
// export each region becomes a circular-masked image at native resolution,
// named crop1.png, crop2.png and so on.
//
// Basic usage:
//
//	ed := circlecrop.New()
//	if err := ed.Open("group.jpg"); err != nil {
//		log.Fatal(err)
//	}
//
//	s := ed.Session()
//	s.PointerDown(40, 40)
//	s.PointerMove(120, 130)
//	s.PointerUp(120, 130)
//	s.SetDisplayName(0, "Alice")
//
//	results, err := ed.ExportTo("out")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range results {
//		fmt.Println(r.Path, r.Err)
//	}
//
// The package consists of these components:
//
//  1. Editor (pkg/editor): the interaction state machine, overlay and previews
//  2. Canvas (pkg/canvas): an in-memory Viewport
//  3. Export (pkg/export): circular rendering, naming and encoding
//  4. Suggest (pkg/suggest): starting crops from a vision model or a saliency scan
package circlecrop

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/pkg/canvas"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/editor"
	"github.com/menta2k/circlecrop/pkg/export"
	"github.com/menta2k/circlecrop/pkg/imageio"
	"github.com/menta2k/circlecrop/pkg/suggest"
)

// Version of the circlecrop library
const Version = "1.0.0"

// Options configures an Editor
type Options struct {
	Editor editor.Config
	Export export.Options
	Loader imageio.Config
	Logger *slog.Logger
}

// DefaultOptions returns the default editor, export and loader settings
func DefaultOptions() Options {
	return Options{
		Editor: editor.DefaultConfig(),
		Export: export.DefaultOptions(),
	}
}

// Editor wires a session to an in-memory canvas, an image loader and an
// exporter.
type Editor struct {
	session  *editor.Session
	canvas   *canvas.Canvas
	loader   *imageio.Loader
	exporter *export.Exporter
	logger   *slog.Logger
}

// New creates an Editor with default configuration
func New() *Editor {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates an Editor with custom configuration
func NewWithOptions(opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	loader := imageio.New()
	if len(opts.Loader.SupportedFormats) > 0 || opts.Loader.MinImageSize > 0 {
		loader = imageio.NewWithConfig(opts.Loader)
	}

	c := canvas.New(0, 0)
	return &Editor{
		session:  editor.NewWithConfig(c, withEditorDefaults(opts.Editor), logger),
		canvas:   c,
		loader:   loader,
		exporter: export.NewWithOptions(opts.Export, logger),
		logger:   logging.WithComponent(logger, "circlecrop"),
	}
}

func withEditorDefaults(c editor.Config) editor.Config {
	def := editor.DefaultConfig()
	if c.ResizeHandleSize <= 0 {
		c.ResizeHandleSize = def.ResizeHandleSize
	}
	if c.DeleteHandleSize <= 0 {
		c.DeleteHandleSize = def.DeleteHandleSize
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = def.PreviewSize
	}
	if c.LineWidth <= 0 {
		c.LineWidth = def.LineWidth
	}
	return c
}

// Open loads an image from a file path or URL and starts a fresh session on it
func (e *Editor) Open(source string) error {
	img, err := e.loader.Load(source)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	e.LoadImage(img)
	e.logger.Info("image opened", "source", source, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// LoadImage starts a fresh session on img
func (e *Editor) LoadImage(img image.Image) {
	e.session.LoadImage(img)
}

// Session returns the underlying editing session
func (e *Editor) Session() *editor.Session {
	return e.session
}

// Overlay returns the current overlay raster
func (e *Editor) Overlay() *image.NRGBA {
	return e.canvas.Image()
}

// Info returns dimensions of the loaded image
func (e *Editor) Info() (imageio.ImageInfo, bool) {
	img := e.session.Image()
	if img == nil {
		return imageio.ImageInfo{}, false
	}
	return imageio.Info(img), true
}

// Suggest asks s for starting crops and appends them to the session. It
// returns how many regions were added.
func (e *Editor) Suggest(ctx context.Context, s suggest.Suggester) (int, error) {
	img := e.session.Image()
	if img == nil {
		return 0, nil
	}

	regions, err := s.Suggest(ctx, img)
	if err != nil {
		return 0, fmt.Errorf("crop suggestion failed: %w", err)
	}
	return e.AddRegions(regions), nil
}

// AddRegions appends regions to the session in order
func (e *Editor) AddRegions(regions []*crop.Region) int {
	added := 0
	for _, r := range regions {
		if e.session.AddRegion(r) {
			added++
		}
	}
	return added
}

// Export renders every crop of the session at native resolution
func (e *Editor) Export() []export.Artifact {
	return e.exporter.Export(e.session.Image(), e.session.Crops())
}

// ExportTo renders and writes every crop into dir
func (e *Editor) ExportTo(dir string) ([]export.Result, error) {
	return e.exporter.WriteAll(dir, e.Export())
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
