// Package editor implements the interactive crop editing session: pointer
// events drive a small state machine that creates, moves, resizes and deletes
// square crop regions over a loaded image, redrawing an overlay through a
// Viewport and refreshing circular previews after every change.
//
// A Session is confined to one goroutine. It never returns errors; events
// that cannot apply (no image loaded, unknown label index) are ignored.
package editor

import (
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/colornames"

	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/geometry"
	"github.com/menta2k/circlecrop/pkg/render"
)

// Config holds session tunables
type Config struct {
	ResizeHandleSize float64
	DeleteHandleSize float64
	PreviewSize      int
	LineWidth        float64
	Style            Style
}

// Style holds overlay colors
type Style struct {
	Outline      color.Color
	Selection    color.Color
	ResizeHandle color.Color
	DeleteHandle color.Color
}

// DefaultConfig returns the stock handle sizes, preview size and colors
func DefaultConfig() Config {
	return Config{
		ResizeHandleSize: geometry.DefaultResizeHandleSize,
		DeleteHandleSize: geometry.DefaultDeleteHandleSize,
		PreviewSize:      render.DefaultPreviewSize,
		LineWidth:        2,
		Style: Style{
			Outline:      colornames.Red,
			Selection:    colornames.Red,
			ResizeHandle: colornames.Blue,
			DeleteHandle: colornames.Red,
		},
	}
}

// Session owns the image, its crop collection and the interaction state
type Session struct {
	config   Config
	logger   *slog.Logger
	viewport Viewport
	sink     PreviewSink

	img      image.Image
	crops    *crop.Collection
	state    state
	selected *crop.Region
	cursor   Cursor
	previews []Preview
}

// New creates a session with the default configuration. A nil viewport or
// logger disables drawing or logging respectively.
func New(viewport Viewport, logger *slog.Logger) *Session {
	return NewWithConfig(viewport, DefaultConfig(), logger)
}

// NewWithConfig creates a session with custom configuration
func NewWithConfig(viewport Viewport, config Config, logger *slog.Logger) *Session {
	if viewport == nil {
		viewport = nopViewport{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if config.PreviewSize < 0 {
		config.PreviewSize = 0
	}
	config.Style = config.Style.withDefaults()

	return &Session{
		config:   config,
		logger:   logging.WithComponent(logger, "editor"),
		viewport: viewport,
		crops:    crop.NewCollection(),
		state:    idle{},
		cursor:   CursorDefault,
	}
}

func (st Style) withDefaults() Style {
	def := DefaultConfig().Style
	if st.Outline == nil {
		st.Outline = def.Outline
	}
	if st.Selection == nil {
		st.Selection = def.Selection
	}
	if st.ResizeHandle == nil {
		st.ResizeHandle = def.ResizeHandle
	}
	if st.DeleteHandle == nil {
		st.DeleteHandle = def.DeleteHandle
	}
	return st
}

// SetPreviewSink registers the receiver of preview updates
func (s *Session) SetPreviewSink(sink PreviewSink) {
	s.sink = sink
}

// LoadImage replaces the session image, clears every crop and resets the
// interaction state. A nil image unloads the session.
func (s *Session) LoadImage(img image.Image) {
	s.img = img
	s.crops.Clear()
	s.selected = nil
	s.state = idle{}
	s.setCursor(CursorDefault)

	if img != nil {
		b := img.Bounds()
		s.viewport.Resize(b.Dx(), b.Dy())
		s.logger.Info("image loaded", slog.Int("width", b.Dx()), slog.Int("height", b.Dy()))
	} else {
		s.viewport.Resize(0, 0)
	}
	s.renderOverlay()
	s.refreshPreviews()
}

// Image returns the loaded image or nil
func (s *Session) Image() image.Image { return s.img }

// Crops returns the regions in collection order
func (s *Session) Crops() []*crop.Region { return s.crops.All() }

// Mode returns the current interaction mode
func (s *Session) Mode() Mode { return s.state.mode() }

// Selected returns the crop bound by the last pointer-down, which outlives
// the gesture until the next pointer-down.
func (s *Session) Selected() *crop.Region { return s.selected }

// Cursor returns the current pointer-affordance hint
func (s *Session) Cursor() Cursor { return s.cursor }

// PointerDown starts a gesture at (x,y)
func (s *Session) PointerDown(x, y float64) {
	if s.img == nil {
		return
	}
	if s.state.mode() != ModeIdle {
		s.logger.Debug("pointer down during gesture, restarting", slog.String("mode", s.state.mode().String()))
	}

	target := s.crops.HitTest(x, y)
	s.selected = target
	if target == nil {
		s.transition(&selecting{anchorX: x, anchorY: y, curX: x, curY: y})
		return
	}

	switch geometry.Classify(x, y, target.Square(), s.config.ResizeHandleSize, s.config.DeleteHandleSize) {
	case geometry.HitResize:
		s.transition(&resizing{target: target})
	case geometry.HitDelete:
		index := s.crops.Index(target)
		s.crops.Remove(target)
		s.selected = nil
		s.transition(idle{})
		s.logger.Debug("crop deleted", slog.Int("index", index), slog.Int("remaining", s.crops.Len()))
		s.renderOverlay()
		s.refreshPreviews()
	default:
		s.transition(&dragging{target: target, anchorX: x, anchorY: y})
	}
}

// PointerMove advances the active gesture and refreshes the cursor hint
func (s *Session) PointerMove(x, y float64) {
	if s.img == nil {
		return
	}

	switch st := s.state.(type) {
	case *selecting:
		st.curX, st.curY = x, y
		s.renderSelection(st)
	case *dragging:
		st.target.Move(x-st.anchorX, y-st.anchorY)
		st.anchorX, st.anchorY = x, y
		s.renderOverlay()
		s.refreshPreviews()
	case *resizing:
		st.target.Resize(x, y)
		s.renderOverlay()
		s.refreshPreviews()
	}

	s.updateCursor(x, y)
}

// PointerUp ends the active gesture at (x,y). A selection is committed as a
// new unlabeled crop, even when its size is zero.
func (s *Session) PointerUp(x, y float64) {
	if s.img == nil {
		return
	}

	if st, ok := s.state.(*selecting); ok {
		st.curX, st.curY = x, y
		sq := geometry.SquareFromPoints(st.anchorX, st.anchorY, st.curX, st.curY)
		s.crops.Insert(crop.New(sq))
		s.logger.Debug("crop created",
			slog.Int("index", s.crops.Len()-1),
			slog.Float64("x", sq.X), slog.Float64("y", sq.Y), slog.Float64("size", sq.Size))
		s.refreshPreviews()
	}

	s.transition(idle{})
	s.renderOverlay()
}

// AddRegion appends an externally produced region, such as a suggestion.
// It is ignored until an image is loaded.
func (s *Session) AddRegion(r *crop.Region) bool {
	if s.img == nil || r == nil {
		return false
	}
	s.crops.Insert(r)
	s.renderOverlay()
	s.refreshPreviews()
	return true
}

// SetDisplayName edits the display name of the crop at index i
func (s *Session) SetDisplayName(i int, name string) bool {
	if !s.crops.SetDisplayName(i, name) {
		return false
	}
	s.refreshPreviews()
	return true
}

// SetUsername edits the username of the crop at index i
func (s *Session) SetUsername(i int, name string) bool {
	if !s.crops.SetUsername(i, name) {
		return false
	}
	s.refreshPreviews()
	return true
}

func (s *Session) transition(next state) {
	prev := s.state.mode()
	s.state = next
	if prev != next.mode() {
		s.logger.Debug("state transition", slog.String("from", prev.String()), slog.String("to", next.mode().String()))
	}
}

func (s *Session) updateCursor(x, y float64) {
	if s.selected == nil {
		s.setCursor(CursorDefault)
		return
	}

	sq := s.selected.Square()
	switch {
	case geometry.IsOnResizeHandle(x, y, sq, s.config.ResizeHandleSize):
		s.setCursor(CursorResize)
	case geometry.IsOnDeleteHandle(x, y, sq, s.config.DeleteHandleSize):
		s.setCursor(CursorPointer)
	case geometry.IsInside(x, y, sq):
		s.setCursor(CursorMove)
	default:
		s.setCursor(CursorDefault)
	}
}

func (s *Session) setCursor(c Cursor) {
	if s.cursor == c {
		return
	}
	s.cursor = c
	s.viewport.SetCursor(c)
}
