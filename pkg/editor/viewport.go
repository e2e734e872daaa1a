package editor

import (
	"image"
	"image/color"

	"github.com/menta2k/circlecrop/pkg/geometry"
)

// Cursor is a pointer-affordance hint for the rendering surface
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorResize  Cursor = "nwse-resize"
	CursorPointer Cursor = "pointer"
	CursorMove    Cursor = "move"
)

// Viewport is the drawing surface the session renders its overlay into.
// Coordinates are image-space; the surface is sized to the image.
type Viewport interface {
	Resize(width, height int)
	Clear()
	DrawImage(img image.Image)
	StrokeSquare(s geometry.Square, c color.Color, lineWidth float64)
	FillSquare(s geometry.Square, c color.Color)
	SetCursor(c Cursor)
}

// Preview is one rendered thumbnail plus the labels edited next to it
type Preview struct {
	Index       int
	Image       *image.NRGBA
	DisplayName string
	Username    string
}

// PreviewSink receives the full preview list whenever it changes
type PreviewSink interface {
	Previews(previews []Preview)
}

// PreviewFunc adapts a function to PreviewSink
type PreviewFunc func(previews []Preview)

func (f PreviewFunc) Previews(previews []Preview) { f(previews) }

type nopViewport struct{}

func (nopViewport) Resize(int, int) {}
func (nopViewport) Clear() {}
func (nopViewport) DrawImage(image.Image) {}
func (nopViewport) StrokeSquare(geometry.Square, color.Color, float64) {}
func (nopViewport) FillSquare(geometry.Square, color.Color) {}
func (nopViewport) SetCursor(Cursor) {}
