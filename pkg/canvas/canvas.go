// Package canvas provides an in-memory raster surface implementing
// editor.Viewport, for headless use and for tests.
package canvas

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/menta2k/circlecrop/pkg/editor"
	"github.com/menta2k/circlecrop/pkg/geometry"
)

// Canvas is an NRGBA raster that records the last cursor hint
type Canvas struct {
	img    *image.NRGBA
	cursor editor.Cursor
}

// New creates a width x height transparent canvas
func New(width, height int) *Canvas {
	c := &Canvas{cursor: editor.CursorDefault}
	c.Resize(width, height)
	return c
}

// Image returns the backing raster
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Cursor returns the last cursor hint set by the session
func (c *Canvas) Cursor() editor.Cursor { return c.cursor }

// Resize replaces the raster with a blank one of the given size
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Clear makes every pixel transparent
func (c *Canvas) Clear() {
	xdraw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
}

// DrawImage draws img at its natural resolution at the origin
func (c *Canvas) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	xdraw.Draw(c.img, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, xdraw.Over)
}

// StrokeSquare outlines s with a line centered on its edges
func (c *Canvas) StrokeSquare(s geometry.Square, col color.Color, lineWidth float64) {
	if lineWidth <= 0 {
		return
	}
	half := lineWidth / 2
	x0, x1 := ordered(s.X, s.Right())
	y0, y1 := ordered(s.Y, s.Bottom())

	outer := pixelRect(x0-half, y0-half, x1+half, y1+half)
	inner := pixelRect(x0+half, y0+half, x1-half, y1-half)
	if inner.Empty() {
		c.fill(outer, col)
		return
	}

	c.fill(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), col)
	c.fill(image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), col)
	c.fill(image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), col)
	c.fill(image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), col)
}

// FillSquare paints s solid
func (c *Canvas) FillSquare(s geometry.Square, col color.Color) {
	x0, x1 := ordered(s.X, s.Right())
	y0, y1 := ordered(s.Y, s.Bottom())
	c.fill(pixelRect(x0, y0, x1, y1), col)
}

// SetCursor records the hint
func (c *Canvas) SetCursor(cur editor.Cursor) {
	c.cursor = cur
}

func (c *Canvas) fill(r image.Rectangle, col color.Color) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	xdraw.Draw(c.img, r, image.NewUniform(col), image.Point{}, xdraw.Over)
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func pixelRect(x0, y0, x1, y1 float64) image.Rectangle {
	r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	if x1 < x0 || y1 < y0 {
		return image.Rectangle{}
	}
	return r
}
