// Package crop models the square crop regions a user draws over an image and
// the ordered collection that owns them.
package crop

import (
	"image"
	"math"

	"github.com/menta2k/circlecrop/pkg/geometry"
)

// Region is one square crop with its labels. Regions are mutated in place and
// identified by pointer, never by value.
type Region struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	DisplayName string  `json:"display_name"`
	Username    string  `json:"username"`
}

// New creates an unlabeled region from a square
func New(s geometry.Square) *Region {
	return &Region{X: s.X, Y: s.Y, Size: s.Size}
}

// Square returns the region geometry
func (r *Region) Square() geometry.Square {
	return geometry.Square{X: r.X, Y: r.Y, Size: r.Size}
}

// Move translates the region. The image extent is not enforced.
func (r *Region) Move(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// Resize sets the size so the bottom-right corner follows the given point
// along the shorter axis. Zero and negative sizes are kept as-is.
func (r *Region) Resize(px, py float64) {
	r.Size = math.Min(px-r.X, py-r.Y)
}

// PixelRect returns the whole-pixel rectangle the region covers in an image
// whose bounds start at origin. The side is PixelSize, so zero and negative
// sizes give an empty rectangle at the anchor.
func (r *Region) PixelRect(origin image.Point) image.Rectangle {
	x := int(math.Round(r.X))
	y := int(math.Round(r.Y))
	size := r.PixelSize()
	return image.Rect(x, y, x+size, y+size).Add(origin)
}

// PixelSize returns the rounded side length, floored at zero
func (r *Region) PixelSize() int {
	size := int(math.Round(r.Size))
	if size < 0 {
		return 0
	}
	return size
}

// Clone returns an independent copy
func (r *Region) Clone() *Region {
	c := *r
	return &c
}
