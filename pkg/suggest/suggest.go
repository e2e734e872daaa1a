// Package suggest proposes starting crop regions for a freshly loaded image,
// either from a vision model or from a local saliency scan.
package suggest

import (
	"context"
	"image"
	"math"

	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/geometry"
	"github.com/menta2k/circlecrop/pkg/types"
)

// Suggester proposes crop regions for an image
type Suggester interface {
	Suggest(ctx context.Context, img image.Image) ([]*crop.Region, error)
}

// None suggests nothing
type None struct{}

// Suggest implements Suggester
func (None) Suggest(context.Context, image.Image) ([]*crop.Region, error) {
	return nil, nil
}

// SquareAround converts a normalized box into a pixel square centered on the
// box. The side is the longer box edge grown by padding on each side, capped
// at the short image edge, and the square is shifted to lie inside the image.
// Coordinates are relative to the top-left corner of bounds.
func SquareAround(b types.Box, bounds image.Rectangle, padding float64) geometry.Square {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return geometry.Square{}
	}

	side := math.Max(b.W*w, b.H*h) * (1 + 2*math.Max(padding, 0))
	side = math.Round(math.Min(side, math.Min(w, h)))

	cx, cy := b.Center()
	x := math.Round(cx*w - side/2)
	y := math.Round(cy*h - side/2)

	return geometry.Square{
		X:    clamp(x, 0, w-side),
		Y:    clamp(y, 0, h-side),
		Size: side,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
