package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// DefaultPreviewSize is the side length of preview thumbnails
const DefaultPreviewSize = 100

// Preview renders the square source rectangle sr of src, scaled to a
// side x side raster and clipped to the inscribed circle. Parts of sr outside
// src stay transparent. A nil source or empty rectangle gives a blank raster.
func Preview(src image.Image, sr image.Rectangle, side int) *image.NRGBA {
	return PreviewWithScaler(src, sr, side, xdraw.CatmullRom)
}

// PreviewWithScaler is Preview with an explicit interpolator
func PreviewWithScaler(src image.Image, sr image.Rectangle, side int, scaler xdraw.Scaler) *image.NRGBA {
	if side < 0 {
		side = 0
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	if side == 0 || src == nil || sr.Empty() {
		return dst
	}

	win := window(src, sr)
	scaler.Scale(dst, dst.Bounds(), win, win.Bounds(), xdraw.Over, &xdraw.Options{
		DstMask: NewCircleMask(side),
	})
	return dst
}

// Circular copies sr of src 1:1 into a raster of the same size, clipped to
// the inscribed circle. Only square rectangles keep a round mask; the mask
// uses the width.
func Circular(src image.Image, sr image.Rectangle) *image.NRGBA {
	side := sr.Dx()
	if side < 0 {
		side = 0
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	if side == 0 || src == nil {
		return dst
	}

	xdraw.DrawMask(dst, dst.Bounds(), src, sr.Min, NewCircleMask(side), image.Point{}, xdraw.Over)
	return dst
}

// window copies sr of src into a transparent raster of sr's size so that
// sampling outside src yields transparent pixels.
func window(src image.Image, sr image.Rectangle) *image.NRGBA {
	win := image.NewNRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	xdraw.Draw(win, win.Bounds(), src, sr.Min, xdraw.Src)
	return win
}
