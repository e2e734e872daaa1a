// Package render turns crop regions into circular-masked rasters.
package render

import (
	"image"
	"image/color"
)

// circleSubsamples is the per-axis supersampling used to anti-alias the
// circle edge.
const circleSubsamples = 4

// CircleMask is an alpha mask holding the circle inscribed in a side x side
// square. Pixels on the rim get fractional coverage.
type CircleMask struct {
	side int
}

// NewCircleMask creates a mask for a side x side raster
func NewCircleMask(side int) *CircleMask {
	if side < 0 {
		side = 0
	}
	return &CircleMask{side: side}
}

func (m *CircleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (m *CircleMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.side, m.side)
}

func (m *CircleMask) At(x, y int) color.Color {
	return color.Alpha{A: m.coverage(x, y)}
}

// AlphaAt returns the coverage of pixel (x,y) in [0,255]
func (m *CircleMask) AlphaAt(x, y int) uint8 {
	return m.coverage(x, y)
}

func (m *CircleMask) coverage(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.side || y >= m.side {
		return 0
	}
	r := float64(m.side) / 2
	r2 := r * r

	inside := 0
	step := 1.0 / circleSubsamples
	for sy := 0; sy < circleSubsamples; sy++ {
		dy := float64(y) + (float64(sy)+0.5)*step - r
		for sx := 0; sx < circleSubsamples; sx++ {
			dx := float64(x) + (float64(sx)+0.5)*step - r
			if dx*dx+dy*dy <= r2 {
				inside++
			}
		}
	}
	return uint8(inside * 255 / (circleSubsamples * circleSubsamples))
}
