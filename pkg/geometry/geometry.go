// Package geometry holds the pure hit-testing math used by the crop editor.
//
// All coordinates are image-space float64 values. Squares are anchored at
// their top-left corner and bounds are inclusive on every edge.
package geometry

import "math"

// Default handle sizes in image units
const (
	DefaultResizeHandleSize = 10.0
	DefaultDeleteHandleSize = 10.0
)

// Square is an axis-aligned square anchored at its top-left corner
type Square struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// Right returns the x coordinate of the right edge
func (s Square) Right() float64 { return s.X + s.Size }

// Bottom returns the y coordinate of the bottom edge
func (s Square) Bottom() float64 { return s.Y + s.Size }

// SquareFromPoints returns the largest square that fits the box spanned by
// two corner points, anchored at the box's top-left corner. Drag direction
// does not matter.
func SquareFromPoints(x1, y1, x2, y2 float64) Square {
	return Square{
		X:    math.Min(x1, x2),
		Y:    math.Min(y1, y2),
		Size: math.Min(math.Abs(x2-x1), math.Abs(y2-y1)),
	}
}

// IsInside reports whether the point lies within s, edges included
func IsInside(px, py float64, s Square) bool {
	return px >= s.X && px <= s.Right() && py >= s.Y && py <= s.Bottom()
}

// IsOnResizeHandle reports whether the point lies within the handle-sized
// square sharing s's bottom-right corner.
func IsOnResizeHandle(px, py float64, s Square, handle float64) bool {
	return px >= s.Right()-handle && px <= s.Right() &&
		py >= s.Bottom()-handle && py <= s.Bottom()
}

// IsOnDeleteHandle reports whether the point lies within the handle-sized
// square sharing s's top-left corner.
func IsOnDeleteHandle(px, py float64, s Square, handle float64) bool {
	return px >= s.X && px <= s.X+handle &&
		py >= s.Y && py <= s.Y+handle
}

// Hit classifies where a point falls relative to a square
type Hit int

const (
	HitNone Hit = iota
	HitBody
	HitDelete
	HitResize
)

func (h Hit) String() string {
	switch h {
	case HitBody:
		return "body"
	case HitDelete:
		return "delete"
	case HitResize:
		return "resize"
	default:
		return "none"
	}
}

// Classify resolves a point against s with precedence resize > delete > body.
// Handles only count when the point is also inside s.
func Classify(px, py float64, s Square, resizeHandle, deleteHandle float64) Hit {
	if !IsInside(px, py, s) {
		return HitNone
	}
	if IsOnResizeHandle(px, py, s, resizeHandle) {
		return HitResize
	}
	if IsOnDeleteHandle(px, py, s, deleteHandle) {
		return HitDelete
	}
	return HitBody
}
