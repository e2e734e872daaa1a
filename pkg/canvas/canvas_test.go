package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/menta2k/circlecrop/pkg/editor"
	"github.com/menta2k/circlecrop/pkg/geometry"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	green = color.NRGBA{0, 255, 0, 255}
)

// createTestImage creates a solid green image
func createTestImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, green)
		}
	}
	return img
}

func TestResizeAndClear(t *testing.T) {
	c := New(30, 20)
	if c.Image().Bounds() != image.Rect(0, 0, 30, 20) {
		t.Fatalf("unexpected bounds %v", c.Image().Bounds())
	}
	c.FillSquare(geometry.Square{X: 0, Y: 0, Size: 10}, red)
	c.Clear()
	if a := c.Image().NRGBAAt(5, 5).A; a != 0 {
		t.Errorf("Clear left alpha %d", a)
	}
	c.Resize(-1, 5)
	if !c.Image().Bounds().Empty() {
		t.Error("negative width should give an empty canvas")
	}
}

func TestDrawImage(t *testing.T) {
	c := New(40, 40)
	c.DrawImage(createTestImage(40, 40))
	if got := c.Image().NRGBAAt(39, 39); got != green {
		t.Errorf("pixel = %+v, want green", got)
	}
	c.DrawImage(nil)
}

func TestStrokeSquare(t *testing.T) {
	c := New(100, 100)
	c.StrokeSquare(geometry.Square{X: 20, Y: 20, Size: 40}, red, 2)
	img := c.Image()

	for _, p := range []image.Point{{19, 40}, {20, 20}, {60, 40}, {40, 19}, {40, 60}} {
		if got := img.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("edge pixel %v = %+v, want red", p, got)
		}
	}
	if a := img.NRGBAAt(40, 40).A; a != 0 {
		t.Errorf("interior should stay empty, alpha %d", a)
	}
	if a := img.NRGBAAt(10, 10).A; a != 0 {
		t.Errorf("exterior should stay empty, alpha %d", a)
	}
}

func TestStrokeNegativeSize(t *testing.T) {
	c := New(100, 100)
	c.StrokeSquare(geometry.Square{X: 60, Y: 60, Size: -20}, red, 2)
	if got := c.Image().NRGBAAt(40, 50); got != red {
		t.Errorf("negative square should be outlined up-left of its anchor, got %+v", got)
	}
}

func TestFillSquareClipped(t *testing.T) {
	c := New(50, 50)
	c.FillSquare(geometry.Square{X: 45, Y: 45, Size: 10}, blue)
	if got := c.Image().NRGBAAt(49, 49); got != blue {
		t.Errorf("pixel = %+v, want blue", got)
	}
	c.FillSquare(geometry.Square{X: -100, Y: -100, Size: 10}, blue)
}

func TestCanvasWithSession(t *testing.T) {
	c := New(0, 0)
	s := editor.New(c, nil)
	s.LoadImage(createTestImage(120, 120))

	s.PointerDown(10, 10)
	s.PointerMove(60, 60)
	s.PointerUp(60, 60)

	img := c.Image()
	if img.Bounds().Dx() != 120 {
		t.Fatalf("session did not size the canvas: %v", img.Bounds())
	}
	// Delete handle at the top-left is red, resize handle at bottom-right blue.
	if got := img.NRGBAAt(14, 14); got.R != 255 || got.G != 0 {
		t.Errorf("delete handle pixel = %+v", got)
	}
	if got := img.NRGBAAt(55, 55); got.B != 255 || got.G != 0 {
		t.Errorf("resize handle pixel = %+v", got)
	}
	if got := img.NRGBAAt(35, 35); got != green {
		t.Errorf("crop interior should show the image, got %+v", got)
	}

	s.PointerDown(30, 30)
	s.PointerUp(30, 30)
	s.PointerMove(30, 30)
	if c.Cursor() != editor.CursorMove {
		t.Errorf("cursor = %v, want move", c.Cursor())
	}
}
