package render

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid image with a distinct top-left quadrant
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 && y < height/2 {
				img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.NRGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func TestCircleMask(t *testing.T) {
	m := NewCircleMask(100)

	if m.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Errorf("unexpected bounds %v", m.Bounds())
	}
	if a := m.AlphaAt(50, 50); a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	for _, p := range []image.Point{{0, 0}, {99, 0}, {0, 99}, {99, 99}} {
		if a := m.AlphaAt(p.X, p.Y); a != 0 {
			t.Errorf("corner %v alpha = %d, want 0", p, a)
		}
	}
	if a := m.AlphaAt(-1, 50); a != 0 {
		t.Errorf("out of bounds alpha = %d, want 0", a)
	}
	if NewCircleMask(-3).Bounds().Dx() != 0 {
		t.Error("negative side should produce an empty mask")
	}
}

func TestPreviewSize(t *testing.T) {
	src := createTestImage(200, 200)

	for _, sr := range []image.Rectangle{
		image.Rect(0, 0, 20, 20),
		image.Rect(10, 10, 190, 190),
		image.Rect(150, 150, 400, 400),
	} {
		p := Preview(src, sr, DefaultPreviewSize)
		if p.Bounds() != image.Rect(0, 0, DefaultPreviewSize, DefaultPreviewSize) {
			t.Errorf("preview of %v has bounds %v", sr, p.Bounds())
		}
	}
}

func TestPreviewCircleClip(t *testing.T) {
	src := createTestImage(200, 200)
	p := Preview(src, image.Rect(0, 0, 80, 80), 100)

	if a := p.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner outside circle alpha = %d, want 0", a)
	}
	c := p.NRGBAAt(50, 50)
	if c.A < 250 || c.R < 250 || c.B > 5 {
		t.Errorf("center should be opaque red, got %+v", c)
	}
}

func TestPreviewOutOfBoundsIsTransparent(t *testing.T) {
	src := createTestImage(100, 100)
	// Region entirely left of the image.
	p := Preview(src, image.Rect(-300, 0, -200, 100), 50)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if a := p.NRGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want transparent", x, y, a)
			}
		}
	}
}

func TestPreviewDegenerate(t *testing.T) {
	src := createTestImage(50, 50)

	if p := Preview(src, image.Rectangle{}, 100); p.Bounds().Dx() != 100 {
		t.Error("empty source rect should still give a full-size blank preview")
	}
	if p := Preview(nil, image.Rect(0, 0, 10, 10), 100); p.NRGBAAt(50, 50).A != 0 {
		t.Error("nil source should give a blank preview")
	}
	if p := Preview(src, image.Rect(0, 0, 10, 10), 0); !p.Bounds().Empty() {
		t.Error("zero side should give an empty raster")
	}
}

func TestCircular(t *testing.T) {
	src := createTestImage(200, 200)
	out := Circular(src, image.Rect(20, 20, 60, 60))

	if out.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if c := out.NRGBAAt(20, 20); c.A != 255 || c.R != 255 {
		t.Errorf("center pixel = %+v, want opaque red", c)
	}
	if a := out.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestCircularPartiallyOutside(t *testing.T) {
	src := createTestImage(100, 100)
	out := Circular(src, image.Rect(80, 80, 120, 120))

	// Center maps to source (100,100), one pixel beyond the image.
	if a := out.NRGBAAt(20, 20).A; a != 0 {
		t.Errorf("pixel sampled outside the image alpha = %d, want 0", a)
	}
	if c := out.NRGBAAt(10, 10); c.A != 255 || c.B != 255 {
		t.Errorf("pixel sampled inside the image = %+v, want opaque blue", c)
	}
}

func TestCircularZeroSize(t *testing.T) {
	src := createTestImage(10, 10)
	out := Circular(src, image.Rect(5, 5, 5, 5))
	if !out.Bounds().Empty() {
		t.Errorf("zero-size crop should give an empty raster, got %v", out.Bounds())
	}
}

func BenchmarkPreview(b *testing.B) {
	src := createTestImage(1920, 1080)
	sr := image.Rect(400, 200, 1000, 800)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Preview(src, sr, DefaultPreviewSize)
	}
}
