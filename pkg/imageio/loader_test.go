package imageio

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a gradient test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8((x * 255) / width), uint8((y * 255) / height), 128, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadReader(t *testing.T) {
	l := New()
	img, err := l.LoadReader(bytes.NewReader(encodePNG(t, createTestImage(40, 30))))
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestLoadReaderGarbage(t *testing.T) {
	if _, err := New().LoadReader(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, encodePNG(t, createTestImage(20, 20)), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}

	if _, err := New().Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	l := NewWithConfig(Config{SupportedFormats: []string{"jpg"}, MinImageSize: 1})

	if _, err := l.LoadReader(bytes.NewReader(encodePNG(t, createTestImage(10, 10)))); err == nil {
		t.Error("expected png to be rejected")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(10, 10), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l.LoadReader(&buf); err != nil {
		t.Errorf("jpeg should be accepted through the jpg alias: %v", err)
	}
}

func TestValidateImage(t *testing.T) {
	l := NewWithConfig(Config{MinImageSize: 50})
	if err := l.ValidateImage(createTestImage(40, 100)); err == nil {
		t.Error("expected too-small error")
	}
	if err := l.ValidateImage(createTestImage(50, 50)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadURL(t *testing.T) {
	data := encodePNG(t, createTestImage(16, 16))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(data)
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New()
	img, err := l.Load(srv.URL + "/img.png")
	if err != nil {
		t.Fatalf("LoadURL failed: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}
	if _, err := l.LoadURL(srv.URL + "/page"); err == nil {
		t.Error("expected content-type error")
	}
	if _, err := l.LoadURL(srv.URL + "/missing"); err == nil {
		t.Error("expected status error")
	}
	if _, err := l.LoadURL("ftp://example.com/a.png"); err == nil {
		t.Error("expected scheme error")
	}
}

func TestInfo(t *testing.T) {
	info := Info(createTestImage(400, 300))
	if info.Width != 400 || info.Height != 300 || info.Area != 120000 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.AspectRatio < 1.33 || info.AspectRatio > 1.34 {
		t.Errorf("unexpected aspect ratio %f", info.AspectRatio)
	}
}

func TestEncodeBase64Downsizes(t *testing.T) {
	b64, err := EncodeBase64(createTestImage(400, 200), "png", 100, 85)
	if err != nil {
		t.Fatalf("EncodeBase64 failed: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("encoded size %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
}
