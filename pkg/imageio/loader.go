// Package imageio loads source images for an editing session and prepares
// them for vision models.
package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Loader decodes images from files, readers and URLs
type Loader struct {
	config Config
	client *http.Client
}

// Config holds loader configuration
type Config struct {
	SupportedFormats []string
	MinImageSize     int
	HTTPTimeout      time.Duration
	UserAgent        string
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// New creates a Loader with default configuration
func New() *Loader {
	return NewWithConfig(Config{
		SupportedFormats: []string{"jpeg", "png", "gif", "webp", "bmp", "tiff"},
		MinImageSize:     1,
		HTTPTimeout:      30 * time.Second,
		UserAgent:        "circlecrop/1.0",
	})
}

// NewWithConfig creates a Loader with custom configuration
func NewWithConfig(config Config) *Loader {
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = 30 * time.Second
	}
	return &Loader{
		config: config,
		client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Load loads an image from a file path or an http(s) URL
func (l *Loader) Load(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.LoadURL(source)
	}
	return l.LoadFile(source)
}

// LoadFile loads an image from disk, honoring EXIF orientation
func (l *Loader) LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	return l.LoadReader(f)
}

// LoadReader decodes an image from r
func (l *Loader) LoadReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return l.decode(data)
}

// LoadURL downloads and decodes an image
func (l *Loader) LoadURL(imageURL string) (image.Image, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if l.config.UserAgent != "" {
		req.Header.Set("User-Agent", l.config.UserAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", ct)
	}

	return l.LoadReader(resp.Body)
}

func (l *Loader) decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err == nil {
		_, format, cfgErr := image.DecodeConfig(bytes.NewReader(data))
		if cfgErr == nil && !l.isFormatSupported(format) {
			return nil, fmt.Errorf("unsupported image format: %s", format)
		}
		return l.validated(img)
	}

	// Fallback for webp variants the registered decoder rejects
	if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return l.validated(img)
	}
	return nil, fmt.Errorf("failed to decode image: %w", err)
}

func (l *Loader) validated(img image.Image) (image.Image, error) {
	if err := l.ValidateImage(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (l *Loader) isFormatSupported(format string) bool {
	if len(l.config.SupportedFormats) == 0 {
		return true
	}
	for _, supported := range l.config.SupportedFormats {
		if strings.EqualFold(format, supported) || (format == "jpeg" && strings.EqualFold(supported, "jpg")) {
			return true
		}
	}
	return false
}

// ValidateImage checks the minimum dimensions
func (l *Loader) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < l.config.MinImageSize || bounds.Dy() < l.config.MinImageSize {
		return fmt.Errorf("image too small: %dx%d (minimum: %d)",
			bounds.Dx(), bounds.Dy(), l.config.MinImageSize)
	}
	return nil
}

// Info returns basic information about an image
func Info(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// EncodeBase64 downsizes img so its long side is at most maxDim (0 keeps the
// original) and returns it base64-encoded as jpg or png.
func EncodeBase64(img image.Image, format string, maxDim int, quality int) (string, error) {
	if maxDim > 0 {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		if w > maxDim || h > maxDim {
			if w >= h {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
