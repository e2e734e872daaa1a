package suggest

import (
	"context"
	"image"
	"log/slog"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/geometry"
)

// SaliencyConfig holds configuration for the local saliency scan
type SaliencyConfig struct {
	MaxRegions     int
	AnalysisSize   int
	WindowRatios   []float64
	ContrastWeight float64
	ColorWeight    float64
	MinScore       float64
	MaxOverlap     float64
}

// DefaultSaliencyConfig returns the default scan settings
func DefaultSaliencyConfig() SaliencyConfig {
	return SaliencyConfig{
		MaxRegions:     3,
		AnalysisSize:   256,
		WindowRatios:   []float64{0.25, 0.35, 0.5},
		ContrastWeight: 0.7,
		ColorWeight:    0.3,
		MinScore:       0.01,
		MaxOverlap:     0.2,
	}
}

// SaliencySuggester finds high-contrast square windows without a model
type SaliencySuggester struct {
	config SaliencyConfig
	logger *slog.Logger
}

// NewSaliencySuggester creates a saliency suggester
func NewSaliencySuggester(config SaliencyConfig, logger *slog.Logger) *SaliencySuggester {
	if logger == nil {
		logger = logging.Discard()
	}
	def := DefaultSaliencyConfig()
	if config.MaxRegions <= 0 {
		config.MaxRegions = def.MaxRegions
	}
	if config.AnalysisSize <= 0 {
		config.AnalysisSize = def.AnalysisSize
	}
	if len(config.WindowRatios) == 0 {
		config.WindowRatios = def.WindowRatios
	}
	return &SaliencySuggester{config: config, logger: logging.WithComponent(logger, "suggest.saliency")}
}

type window struct {
	x, y, side int
	score      float64
}

// Suggest implements Suggester
func (s *SaliencySuggester) Suggest(ctx context.Context, img image.Image) ([]*crop.Region, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, nil
	}
	bounds := img.Bounds()

	var small *image.NRGBA
	if bounds.Dx() > s.config.AnalysisSize || bounds.Dy() > s.config.AnalysisSize {
		small = imaging.Fit(img, s.config.AnalysisSize, s.config.AnalysisSize, imaging.Box)
	} else {
		small = imaging.Clone(img)
	}
	scale := float64(bounds.Dx()) / float64(small.Bounds().Dx())

	sat := newSummedArea(s.saliencyMap(small), small.Bounds().Dx(), small.Bounds().Dy())

	var candidates []window
	for _, ratio := range s.config.WindowRatios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, s.scan(sat, ratio)...)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var picked []window
	for _, c := range candidates {
		if len(picked) == s.config.MaxRegions {
			break
		}
		if overlapsAny(c, picked, s.config.MaxOverlap) {
			continue
		}
		picked = append(picked, c)
	}

	regions := make([]*crop.Region, 0, len(picked))
	for _, w := range picked {
		side := math.Min(math.Round(float64(w.side)*scale), float64(min(bounds.Dx(), bounds.Dy())))
		sq := geometry.Square{
			X:    clamp(math.Round(float64(w.x)*scale), 0, float64(bounds.Dx())-side),
			Y:    clamp(math.Round(float64(w.y)*scale), 0, float64(bounds.Dy())-side),
			Size: side,
		}
		regions = append(regions, crop.New(sq))
	}

	s.logger.Debug("saliency scan", "candidates", len(candidates), "regions", len(regions))
	return regions, nil
}

func (s *SaliencySuggester) scan(sat *summedArea, ratio float64) []window {
	side := int(ratio * float64(min(sat.w, sat.h)))
	if side < 4 {
		return nil
	}
	step := max(1, side/8)

	var out []window
	for y := 0; y+side <= sat.h; y += step {
		for x := 0; x+side <= sat.w; x += step {
			score := sat.sum(x, y, side, side) / float64(side*side)
			if score > s.config.MinScore {
				out = append(out, window{x: x, y: y, side: side, score: score})
			}
		}
	}
	return out
}

// saliencyMap scores each pixel by its color distance to its 8 neighbors
// plus its luminance distance to the image mean.
func (s *SaliencySuggester) saliencyMap(img *image.NRGBA) []float64 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	lum := make([]float64, w*h)
	var mean float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+3 : i+3]
			l := (0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])) / 255
			lum[y*w+x] = l
			mean += l
		}
	}
	mean /= float64(w * h)

	const maxDist = 8 * 441.6729559300637 // 8 * sqrt(3) * 255
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			r1, g1, b1 := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])

			var edge float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := img.PixOffset(nx, ny)
					dr := r1 - float64(img.Pix[j])
					dg := g1 - float64(img.Pix[j+1])
					db := b1 - float64(img.Pix[j+2])
					edge += math.Sqrt(dr*dr + dg*dg + db*db)
				}
			}

			out[y*w+x] = s.config.ContrastWeight*edge/maxDist + s.config.ColorWeight*math.Abs(lum[y*w+x]-mean)
		}
	}
	return out
}

func overlapsAny(c window, picked []window, maxOverlap float64) bool {
	for _, p := range picked {
		if iou(c, p) > maxOverlap {
			return true
		}
	}
	return false
}

func iou(a, b window) float64 {
	ix := max(0, min(a.x+a.side, b.x+b.side)-max(a.x, b.x))
	iy := max(0, min(a.y+a.side, b.y+b.side)-max(a.y, b.y))
	inter := float64(ix * iy)
	union := float64(a.side*a.side+b.side*b.side) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// summedArea is an integral image for constant-time window sums
type summedArea struct {
	w, h int
	v    []float64
}

func newSummedArea(values []float64, w, h int) *summedArea {
	sa := &summedArea{w: w, h: h, v: make([]float64, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		var row float64
		for x := 0; x < w; x++ {
			row += values[y*w+x]
			sa.v[(y+1)*(w+1)+x+1] = sa.v[y*(w+1)+x+1] + row
		}
	}
	return sa
}

func (sa *summedArea) sum(x, y, w, h int) float64 {
	stride := sa.w + 1
	return sa.v[(y+h)*stride+x+w] - sa.v[y*stride+x+w] - sa.v[(y+h)*stride+x] + sa.v[y*stride+x]
}
