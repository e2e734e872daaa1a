package suggest

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/menta2k/circlecrop/internal/logging"
	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/detection"
	"github.com/menta2k/circlecrop/pkg/imageio"
	"github.com/menta2k/circlecrop/pkg/types"
)

// VisionConfig controls how images are sent to the vision model. An empty
// Prompt uses detection.DefaultPrompt. CheckVision asks the model to describe
// the image before locating subjects and fails early if it cannot.
type VisionConfig struct {
	Model        string
	MaxDimension int
	Quality      int
	Padding      float64
	Prompt       string
	CheckVision  bool
}

// DefaultVisionConfig returns the settings used by the CLI
func DefaultVisionConfig() VisionConfig {
	return VisionConfig{
		Model:        "llava",
		MaxDimension: 1024,
		Quality:      85,
		Padding:      0.25,
	}
}

// VisionSuggester turns the faces a vision model finds into square crops
type VisionSuggester struct {
	detector *detection.Detector
	config   VisionConfig
	logger   *slog.Logger
}

// NewVisionSuggester creates a suggester backed by detector
func NewVisionSuggester(detector *detection.Detector, config VisionConfig, logger *slog.Logger) *VisionSuggester {
	if logger == nil {
		logger = logging.Discard()
	}
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = 85
	}
	return &VisionSuggester{
		detector: detector,
		config:   config,
		logger:   logging.WithComponent(logger, "suggest.vision"),
	}
}

// Suggest implements Suggester
func (s *VisionSuggester) Suggest(ctx context.Context, img image.Image) ([]*crop.Region, error) {
	if img == nil {
		return nil, nil
	}

	imgB64, err := imageio.EncodeBase64(img, "jpg", s.config.MaxDimension, s.config.Quality)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	if s.config.CheckVision {
		if err := s.checkVision(ctx, imgB64); err != nil {
			return nil, err
		}
	}

	var result *types.LocateResult
	if strings.TrimSpace(s.config.Prompt) == "" {
		result, err = s.detector.LocateSubjects(ctx, s.config.Model, imgB64)
	} else {
		result, err = s.detector.LocateSubjectsWithPrompt(ctx, s.config.Model, imgB64, s.config.Prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("subject detection failed: %w", err)
	}
	if result.Fallback {
		s.logger.Warn("model answer unusable", "model", s.config.Model, "reason", result.Description)
	}

	bounds := img.Bounds()
	regions := make([]*crop.Region, 0, len(result.Subjects))
	for _, subject := range result.Subjects {
		sq := SquareAround(subject.Box, bounds, s.config.Padding)
		if sq.Size < 1 {
			continue
		}
		regions = append(regions, crop.New(sq))
	}

	s.logger.Info("subjects located", "model", s.config.Model, "subjects", len(result.Subjects), "regions", len(regions))
	return regions, nil
}

// checkVision makes sure the model actually receives the image
func (s *VisionSuggester) checkVision(ctx context.Context, imgB64 string) error {
	answer, err := s.detector.TestVision(ctx, s.config.Model, imgB64)
	if err != nil {
		return fmt.Errorf("vision check failed: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("vision check failed: model %s returned an empty description", s.config.Model)
	}
	s.logger.Info("vision check", "model", s.config.Model, "answer", answer)
	return nil
}
