// Package detection asks a vision model where the faces and people in an
// image are, for use as starting crops.
package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/menta2k/circlecrop/pkg/client"
	"github.com/menta2k/circlecrop/pkg/types"
)

// SimpleTestPrompt for testing if the model can see images
const SimpleTestPrompt = `What do you see in this image? Describe it briefly.`

// DefaultPrompt asks for every face or person as a normalized box
const DefaultPrompt = `You are a face and person locator for avatar cropping.

Return JSON only:
{
  "subjects": [
    {"label": "face", "confidence": 0.0, "box": {"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0}}
  ],
  "description": "short neutral sentence (≤ 20 words)"
}

HARD RULES
- All coordinates are normalized to [0,1] (NOT pixels). x,y is the top-left corner.
- Use label "face" for a visible face and "person" when only the body is visible.
- Boxes must tightly include the head or person. One entry per individual.
- List at most 12 subjects, largest first.
- Do not guess real identities.
- If nobody is visible, return {"subjects": [], "description": "no people"}.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// MaxSubjects caps how many subjects a result keeps
const MaxSubjects = 12

// Detector locates subjects using a vision model
type Detector struct {
	client        client.VisionClient
	minConfidence float64
}

// NewDetector creates a new detector with a vision client
func NewDetector(client client.VisionClient) *Detector {
	return &Detector{client: client}
}

// SetMinConfidence drops subjects below c from future results
func (d *Detector) SetMinConfidence(c float64) {
	d.minConfidence = clamp(c, 0, 1)
}

// LocateSubjects returns the faces and people the model finds in the image
func (d *Detector) LocateSubjects(ctx context.Context, model, imageB64 string) (*types.LocateResult, error) {
	return d.LocateSubjectsWithPrompt(ctx, model, imageB64, DefaultPrompt)
}

// LocateSubjectsWithPrompt is LocateSubjects with a custom prompt
func (d *Detector) LocateSubjectsWithPrompt(ctx context.Context, model, imageB64, prompt string) (*types.LocateResult, error) {
	raw, err := d.client.JSONQuery(ctx, model, prompt, imageB64)
	if err != nil {
		return nil, fmt.Errorf("vision query failed: %w", err)
	}

	result := ParseLocateResult(raw)
	result.Subjects = d.filterSubjects(result.Subjects)
	return result, nil
}

// TestVision tests if the model can actually see the image with a simple prompt
func (d *Detector) TestVision(ctx context.Context, model, imageB64 string) (string, error) {
	return d.client.SimpleQuery(ctx, model, SimpleTestPrompt, imageB64)
}

// filterSubjects normalizes boxes, drops empty or low-confidence entries and
// orders the rest by area, largest first.
func (d *Detector) filterSubjects(subjects []types.Subject) []types.Subject {
	out := make([]types.Subject, 0, len(subjects))
	for _, s := range subjects {
		s.Label = strings.ToLower(strings.TrimSpace(s.Label))
		if s.Label == "" {
			s.Label = "face"
		}
		s.Confidence = clamp(s.Confidence, 0, 1)
		s.Box = normalizeBox(s.Box)
		if s.Box.W <= 0 || s.Box.H <= 0 {
			continue
		}
		if s.Confidence < d.minConfidence {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box.W*out[i].Box.H > out[j].Box.W*out[j].Box.H
	})
	if len(out) > MaxSubjects {
		out = out[:MaxSubjects]
	}
	return out
}

// legacyResult is the single-subject shape some models still answer with
type legacyResult struct {
	Primary *struct {
		Label      string    `json:"label"`
		Confidence float64   `json:"confidence"`
		Box        types.Box `json:"box"`
	} `json:"primary"`
}

// ParseLocateResult decodes a model answer. Anything that is not usable JSON
// yields an empty result marked as a fallback rather than an error.
func ParseLocateResult(raw string) *types.LocateResult {
	raw = sanitizeModelJSON(raw)
	if !strings.HasPrefix(raw, "{") {
		return fallback("model returned non-JSON response")
	}

	var result types.LocateResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return fallback("failed to parse model response")
	}

	if len(result.Subjects) == 0 {
		var legacy legacyResult
		if err := json.Unmarshal([]byte(raw), &legacy); err == nil && legacy.Primary != nil &&
			!strings.EqualFold(legacy.Primary.Label, "none") {
			result.Subjects = []types.Subject{{
				Label:      legacy.Primary.Label,
				Confidence: legacy.Primary.Confidence,
				Box:        legacy.Primary.Box,
			}}
		}
	}
	return &result
}

func fallback(description string) *types.LocateResult {
	return &types.LocateResult{
		Subjects:    []types.Subject{},
		Description: description,
		Fallback:    true,
	}
}

var (
	reBlockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reInlineComment = regexp.MustCompile(`(?m)//.*$`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// sanitizeModelJSON strips code fences, comments and trailing commas, then
// keeps only the outermost object.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.Trim(strings.TrimSpace(raw), "`")

	raw = reBlockComment.ReplaceAllString(raw, "")
	raw = reInlineComment.ReplaceAllString(raw, "")
	raw = reTrailingComma.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// clamp ensures a value is within the given bounds
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeBox clamps a box to the unit square. Boxes given in percent are
// scaled down first.
func normalizeBox(b types.Box) types.Box {
	if b.X > 1 || b.Y > 1 || b.W > 1 || b.H > 1 {
		if b.X <= 100 && b.Y <= 100 && b.W <= 100 && b.H <= 100 {
			b = types.Box{X: b.X / 100, Y: b.Y / 100, W: b.W / 100, H: b.H / 100}
		}
	}

	x := clamp(b.X, 0, 1)
	y := clamp(b.Y, 0, 1)
	return types.Box{
		X: x,
		Y: y,
		W: clamp(b.W, 0, 1-x),
		H: clamp(b.H, 0, 1-y),
	}
}
