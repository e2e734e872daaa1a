package editor

import (
	"image"

	"github.com/menta2k/circlecrop/pkg/geometry"
	"github.com/menta2k/circlecrop/pkg/render"
)

// renderOverlay redraws the image and every crop decoration from scratch
func (s *Session) renderOverlay() {
	s.viewport.Clear()
	if s.img == nil {
		return
	}
	s.viewport.DrawImage(s.img)

	for _, r := range s.crops.All() {
		sq := r.Square()
		s.viewport.StrokeSquare(sq, s.config.Style.Outline, s.config.LineWidth)
		s.viewport.FillSquare(geometry.Square{
			X:    sq.Right() - s.config.ResizeHandleSize,
			Y:    sq.Bottom() - s.config.ResizeHandleSize,
			Size: s.config.ResizeHandleSize,
		}, s.config.Style.ResizeHandle)
		s.viewport.FillSquare(geometry.Square{
			X:    sq.X,
			Y:    sq.Y,
			Size: s.config.DeleteHandleSize,
		}, s.config.Style.DeleteHandle)
	}
}

// renderSelection draws the image and only the live rubber-band square
func (s *Session) renderSelection(st *selecting) {
	s.viewport.Clear()
	s.viewport.DrawImage(s.img)
	sq := geometry.SquareFromPoints(st.anchorX, st.anchorY, st.curX, st.curY)
	s.viewport.StrokeSquare(sq, s.config.Style.Selection, s.config.LineWidth)
}

// refreshPreviews re-renders every thumbnail and pushes the list to the sink.
// Crop coordinates are relative to the image's top-left corner, as drawn.
func (s *Session) refreshPreviews() {
	regions := s.crops.All()
	var origin image.Point
	if s.img != nil {
		origin = s.img.Bounds().Min
	}
	previews := make([]Preview, 0, len(regions))
	for i, r := range regions {
		previews = append(previews, Preview{
			Index:       i,
			Image:       render.Preview(s.img, r.PixelRect(origin), s.config.PreviewSize),
			DisplayName: r.DisplayName,
			Username:    r.Username,
		})
	}
	s.previews = previews

	if s.sink != nil {
		out := make([]Preview, len(previews))
		copy(out, previews)
		s.sink.Previews(out)
	}
}

// Previews returns the most recently rendered previews
func (s *Session) Previews() []Preview {
	out := make([]Preview, len(s.previews))
	copy(out, s.previews)
	return out
}
