// Package export renders compositions without a window.
package export

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Surface draws stripes with gg.
type Surface struct {
	dc *gg.Context
}

func NewSurface(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

func (s *Surface) Fill(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// Snapshot copies the context's buffer; gg keeps drawing into the original.
func (s *Surface) Snapshot() image.Image {
	return imaging.Clone(s.dc.Image())
}
