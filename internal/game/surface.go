package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// surface is the offscreen image the stripes accumulate on. The screen is
// cleared every frame, so the drawing lives here.
type surface struct {
	img           *ebiten.Image
	width, height int
}

func newSurface(width, height int) *surface {
	return &surface{
		img:    ebiten.NewImage(width, height),
		width:  width,
		height: height,
	}
}

func (s *surface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

func (s *surface) Fill(c color.Color) {
	s.img.Fill(c)
}

// Snapshot reads the pixels back. Ebiten pixels are premultiplied, as
// image.RGBA expects.
func (s *surface) Snapshot() image.Image {
	pix := make([]byte, 4*s.width*s.height)
	s.img.ReadPixels(pix)
	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * s.width,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
}

func (s *surface) deallocate() {
	s.img.Deallocate()
}
