package ui

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	ButtonLabel  = "Regenerate"
	cornerRadius = 12
	borderWidth  = 2
)

type ButtonState int

const (
	Normal ButtonState = iota
	Hovered
	Pressed
)

// Rect is an axis-aligned box in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains is inclusive on every edge.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// ButtonBounds places the button in the bottom-left corner, scaled to the
// canvas.
func ButtonBounds(width, height int) Rect {
	w, h := float64(width), float64(height)
	margin := 0.025 * math.Min(w, h)
	bw := 0.25 * w
	bh := 0.06 * h
	return Rect{X: margin, Y: h - bh - margin, W: bw, H: bh}
}

var fillAlpha = map[ButtonState]int{
	Normal:  220,
	Hovered: 245,
	Pressed: 255,
}

var fillShade = map[ButtonState]float64{
	Normal:  1,
	Hovered: 0.94,
	Pressed: 0.85,
}

var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// ButtonFace rasterizes the button for a rectangle of the given size.
func ButtonFace(r Rect, state ButtonState) (image.Image, error) {
	w := int(math.Round(r.W))
	h := int(math.Round(r.H))
	if w <= borderWidth*2 || h <= borderWidth*2 {
		return nil, fmt.Errorf("button %dx%d too small", w, h)
	}

	font, err := labelFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(font, &truetype.Options{Size: r.H * 0.45})

	dc := gg.NewContext(w, h)
	shade := fillShade[state]
	dc.SetRGBA255(int(255*shade), int(230*shade), int(180*shade), fillAlpha[state])
	dc.DrawRoundedRectangle(borderWidth/2, borderWidth/2, float64(w-borderWidth), float64(h-borderWidth), cornerRadius)
	dc.FillPreserve()
	dc.SetRGB255(120, 120, 120)
	dc.SetLineWidth(borderWidth)
	dc.Stroke()

	dc.SetFontFace(face)
	dc.SetRGB255(60, 60, 60)
	dc.DrawStringAnchored(ButtonLabel, float64(w)/2, float64(h)/2, 0.5, 0.5)
	return dc.Image(), nil
}
