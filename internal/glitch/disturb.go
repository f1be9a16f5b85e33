// Package glitch shifts strips of a finished image to fake a signal glitch.
package glitch

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/disintegration/imaging"
)

const (
	noiseScale  = 0.02
	frameScale  = 0.01
	columnPhase = 1000

	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

type Disturber struct {
	Step       int
	MaxOffset  float64
	MinRate    float64
	MaxRate    float64
	Background color.Color

	rng   *rand.Rand
	noise *perlin.Perlin
}

func NewDisturber(rng *rand.Rand, seed int64) *Disturber {
	return &Disturber{
		Step:       5,
		MaxOffset:  20,
		MinRate:    0.05,
		MaxRate:    0.3,
		Background: color.White,
		rng:        rng,
		noise:      perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed),
	}
}

func (d *Disturber) between(lo, hi float64) float64 {
	return lo + d.rng.Float64()*(hi-lo)
}

// offset maps a noise sample to a whole-pixel shift in [-limit, limit].
func (d *Disturber) offset(x, y, limit float64) int {
	n := d.noise.Noise2D(x, y)
	n = math.Max(-1, math.Min(1, n))
	return int(n * limit)
}

// Disturb returns a copy of src where some rows are shifted horizontally and
// then some columns of that result are shifted vertically. frame feeds the
// noise so consecutive disturbances differ.
func (d *Disturber) Disturb(src image.Image, frame int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	step := d.Step
	if step <= 0 {
		step = 1
	}

	rowRate := d.between(d.MinRate, d.MaxRate)
	colRate := d.between(d.MinRate, d.MaxRate)
	maxOffset := d.between(0, d.MaxOffset)
	t := float64(frame) * frameScale

	// imaging.Paste clones its background on every call, so strips are
	// copied with draw.Draw into buffers allocated once.
	rows := imaging.New(w, h, d.Background)
	for y := 0; y < h; y += step {
		dx := 0
		if d.rng.Float64() < rowRate {
			dx = d.offset(float64(y)*noiseScale, t, maxOffset)
		}
		draw.Draw(rows, image.Rect(dx, y, dx+w, y+step), src, image.Pt(b.Min.X, b.Min.Y+y), draw.Src)
	}

	out := imaging.Clone(src)
	for x := 0; x < w; x += step {
		dy := 0
		if d.rng.Float64() < colRate {
			dy = d.offset(float64(x)*noiseScale, t+columnPhase, maxOffset)
		}
		draw.Draw(out, image.Rect(x, dy, x+step, dy+h), rows, image.Pt(x, 0), draw.Src)
	}
	return out
}
