// Package stripe generates and grows the decorative line stripes.
//
// A stripe is a cluster of parallel segments placed at a random position and
// one of three orientations. Each call to Step redraws every segment a little
// longer until the stripe reaches its target length.
package stripe

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Canvas receives the segments drawn by a stripe, in canvas pixels.
type Canvas interface {
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
}

var baseAngles = []float64{0, 90, -90}

// Line is one segment of a stripe, in the stripe's local frame.
type Line struct {
	Offset    float64
	Opacity   float64
	Weight    float64
	Direction int
}

// Forward reports whether the line grows from its start rather than its end.
func (l Line) Forward() bool { return l.Direction == 0 }

type LineStripe struct {
	X, Y       float64
	Length     float64
	Spacing    float64
	Angle      float64 // degrees
	BaseWeight float64
	Gray       float64
	Lines      []Line
	Done       bool

	step    float64
	current float64
}

// Params controls stripe generation.
type Params struct {
	Count      int
	GrowthStep float64
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// New builds a stripe of count lines at (x, y), relative to the canvas centre.
func New(rng *rand.Rand, x, y, length, spacing float64, count int, angle, baseWeight, step float64) *LineStripe {
	s := &LineStripe{
		X:          x,
		Y:          y,
		Length:     length,
		Spacing:    spacing,
		Angle:      angle,
		BaseWeight: baseWeight,
		Gray:       between(rng, 10, 200),
		Lines:      make([]Line, 0, count),
		step:       step,
	}
	for i := 0; i < count; i++ {
		s.Lines = append(s.Lines, Line{
			Offset:    float64(i) * spacing,
			Opacity:   between(rng, 2, 100),
			Weight:    baseWeight + between(rng, -0.1, 0.5),
			Direction: int(math.Round(rng.Float64() * 3)),
		})
	}
	return s
}

// Generate places p.Count stripes on a width x height canvas.
func Generate(rng *rand.Rand, width, height int, p Params) []*LineStripe {
	rangeX := float64(width) * 0.5
	rangeY := float64(height) * 0.5
	rangeLength := float64(width) * 0.5

	stripes := make([]*LineStripe, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		stripes = append(stripes, New(rng,
			between(rng, -rangeX, rangeX),
			between(rng, -rangeY, rangeY),
			between(rng, 20, rangeLength),
			between(rng, 0.1, 6),
			int(between(rng, 6, 20)),
			baseAngles[rng.IntN(len(baseAngles))],
			between(rng, 0.1, 1),
			p.GrowthStep,
		))
	}
	return stripes
}

// Rendered is the length the lines are drawn at on the next Step.
func (s *LineStripe) Rendered() float64 {
	return math.Min(s.current, s.Length)
}

// Segment returns the canvas coordinates of line i at rendered length n on a
// canvas of the given size.
func (s *LineStripe) Segment(i int, n float64, width, height int) (x1, y1, x2, y2 float64) {
	l := s.Lines[i]
	var ax, bx float64
	if l.Forward() {
		ax, bx = l.Offset, n+l.Offset
	} else {
		ax, bx = s.Length+l.Offset, s.Length-n+l.Offset
	}
	x1, y1 = s.toCanvas(ax, l.Offset, width, height)
	x2, y2 = s.toCanvas(bx, l.Offset, width, height)
	return x1, y1, x2, y2
}

// toCanvas applies translate(centre), translate(X, Y), rotate(-Angle).
func (s *LineStripe) toCanvas(px, py float64, width, height int) (float64, float64) {
	rad := -s.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cx := float64(width)/2 + s.X
	cy := float64(height)/2 + s.Y
	return cx + px*cos - py*sin, cy + px*sin + py*cos
}

func (s *LineStripe) Color(l Line) color.NRGBA {
	g := uint8(s.Gray)
	return color.NRGBA{R: g, G: g, B: g, A: uint8(clamp(l.Opacity, 0, 255))}
}

// Step draws the stripe at its current length and grows it. Once the length
// has been reached the stripe is marked Done.
func (s *LineStripe) Step(c Canvas, width, height int) {
	n := s.Rendered()
	for i, l := range s.Lines {
		if l.Weight <= 0 {
			continue
		}
		x1, y1, x2, y2 := s.Segment(i, n, width, height)
		c.StrokeLine(x1, y1, x2, y2, l.Weight, s.Color(l))
	}

	if s.current < s.Length {
		s.current += s.step
	} else {
		s.Done = true
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
