// Package sketch holds the animation state: which stripe is growing, the
// clean and disturbed snapshots and the disturbance timer. It is independent
// of the renderer; the window and the headless exporter both drive it.
package sketch

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/iburimskiy/stripe-glitch/internal/config"
	"github.com/iburimskiy/stripe-glitch/internal/glitch"
	"github.com/iburimskiy/stripe-glitch/internal/stripe"
)

// Surface is the canvas the stripes accumulate on.
type Surface interface {
	stripe.Canvas
	Fill(c color.Color)
	// Snapshot returns a copy of the current pixels.
	Snapshot() image.Image
}

type Phase int

const (
	Drawing Phase = iota
	Fire
	Hold
	Rest
)

func (p Phase) String() string {
	switch p {
	case Drawing:
		return "drawing"
	case Fire:
		return "fire"
	case Hold:
		return "hold"
	case Rest:
		return "rest"
	}
	return "unknown"
}

// Frame is what should be on screen after a Step. Image is nil while
// drawing; the surface itself is shown then.
type Frame struct {
	Phase Phase
	Image image.Image
}

type Sketch struct {
	cfg *config.Config

	surface       Surface
	width, height int
	seed          uint64
	rng           *rand.Rand
	disturber     *glitch.Disturber
	cycle         glitch.Cycle

	stripes   []*stripe.LineStripe
	current   int
	original  image.Image
	disturbed image.Image
	frame     int
}

func New(cfg *config.Config) *Sketch {
	return &Sketch{
		cfg: cfg,
		cycle: glitch.Cycle{
			Interval: cfg.Glitch.Interval,
			Duration: cfg.Glitch.Duration,
		},
	}
}

func Background() color.NRGBA {
	bg := config.Background
	return color.NRGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}
}

// Reset clears the surface and regenerates every stripe from seed.
func (s *Sketch) Reset(surface Surface, width, height int, seed uint64) {
	s.surface = surface
	s.width, s.height = width, height
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s.disturber = glitch.NewDisturber(s.rng, int64(seed))
	s.disturber.Step = s.cfg.Glitch.Step
	s.disturber.MaxOffset = s.cfg.Glitch.MaxOffset
	s.disturber.MinRate = s.cfg.Glitch.MinRate
	s.disturber.MaxRate = s.cfg.Glitch.MaxRate
	s.disturber.Background = Background()

	s.stripes = stripe.Generate(s.rng, width, height, stripe.Params{
		Count:      s.cfg.Stripes.Count,
		GrowthStep: s.cfg.Stripes.GrowthStep,
	})
	s.current = 0
	s.original = nil
	s.disturbed = nil
	s.frame = 0
	s.cycle.Reset()

	surface.Fill(Background())
}

// Step advances the animation by one frame.
func (s *Sketch) Step() Frame {
	s.frame++

	if s.current < len(s.stripes) {
		st := s.stripes[s.current]
		st.Step(s.surface, s.width, s.height)
		if st.Done {
			s.current++
		}
		if s.current == len(s.stripes) && s.original == nil {
			s.original = s.surface.Snapshot()
		}
		return Frame{Phase: Drawing}
	}

	if s.original == nil {
		s.original = s.surface.Snapshot()
	}

	switch s.cycle.Tick() {
	case glitch.Fire:
		s.disturbed = s.disturber.Disturb(s.original, s.frame)
		return Frame{Phase: Fire, Image: s.disturbed}
	case glitch.Hold:
		return Frame{Phase: Hold, Image: s.disturbed}
	default:
		return Frame{Phase: Rest, Image: s.original}
	}
}

// NextSeed draws the seed for the next regenerate from the current stream.
func (s *Sketch) NextSeed() uint64 {
	if s.rng == nil {
		return rand.Uint64()
	}
	return s.rng.Uint64()
}

func (s *Sketch) Seed() uint64 { return s.seed }

// Progress reports how many stripes are finished.
func (s *Sketch) Progress() (done, total int) {
	return s.current, len(s.stripes)
}

// Finished reports whether every stripe has been drawn.
func (s *Sketch) Finished() bool {
	return s.original != nil
}

// Original is the clean snapshot, nil until every stripe is drawn.
func (s *Sketch) Original() image.Image { return s.original }

func (s *Sketch) Size() (int, int) { return s.width, s.height }

// Active returns the index of the growing stripe, or -1 once all are drawn.
func (s *Sketch) Active() int {
	if s.current >= len(s.stripes) {
		return -1
	}
	return s.current
}

func (s *Sketch) Stripes() []*stripe.LineStripe { return s.stripes }
