package export

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/setanarut/apng"

	"github.com/iburimskiy/stripe-glitch/internal/config"
	"github.com/iburimskiy/stripe-glitch/internal/sketch"
)

// apngDelay is the per-frame delay of animated exports, in 100ths of a second.
const apngDelay = 2

var ErrNotFinished = errors.New("drawing did not finish")

// Draw runs the sketch headless until every stripe is drawn.
func Draw(cfg *config.Config, seed uint64, width, height int) (*sketch.Sketch, error) {
	s := sketch.New(cfg)
	s.Reset(NewSurface(width, height), width, height, seed)

	// every stripe needs at most ceil(width/2 / step) + 2 frames
	limit := cfg.Stripes.Count * (int(float64(width)/cfg.Stripes.GrowthStep) + 3)
	for i := 0; !s.Finished(); i++ {
		if i > limit {
			return nil, ErrNotFinished
		}
		s.Step()
	}
	return s, nil
}

// RenderPNG writes the finished, undisturbed drawing to path.
func RenderPNG(cfg *config.Config, seed uint64, width, height int, path string) error {
	s, err := Draw(cfg, seed, width, height)
	if err != nil {
		return err
	}
	if err := imaging.Save(s.Original(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// GlitchFrames records one full disturbance cycle of a finished sketch.
func GlitchFrames(s *sketch.Sketch, cycle int) []image.Image {
	frames := make([]image.Image, 0, cycle)
	for i := 0; i < cycle; i++ {
		frames = append(frames, s.Step().Image)
	}
	return frames
}

// RenderAPNG writes one disturbance cycle of the finished drawing as an
// animated PNG.
func RenderAPNG(cfg *config.Config, seed uint64, width, height int, path string) error {
	s, err := Draw(cfg, seed, width, height)
	if err != nil {
		return err
	}
	frames := GlitchFrames(s, cfg.Glitch.Interval+1)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := apng.EncodeAll(f, Animation(frames)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Animation wraps frames in an endlessly looping APNG.
func Animation(frames []image.Image) *apng.APNG {
	delays := make([]uint16, len(frames))
	for i := range delays {
		delays[i] = apngDelay
	}
	return &apng.APNG{
		Images: frames,
		Delays: delays,
	}
}
