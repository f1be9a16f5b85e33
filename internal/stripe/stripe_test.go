package stripe

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

type segment struct {
	x1, y1, x2, y2, width float64
}

type recorder struct {
	lines []segment
}

func (r *recorder) StrokeLine(x1, y1, x2, y2, width float64, _ color.Color) {
	r.lines = append(r.lines, segment{x1, y1, x2, y2, width})
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerateRanges(t *testing.T) {
	const w, h = 800, 600
	stripes := Generate(newRand(), w, h, Params{Count: 100, GrowthStep: 100})

	if len(stripes) != 100 {
		t.Fatalf("expected 100 stripes, got %d", len(stripes))
	}
	for i, s := range stripes {
		if math.Abs(s.X) > w/2 || math.Abs(s.Y) > h/2 {
			t.Errorf("stripe %d out of range: (%f, %f)", i, s.X, s.Y)
		}
		if s.Length < 20 || s.Length > w/2 {
			t.Errorf("stripe %d length %f", i, s.Length)
		}
		if n := len(s.Lines); n < 6 || n > 19 {
			t.Errorf("stripe %d has %d lines", i, n)
		}
		if s.Angle != 0 && s.Angle != 90 && s.Angle != -90 {
			t.Errorf("stripe %d angle %f", i, s.Angle)
		}
		for j, l := range s.Lines {
			if l.Direction < 0 || l.Direction > 3 {
				t.Errorf("stripe %d line %d direction %d", i, j, l.Direction)
			}
			if l.Opacity < 2 || l.Opacity >= 100 {
				t.Errorf("stripe %d line %d opacity %f", i, j, l.Opacity)
			}
			if want := float64(j) * s.Spacing; l.Offset != want {
				t.Errorf("stripe %d line %d offset %f, want %f", i, j, l.Offset, want)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewPCG(7, 7)), 640, 480, Params{Count: 5, GrowthStep: 10})
	b := Generate(rand.New(rand.NewPCG(7, 7)), 640, 480, Params{Count: 5, GrowthStep: 10})

	for i := range a {
		if a[i].X != b[i].X || a[i].Length != b[i].Length || len(a[i].Lines) != len(b[i].Lines) {
			t.Fatalf("stripe %d differs for the same seed", i)
		}
	}
}

func TestStepGrowsUntilDone(t *testing.T) {
	s := New(newRand(), 0, 0, 250, 2, 6, 0, 0.5, 100)
	rec := &recorder{}

	frames := 0
	for !s.Done {
		s.Step(rec, 100, 100)
		frames++
		if frames > 10 {
			t.Fatal("stripe never finished")
		}
	}

	// rendered 0, 100, 200, 250 (clamped), then the done frame at 250
	if frames != 4 {
		t.Errorf("expected 4 frames, got %d", frames)
	}
	if got := s.Rendered(); got != 250 {
		t.Errorf("expected rendered length 250, got %f", got)
	}
	for _, seg := range rec.lines[len(rec.lines)-len(s.Lines):] {
		if length := math.Hypot(seg.x2-seg.x1, seg.y2-seg.y1); math.Abs(length-250) > 1e-9 {
			t.Errorf("final segment length %f exceeds target", length)
		}
	}
}

func TestSegmentDirection(t *testing.T) {
	s := &LineStripe{Length: 100, Lines: []Line{
		{Offset: 0, Direction: 0},
		{Offset: 0, Direction: 2},
	}}

	x1, y1, x2, y2 := s.Segment(0, 40, 0, 0)
	if x1 != 0 || x2 != 40 || y1 != 0 || y2 != 0 {
		t.Errorf("forward line: (%f,%f)-(%f,%f)", x1, y1, x2, y2)
	}

	x1, _, x2, _ = s.Segment(1, 40, 0, 0)
	if x1 != 100 || x2 != 60 {
		t.Errorf("backward line: %f-%f", x1, x2)
	}
}

func TestSegmentRotation(t *testing.T) {
	s := &LineStripe{X: 10, Y: 20, Length: 50, Angle: 90, Lines: []Line{{Direction: 0}}}

	x1, y1, x2, y2 := s.Segment(0, 50, 200, 100)

	// centre (100, 50) + (10, 20); rotate(-90) sends +x to -y
	if math.Abs(x1-110) > 1e-9 || math.Abs(y1-70) > 1e-9 {
		t.Errorf("start (%f, %f)", x1, y1)
	}
	if math.Abs(x2-110) > 1e-9 || math.Abs(y2-20) > 1e-9 {
		t.Errorf("end (%f, %f)", x2, y2)
	}
}

func TestStepSkipsZeroWeight(t *testing.T) {
	s := &LineStripe{Length: 10, step: 10, Lines: []Line{{Weight: 0}, {Weight: 1}}}
	rec := &recorder{}

	s.Step(rec, 10, 10)

	if len(rec.lines) != 1 {
		t.Errorf("expected 1 stroked line, got %d", len(rec.lines))
	}
}
