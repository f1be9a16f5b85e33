package sound

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Crackle is an endless beep.Streamer that stays silent until Trigger arms a
// burst of decaying white noise. The speaker goroutine streams it while the
// game loop triggers it.
type Crackle struct {
	SampleRate beep.SampleRate
	Gain       float64

	mu        sync.Mutex
	rng       *rand.Rand
	remaining int
	length    int
}

func NewCrackle(sr beep.SampleRate, gain float64, seed uint64) *Crackle {
	return &Crackle{
		SampleRate: sr,
		Gain:       gain,
		rng:        rand.New(rand.NewPCG(seed, seed+1)),
	}
}

// Trigger starts a burst lasting d, replacing any burst in progress.
func (c *Crackle) Trigger(d time.Duration) {
	n := c.SampleRate.N(d)
	c.mu.Lock()
	c.remaining = n
	c.length = n
	c.mu.Unlock()
}

// Active reports whether a burst is still playing.
func (c *Crackle) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining > 0
}

func (c *Crackle) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range samples {
		if c.remaining <= 0 {
			samples[i] = [2]float64{}
			continue
		}
		// linear fade over the burst
		env := float64(c.remaining) / float64(c.length)
		v := (c.rng.Float64()*2 - 1) * c.Gain * env
		samples[i] = [2]float64{v, v}
		c.remaining--
	}
	return len(samples), true
}

func (c *Crackle) Err() error { return nil }

// Start opens the speaker and plays a crackle forever.
func Start(sampleRate int, gain float64, seed uint64) (*Crackle, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, err
	}
	c := NewCrackle(sr, gain, seed)
	speaker.Play(c)
	return c, nil
}
