package glitch

// Phase is what the disturbance loop shows on a given frame.
type Phase int

const (
	// Fire: compute and show a fresh disturbed image.
	Fire Phase = iota + 1
	// Hold: keep showing the last disturbed image.
	Hold
	// Rest: show the clean snapshot.
	Rest
)

func (p Phase) String() string {
	switch p {
	case Fire:
		return "fire"
	case Hold:
		return "hold"
	case Rest:
		return "rest"
	}
	return "unknown"
}

// Cycle times the disturbance. A cycle lasts Interval+1 frames, of which the
// first Duration show the disturbed image.
type Cycle struct {
	Interval int
	Duration int

	timer int
}

func (c *Cycle) Tick() Phase {
	c.timer++
	switch {
	case c.timer == 1:
		return Fire
	case c.timer <= c.Duration:
		return Hold
	}
	if c.timer > c.Interval {
		c.timer = 0
	}
	return Rest
}

func (c *Cycle) Reset() { c.timer = 0 }
