package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	TPS          = 60

	// Stripe generation
	StripeCount = 100
	GrowthStep  = 100

	// Disturbance cycle, in frames
	DisturbInterval = 100
	DisturbDuration = 15
	PixelStep       = 5
	MaxOffset       = 20
	MinDisturbRate  = 0.05
	MaxDisturbRate  = 0.3

	// Crackle
	SampleRate  = 44100
	CrackleGain = 0.25
)

// Background is the canvas fill, as RGB.
var Background = [3]uint8{240, 240, 225}

type Config struct {
	Window  WindowConfig `yaml:"window"`
	Stripes StripeConfig `yaml:"stripes"`
	Glitch  GlitchConfig `yaml:"glitch"`
	Sound   SoundConfig  `yaml:"sound"`
	Seed    uint64       `yaml:"seed" env:"STRIPEGLITCH_SEED"`
}

type WindowConfig struct {
	Width    int    `yaml:"width" env:"STRIPEGLITCH_WIDTH"`
	Height   int    `yaml:"height" env:"STRIPEGLITCH_HEIGHT"`
	Title    string `yaml:"title" env:"STRIPEGLITCH_TITLE"`
	ShowHelp bool   `yaml:"show_help" env:"STRIPEGLITCH_SHOW_HELP"`
}

type StripeConfig struct {
	Count      int     `yaml:"count" env:"STRIPEGLITCH_STRIPE_COUNT"`
	GrowthStep float64 `yaml:"growth_step" env:"STRIPEGLITCH_GROWTH_STEP"`
}

type GlitchConfig struct {
	Interval  int     `yaml:"interval" env:"STRIPEGLITCH_GLITCH_INTERVAL"`
	Duration  int     `yaml:"duration" env:"STRIPEGLITCH_GLITCH_DURATION"`
	Step      int     `yaml:"step" env:"STRIPEGLITCH_GLITCH_STEP"`
	MaxOffset float64 `yaml:"max_offset" env:"STRIPEGLITCH_GLITCH_MAX_OFFSET"`
	MinRate   float64 `yaml:"min_rate" env:"STRIPEGLITCH_GLITCH_MIN_RATE"`
	MaxRate   float64 `yaml:"max_rate" env:"STRIPEGLITCH_GLITCH_MAX_RATE"`
}

type SoundConfig struct {
	Enabled    bool    `yaml:"enabled" env:"STRIPEGLITCH_SOUND"`
	SampleRate int     `yaml:"sample_rate" env:"STRIPEGLITCH_SAMPLE_RATE"`
	Gain       float64 `yaml:"gain" env:"STRIPEGLITCH_SOUND_GAIN"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Stripes - R: regenerate, S: save, Space: pause, Esc/Q: quit",
		},
		Stripes: StripeConfig{
			Count:      StripeCount,
			GrowthStep: GrowthStep,
		},
		Glitch: GlitchConfig{
			Interval:  DisturbInterval,
			Duration:  DisturbDuration,
			Step:      PixelStep,
			MaxOffset: MaxOffset,
			MinRate:   MinDisturbRate,
			MaxRate:   MaxDisturbRate,
		},
		Sound: SoundConfig{
			SampleRate: SampleRate,
			Gain:       CrackleGain,
		},
	}
}

// Load reads a yaml file over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseEnv overlays STRIPEGLITCH_* variables. Unset variables leave fields alone.
func (c *Config) ParseEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var (
	ErrWindowSize = errors.New("window size must be positive")
	ErrStripes    = errors.New("stripe count and growth step must be positive")
	ErrCycle      = errors.New("glitch duration must be positive and not exceed the interval")
	ErrGlitchStep = errors.New("glitch step must be positive")
	ErrRates      = errors.New("glitch rates must satisfy 0 <= min <= max <= 1")
	ErrMaxOffset  = errors.New("glitch max offset must not be negative")
	ErrSound      = errors.New("sample rate must be positive")
)

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return ErrWindowSize
	case c.Stripes.Count <= 0 || c.Stripes.GrowthStep <= 0:
		return ErrStripes
	case c.Glitch.Duration <= 0 || c.Glitch.Interval < c.Glitch.Duration:
		return ErrCycle
	case c.Glitch.Step <= 0:
		return ErrGlitchStep
	case c.Glitch.MinRate < 0 || c.Glitch.MaxRate > 1 || c.Glitch.MinRate > c.Glitch.MaxRate:
		return ErrRates
	case c.Glitch.MaxOffset < 0:
		return ErrMaxOffset
	case c.Sound.Enabled && c.Sound.SampleRate <= 0:
		return ErrSound
	}
	return nil
}
