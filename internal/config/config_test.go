package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Stripes.Count != 100 {
		t.Errorf("expected 100 stripes, got %d", cfg.Stripes.Count)
	}
	if cfg.Glitch.Interval != 100 || cfg.Glitch.Duration != 15 {
		t.Errorf("expected cycle 100/15, got %d/%d", cfg.Glitch.Interval, cfg.Glitch.Duration)
	}
	if cfg.Sound.Enabled {
		t.Error("sound should be off by default")
	}
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stripes.GrowthStep != GrowthStep {
		t.Errorf("expected default growth step, got %f", cfg.Stripes.GrowthStep)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("stripes:\n  count: 12\nglitch:\n  duration: 5\nseed: 42\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stripes.Count != 12 {
		t.Errorf("expected count 12, got %d", cfg.Stripes.Count)
	}
	if cfg.Glitch.Duration != 5 {
		t.Errorf("expected duration 5, got %d", cfg.Glitch.Duration)
	}
	if cfg.Glitch.Interval != DisturbInterval {
		t.Errorf("interval should keep its default, got %d", cfg.Glitch.Interval)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Glitch.MaxOffset = 7

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Glitch.MaxOffset != 7 {
		t.Errorf("expected max offset 7, got %f", got.Glitch.MaxOffset)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("STRIPEGLITCH_STRIPE_COUNT", "3")
	t.Setenv("STRIPEGLITCH_SOUND", "true")

	cfg := DefaultConfig()
	if err := cfg.ParseEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Stripes.Count != 3 {
		t.Errorf("expected count 3, got %d", cfg.Stripes.Count)
	}
	if !cfg.Sound.Enabled {
		t.Error("expected sound enabled")
	}
	if cfg.Window.Width != WindowWidth {
		t.Errorf("unset variable changed width to %d", cfg.Window.Width)
	}
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("STRIPEGLITCH_GLITCH_INTERVAL", "often")

	if err := DefaultConfig().ParseEnv(); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, ErrWindowSize},
		{"no stripes", func(c *Config) { c.Stripes.Count = 0 }, ErrStripes},
		{"no growth", func(c *Config) { c.Stripes.GrowthStep = 0 }, ErrStripes},
		{"duration beyond interval", func(c *Config) { c.Glitch.Duration = 200 }, ErrCycle},
		{"zero step", func(c *Config) { c.Glitch.Step = 0 }, ErrGlitchStep},
		{"negative offset", func(c *Config) { c.Glitch.MaxOffset = -1 }, ErrMaxOffset},
		{"inverted rates", func(c *Config) { c.Glitch.MinRate = 0.5; c.Glitch.MaxRate = 0.1 }, ErrRates},
		{"sound without rate", func(c *Config) { c.Sound.Enabled = true; c.Sound.SampleRate = 0 }, ErrSound},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}
