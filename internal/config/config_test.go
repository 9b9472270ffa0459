package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lruiz/demonsim/internal/demon"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Particles <= 0 {
		t.Error("particles should be positive")
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero particles", func(c *Config) { c.Particles = 0 }},
		{"negative particles", func(c *Config) { c.Particles = -3 }},
		{"bad dims", func(c *Config) { c.Dims = 3 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.01 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"negative box", func(c *Config) { c.Box.Lx = -2 }},
		{"zero half width", func(c *Config) { c.Barrier.HalfWidth = 0 }},
		{"barrier outside box", func(c *Config) { c.Barrier.Center = 5.0 }},
		{"inverted init bounds", func(c *Config) { c.Init.XMin = 1.5; c.Init.XMax = 0.5 }},
		{"init outside box", func(c *Config) { c.Init.XMax = 9.0 }},
		{"negative sigma", func(c *Config) { c.Init.VelSigma = -1 }},
		{"bad policy direction", func(c *Config) { c.Policy.FastPass = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ce *demon.ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("expected ConfigError, got %T", err)
			}
		})
	}
}

func TestGatePolicy(t *testing.T) {
	cfg := Default()
	p, err := cfg.GatePolicy()
	if err != nil {
		t.Fatalf("GatePolicy failed: %v", err)
	}
	if p.FastPass != demon.TowardA || p.SlowPass != demon.TowardB {
		t.Errorf("unexpected policy %+v", p)
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}

	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s is nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demon.yaml")

	cfg := Default()
	cfg.Particles = 7
	cfg.Seed = 99
	cfg.Policy.FastPass = "toward-b"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Particles != 7 || loaded.Seed != 99 {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
	if loaded.Policy.FastPass != "toward-b" {
		t.Errorf("policy mismatch: %+v", loaded.Policy)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
