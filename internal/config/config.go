package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lruiz/demonsim/internal/demon"
)

const (
	DefaultParticles = 50
	DefaultDt        = 0.01
	DefaultSteps     = 1000
	DefaultThreshold = 2.0
	DefaultEpsilon   = 0.05
	DefaultLx        = 2.0
	DefaultLy        = 1.0
	DefaultVelSigma  = 1.5
)

type Config struct {
	Particles int           `yaml:"particles"`
	Dims      int           `yaml:"dims"`
	Dt        float64       `yaml:"dt"`
	Steps     int           `yaml:"steps"`
	Seed      int64         `yaml:"seed"`
	Threshold float64       `yaml:"threshold"`
	Box       BoxConfig     `yaml:"box"`
	Barrier   BarrierConfig `yaml:"barrier"`
	Init      InitConfig    `yaml:"init"`
	Policy    PolicyConfig  `yaml:"policy"`
}

type BoxConfig struct {
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
}

type BarrierConfig struct {
	Center    float64 `yaml:"center"`
	HalfWidth float64 `yaml:"half_width"`
}

type InitConfig struct {
	XMin     float64 `yaml:"x_min"`
	XMax     float64 `yaml:"x_max"`
	YMin     float64 `yaml:"y_min"`
	YMax     float64 `yaml:"y_max"`
	VelMean  float64 `yaml:"vel_mean"`
	VelSigma float64 `yaml:"vel_sigma"`
}

type PolicyConfig struct {
	FastPass string `yaml:"fast_pass"`
	SlowPass string `yaml:"slow_pass"`
}

func Default() *Config {
	return &Config{
		Particles: DefaultParticles,
		Dims:      2,
		Dt:        DefaultDt,
		Steps:     DefaultSteps,
		Threshold: DefaultThreshold,
		Box:       BoxConfig{Lx: DefaultLx, Ly: DefaultLy},
		Barrier:   BarrierConfig{Center: 1.0, HalfWidth: DefaultEpsilon},
		Init: InitConfig{
			XMin: 0.2, XMax: 2.0,
			YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: DefaultVelSigma,
		},
		Policy: PolicyConfig{FastPass: "toward-a", SlowPass: "toward-b"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate rejects any value the simulation cannot run with. Nothing is
// silently corrected.
func (c *Config) Validate() error {
	if c.Particles <= 0 {
		return cfgErr("particles", fmt.Sprintf("%d", c.Particles), "must be positive")
	}
	if c.Dims != 1 && c.Dims != 2 {
		return cfgErr("dims", fmt.Sprintf("%d", c.Dims), "must be 1 or 2")
	}
	if c.Dt <= 0 {
		return cfgErr("dt", fmt.Sprintf("%g", c.Dt), "must be positive")
	}
	if c.Steps <= 0 {
		return cfgErr("steps", fmt.Sprintf("%d", c.Steps), "must be positive")
	}
	if c.Threshold <= 0 {
		return cfgErr("threshold", fmt.Sprintf("%g", c.Threshold), "must be positive")
	}
	if c.Box.Lx <= 0 || c.Box.Ly <= 0 {
		return cfgErr("box", fmt.Sprintf("%gx%g", c.Box.Lx, c.Box.Ly), "extents must be positive")
	}
	if c.Barrier.HalfWidth <= 0 {
		return cfgErr("barrier.half_width", fmt.Sprintf("%g", c.Barrier.HalfWidth), "must be positive")
	}
	if c.Barrier.Center <= 0 || c.Barrier.Center >= c.Box.Lx {
		return cfgErr("barrier.center", fmt.Sprintf("%g", c.Barrier.Center), "must lie strictly inside the box")
	}
	if c.Init.XMin > c.Init.XMax || c.Init.YMin > c.Init.YMax {
		return cfgErr("init", "bounds", "min must not exceed max")
	}
	if c.Init.XMin < 0 || c.Init.XMax > c.Box.Lx {
		return cfgErr("init.x", fmt.Sprintf("[%g, %g]", c.Init.XMin, c.Init.XMax), "must lie inside the box")
	}
	if c.Init.YMin < -c.Box.Ly || c.Init.YMax > c.Box.Ly {
		return cfgErr("init.y", fmt.Sprintf("[%g, %g]", c.Init.YMin, c.Init.YMax), "must lie inside the box")
	}
	if c.Init.VelSigma < 0 {
		return cfgErr("init.vel_sigma", fmt.Sprintf("%g", c.Init.VelSigma), "must not be negative")
	}
	if _, err := c.GatePolicy(); err != nil {
		return err
	}
	return nil
}

// GatePolicy resolves the configured policy spelling into the decision
// table used by the gate.
func (c *Config) GatePolicy() (demon.Policy, error) {
	fast, err := demon.ParseDirection(c.Policy.FastPass)
	if err != nil {
		return demon.Policy{}, cfgErr("policy.fast_pass", c.Policy.FastPass, "unknown direction")
	}
	slow, err := demon.ParseDirection(c.Policy.SlowPass)
	if err != nil {
		return demon.Policy{}, cfgErr("policy.slow_pass", c.Policy.SlowPass, "unknown direction")
	}
	p := demon.Policy{FastPass: fast, SlowPass: slow}
	return p, p.Validate()
}

func cfgErr(field, value, msg string) error {
	return &demon.ConfigError{Field: field, Value: value, Message: msg}
}
