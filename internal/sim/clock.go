// Package sim orchestrates the Maxwell's-demon simulation: a Clock drives
// integrator, gate and ledger through discrete steps and publishes one
// Snapshot per step.
package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/lruiz/demonsim/internal/config"
	"github.com/lruiz/demonsim/internal/demon"
	"github.com/lruiz/demonsim/internal/gate"
	"github.com/lruiz/demonsim/internal/ledger"
	"github.com/lruiz/demonsim/internal/motion"
)

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s Snapshot)
}

// Clock owns the particle population and steps the simulation. Each step is
// atomic with respect to the Snapshot it produces, so a caller may stop at
// any step boundary.
type Clock struct {
	cfg       *config.Config
	particles []*demon.Particle
	initial   []demon.Particle
	integ     *motion.Integrator
	gate      *gate.Controller
	ledger    *ledger.Ledger
	step      int
	observers []Observer
	metrics   []Metric
}

// NewClock validates the configuration, seeds the population and wires the
// step pipeline. Initial conditions are fully determined by cfg.Seed.
func NewClock(cfg *config.Config) (*Clock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.GatePolicy()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	particles := make([]*demon.Particle, cfg.Particles)
	for i := range particles {
		p := &demon.Particle{
			Pos: demon.Vec{
				X: uniform(rng, cfg.Init.XMin, cfg.Init.XMax),
				Y: uniform(rng, cfg.Init.YMin, cfg.Init.YMax),
			},
			Vel:       demon.Vec{X: cfg.Init.VelMean + cfg.Init.VelSigma*rng.NormFloat64()},
			Threshold: cfg.Threshold,
		}
		if cfg.Dims == 2 {
			p.Vel.Y = cfg.Init.VelMean + cfg.Init.VelSigma*rng.NormFloat64()
		}
		particles[i] = p
	}

	initial := make([]demon.Particle, len(particles))
	for i, p := range particles {
		initial[i] = *p
	}

	return &Clock{
		cfg:       cfg,
		particles: particles,
		initial:   initial,
		integ:     motion.NewIntegrator(motion.Box{Lx: cfg.Box.Lx, Ly: cfg.Box.Ly}),
		gate: gate.NewController(gate.Zone{
			Center:    cfg.Barrier.Center,
			HalfWidth: cfg.Barrier.HalfWidth,
		}, policy),
		ledger: ledger.New(),
	}, nil
}

func (c *Clock) AddObserver(o Observer) { c.observers = append(c.observers, o) }
func (c *Clock) AddMetric(m Metric)     { c.metrics = append(c.metrics, m) }

func (c *Clock) Config() *config.Config { return c.cfg }

func (c *Clock) StepsTaken() int { return c.step }

// History exposes the ledger's sparse (bits, energy) samples.
func (c *Clock) History() []ledger.Sample { return c.ledger.History() }

// Step runs one discrete step: integrate, judge, account, snapshot.
func (c *Clock) Step() Snapshot {
	c.integ.Step(c.particles, c.cfg.Dt)
	verdict := c.gate.Evaluate(c.particles)
	c.step++
	c.ledger.Record(c.step, verdict.Bits)

	snap := c.snapshot(verdict)
	for _, m := range c.metrics {
		m.Observe(snap)
	}
	for _, o := range c.observers {
		o.OnStep(snap)
	}
	return snap
}

// Run executes cfg.Steps steps, honoring ctx between steps. The returned
// Result holds every snapshot plus the ledger history and metric values.
func (c *Clock) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Snapshots: make([]Snapshot, 0, c.cfg.Steps),
		Metrics:   make(map[string]float64),
	}

	for _, m := range c.metrics {
		m.Reset()
	}

	for i := 0; i < c.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		snap := c.Step()
		result.Snapshots = append(result.Snapshots, snap)

		for j := range snap.Positions {
			if !snap.Positions[j].IsValid() || !snap.Velocities[j].IsValid() {
				return result, fmt.Errorf("step %d, particle %d: %w", snap.Step, j, demon.ErrInvalidState)
			}
		}
	}

	result.Steps = c.step
	result.History = c.ledger.History()
	for _, m := range c.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Reset restores the initial population and a fresh ledger, so the same
// clock replays the same run.
func (c *Clock) Reset() {
	for i := range c.particles {
		*c.particles[i] = c.initial[i]
	}
	c.ledger = ledger.New()
	c.step = 0
	for _, m := range c.metrics {
		m.Reset()
	}
}

func (c *Clock) snapshot(v gate.Verdict) Snapshot {
	n := len(c.particles)
	snap := Snapshot{
		Step:         c.step,
		Time:         float64(c.step) * c.cfg.Dt,
		Positions:    make([]demon.Vec, n),
		Velocities:   make([]demon.Vec, n),
		Classes:      make([]demon.Classification, n),
		GateOpen:     v.Opened,
		BitsThisStep: v.Bits,
		Bits:         c.ledger.Bits(),
		Energy:       c.ledger.Energy(),
	}
	for i, p := range c.particles {
		snap.Positions[i] = p.Pos
		snap.Velocities[i] = p.Vel
		snap.Classes[i] = p.Classification()
		if p.Pos.X < c.cfg.Barrier.Center {
			snap.CountA++
		} else {
			snap.CountB++
		}
	}
	return snap
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
