package sim

import (
	"context"
	"math"
	"testing"

	"github.com/lruiz/demonsim/internal/config"
	"github.com/lruiz/demonsim/internal/demon"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Particles = 20
	cfg.Steps = 500
	cfg.Seed = 42
	return cfg
}

func TestNewClockRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero particles", func(c *config.Config) { c.Particles = 0 }},
		{"zero dt", func(c *config.Config) { c.Dt = 0 }},
		{"zero threshold", func(c *config.Config) { c.Threshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := NewClock(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunLedgerInvariants(t *testing.T) {
	clock, err := NewClock(testConfig())
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	result, err := clock.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	prevBits := 0
	for _, snap := range result.Snapshots {
		if snap.Bits < prevBits {
			t.Fatalf("step %d: bits decreased from %d to %d", snap.Step, prevBits, snap.Bits)
		}
		prevBits = snap.Bits

		want := float64(snap.Bits) * math.Ln2
		if math.Abs(snap.Energy-want) > 1e-9 {
			t.Fatalf("step %d: energy %f != bits*ln2 %f", snap.Step, snap.Energy, want)
		}
	}

	if result.Final().Bits == 0 {
		t.Error("expected some committed bits over 500 steps")
	}
	if len(result.History) == 0 {
		t.Error("expected sparse history samples")
	}
	for _, s := range result.History {
		if math.Abs(s.Energy-float64(s.Bits)*math.Ln2) > 1e-9 {
			t.Errorf("history sample %+v violates energy consistency", s)
		}
	}
}

func TestRunBoundaryContainment(t *testing.T) {
	cfg := testConfig()
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	result, err := clock.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, snap := range result.Snapshots {
		for i, pos := range snap.Positions {
			if pos.X < 0 || pos.X > cfg.Box.Lx || pos.Y < -cfg.Box.Ly || pos.Y > cfg.Box.Ly {
				t.Fatalf("step %d: particle %d outside box at %+v", snap.Step, i, pos)
			}
		}
	}
}

func TestRunDeterminism(t *testing.T) {
	run := func() *Result {
		clock, err := NewClock(testConfig())
		if err != nil {
			t.Fatalf("NewClock failed: %v", err)
		}
		result, err := clock.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return result
	}

	a, b := run(), run()

	if a.Final().Bits != b.Final().Bits {
		t.Fatalf("same seed produced different bit counts: %d vs %d", a.Final().Bits, b.Final().Bits)
	}
	for i := range a.Snapshots {
		for j := range a.Snapshots[i].Positions {
			if a.Snapshots[i].Positions[j] != b.Snapshots[i].Positions[j] {
				t.Fatalf("step %d: positions diverge at particle %d", i, j)
			}
		}
	}
}

func TestOccupancyCountsSumToPopulation(t *testing.T) {
	cfg := testConfig()
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		snap := clock.Step()
		if snap.CountA+snap.CountB != cfg.Particles {
			t.Fatalf("step %d: occupancy %d+%d != %d", snap.Step, snap.CountA, snap.CountB, cfg.Particles)
		}
	}
}

func TestGateScenarioFastBounce(t *testing.T) {
	cfg := testConfig()
	cfg.Particles = 1
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	// Place the single particle just left of the zone, fast, heading toward
	// B: the default policy must bounce it and charge nothing.
	clock.particles[0].Pos = demon.Vec{X: 0.99, Y: 0}
	clock.particles[0].Vel = demon.Vec{X: 3.0, Y: 0}
	clock.particles[0].Zone = demon.Outside

	snap := clock.Step()
	if snap.Bits != 0 {
		t.Fatal("fast bounced particle committed a bit")
	}
	if clock.particles[0].Vel.X != -3.0 {
		t.Fatalf("expected velocity negated by the bounce, got %f", clock.particles[0].Vel.X)
	}

	// Riding out the visit must leave it in chamber A with no bits charged.
	for clock.particles[0].Zone != demon.Outside {
		snap = clock.Step()
	}
	if snap.Bits != 0 {
		t.Errorf("bounce visit charged %d bits", snap.Bits)
	}
	if snap.Positions[0].X >= 1.0 {
		t.Errorf("bounced particle ended up at x=%f, expected left of the divider", snap.Positions[0].X)
	}
}

func TestGateScenarioSlowPass(t *testing.T) {
	cfg := testConfig()
	cfg.Particles = 1
	cfg.Policy.SlowPass = "toward-a"
	cfg.Policy.FastPass = "toward-b"
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	clock.particles[0].Pos = demon.Vec{X: 1.01, Y: 0}
	clock.particles[0].Vel = demon.Vec{X: -1.0, Y: 0}
	clock.particles[0].Zone = demon.Outside

	snap := clock.Step()
	if snap.Bits != 1 {
		t.Fatalf("expected 1 bit, got %d", snap.Bits)
	}
	if math.Abs(snap.Energy-math.Ln2) > 1e-12 {
		t.Errorf("expected energy ln2, got %f", snap.Energy)
	}
	if !snap.GateOpen {
		t.Error("gate should report open")
	}

	// It must actually cross the divider during this visit.
	for i := 0; i < 20; i++ {
		snap = clock.Step()
	}
	if snap.Positions[0].X >= 1.0 {
		t.Error("passed particle never crossed the divider")
	}
	if snap.Bits != 1 {
		t.Errorf("lingering in the zone recounted bits: %d", snap.Bits)
	}
}

type recordingObserver struct {
	steps int
}

func (r *recordingObserver) OnStep(s Snapshot) { r.steps++ }

func TestObserversAndMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Steps = 50
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	obs := &recordingObserver{}
	clock.AddObserver(obs)
	clock.AddMetric(NewGateActivity())
	clock.AddMetric(NewSeparation(cfg.Barrier.Center, demon.TowardA))

	result, err := clock.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if obs.steps != 50 {
		t.Errorf("observer saw %d steps, want 50", obs.steps)
	}
	if _, ok := result.Metrics["gate_activity"]; !ok {
		t.Error("gate_activity metric missing from result")
	}
	if _, ok := result.Metrics["separation"]; !ok {
		t.Error("separation metric missing from result")
	}
}

func TestRunCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Steps = 1000000
	clock, err := NewClock(cfg)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := clock.Run(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(result.Snapshots) != 0 {
		t.Errorf("expected no completed steps, got %d", len(result.Snapshots))
	}
}

func TestReset(t *testing.T) {
	clock, err := NewClock(testConfig())
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}

	first := make([]Snapshot, 0, 100)
	for i := 0; i < 100; i++ {
		first = append(first, clock.Step())
	}

	clock.Reset()
	if clock.StepsTaken() != 0 {
		t.Fatalf("expected 0 steps after reset, got %d", clock.StepsTaken())
	}

	for i := 0; i < 100; i++ {
		snap := clock.Step()
		if snap.Bits != first[i].Bits {
			t.Fatalf("replay diverged at step %d: %d vs %d bits", i, snap.Bits, first[i].Bits)
		}
	}
}

func TestEnsemble(t *testing.T) {
	cfg := testConfig()
	cfg.Steps = 100

	ens := NewEnsemble(cfg, 4, 100)
	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Steps != 100 {
			t.Errorf("run %d took %d steps, want 100", i, r.Steps)
		}
	}
}
