package sim

import "github.com/lruiz/demonsim/internal/demon"

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// GateActivity measures the fraction of steps on which the gate opened.
type GateActivity struct {
	open    int
	samples int
}

func NewGateActivity() *GateActivity { return &GateActivity{} }

func (g *GateActivity) Name() string { return "gate_activity" }

func (g *GateActivity) Observe(s Snapshot) {
	g.samples++
	if s.GateOpen {
		g.open++
	}
}

func (g *GateActivity) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return float64(g.open) / float64(g.samples)
}

func (g *GateActivity) Reset() {
	g.open = 0
	g.samples = 0
}

// Separation measures how well the demon has sorted: the fraction of fast
// particles currently on the fast side of the divider, at the latest
// observed step.
type Separation struct {
	divider  float64
	fastSide demon.Direction
	value    float64
}

// NewSeparation reports sorting quality for a demon whose policy sends
// fast particles in fastSide direction of the divider.
func NewSeparation(divider float64, fastSide demon.Direction) *Separation {
	return &Separation{divider: divider, fastSide: fastSide}
}

func (s *Separation) Name() string { return "separation" }

func (s *Separation) Observe(snap Snapshot) {
	fast, sorted := 0, 0
	for i, c := range snap.Classes {
		if c != demon.Fast {
			continue
		}
		fast++
		onLeft := snap.Positions[i].X < s.divider
		if (s.fastSide == demon.TowardA) == onLeft {
			sorted++
		}
	}
	if fast == 0 {
		s.value = 1.0
		return
	}
	s.value = float64(sorted) / float64(fast)
}

func (s *Separation) Value() float64 { return s.value }

func (s *Separation) Reset() { s.value = 0 }
