package sim

import (
	"github.com/lruiz/demonsim/internal/demon"
	"github.com/lruiz/demonsim/internal/ledger"
)

// Snapshot is the immutable per-step output handed to renderers and
// exporters. Slices are freshly allocated each step and never reused.
type Snapshot struct {
	Step         int
	Time         float64
	Positions    []demon.Vec
	Velocities   []demon.Vec
	Classes      []demon.Classification
	GateOpen     bool
	BitsThisStep int
	CountA       int
	CountB       int
	Bits         int
	Energy       float64
}

// Result collects a full run.
type Result struct {
	Snapshots []Snapshot
	History   []ledger.Sample
	Metrics   map[string]float64
	Steps     int
}

// Final returns the last snapshot of the run.
func (r *Result) Final() Snapshot {
	if len(r.Snapshots) == 0 {
		return Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
