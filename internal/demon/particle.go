package demon

import "math"

// Vec is a 2D vector. One-dimensional runs keep Y fixed by leaving VY at zero.
type Vec struct {
	X float64
	Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Classification is the demon's speed label for a particle.
type Classification int

const (
	Slow Classification = iota
	Fast
)

func (c Classification) String() string {
	if c == Fast {
		return "fast"
	}
	return "slow"
}

// ZoneState tracks where a particle stands with respect to the barrier zone.
// A particle is judged at most once per contiguous visit: it enters as
// Unjudged, becomes Judged after the gate decision, and resets to Outside
// only when it leaves the zone.
type ZoneState int

const (
	Outside ZoneState = iota
	Unjudged
	Judged
)

// Particle holds one particle's kinematic state. Particles never interact,
// so each one is owned and mutated exclusively by its simulation.
type Particle struct {
	Pos       Vec
	Vel       Vec
	Threshold float64
	Zone      ZoneState
}

// Advance integrates position by one explicit Euler step, per axis.
func (p *Particle) Advance(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// IsFast classifies by the barrier-aligned velocity component only. The
// comparison is strictly greater-than, so a particle sitting exactly at the
// threshold (or at rest) counts as slow.
func (p *Particle) IsFast() bool {
	return math.Abs(p.Vel.X) > p.Threshold
}

func (p *Particle) Classification() Classification {
	if p.IsFast() {
		return Fast
	}
	return Slow
}

// BounceX negates the horizontal velocity, sending the particle back the
// way it came.
func (p *Particle) BounceX() {
	p.Vel.X = -p.Vel.X
}
