package motion

import "github.com/lruiz/demonsim/internal/demon"

// Box is the simulation container: x in [0, Lx], y in [-Ly, Ly].
type Box struct {
	Lx float64
	Ly float64
}

// Reflect clamps the particle back inside the box and negates the velocity
// component on any wall it crossed. Clamping (rather than bare negation)
// keeps repeated overshoots from walking a particle out of the box.
func (b Box) Reflect(p *demon.Particle) {
	if p.Pos.X < 0 {
		p.Pos.X = 0
		p.Vel.X = -p.Vel.X
	} else if p.Pos.X > b.Lx {
		p.Pos.X = b.Lx
		p.Vel.X = -p.Vel.X
	}

	if p.Pos.Y < -b.Ly {
		p.Pos.Y = -b.Ly
		p.Vel.Y = -p.Vel.Y
	} else if p.Pos.Y > b.Ly {
		p.Pos.Y = b.Ly
		p.Vel.Y = -p.Vel.Y
	}
}

// Contains reports whether the position lies inside the box (inclusive).
func (b Box) Contains(v demon.Vec) bool {
	return v.X >= 0 && v.X <= b.Lx && v.Y >= -b.Ly && v.Y <= b.Ly
}
