// Package gate implements the demon itself: the barrier-zone state machine
// that judges each particle at most once per visit and either lets it
// through or bounces it, according to a [demon.Policy].
package gate

import "github.com/lruiz/demonsim/internal/demon"

// Zone is the neighborhood of the dividing line where judging happens,
// x in (Center-HalfWidth, Center+HalfWidth). Purely geometric.
type Zone struct {
	Center    float64
	HalfWidth float64
}

// Contains uses strict inequalities, matching the open interval around the
// divider.
func (z Zone) Contains(x float64) bool {
	return x > z.Center-z.HalfWidth && x < z.Center+z.HalfWidth
}

// Verdict is the outcome of one evaluation pass: whether the trapdoor
// opened at all this step, and how many crossings were committed. Several
// particles can transition in the same step; each one costs a bit.
type Verdict struct {
	Opened bool
	Bits   int
}

// Controller runs the per-particle state machine:
//
//	Outside -> Unjudged   on entering the zone
//	Unjudged -> Judged    the one gate decision (pass or bounce)
//	Judged -> Judged      no further judging while inside
//	Judged -> Outside     on leaving the zone
//
// A stationary particle (vx == 0) stays Unjudged: there is no direction of
// travel to sort on, so no decision and no bit.
type Controller struct {
	zone   Zone
	policy demon.Policy
}

func NewController(zone Zone, policy demon.Policy) *Controller {
	return &Controller{zone: zone, policy: policy}
}

func (c *Controller) Zone() Zone { return c.zone }

// Evaluate advances the state machine for every particle and applies the
// gate decision to those entering the zone. Mutates velocities in place on
// a bounce.
func (c *Controller) Evaluate(particles []*demon.Particle) Verdict {
	var v Verdict

	for _, p := range particles {
		if !c.zone.Contains(p.Pos.X) {
			p.Zone = demon.Outside
			continue
		}

		if p.Zone == demon.Outside {
			p.Zone = demon.Unjudged
		}
		if p.Zone != demon.Unjudged {
			continue
		}

		dir, moving := travel(p.Vel.X)
		if !moving {
			continue
		}

		p.Zone = demon.Judged
		if c.policy.Permits(p.Classification(), dir) {
			v.Opened = true
			v.Bits++
		} else {
			p.BounceX()
		}
	}

	return v
}

func travel(vx float64) (demon.Direction, bool) {
	switch {
	case vx > 0:
		return demon.TowardB, true
	case vx < 0:
		return demon.TowardA, true
	default:
		return 0, false
	}
}
