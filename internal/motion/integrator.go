// Package motion advances particles through the box. Particles are
// independent, so the step applies to each one in isolation: explicit Euler
// position update followed by wall reflection.
package motion

import "github.com/lruiz/demonsim/internal/demon"

type Integrator struct {
	box Box
}

func NewIntegrator(box Box) *Integrator {
	return &Integrator{box: box}
}

func (in *Integrator) Box() Box { return in.box }

// Step advances every particle by dt and reflects it off the box walls.
// Order across particles carries no meaning.
func (in *Integrator) Step(particles []*demon.Particle, dt float64) {
	for _, p := range particles {
		p.Advance(dt)
		in.box.Reflect(p)
	}
}
