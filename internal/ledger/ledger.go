// Package ledger keeps the demon's books: every committed crossing costs
// one bit of recorded information, charged at the Landauer rate of ln 2
// per bit (kT = 1).
package ledger

import "math"

// Sample is one point of the sparse history, appended only when the bit
// count actually moved.
type Sample struct {
	Step   int
	Bits   int
	Energy float64
}

// Ledger accumulates bits and the derived energy cost. Bits never
// decrease; energy is always exactly Bits * ln 2.
type Ledger struct {
	bits    int
	energy  float64
	history []Sample
}

func New() *Ledger {
	return &Ledger{history: make([]Sample, 0, 64)}
}

// Record charges n bits at the given simulation step. Recording zero bits
// leaves the ledger and its history untouched.
func (l *Ledger) Record(step, n int) {
	if n <= 0 {
		return
	}
	l.bits += n
	l.energy = float64(l.bits) * math.Ln2
	l.history = append(l.history, Sample{Step: step, Bits: l.bits, Energy: l.energy})
}

func (l *Ledger) Bits() int { return l.bits }

func (l *Ledger) Energy() float64 { return l.energy }

// History returns a copy of the sparse samples.
func (l *Ledger) History() []Sample {
	out := make([]Sample, len(l.history))
	copy(out, l.history)
	return out
}
