package demon

import "fmt"

// Direction is the sign of travel along the barrier axis.
type Direction int

const (
	// TowardA is decreasing x, into the left chamber.
	TowardA Direction = -1
	// TowardB is increasing x, into the right chamber.
	TowardB Direction = 1
)

func (d Direction) String() string {
	switch d {
	case TowardA:
		return "toward-a"
	case TowardB:
		return "toward-b"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps the config spelling of a direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "toward-a", "a", "left":
		return TowardA, nil
	case "toward-b", "b", "right":
		return TowardB, nil
	}
	return 0, fmt.Errorf("demon: unknown direction %q", s)
}

// Policy is the demon's decision table: for each classification, the one
// direction of travel in which the gate opens. A particle judged while
// moving in the other direction bounces. Exactly one permitted direction
// per classification keeps the sort deterministic.
type Policy struct {
	FastPass Direction
	SlowPass Direction
}

// DefaultPolicy sorts fast particles into chamber A and slow ones into
// chamber B, matching the canonical demon.
func DefaultPolicy() Policy {
	return Policy{FastPass: TowardA, SlowPass: TowardB}
}

func (p Policy) Validate() error {
	for _, d := range []Direction{p.FastPass, p.SlowPass} {
		if d != TowardA && d != TowardB {
			return &ConfigError{Field: "policy", Value: fmt.Sprintf("%d", int(d)),
				Message: "permitted direction must be toward-a or toward-b"}
		}
	}
	return nil
}

// Permits reports whether the gate opens for the given classification and
// direction of travel.
func (p Policy) Permits(c Classification, d Direction) bool {
	if c == Fast {
		return d == p.FastPass
	}
	return d == p.SlowPass
}
