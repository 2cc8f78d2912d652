package physics

import (
	"fmt"
	"math"
)

// Solver advances a body collection by one fixed step.
type Solver interface {
	Step(bodies []Body, dt float64) error
}

// ContactFunc is told about every resolved body-body contact. It is purely
// diagnostic and must not mutate the bodies.
type ContactFunc func(a, b Handle)

// WallFunc is told which walls a body touched and how fast it was moving into
// them.
type WallFunc func(h Handle, walls Walls, speed float64)

// Stepper runs the integrate, boundary, pairwise sequence over a body
// collection.
//
// Each body is integrated, clamped to the arena and then tested against every
// body with a greater handle, before the next body is integrated. Overlaps are
// resolved one pair at a time in scan order with no global solve, so the
// outcome for three or more mutually overlapping bodies depends on their
// order in the collection.
type Stepper struct {
	params Params
	broad  Broadphase

	OnContact ContactFunc
	OnWall    WallFunc
}

// NewStepper validates p. A nil broadphase selects AllPairs.
func NewStepper(p Params, broad Broadphase) (*Stepper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if broad == nil {
		broad = AllPairs{}
	}
	return &Stepper{params: p, broad: broad}, nil
}

func (s *Stepper) Params() Params {
	return s.params
}

// Step mutates every body in place. It rejects a non-positive or non-finite
// dt before touching any body. Bodies are expected to come from NewBody.
func (s *Stepper) Step(bodies []Body, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("physics: dt %v: %w", dt, ErrInvalidStep)
	}

	s.broad.Reset(bodies)
	for i := range bodies {
		h := Handle(i)
		a := &bodies[i]

		a.Integrate(s.params.Gravity, dt)
		incoming := a.Vel
		if walls := ResolveBoundaries(a, s.params); walls != WallNone && s.OnWall != nil {
			s.OnWall(h, walls, ImpactSpeed(incoming, walls))
		}
		s.broad.Moved(bodies, h)

		s.broad.Scan(bodies, h, func(other Handle) {
			b := &bodies[other]
			if !Overlaps(a, b) {
				return
			}
			ResolvePair(a, b, s.params.Bias)
			s.broad.Moved(bodies, h)
			s.broad.Moved(bodies, other)
			if s.OnContact != nil {
				s.OnContact(h, other)
			}
		})
	}
	return nil
}

// Step advances bodies once with the all-pairs scan.
func Step(bodies []Body, dt float64, p Params) error {
	s, err := NewStepper(p, nil)
	if err != nil {
		return err
	}
	return s.Step(bodies, dt)
}
