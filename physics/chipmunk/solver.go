// Package chipmunk runs a body collection through a Chipmunk2D space instead
// of the native stepper. It exists to compare trajectories against a general
// purpose solver and to feed the debug overlay.
package chipmunk

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/physics"
)

const (
	collisionTypeBall cp.CollisionType = iota + 1
	collisionTypeWall
)

const wallThickness = 1.0

var ErrBodyCount = errors.New("chipmunk: body count changed")

// Solver mirrors physics bodies into a cp.Space. Ball shapes are perfectly
// elastic and frictionless; wall segments carry the arena damping, which
// Chipmunk multiplies into the ball elasticity.
type Solver struct {
	space  *cp.Space
	params physics.Params
	bodies []*cp.Body

	shapeToHandle map[*cp.Shape]physics.Handle

	OnContact physics.ContactFunc
}

func New(bodies []physics.Body, p physics.Params) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: p.Gravity})

	s := &Solver{
		space:         space,
		params:        p,
		bodies:        make([]*cp.Body, 0, len(bodies)),
		shapeToHandle: make(map[*cp.Shape]physics.Handle, len(bodies)),
	}
	s.buildWalls()

	for i := range bodies {
		b := &bodies[i]
		body := cp.NewBody(b.Mass, math.Inf(1))
		body.SetPosition(b.Pos)
		body.SetVelocity(b.Vel.X, b.Vel.Y)
		space.AddBody(body)

		shape := cp.NewCircle(body, b.Radius, cp.Vector{})
		shape.SetElasticity(1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeBall)
		space.AddShape(shape)

		s.bodies = append(s.bodies, body)
		s.shapeToHandle[shape] = physics.Handle(i)
	}
	s.setupHandlers()
	return s, nil
}

// Space returns the underlying Chipmunk space.
func (s *Solver) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Step copies the bodies into the space, steps it once and copies the
// result back, so callers may edit bodies between steps.
func (s *Solver) Step(bodies []physics.Body, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("chipmunk: dt %v: %w", dt, physics.ErrInvalidStep)
	}
	if len(bodies) != len(s.bodies) {
		return fmt.Errorf("chipmunk: have %d bodies, got %d: %w", len(s.bodies), len(bodies), ErrBodyCount)
	}

	for i, body := range s.bodies {
		body.SetPosition(bodies[i].Pos)
		body.SetVelocity(bodies[i].Vel.X, bodies[i].Vel.Y)
	}

	s.space.Step(dt)

	for i, body := range s.bodies {
		bodies[i].Pos = body.Position()
		bodies[i].Vel = body.Velocity()
	}
	return nil
}

func (s *Solver) buildWalls() {
	w, h := s.params.Width, s.params.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}},
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}},
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(s.space.StaticBody, seg.a, seg.b, wallThickness)
		shape.SetElasticity(s.params.Damping)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeWall)
		s.space.AddShape(shape)
	}
}

func (s *Solver) setupHandlers() {
	handler := s.space.NewCollisionHandler(collisionTypeBall, collisionTypeBall)
	handler.UserData = s
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		solver, ok := userData.(*Solver)
		if !ok || solver == nil || solver.OnContact == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := solver.shapeToHandle[shapeA]
		b, okB := solver.shapeToHandle[shapeB]
		if !okA || !okB {
			return true
		}
		if a > b {
			a, b = b, a
		}
		solver.OnContact(a, b)
		return true
	}
}
