package chipmunk

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/physics"
)

func body(t *testing.T, r, m, x, y, vx, vy float64) physics.Body {
	t.Helper()
	b, err := physics.NewBody(r, m, cp.Vector{X: x, Y: y}, cp.Vector{X: vx, Y: vy})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestSolverAppliesGravity(t *testing.T) {
	p := physics.DefaultParams()
	bodies := []physics.Body{body(t, 10, 1, 500, 300, 0, 0)}
	s, err := New(bodies, p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dt := 1.0 / 60
	if err := s.Step(bodies, dt); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if math.Abs(bodies[0].Vel.Y-p.Gravity*dt) > 1e-9 {
		t.Fatalf("expected vy %v, got %v", p.Gravity*dt, bodies[0].Vel.Y)
	}
	if math.Abs(bodies[0].Pos.Y-300) > 0.01 || bodies[0].Pos.X != 500 {
		t.Fatalf("unexpected position %v", bodies[0].Pos)
	}
}

func TestSolverKeepsBallInArena(t *testing.T) {
	p := physics.DefaultParams()
	p.Gravity = 900
	bodies := []physics.Body{
		body(t, 20, 4, 200, 100, 250, 0),
		body(t, 30, 9, 600, 200, -150, -100),
	}
	s, err := New(bodies, p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 600; i++ {
		if err := s.Step(bodies, 1.0/60); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	const slop = 2.0
	for i, b := range bodies {
		if b.Pos.X-b.Radius < -slop || b.Pos.X+b.Radius > p.Width+slop ||
			b.Pos.Y-b.Radius < -slop || b.Pos.Y+b.Radius > p.Height+slop {
			t.Fatalf("body %d escaped to %v", i, b.Pos)
		}
	}
}

func TestSolverReportsContacts(t *testing.T) {
	p := physics.DefaultParams()
	p.Gravity = 0
	bodies := []physics.Body{
		body(t, 10, 1, 400, 350, 200, 0),
		body(t, 10, 1, 460, 350, -200, 0),
	}
	s, err := New(bodies, p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var contacts [][2]physics.Handle
	s.OnContact = func(a, b physics.Handle) {
		contacts = append(contacts, [2]physics.Handle{a, b})
	}
	for i := 0; i < 30; i++ {
		if err := s.Step(bodies, 1.0/60); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if len(contacts) == 0 || contacts[0] != [2]physics.Handle{0, 1} {
		t.Fatalf("expected a (0,1) contact, got %v", contacts)
	}
	if bodies[0].Vel.X >= 0 || bodies[1].Vel.X <= 0 {
		t.Fatalf("expected the balls to rebound, got %v %v", bodies[0].Vel, bodies[1].Vel)
	}
}

func TestSolverErrors(t *testing.T) {
	p := physics.DefaultParams()
	bodies := []physics.Body{body(t, 10, 1, 500, 300, 0, 0)}
	s, err := New(bodies, p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Step(append(bodies, bodies[0]), 1.0/60); !errors.Is(err, ErrBodyCount) {
		t.Fatalf("expected ErrBodyCount, got %v", err)
	}
	if err := s.Step(bodies, 0); !errors.Is(err, physics.ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}

	p.Damping = 2
	if _, err := New(bodies, p); !errors.Is(err, physics.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}
