package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const eps = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustBody(t *testing.T, radius, mass, x, y, vx, vy float64) Body {
	t.Helper()
	b, err := NewBody(radius, mass, cp.Vector{X: x, Y: y}, cp.Vector{X: vx, Y: vy})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestNewBodyValidation(t *testing.T) {
	cases := []struct {
		name   string
		radius float64
		mass   float64
		ok     bool
	}{
		{"valid", 10, 1, true},
		{"zero_radius", 0, 1, false},
		{"negative_radius", -1, 1, false},
		{"zero_mass", 10, 0, false},
		{"negative_mass", 10, -2, false},
		{"nan_mass", 10, math.NaN(), false},
		{"inf_radius", math.Inf(1), 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewBody(c.radius, c.mass, cp.Vector{}, cp.Vector{})
			if c.ok && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidBody) {
				t.Fatalf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
}

func TestIntegrateFromRest(t *testing.T) {
	const (
		g  = 9.81
		dt = 1.0 / 60
		y0 = 250.0
	)
	b := mustBody(t, 5, 1, 100, y0, 0, 0)
	b.Integrate(g, dt)

	if !near(b.Vel.Y, g*dt, eps) {
		t.Fatalf("vy: expected %v, got %v", g*dt, b.Vel.Y)
	}
	if !near(b.Pos.Y, y0+g*dt*dt, eps) {
		t.Fatalf("y: expected %v, got %v", y0+g*dt*dt, b.Pos.Y)
	}
	if b.Vel.X != 0 || b.Pos.X != 100 {
		t.Fatalf("horizontal state changed: pos=%v vel=%v", b.Pos, b.Vel)
	}
}

func TestIntegrateLeavesBoundsToCaller(t *testing.T) {
	b := mustBody(t, 5, 1, 1, 1, -600, -600)
	b.Integrate(0, 1)
	if b.Pos.X != -599 || b.Pos.Y != -599 {
		t.Fatalf("expected unclamped position, got %v", b.Pos)
	}
}

func TestMassForRadius(t *testing.T) {
	if got := MassForRadius(100, 1.0/(100*100)); !near(got, 1, eps) {
		t.Fatalf("expected mass 1, got %v", got)
	}
	if got := MassForRadius(20, 2); got != 800 {
		t.Fatalf("expected 800, got %v", got)
	}
}

func TestKineticEnergy(t *testing.T) {
	bodies := []Body{
		mustBody(t, 1, 2, 0, 0, 3, 4),
		mustBody(t, 1, 1, 0, 0, 0, -2),
	}
	if got := KineticEnergy(bodies); !near(got, 0.5*2*25+0.5*1*4, eps) {
		t.Fatalf("unexpected energy %v", got)
	}
}
