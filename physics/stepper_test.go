package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestStepSingleBodyScenario(t *testing.T) {
	p := Params{Gravity: 9.81, Width: 1000, Height: 700, Damping: 0.9, Bias: 1}
	bodies := []Body{mustBody(t, 100, 1, 300, 100, -50, 0)}

	var walls Walls
	s, err := NewStepper(p, nil)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	s.OnWall = func(_ Handle, w Walls, _ float64) { walls |= w }

	if err := s.Step(bodies, 1.0/60); err != nil {
		t.Fatalf("Step: %v", err)
	}

	b := bodies[0]
	if !near(b.Vel.X, -50, 1e-9) || !near(b.Vel.Y, 0.1635, 1e-9) {
		t.Fatalf("vel: expected (-50, 0.1635), got %v", b.Vel)
	}
	if !near(b.Pos.X, 299.1666667, 1e-6) || !near(b.Pos.Y, 100.002725, 1e-6) {
		t.Fatalf("pos: expected (299.167, 100.00273), got %v", b.Pos)
	}
	if walls != WallNone {
		t.Fatalf("expected no wall contact, got %b", walls)
	}
}

func TestStepHeadOnPair(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 0
	bodies := []Body{
		mustBody(t, 20, 1, 480, 350, 10, 0),
		mustBody(t, 20, 1, 519, 350, -10, 0),
	}

	var contacts [][2]Handle
	s, err := NewStepper(p, nil)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	s.OnContact = func(a, b Handle) { contacts = append(contacts, [2]Handle{a, b}) }

	if err := s.Step(bodies, 0.01); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(contacts) != 1 || contacts[0] != [2]Handle{0, 1} {
		t.Fatalf("expected a single (0,1) contact, got %v", contacts)
	}
	if !near(bodies[0].Vel.X, -10, eps) || !near(bodies[1].Vel.X, 10, eps) {
		t.Fatalf("expected exchanged velocities, got %v %v", bodies[0].Vel, bodies[1].Vel)
	}
	if bodies[0].Vel.Y != 0 || bodies[1].Vel.Y != 0 {
		t.Fatalf("tangential velocity appeared: %v %v", bodies[0].Vel, bodies[1].Vel)
	}
}

func TestStepScansOnlyHigherHandles(t *testing.T) {
	// Body 1 is integrated after the (0,1) test, so it is still at its
	// pre-step position when body 0 looks at it.
	p := DefaultParams()
	p.Gravity = 0
	bodies := []Body{
		mustBody(t, 10, 1, 100, 100, 0, 0),
		mustBody(t, 10, 1, 130, 100, -1000, 0),
	}
	var count int
	s, _ := NewStepper(p, nil)
	s.OnContact = func(Handle, Handle) { count++ }
	if err := s.Step(bodies, 0.01); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no contact in the first step, got %d", count)
	}
	if !near(bodies[1].Pos.X, 120, eps) {
		t.Fatalf("expected body 1 to end at 120, got %v", bodies[1].Pos.X)
	}
}

func TestStepRejectsInvalidDT(t *testing.T) {
	for _, dt := range []float64{0, -1.0 / 60, math.NaN(), math.Inf(1)} {
		bodies := []Body{mustBody(t, 10, 1, 500, 300, 1, 1)}
		before := bodies[0]
		err := Step(bodies, dt, DefaultParams())
		if !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("dt=%v: expected ErrInvalidStep, got %v", dt, err)
		}
		if bodies[0] != before {
			t.Fatalf("dt=%v: body mutated on rejected step", dt)
		}
	}
}

func TestNewStepperRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name string
		mod  func(p *Params)
	}{
		{"zero_width", func(p *Params) { p.Width = 0 }},
		{"negative_height", func(p *Params) { p.Height = -5 }},
		{"damping_one", func(p *Params) { p.Damping = 1 }},
		{"damping_zero", func(p *Params) { p.Damping = 0 }},
		{"nan_gravity", func(p *Params) { p.Gravity = math.NaN() }},
		{"negative_bias", func(p *Params) { p.Bias = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.mod(&p)
			if _, err := NewStepper(p, nil); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func randomBodies(t *testing.T, seed int64, n int, p Params) []Body {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]Body, 0, n)
	for len(bodies) < n {
		r := 8 + rng.Float64()*22
		x := r + rng.Float64()*(p.Width-2*r)
		y := r + rng.Float64()*(p.Height-2*r)
		bodies = append(bodies, mustBody(t, r, MassForRadius(r, 0.01), x, y,
			(rng.Float64()*2-1)*300, (rng.Float64()*2-1)*300))
	}
	return bodies
}

func TestStepDeterministicReplay(t *testing.T) {
	p := DefaultParams()
	run := func() []Body {
		bodies := randomBodies(t, 42, 40, p)
		for i := 0; i < 300; i++ {
			if err := Step(bodies, 1.0/60, p); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}
		return bodies
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("body %d diverged: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGridMatchesAllPairs(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 300

	cases := []struct {
		name string
		seed int64
		n    int
	}{
		{"sparse", 1, 10},
		{"crowded", 7, 120},
		{"packed", 99, 250},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ref := randomBodies(t, c.seed, c.n, p)
			got := append([]Body(nil), ref...)

			refStepper, err := NewStepper(p, AllPairs{})
			if err != nil {
				t.Fatalf("NewStepper: %v", err)
			}
			gridStepper, err := NewStepper(p, &Grid{})
			if err != nil {
				t.Fatalf("NewStepper: %v", err)
			}

			var refContacts, gridContacts int
			refStepper.OnContact = func(Handle, Handle) { refContacts++ }
			gridStepper.OnContact = func(Handle, Handle) { gridContacts++ }

			for step := 0; step < 240; step++ {
				if err := refStepper.Step(ref, 1.0/60); err != nil {
					t.Fatalf("ref Step: %v", err)
				}
				if err := gridStepper.Step(got, 1.0/60); err != nil {
					t.Fatalf("grid Step: %v", err)
				}
				for i := range ref {
					if ref[i] != got[i] {
						t.Fatalf("step %d body %d diverged: %+v vs %+v", step, i, ref[i], got[i])
					}
				}
			}
			if refContacts != gridContacts {
				t.Fatalf("contact counts differ: %d vs %d", refContacts, gridContacts)
			}
		})
	}
}

func TestStepKeepsBodiesNearArena(t *testing.T) {
	p := DefaultParams()
	bodies := randomBodies(t, 5, 60, p)
	for i := 0; i < 600; i++ {
		if err := Step(bodies, 1.0/60, p); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	// Position correction after the boundary pass may push a body past a
	// wall by at most its partner's overlap, never by a full diameter.
	for i, b := range bodies {
		slack := 2*b.Radius + p.Bias + 60
		if b.Pos.X < -slack || b.Pos.X > p.Width+slack || b.Pos.Y < -slack || b.Pos.Y > p.Height+slack {
			t.Fatalf("body %d escaped to %v", i, b.Pos)
		}
	}
}

func TestNewBroadphase(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"", true},
		{"all", true},
		{"Grid", true},
		{"quadtree", false},
	}
	for _, c := range cases {
		_, err := NewBroadphase(c.name)
		if (err == nil) != c.ok {
			t.Fatalf("%q: unexpected error state %v", c.name, err)
		}
	}
}

func TestFixedStep(t *testing.T) {
	if FixedStep(60) != 1.0/60 || FixedStep(0) != 1.0/DefaultTPS || FixedStep(120) != 1.0/120 {
		t.Fatalf("unexpected fixed steps")
	}
}
