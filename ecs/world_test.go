package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/ballpit/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledEntityIsNewHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h, intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh == old {
		t.Fatalf("recycled entity reused the same handle %s", fresh)
	}
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %d and %d", fresh.id(), old.id())
	}
	if Has(w, fresh, h) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2, stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "add_float_and_remove",
			setup: func() error { return Add(w, e1, h3, float64Ptr(1.23)) },
			check: func(t *testing.T) {
				if _, ok := Get(w, e1, h3); !ok {
					t.Fatalf("expected float present")
				}
			},
			teardown: func() bool { return Remove(w, e1, h3) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add[int](w, e1, h1, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestGetReturnsSharedPointer(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)
	if err := Add(w, e, h, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	v, _ := Get(w, e, h)
	*v = 5
	again, _ := Get(w, e, h)
	if *again != 5 {
		t.Fatalf("expected mutation through pointer, got %d", *again)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e3, h, intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e1, h, intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h, func(e Entity, _ *int) { ents = append(ents, e) })

	if len(ents) != 2 || ents[0] != e1 || ents[1] != e3 {
		t.Fatalf("expected [e1 e3] in creation order, got %v (e2=%v)", ents, e2)
	}

	// Destroying while iterating is allowed.
	ForEach(w, h, func(e Entity, _ *int) { DestroyEntity(w, e) })
	if len(w.Query(h.Kind())) != 0 {
		t.Fatalf("expected empty query after destroying every entity")
	}
}

func TestForEach2AndQuery(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	ha := component.NewComponent[int]()
	hb := component.NewComponent[string]()

	for _, step := range []error{
		Add(w, e1, ha, intPtr(1)),
		Add(w, e2, ha, intPtr(2)),
		Add(w, e2, hb, stringPtr("two")),
		Add(w, e3, hb, stringPtr("three")),
	} {
		if step != nil {
			t.Fatal(step)
		}
	}

	var seen []Entity
	ForEach2(w, ha, hb, func(e Entity, a *int, b *string) {
		if *a != 2 || *b != "two" {
			t.Fatalf("unexpected values %d %q", *a, *b)
		}
		seen = append(seen, e)
	})
	if len(seen) != 1 || seen[0] != e2 {
		t.Fatalf("expected only e2, got %v", seen)
	}

	if got := w.Query(ha.Kind(), hb.Kind()); len(got) != 1 || got[0] != e2 {
		t.Fatalf("unexpected query result %v", got)
	}
	if e, ok := w.First(hb.Kind()); !ok || e != e2 {
		t.Fatalf("expected First to return e2, got %v ok=%v", e, ok)
	}
	if e, v, ok := First(w, ha); !ok || e != e1 || *v != 1 {
		t.Fatalf("expected First(ha) = e1, got %v ok=%v", e, ok)
	}
}

type countingSystem struct {
	updates int
	events  int
}

func (s *countingSystem) Update(w *World) {
	s.updates++
	s.events += len(w.Events().Items())
	w.Events().Push(Event{Type: EventContact})
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	s := NewScheduler(sys, "not a system")

	s.Update(w)
	s.Update(w)

	if sys.updates != 2 {
		t.Fatalf("expected 2 updates, got %d", sys.updates)
	}
	if sys.events != 0 {
		t.Fatalf("expected events to be flushed between ticks, saw %d", sys.events)
	}
}
