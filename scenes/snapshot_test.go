package scenes

import (
	"testing"

	"github.com/milk9111/ballpit/physics"
)

func TestSnapshotReloads(t *testing.T) {
	sc, err := LoadScene("rain")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := physics.Step(sc.Bodies, physics.FixedStep(sc.TPS), sc.Params); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	data, err := Snapshot(sc.Name, sc.Params, sc.TPS, sc.Bodies, sc.Colors)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if spec.Random != nil || spec.Script != nil {
		t.Fatalf("snapshot should only carry explicit bodies")
	}
	back, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if back.Name != sc.Name || back.Params != sc.Params || back.TPS != sc.TPS {
		t.Fatalf("scene header changed: %+v vs %+v", back, sc)
	}
	if len(back.Bodies) != len(sc.Bodies) {
		t.Fatalf("expected %d bodies, got %d", len(sc.Bodies), len(back.Bodies))
	}
	for i := range sc.Bodies {
		want := sc.Bodies[i]
		want.Pos.X = clamp(want.Pos.X, want.Radius, sc.Params.Width-want.Radius)
		want.Pos.Y = clamp(want.Pos.Y, want.Radius, sc.Params.Height-want.Radius)
		if back.Bodies[i] != want {
			t.Fatalf("body %d changed: %+v vs %+v", i, back.Bodies[i], want)
		}
		if FormatColor(back.Colors[i]) != FormatColor(sc.Colors[i]) {
			t.Fatalf("color %d changed", i)
		}
	}
}

func TestSnapshotKeepsZeroGravity(t *testing.T) {
	p := physics.DefaultParams()
	p.Gravity = 0
	b, _ := physics.NewBody(5, 1, vecXY(10, 10), vecXY(0, 0))
	data, err := Snapshot("still", p, 30, []physics.Body{b}, nil)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if got := spec.Params().Gravity; got != 0 {
		t.Fatalf("expected zero gravity, got %v", got)
	}
}

func TestSnapshotClampsBodiesPastWalls(t *testing.T) {
	p := physics.DefaultParams()
	bodies := []physics.Body{
		{Radius: 10, Mass: 1, Pos: vecXY(9.5, 350)},
		{Radius: 10, Mass: 1, Pos: vecXY(500, p.Height-9)},
	}
	data, err := Snapshot("edge", p, 60, bodies, nil)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	sc, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sc.Bodies[0].Pos.X != 10 || sc.Bodies[1].Pos.Y != p.Height-10 {
		t.Fatalf("expected bodies clamped to the walls, got %v and %v", sc.Bodies[0].Pos, sc.Bodies[1].Pos)
	}
}
