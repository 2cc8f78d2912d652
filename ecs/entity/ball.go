package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/scenes"
)

const (
	DefaultTrailLength = 24
	trailWidth         = 2
)

var outlineColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}

// SceneOptions carries the viewer settings that survive a scene reload.
type SceneOptions struct {
	Solver      string
	Paused      bool
	Debug       bool
	ShowTrails  bool
	TrailLength int

	// TPS overrides the scene tick rate when positive.
	TPS int
}

// BuildScene creates the simulation singleton and one ball entity per body.
// The simulation gets its own copy of the scene bodies.
func BuildScene(w *ecs.World, sc *scenes.Scene, opts SceneOptions) (ecs.Entity, error) {
	if w == nil || sc == nil {
		return 0, fmt.Errorf("entity: build scene: nil world or scene")
	}
	if len(sc.Colors) != len(sc.Bodies) {
		return 0, fmt.Errorf("entity: build scene %s: %d bodies but %d colors", sc.Name, len(sc.Bodies), len(sc.Colors))
	}

	tps := sc.TPS
	if opts.TPS > 0 {
		tps = opts.TPS
	}

	simEnt := ecs.CreateEntity(w)
	sim := &component.Simulation{
		Scene:      sc.Name,
		Solver:     opts.Solver,
		Params:     sc.Params,
		Bodies:     append([]physics.Body(nil), sc.Bodies...),
		TPS:        tps,
		Paused:     opts.Paused,
		Debug:      opts.Debug,
		ShowTrails: opts.ShowTrails,
	}
	if err := ecs.Add(w, simEnt, component.SimulationComponent, sim); err != nil {
		return 0, fmt.Errorf("entity: add simulation: %w", err)
	}

	trailLen := opts.TrailLength
	if trailLen <= 0 {
		trailLen = DefaultTrailLength
	}
	for i := range sim.Bodies {
		if _, err := BuildBall(w, physics.Handle(i), sc.Colors[i], trailLen); err != nil {
			return 0, err
		}
	}
	return simEnt, nil
}

func BuildBall(w *ecs.World, h physics.Handle, c color.Color, trailLen int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BallTagComponent, &component.BallTag{}); err != nil {
		return 0, fmt.Errorf("entity: add ball tag: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyRefComponent, &component.BodyRef{Handle: h}); err != nil {
		return 0, fmt.Errorf("entity: add body ref: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{Color: c, Outline: outlineColor}); err != nil {
		return 0, fmt.Errorf("entity: add appearance: %w", err)
	}
	trail := &component.Trail{
		Points: make([]cp.Vector, 0, trailLen),
		Max:    trailLen,
		Width:  trailWidth,
		Color:  c,
	}
	if err := ecs.Add(w, e, component.TrailComponent, trail); err != nil {
		return 0, fmt.Errorf("entity: add trail: %w", err)
	}
	return e, nil
}

// ClearScene destroys the simulation, every ball and every contact marker.
// Input and request entities are left alone.
func ClearScene(w *ecs.World) {
	if w == nil {
		return
	}
	for _, kind := range []component.Kind{
		component.SimulationComponent.Kind(),
		component.BallTagComponent.Kind(),
		component.MarkerTagComponent.Kind(),
	} {
		for _, e := range w.Query(kind) {
			ecs.DestroyEntity(w, e)
		}
	}
}

// BuildInput creates the keyboard state singleton.
func BuildInput(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent, &component.Input{}); err != nil {
		return 0, fmt.Errorf("entity: add input: %w", err)
	}
	return e, nil
}
