package system

import (
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

// ControlSystem applies the input singleton to the simulation: it flips the
// viewer toggles directly and turns reload and snapshot keys into request
// entities for the scene system. Menu presses are left to the game.
type ControlSystem struct {
	sceneNames []string
}

func NewControlSystem(sceneNames []string) *ControlSystem {
	return &ControlSystem{sceneNames: sceneNames}
}

func (c *ControlSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	_, input, ok := ecs.First(w, component.InputComponent)
	if !ok {
		return
	}

	if _, sim, ok := ecs.First(w, component.SimulationComponent); ok {
		if input.TogglePause {
			sim.Paused = !sim.Paused
		}
		if input.StepOnce {
			sim.Paused = true
			sim.StepOnce = true
		}
		if input.ToggleDebug {
			sim.Debug = !sim.Debug
		}
		if input.ToggleTrails {
			sim.ShowTrails = !sim.ShowTrails
		}
	}

	if input.SelectScene > 0 && input.SelectScene <= len(c.sceneNames) {
		addRequest(w, component.ReloadRequestComponent, &component.ReloadRequest{Scene: c.sceneNames[input.SelectScene-1]})
	} else if input.Reload {
		addRequest(w, component.ReloadRequestComponent, &component.ReloadRequest{})
	}
	if input.Snapshot {
		addRequest(w, component.SnapshotRequestComponent, &component.SnapshotRequest{})
	}
}

func addRequest[T any](w *ecs.World, handle component.ComponentHandle[T], value *T) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, handle, value); err != nil {
		ecs.DestroyEntity(w, e)
	}
}
