package system

import (
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

// TrailSystem records ball centers once per simulated frame, so a paused
// simulation does not fill trails with duplicates.
type TrailSystem struct {
	simEntity ecs.Entity
	lastFrame uint64
}

func NewTrailSystem() *TrailSystem {
	return &TrailSystem{}
}

func (s *TrailSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	simEnt, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		return
	}
	if simEnt == s.simEntity && sim.Frame == s.lastFrame {
		return
	}
	s.simEntity = simEnt
	s.lastFrame = sim.Frame

	ecs.ForEach2(w, component.BodyRefComponent, component.TrailComponent, func(_ ecs.Entity, ref *component.BodyRef, trail *component.Trail) {
		if int(ref.Handle) >= len(sim.Bodies) {
			return
		}
		trail.Push(sim.Bodies[ref.Handle].Pos)
	})
}
