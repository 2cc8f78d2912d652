package system

import (
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/ecs/entity"
)

// Wall hits slower than this are a body resting on a wall, not an impact.
const wallClipSpeed = 60

// AudioSystem queues the contact and wall clips from this tick's events and
// then drives the players. Pausing the simulation stops whatever is playing.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	contact, wall := clipsFor(w.Events().Items())

	paused := false
	if _, sim, ok := ecs.First(w, component.SimulationComponent); ok {
		paused = sim.Paused
	}

	ecs.ForEach(w, component.AudioComponent, func(_ ecs.Entity, audioComp *component.Audio) {
		if contact {
			queue(audioComp, entity.ClipContact)
		}
		if wall {
			queue(audioComp, entity.ClipWall)
		}
		if paused {
			for i := range audioComp.Stop {
				audioComp.Stop[i] = true
			}
		}

		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && !player.IsPlaying() {
				player.SetVolume(audioComp.Volume[i])
				_ = player.Rewind()
				player.Play()
			}

			audioComp.Play[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}
	})
}

// clipsFor reports which clips a tick's events call for.
func clipsFor(events []ecs.Event) (contact, wall bool) {
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventContact:
			contact = true
		case ecs.EventWall:
			if hit, ok := evt.Data.(ecs.WallEvent); ok && hit.Speed >= wallClipSpeed {
				wall = true
			}
		}
	}
	return contact, wall
}

func queue(a *component.Audio, name string) {
	if i := a.Index(name); i >= 0 && i < len(a.Play) {
		a.Play[i] = true
	}
}
