package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// RenderSystem draws world state. Systems may implement both interfaces.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

type Scheduler struct {
	systems []any
}

func NewScheduler(systems ...any) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends a System, a RenderSystem or both. Other values are ignored.
func (s *Scheduler) Add(system any) {
	switch system.(type) {
	case System, RenderSystem:
		s.systems = append(s.systems, system)
	}
}

// Update runs every System in order, then clears the tick's events.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if u, ok := system.(System); ok {
			u.Update(w)
		}
	}
	w.Events().flush()
}

// Draw runs every RenderSystem in order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, system := range s.systems {
		if r, ok := system.(RenderSystem); ok {
			r.Draw(w, screen)
		}
	}
}
