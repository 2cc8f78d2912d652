package system

import (
	"image/color"

	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/physics"
)

const (
	contactFlashFrames = 12
	markerFrames       = 20
	maxMarkersPerTick  = 32
)

var contactFlashColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ContactSystem reacts to the contact events of the current tick: both balls
// flash and a marker is left halfway between their centers.
type ContactSystem struct {
	byHandle map[physics.Handle]ecs.Entity
}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{byHandle: make(map[physics.Handle]ecs.Entity)}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	_, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		return
	}

	events := w.Events().Items()
	if len(events) == 0 {
		return
	}

	clear(s.byHandle)
	ecs.ForEach(w, component.BodyRefComponent, func(e ecs.Entity, ref *component.BodyRef) {
		s.byHandle[ref.Handle] = e
	})

	markers := 0
	for _, evt := range events {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if evt.Type != ecs.EventContact || !ok {
			continue
		}
		s.flash(w, contact.A)
		s.flash(w, contact.B)

		if markers >= maxMarkersPerTick || int(contact.B) >= len(sim.Bodies) {
			continue
		}
		a, b := &sim.Bodies[contact.A], &sim.Bodies[contact.B]
		n, _ := physics.ContactNormal(a, b)
		marker := ecs.CreateEntity(w)
		_ = ecs.Add(w, marker, component.MarkerTagComponent, &component.MarkerTag{})
		_ = ecs.Add(w, marker, component.ContactMarkerComponent, &component.ContactMarker{
			Pos:    a.Pos.Add(n.Mult(a.Radius)),
			Radius: min(a.Radius, b.Radius) / 2,
		})
		_ = ecs.Add(w, marker, component.TTLComponent, &component.TTL{Frames: markerFrames})
		markers++
	}
}

func (s *ContactSystem) flash(w *ecs.World, h physics.Handle) {
	e, ok := s.byHandle[h]
	if !ok {
		return
	}
	_ = ecs.Add(w, e, component.ContactFlashComponent, &component.ContactFlash{
		Frames: contactFlashFrames,
		Total:  contactFlashFrames,
		Color:  contactFlashColor,
	})
}

// ContactFlashSystem fades flashes out and removes them when done.
type ContactFlashSystem struct{}

func NewContactFlashSystem() *ContactFlashSystem { return &ContactFlashSystem{} }

func (s *ContactFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.ContactFlashComponent.Kind()) {
		cf, ok := ecs.Get(w, e, component.ContactFlashComponent)
		if !ok {
			continue
		}
		cf.Frames--
		if cf.Frames <= 0 {
			_ = ecs.Remove(w, e, component.ContactFlashComponent)
		}
	}
}
