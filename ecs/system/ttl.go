package system

import (
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

// TTLSystem ages contact markers and anything else carrying a TTL. An entity
// whose TTL reaches zero is destroyed on that tick; a TTL created at zero
// goes on the next one.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent, func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 1 {
			ttl.Frames--
			return
		}
		expired = append(expired, e)
	})
	for _, e := range expired {
		ecs.DestroyEntity(w, e)
	}
}
