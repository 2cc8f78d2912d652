package ecs

import "fmt"

// Entity is a handle to a ball, a marker or one of the singletons. The low 32
// bits are the slot, the high 32 bits the generation of that slot, so a
// handle kept across a scene reload stops matching once its slot is reused.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const slotBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<slotBits | Entity(id)
}

func (e Entity) id() entityID {
	return entityID(e & (1<<slotBits - 1))
}

func (e Entity) generation() generation {
	return generation(e >> slotBits)
}

// String prints the slot and generation, e.g. "7@2".
func (e Entity) String() string {
	return fmt.Sprintf("%d@%d", e.id(), e.generation())
}

// Valid reports whether e refers to a slot at all. Slot 0 is never handed out.
func (e Entity) Valid() bool {
	return e.id() != 0
}
