// Package component declares the data attached to ball-pit entities. Every
// component type gets one package-level handle, created with NewComponent,
// which the ecs package uses to find its storage.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store inside a World. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// Kind lets a query mix component types, e.g. BodyRef with Appearance.
type Kind interface {
	ID() ComponentID
}

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for a zero ComponentKind, i.e. a handle that was declared
// but never built with NewComponent.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// ComponentHandle is the typed token passed to ecs.Add, ecs.Get and friends.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
