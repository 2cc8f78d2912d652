package component

import (
	"image/color"

	"github.com/milk9111/ballpit/physics"
)

// BodyRef points a presentation entity at a body in the simulation's body
// collection.
type BodyRef struct {
	Handle physics.Handle
}

var BodyRefComponent = NewComponent[BodyRef]()

// Appearance holds how a ball is drawn. Physics never reads it.
type Appearance struct {
	Color   color.Color
	Outline color.Color
}

var AppearanceComponent = NewComponent[Appearance]()
