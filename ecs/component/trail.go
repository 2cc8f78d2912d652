package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Trail keeps the most recent centers of a ball, oldest first.
type Trail struct {
	Points []cp.Vector
	Max    int
	Width  float32
	Color  color.Color
}

// Push appends p, dropping the oldest point once Max is reached.
func (t *Trail) Push(p cp.Vector) {
	if t.Max <= 0 {
		return
	}
	if len(t.Points) >= t.Max {
		copy(t.Points, t.Points[1:])
		t.Points = t.Points[:len(t.Points)-1]
	}
	t.Points = append(t.Points, p)
}

var TrailComponent = NewComponent[Trail]()
