package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Walls is a bitmask of the arena edges a body touched during a step.
type Walls uint8

const (
	WallLeft Walls = 1 << iota
	WallRight
	WallFloor
	WallCeiling

	WallNone Walls = 0
)

func (w Walls) Has(other Walls) bool {
	return w&other != 0
}

// ResolveBoundaries reflects and clamps b against the arena edges. Checks run
// left, right, floor, ceiling and are independent, so a corner hit flips both
// axes. Wall bounces lose energy through p.Damping; body-body contacts do not.
func ResolveBoundaries(b *Body, p Params) Walls {
	hit := WallNone
	if b.Pos.X-b.Radius <= 0 {
		b.Vel.X = -b.Vel.X * p.Damping
		b.Pos.X = b.Radius
		hit |= WallLeft
	}
	if b.Pos.X+b.Radius >= p.Width {
		b.Vel.X = -b.Vel.X * p.Damping
		b.Pos.X = p.Width - b.Radius
		hit |= WallRight
	}
	if b.Pos.Y+b.Radius >= p.Height {
		b.Vel.Y = -b.Vel.Y * p.Damping
		b.Pos.Y = p.Height - b.Radius
		hit |= WallFloor
	}
	if b.Pos.Y-b.Radius <= 0 {
		b.Vel.Y = -b.Vel.Y * p.Damping
		b.Pos.Y = b.Radius
		hit |= WallCeiling
	}
	return hit
}

// ImpactSpeed returns the largest velocity component of v heading into one of
// the given walls. v is the velocity before ResolveBoundaries reflected it.
func ImpactSpeed(v cp.Vector, walls Walls) float64 {
	speed := 0.0
	if walls.Has(WallLeft) {
		speed = math.Max(speed, -v.X)
	}
	if walls.Has(WallRight) {
		speed = math.Max(speed, v.X)
	}
	if walls.Has(WallFloor) {
		speed = math.Max(speed, v.Y)
	}
	if walls.Has(WallCeiling) {
		speed = math.Max(speed, -v.Y)
	}
	return speed
}
