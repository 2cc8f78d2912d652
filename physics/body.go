package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Handle identifies a body by its slot in the body collection.
type Handle int

// Body is the simulated state of one circular rigid body. Radius and Mass are
// fixed at construction; Pos and Vel are owned by the stepper.
type Body struct {
	Radius float64
	Mass   float64
	Pos    cp.Vector
	Vel    cp.Vector
}

// NewBody validates radius and mass and returns a body centered at pos moving
// with vel.
func NewBody(radius, mass float64, pos, vel cp.Vector) (Body, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Body{}, fmt.Errorf("physics: radius %v: %w", radius, ErrInvalidBody)
	}
	if !(mass > 0) || math.IsInf(mass, 0) {
		return Body{}, fmt.Errorf("physics: mass %v: %w", mass, ErrInvalidBody)
	}
	return Body{Radius: radius, Mass: mass, Pos: pos, Vel: vel}, nil
}

// MassForRadius returns density * r^2.
func MassForRadius(radius, density float64) float64 {
	return density * radius * radius
}

// Integrate advances b by dt with semi-implicit Euler: gravity is applied to
// the velocity first, then the new velocity moves the position.
func (b *Body) Integrate(gravity, dt float64) {
	b.Vel.Y += gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Mult(dt))
}

// KineticEnergy sums 0.5*m*|v|^2 over bodies.
func KineticEnergy(bodies []Body) float64 {
	var e float64
	for i := range bodies {
		e += 0.5 * bodies[i].Mass * bodies[i].Vel.LengthSq()
	}
	return e
}
