package physics

import "github.com/jakecoffman/cp"

// fallbackNormal separates bodies whose centers coincide exactly. The choice
// is arbitrary; it only has to be a unit vector.
var fallbackNormal = cp.Vector{X: 1, Y: 0}

// Overlaps reports whether the circles touch or intersect.
func Overlaps(a, b *Body) bool {
	r := a.Radius + b.Radius
	return b.Pos.Sub(a.Pos).LengthSq() <= r*r
}

// ContactNormal returns the unit vector pointing from a to b and the distance
// between the centers.
func ContactNormal(a, b *Body) (cp.Vector, float64) {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	if dist == 0 {
		return fallbackNormal, 0
	}
	return delta.Mult(1 / dist), dist
}

// ExchangeNormal applies the 1-D elastic collision formula to the normal
// velocity components of two masses.
func ExchangeNormal(m1, v1n, m2, v2n float64) (float64, float64) {
	sum := m1 + m2
	u1 := (v1n*(m1-m2) + 2*m2*v2n) / sum
	u2 := (v2n*(m2-m1) + 2*m1*v1n) / sum
	return u1, u2
}

// ResolvePair exchanges the normal impulse between two overlapping bodies and
// pushes them apart along the contact normal. Tangential velocity is kept, so
// the contact is frictionless and perfectly elastic.
func ResolvePair(a, b *Body, bias float64) {
	n, dist := ContactNormal(a, b)
	t := n.Perp()

	v1n, v1t := a.Vel.Dot(n), a.Vel.Dot(t)
	v2n, v2t := b.Vel.Dot(n), b.Vel.Dot(t)

	u1, u2 := ExchangeNormal(a.Mass, v1n, b.Mass, v2n)

	a.Vel = n.Mult(u1).Add(t.Mult(v1t))
	b.Vel = n.Mult(u2).Add(t.Mult(v2t))

	overlap := 0.5 * (a.Radius + b.Radius - dist + bias)
	a.Pos = a.Pos.Sub(n.Mult(overlap))
	b.Pos = b.Pos.Add(n.Mult(overlap))
}
