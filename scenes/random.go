package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/physics"
)

var ErrPlacement = errors.New("scenes: could not place body without overlap")

const defaultMaxAttempts = 200

// RandomSpec places Count non-overlapping balls with uniformly sampled
// radius, position and velocity. The same Seed always yields the same scene.
type RandomSpec struct {
	Count       int         `yaml:"count"`
	Seed        int64       `yaml:"seed"`
	MinRadius   float64     `yaml:"min_radius"`
	MaxRadius   float64     `yaml:"max_radius"`
	MaxSpeed    float64     `yaml:"max_speed"`
	Density     float64     `yaml:"density,omitempty"`
	MaxAttempts int         `yaml:"max_attempts,omitempty"`
	Palette     []YAMLColor `yaml:"palette,omitempty"`
}

func (r *RandomSpec) validate() error {
	if r.Count < 0 {
		return fmt.Errorf("random: negative count %d", r.Count)
	}
	if !(r.MinRadius > 0) || r.MaxRadius < r.MinRadius {
		return fmt.Errorf("random: radius range [%v, %v]: %w", r.MinRadius, r.MaxRadius, physics.ErrInvalidBody)
	}
	if r.MaxSpeed < 0 {
		return fmt.Errorf("random: negative max_speed %v", r.MaxSpeed)
	}
	return nil
}

// Generate appends the random bodies to sc, avoiding the bodies already in
// it. density is used when the spec does not carry its own.
func (r *RandomSpec) Generate(sc *Scene, density float64) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.Density > 0 {
		density = r.Density
	}
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	rng := rand.New(rand.NewSource(r.Seed))
	p := sc.Params

	for n := 0; n < r.Count; n++ {
		radius := r.MinRadius + rng.Float64()*(r.MaxRadius-r.MinRadius)
		if 2*radius >= p.Width || 2*radius >= p.Height {
			return fmt.Errorf("random: radius %v: %w", radius, ErrOutOfArena)
		}
		c := r.color(rng)

		placed := false
		for try := 0; try < attempts; try++ {
			pos := cp.Vector{
				X: radius + rng.Float64()*(p.Width-2*radius),
				Y: radius + rng.Float64()*(p.Height-2*radius),
			}
			if overlapsAny(sc.Bodies, pos, radius) {
				continue
			}
			vel := cp.Vector{
				X: (rng.Float64()*2 - 1) * r.MaxSpeed,
				Y: (rng.Float64()*2 - 1) * r.MaxSpeed,
			}
			b, err := physics.NewBody(radius, physics.MassForRadius(radius, density), pos, vel)
			if err != nil {
				return err
			}
			sc.Bodies = append(sc.Bodies, b)
			sc.Colors = append(sc.Colors, c)
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("random: body %d of %d after %d attempts: %w", n+1, r.Count, attempts, ErrPlacement)
		}
	}
	return nil
}

func (r *RandomSpec) color(rng *rand.Rand) color.Color {
	if len(r.Palette) > 0 {
		if c := r.Palette[rng.Intn(len(r.Palette))].Color; c != nil {
			return c
		}
		return defaultColor
	}
	return color.NRGBA{
		R: uint8(40 + rng.Intn(216)),
		G: uint8(40 + rng.Intn(216)),
		B: uint8(40 + rng.Intn(216)),
		A: 255,
	}
}

func overlapsAny(bodies []physics.Body, pos cp.Vector, radius float64) bool {
	probe := physics.Body{Radius: radius, Pos: pos}
	for i := range bodies {
		if physics.Overlaps(&probe, &bodies[i]) {
			return true
		}
	}
	return false
}
