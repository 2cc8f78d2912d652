package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/milk9111/ballpit/physics"
	"gopkg.in/yaml.v3"
)

// Snapshot renders the current state of a simulation as a scene file that
// Load and Build accept. Masses are written explicitly so reloading does not
// depend on the density the scene was created with. Positions are clamped
// into the arena, since position correction can leave a body slightly past a
// wall at the end of a step.
func Snapshot(name string, p physics.Params, tps int, bodies []physics.Body, colors []color.Color) ([]byte, error) {
	gravity := p.Gravity
	bias := p.Bias
	spec := Spec{
		Name: name,
		World: WorldSpec{
			Gravity: &gravity,
			Width:   p.Width,
			Height:  p.Height,
			Damping: p.Damping,
			Bias:    &bias,
			TPS:     tps,
		},
		Bodies: make([]BodySpec, 0, len(bodies)),
	}

	for i, b := range bodies {
		bs := BodySpec{
			Radius: b.Radius,
			Mass:   b.Mass,
			X:      clamp(b.Pos.X, b.Radius, p.Width-b.Radius),
			Y:      clamp(b.Pos.Y, b.Radius, p.Height-b.Radius),
			VX:     b.Vel.X,
			VY:     b.Vel.Y,
		}
		if i < len(colors) && colors[i] != nil {
			bs.Color = &YAMLColor{Color: colors[i]}
		}
		spec.Bodies = append(spec.Bodies, bs)
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return nil, fmt.Errorf("scenes: snapshot %s: %w", name, err)
	}
	return data, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
