package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/physics"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyScene = errors.New("scenes: scene has no bodies")
	ErrOutOfArena = errors.New("scenes: body does not fit the arena")
)

// DefaultDensity makes a radius 100 ball weigh exactly 1.
const DefaultDensity = 1.0 / (100 * 100)

var defaultColor = color.NRGBA{R: 0, G: 100, B: 0, A: 255}

// Spec is the on-disk description of a scene.
type Spec struct {
	Name    string      `yaml:"name"`
	World   WorldSpec   `yaml:"world"`
	Density float64     `yaml:"density,omitempty"`
	Bodies  []BodySpec  `yaml:"bodies,omitempty"`
	Random  *RandomSpec `yaml:"random,omitempty"`
	Script  *ScriptSpec `yaml:"script,omitempty"`
}

type WorldSpec struct {
	Gravity *float64 `yaml:"gravity,omitempty"`
	Width   float64  `yaml:"width,omitempty"`
	Height  float64  `yaml:"height,omitempty"`
	Damping float64  `yaml:"damping,omitempty"`
	Bias    *float64 `yaml:"bias,omitempty"`
	TPS     int      `yaml:"tps,omitempty"`
}

type BodySpec struct {
	Radius float64    `yaml:"radius"`
	Mass   float64    `yaml:"mass,omitempty"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	VX     float64    `yaml:"vx"`
	VY     float64    `yaml:"vy"`
	Color  *YAMLColor `yaml:"color,omitempty"`
}

// Scene is a built, validated spec ready to simulate. Colors[i] belongs to
// Bodies[i].
type Scene struct {
	Name   string
	Params physics.Params
	TPS    int
	Bodies []physics.Body
	Colors []color.Color
}

func LoadSpec(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scenes: load %s: %w", name, err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("scenes: unmarshal %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = SceneName(name)
	}
	return spec, nil
}

func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadScene loads and builds a scene by name.
func LoadScene(name string) (*Scene, error) {
	spec, err := LoadSpec(name)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

// Params fills unset world fields from physics defaults.
func (s *Spec) Params() physics.Params {
	p := physics.DefaultParams()
	if s.World.Gravity != nil {
		p.Gravity = *s.World.Gravity
	}
	if s.World.Width != 0 {
		p.Width = s.World.Width
	}
	if s.World.Height != 0 {
		p.Height = s.World.Height
	}
	if s.World.Damping != 0 {
		p.Damping = s.World.Damping
	}
	if s.World.Bias != nil {
		p.Bias = *s.World.Bias
	}
	return p
}

func (s *Spec) density() float64 {
	if s.Density > 0 {
		return s.Density
	}
	return DefaultDensity
}

// Build validates the spec and produces its bodies: explicit bodies first,
// then scripted ones, then random ones placed around both.
func (s *Spec) Build() (*Scene, error) {
	p := s.Params()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
	}

	tps := s.World.TPS
	if tps <= 0 {
		tps = physics.DefaultTPS
	}
	sc := &Scene{Name: s.Name, Params: p, TPS: tps}

	specs := append([]BodySpec(nil), s.Bodies...)
	if s.Script != nil {
		scripted, err := s.Script.Run(p)
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
		}
		specs = append(specs, scripted...)
	}
	for i, bs := range specs {
		if err := sc.add(bs, s.density()); err != nil {
			return nil, fmt.Errorf("scenes: %s body %d: %w", s.Name, i, err)
		}
	}

	if s.Random != nil {
		if err := s.Random.Generate(sc, s.density()); err != nil {
			return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
		}
	}

	if len(sc.Bodies) == 0 {
		return nil, fmt.Errorf("scenes: %s: %w", s.Name, ErrEmptyScene)
	}
	return sc, nil
}

func (sc *Scene) add(bs BodySpec, density float64) error {
	mass := bs.Mass
	if mass == 0 {
		mass = physics.MassForRadius(bs.Radius, density)
	}
	b, err := physics.NewBody(bs.Radius, mass, cp.Vector{X: bs.X, Y: bs.Y}, cp.Vector{X: bs.VX, Y: bs.VY})
	if err != nil {
		return err
	}
	if 2*b.Radius >= sc.Params.Width || 2*b.Radius >= sc.Params.Height {
		return fmt.Errorf("radius %v in %vx%v: %w", b.Radius, sc.Params.Width, sc.Params.Height, ErrOutOfArena)
	}
	if !insideArena(b, sc.Params) {
		return fmt.Errorf("body at (%v,%v) r=%v outside %vx%v: %w", b.Pos.X, b.Pos.Y, b.Radius, sc.Params.Width, sc.Params.Height, ErrOutOfArena)
	}
	var c color.Color = defaultColor
	if bs.Color != nil && bs.Color.Color != nil {
		c = bs.Color.Color
	}
	sc.Bodies = append(sc.Bodies, b)
	sc.Colors = append(sc.Colors, c)
	return nil
}

func insideArena(b physics.Body, p physics.Params) bool {
	return b.Pos.X-b.Radius >= 0 && b.Pos.X+b.Radius <= p.Width &&
		b.Pos.Y-b.Radius >= 0 && b.Pos.Y+b.Radius <= p.Height
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (interface{}, error) {
	if c.Color == nil {
		return nil, nil
	}
	return FormatColor(c.Color), nil
}

// ParseColor accepts #rrggbb or #rrggbbaa, with or without the leading #.
func ParseColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
