package scenes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ballpit/physics"
)

var ErrScriptResult = errors.New("scenes: script did not produce a body list")

// ScriptSpec names a tengo file that fills a global `bodies` array with maps
// shaped like BodySpec. The script sees width, height, gravity, count and
// seed as globals.
type ScriptSpec struct {
	File  string `yaml:"file"`
	Count int    `yaml:"count,omitempty"`
	Seed  int64  `yaml:"seed,omitempty"`
}

func (s *ScriptSpec) Run(p physics.Params) ([]BodySpec, error) {
	if s == nil || strings.TrimSpace(s.File) == "" {
		return nil, fmt.Errorf("script: empty file name")
	}
	src, err := LoadScript(s.File)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.File, err)
	}
	return RunScript(src, p, s.Count, s.Seed)
}

// RunScript compiles and runs src once and converts its `bodies` global.
func RunScript(src []byte, p physics.Params, count int, seed int64) ([]BodySpec, error) {
	script := tengo.NewScript(src)
	_ = script.Add("width", p.Width)
	_ = script.Add("height", p.Height)
	_ = script.Add("gravity", p.Gravity)
	_ = script.Add("count", count)
	_ = script.Add("seed", seed)
	_ = script.Add("bodies", []interface{}{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return nil, err
	}
	if !compiled.IsDefined("bodies") {
		return nil, ErrScriptResult
	}

	raw := compiled.Get("bodies").Array()
	out := make([]BodySpec, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("bodies[%d] is %T: %w", i, item, ErrScriptResult)
		}
		bs, err := bodyFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		out = append(out, bs)
	}
	return out, nil
}

func bodyFromMap(m map[string]interface{}) (BodySpec, error) {
	var bs BodySpec
	fields := []struct {
		key      string
		dst      *float64
		required bool
	}{
		{"radius", &bs.Radius, true},
		{"mass", &bs.Mass, false},
		{"x", &bs.X, true},
		{"y", &bs.Y, true},
		{"vx", &bs.VX, false},
		{"vy", &bs.VY, false},
	}
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok {
			if f.required {
				return bs, fmt.Errorf("missing %q", f.key)
			}
			continue
		}
		n, ok := toFloat(v)
		if !ok {
			return bs, fmt.Errorf("%q is %T, want a number", f.key, v)
		}
		*f.dst = n
	}

	if v, ok := m["color"]; ok {
		s, ok := v.(string)
		if !ok {
			return bs, fmt.Errorf("%q is %T, want a string", "color", v)
		}
		c, err := ParseColor(s)
		if err != nil {
			return bs, err
		}
		bs.Color = &YAMLColor{Color: c}
	}
	return bs, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
