package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidBody   = errors.New("physics: invalid body")
	ErrInvalidParams = errors.New("physics: invalid params")
	ErrInvalidStep   = errors.New("physics: invalid step")
)

const (
	DefaultGravity = 9.81
	DefaultWidth   = 1000
	DefaultHeight  = 700
	DefaultDamping = 0.9
	DefaultBias    = 1.0
	DefaultTPS     = 60
)

// Params holds the world constants for one run.
type Params struct {
	Gravity float64
	Width   float64
	Height  float64
	// Damping scales the reflected velocity on wall contact.
	Damping float64
	// Bias is added to the penetration depth when separating two bodies so
	// they end up apart rather than exactly touching.
	Bias float64
}

func DefaultParams() Params {
	return Params{
		Gravity: DefaultGravity,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Damping: DefaultDamping,
		Bias:    DefaultBias,
	}
}

func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.Gravity) || math.IsInf(p.Gravity, 0):
		return fmt.Errorf("physics: gravity %v: %w", p.Gravity, ErrInvalidParams)
	case !(p.Width > 0) || math.IsInf(p.Width, 0):
		return fmt.Errorf("physics: width %v: %w", p.Width, ErrInvalidParams)
	case !(p.Height > 0) || math.IsInf(p.Height, 0):
		return fmt.Errorf("physics: height %v: %w", p.Height, ErrInvalidParams)
	case !(p.Damping > 0 && p.Damping < 1):
		return fmt.Errorf("physics: damping %v: %w", p.Damping, ErrInvalidParams)
	case !(p.Bias >= 0) || math.IsInf(p.Bias, 0):
		return fmt.Errorf("physics: bias %v: %w", p.Bias, ErrInvalidParams)
	}
	return nil
}

// FixedStep returns the step size for a target tick rate, falling back to
// DefaultTPS for non-positive rates.
func FixedStep(tps int) float64 {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return 1.0 / float64(tps)
}
