package common

import "image/color"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// MixColor blends a toward b by t in [0, 1].
func MixColor(a, b color.Color, t float32) color.NRGBA {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	t = Clamp01(t)
	return color.NRGBA{
		R: uint8(Lerp(float32(ca.R), float32(cb.R), t)),
		G: uint8(Lerp(float32(ca.G), float32(cb.G), t)),
		B: uint8(Lerp(float32(ca.B), float32(cb.B), t)),
		A: uint8(Lerp(float32(ca.A), float32(cb.A), t)),
	}
}

// WithAlpha scales the alpha of c by a in [0, 1].
func WithAlpha(c color.Color, a float32) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * Clamp01(a))
	return n
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
