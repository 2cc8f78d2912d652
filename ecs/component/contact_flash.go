package component

import "image/color"

// ContactFlash tints a ball for a few frames after it touches another ball.
// Strength fades linearly from 1 to 0 over Total frames.
type ContactFlash struct {
	Frames int
	Total  int
	Color  color.Color
}

func (f ContactFlash) Strength() float32 {
	if f.Total <= 0 || f.Frames <= 0 {
		return 0
	}
	return float32(f.Frames) / float32(f.Total)
}

var ContactFlashComponent = NewComponent[ContactFlash]()
