package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named clips. Systems set Play or Stop by index; the audio
// system applies and clears them.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Index returns the clip index for name, -1 if absent.
func (a *Audio) Index(name string) int {
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

var AudioComponent = NewComponent[Audio]()
