// Package assets synthesizes the viewer's sound clips. Nothing is loaded from
// disk; every clip is generated PCM in Ebiten's native format.
package assets

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the shared audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// Tone renders a sine at freq with an exponential decay as 16-bit
// little-endian stereo PCM. decay is the envelope rate per second.
func Tone(freq float64, length time.Duration, decay, volume float64) []byte {
	n := int(float64(SampleRate) * length.Seconds())
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		v := volume * math.Sin(2*math.Pi*freq*t) * math.Exp(-decay*t)
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

// ContactClip is the click played when two balls touch.
func ContactClip() []byte {
	return Tone(880, 60*time.Millisecond, 50, 0.5)
}

// WallClip is the lower thud played when a ball hits the arena edge.
func WallClip() []byte {
	return Tone(220, 90*time.Millisecond, 35, 0.5)
}

// NewPlayer wraps PCM from Tone in a player on the shared context.
func NewPlayer(pcm []byte) *audio.Player {
	return Context().NewPlayerFromBytes(pcm)
}
