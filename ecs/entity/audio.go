package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/ballpit/assets"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

const (
	ClipContact = "contact"
	ClipWall    = "wall"
)

type clipSpec struct {
	name   string
	pcm    func() []byte
	volume float64
}

var clips = []clipSpec{
	{name: ClipContact, pcm: assets.ContactClip, volume: 0.6},
	{name: ClipWall, pcm: assets.WallClip, volume: 0.4},
}

// BuildAudio creates the entity holding the contact and wall clips.
func BuildAudio(w *ecs.World) (ecs.Entity, error) {
	comp, err := buildAudioComponent(assets.NewPlayer)
	if err != nil {
		return 0, err
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioComponent, comp); err != nil {
		return 0, fmt.Errorf("entity: add audio: %w", err)
	}
	return e, nil
}

func buildAudioComponent(newPlayer func([]byte) *audio.Player) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
	for i, clip := range clips {
		pcm := clip.pcm()
		if len(pcm) == 0 {
			return nil, fmt.Errorf("audio clip %d (%q): empty", i, clip.name)
		}
		comp.Names = append(comp.Names, clip.name)
		comp.Players = append(comp.Players, newPlayer(pcm))
		comp.Volume = append(comp.Volume, clip.volume)
	}
	return comp, nil
}
