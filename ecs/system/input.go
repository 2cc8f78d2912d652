package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

var sceneKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	selectScene := 0
	for idx, key := range sceneKeys {
		if inpututil.IsKeyJustPressed(key) {
			selectScene = idx + 1
			break
		}
	}

	state := component.Input{
		TogglePause:  inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		StepOnce:     inpututil.IsKeyJustPressed(ebiten.KeyN),
		Reload:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		Snapshot:     inpututil.IsKeyJustPressed(ebiten.KeyC),
		ToggleDebug:  inpututil.IsKeyJustPressed(ebiten.KeyD),
		ToggleTrails: inpututil.IsKeyJustPressed(ebiten.KeyT),
		Menu:         inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		SelectScene:  selectScene,
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = state
	})
}
