package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/physics"
	"golang.org/x/image/font/basicfont"
)

const (
	hudX           = 10
	hudY           = 8
	hudLineSpacing = 15
	hudHelp        = "P pause  N step  R reload  1-9 scene  C snapshot  T trails  D debug  Esc menu"
)

var (
	hudTextColor  = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	hudPanelColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}
)

// HUDSystem prints simulation counters in the top-left corner.
type HUDSystem struct {
	face text.Face
}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	_, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		return
	}

	lines := HUDLines(sim, ebiten.ActualTPS(), ebiten.ActualFPS())
	lines = append(lines, hudHelp)

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	vector.FillRect(screen, hudX-4, hudY-2, float32(width*7+8), float32(len(lines)*hudLineSpacing+6), hudPanelColor, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudX, hudY)
	op.ColorScale.ScaleWithColor(hudTextColor)
	op.LineSpacing = hudLineSpacing
	text.Draw(screen, strings.Join(lines, "\n"), h.face, op)
}

// HUDLines formats the counters shown by the HUD.
func HUDLines(sim *component.Simulation, tps, fps float64) []string {
	state := "running"
	if sim.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("scene %s  solver %s  %s", sim.Scene, sim.Solver, state),
		fmt.Sprintf("frame %d  t=%.2fs  bodies %d", sim.Frame, float64(sim.Frame)*physics.FixedStep(sim.TPS), len(sim.Bodies)),
		fmt.Sprintf("contacts %d  total %d", sim.Contacts, sim.TotalContacts),
		fmt.Sprintf("energy %.1f  g=%v  tps %.0f  fps %.0f", physics.KineticEnergy(sim.Bodies), sim.Params.Gravity, tps, fps),
	}
}
