package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ballpit/common"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
)

var (
	backgroundColor = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xef, A: 0xff}
	borderColor     = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	markerColor     = color.NRGBA{R: 0xe0, G: 0x40, B: 0x20, A: 0xff}
)

const (
	outlineWidth = 1.5
	borderWidth  = 2
)

// RenderSystem draws the arena, trails, contact markers and balls, in that
// order. World coordinates are screen coordinates.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	_, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		return
	}

	screen.Fill(backgroundColor)
	vector.StrokeRect(screen, 0, 0, float32(sim.Params.Width), float32(sim.Params.Height), borderWidth, borderColor, false)

	if sim.ShowTrails {
		ecs.ForEach(w, component.TrailComponent, func(_ ecs.Entity, trail *component.Trail) {
			drawTrail(screen, trail)
		})
	}

	ecs.ForEach2(w, component.ContactMarkerComponent, component.TTLComponent, func(_ ecs.Entity, m *component.ContactMarker, ttl *component.TTL) {
		fade := float32(ttl.Frames) / markerFrames
		radius := float32(m.Radius) * common.Lerp(2, 1, fade)
		vector.StrokeCircle(screen, float32(m.Pos.X), float32(m.Pos.Y), radius, 2, common.WithAlpha(markerColor, fade), true)
	})

	for _, e := range w.Query(component.BodyRefComponent.Kind(), component.AppearanceComponent.Kind()) {
		ref, _ := ecs.Get(w, e, component.BodyRefComponent)
		app, _ := ecs.Get(w, e, component.AppearanceComponent)
		if int(ref.Handle) >= len(sim.Bodies) || app.Color == nil {
			continue
		}
		b := sim.Bodies[ref.Handle]

		fill := color.NRGBAModel.Convert(app.Color).(color.NRGBA)
		if cf, ok := ecs.Get(w, e, component.ContactFlashComponent); ok {
			fill = common.MixColor(app.Color, cf.Color, cf.Strength()*0.7)
		}

		x, y, rad := float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius)
		vector.DrawFilledCircle(screen, x, y, rad, fill, true)
		if app.Outline != nil {
			vector.StrokeCircle(screen, x, y, rad, outlineWidth, app.Outline, true)
		}
	}
}

func drawTrail(screen *ebiten.Image, trail *component.Trail) {
	n := len(trail.Points)
	if n < 2 || trail.Color == nil {
		return
	}
	for i := 1; i < n; i++ {
		a, b := trail.Points[i-1], trail.Points[i]
		alpha := common.Lerp(0.05, 0.6, float32(i)/float32(n-1))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), trail.Width, common.WithAlpha(trail.Color, alpha), true)
	}
}
