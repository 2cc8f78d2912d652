package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/scenes"
)

type cell struct {
	body  int
	color tcell.Color
}

// rasterize maps the arena onto a cols x rows grid. A cell belongs to the
// highest-indexed body covering its center, -1 when empty.
func rasterize(sc *scenes.Scene, cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x].body = -1
		}
	}
	if cols <= 0 || rows <= 0 {
		return grid
	}

	sx := sc.Params.Width / float64(cols)
	sy := sc.Params.Height / float64(rows)
	for i := range sc.Bodies {
		b := &sc.Bodies[i]
		c := tcellColor(sc.Colors[i])

		x0 := clampInt(int((b.Pos.X-b.Radius)/sx), 0, cols-1)
		x1 := clampInt(int((b.Pos.X+b.Radius)/sx), 0, cols-1)
		y0 := clampInt(int((b.Pos.Y-b.Radius)/sy), 0, rows-1)
		y1 := clampInt(int((b.Pos.Y+b.Radius)/sy), 0, rows-1)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cx := (float64(x) + 0.5) * sx
				cy := (float64(y) + 0.5) * sy
				dx, dy := cx-b.Pos.X, cy-b.Pos.Y
				if dx*dx+dy*dy <= b.Radius*b.Radius {
					grid[y][x] = cell{body: i, color: c}
				}
			}
		}
	}
	return grid
}

// statusLine shows message in place of the key help when it is set.
func statusLine(sc *scenes.Scene, frame, contacts uint64, paused bool, message string) string {
	state := ""
	if paused {
		state = "  [paused]"
	}
	tail := "(space pause, n step, r reload, q quit)"
	if message != "" {
		tail = message
	}
	return fmt.Sprintf(" %s  frame %d  bodies %d  contacts %d  energy %.1f%s  %s",
		sc.Name, frame, len(sc.Bodies), contacts, physics.KineticEnergy(sc.Bodies), state, tail)
}

func tcellColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorGreen
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
