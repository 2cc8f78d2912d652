package physics

import (
	"fmt"
	"math"
	"strings"
)

// Broadphase generates candidate partners for a body. The stepper calls Reset
// once per step, Moved whenever it changes a body's position, and Scan to
// visit every body with a greater handle that may overlap h. Scan must visit
// candidates in ascending handle order and must see position changes made by
// fn, so swapping implementations never changes the simulated trajectory.
type Broadphase interface {
	Reset(bodies []Body)
	Moved(bodies []Body, h Handle)
	Scan(bodies []Body, h Handle, fn func(other Handle))
}

// NewBroadphase returns the broadphase registered under name. An empty name
// selects AllPairs.
func NewBroadphase(name string) (Broadphase, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all", "allpairs":
		return AllPairs{}, nil
	case "grid":
		return &Grid{}, nil
	}
	return nil, fmt.Errorf("physics: unknown broadphase %q", name)
}

// AllPairs tests every higher-indexed body.
type AllPairs struct{}

func (AllPairs) Reset([]Body)        {}
func (AllPairs) Moved([]Body, Handle) {}

func (AllPairs) Scan(bodies []Body, h Handle, fn func(other Handle)) {
	for j := int(h) + 1; j < len(bodies); j++ {
		fn(Handle(j))
	}
}

// Grid bins bodies into square cells no smaller than the largest possible
// contact distance, so any overlapping partner sits in the 3x3 neighborhood
// of a body's cell. Positions outside the arena clamp to the edge cells.
type Grid struct {
	// CellSize overrides the automatic size (twice the largest radius).
	// Values below the automatic size are ignored.
	CellSize float64

	cellSize    float64
	invCellSize float64
	minX, minY  float64
	cols, rows  int
	cells       [][]int
	cellOf      []int
}

func (g *Grid) Reset(bodies []Body) {
	maxR := 0.0
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range bodies {
		b := &bodies[i]
		maxR = math.Max(maxR, b.Radius)
		minX = math.Min(minX, b.Pos.X)
		minY = math.Min(minY, b.Pos.Y)
		maxX = math.Max(maxX, b.Pos.X)
		maxY = math.Max(maxY, b.Pos.Y)
	}
	if len(bodies) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	size := 2 * maxR
	if g.CellSize > size {
		size = g.CellSize
	}
	if size <= 0 {
		size = 1
	}
	g.cellSize = size
	g.invCellSize = 1 / size
	g.minX = minX
	g.minY = minY
	g.cols = max(1, int(math.Ceil((maxX-minX)*g.invCellSize))+1)
	g.rows = max(1, int(math.Ceil((maxY-minY)*g.invCellSize))+1)

	need := g.cols * g.rows
	if cap(g.cells) < need {
		g.cells = make([][]int, need)
	}
	g.cells = g.cells[:need]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	if cap(g.cellOf) < len(bodies) {
		g.cellOf = make([]int, len(bodies))
	}
	g.cellOf = g.cellOf[:len(bodies)]

	for i := range bodies {
		c := g.cellIndex(bodies[i].Pos.X, bodies[i].Pos.Y)
		g.cells[c] = append(g.cells[c], i)
		g.cellOf[i] = c
	}
}

func (g *Grid) Moved(bodies []Body, h Handle) {
	i := int(h)
	if i < 0 || i >= len(g.cellOf) {
		return
	}
	c := g.cellIndex(bodies[i].Pos.X, bodies[i].Pos.Y)
	old := g.cellOf[i]
	if c == old {
		return
	}
	items := g.cells[old]
	for k, v := range items {
		if v == i {
			items[k] = items[len(items)-1]
			g.cells[old] = items[:len(items)-1]
			break
		}
	}
	g.cells[c] = append(g.cells[c], i)
	g.cellOf[i] = c
}

// Scan picks the smallest unvisited neighbor handle on every iteration,
// re-reading h's cell each time because fn may have moved it.
func (g *Grid) Scan(bodies []Body, h Handle, fn func(other Handle)) {
	last := int(h)
	for {
		next := -1
		g.around(bodies[h].Pos.X, bodies[h].Pos.Y, func(j int) {
			if j > last && (next < 0 || j < next) {
				next = j
			}
		})
		if next < 0 {
			return
		}
		fn(Handle(next))
		last = next
	}
}

func (g *Grid) around(x, y float64, fn func(index int)) {
	col, row := g.cell(x, y)
	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, idx := range g.cells[r*g.cols+c] {
				fn(idx)
			}
		}
	}
}

func (g *Grid) cell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.minX) * g.invCellSize))
	row = int(math.Floor((y - g.minY) * g.invCellSize))
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}

func (g *Grid) cellIndex(x, y float64) int {
	col, row := g.cell(x, y)
	return row*g.cols + col
}
