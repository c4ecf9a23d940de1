package physics

import (
	"math"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
)

// Grid is a uniform bucket grid over the world. Bodies are inserted by
// position and the 3x3 cell neighborhood of a point can be queried.
//
// Cell size must be >= the largest center distance at which two bodies can
// touch so every neighbor falls inside the 3x3 neighborhood.
type Grid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]*object.Body // reused between fills
}

// NewGrid creates a grid covering world with square cells of cellSize.
func NewGrid(world config.World, cellSize float64) *Grid {
	cols := max(int(math.Ceil(world.Width/cellSize)), 1)
	rows := max(int(math.Ceil(world.Height/cellSize)), 1)
	return &Grid{
		invCellSize: 1 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]*object.Body, cols*rows),
	}
}

// Clear empties every cell without releasing memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds b in the cell holding its position.
func (g *Grid) Insert(b *object.Body) {
	col, row := g.cell(b.Position)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], b)
}

// QueryAround calls fn for each body in the 3x3 neighborhood of p.
// Iteration stops early when fn returns true.
func (g *Grid) QueryAround(p geom.Vector2, fn func(b *object.Body) bool) {
	col, row := g.cell(p)
	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, b := range g.cells[r*g.cols+c] {
				if fn(b) {
					return
				}
			}
		}
	}
}

// cell clamps positions outside the world to the border cells.
func (g *Grid) cell(p geom.Vector2) (col, row int) {
	col = min(max(int(math.Floor(p.X*g.invCellSize)), 0), g.cols-1)
	row = min(max(int(math.Floor(p.Y*g.invCellSize)), 0), g.rows-1)
	return col, row
}

// Crowded reports whether b's bounding circle overlaps the bounding circle of
// any body in g.
func (g *Grid) Crowded(b *object.Body) bool {
	crowded := false
	r := b.Shape.BoundingRadius()
	g.QueryAround(b.Position, func(o *object.Body) bool {
		reach := r + o.Shape.BoundingRadius()
		crowded = geom.DistanceSquared(b.Position, o.Position) < reach*reach
		return crowded
	})
	return crowded
}
