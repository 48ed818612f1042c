package game

import (
	"fmt"

	"gridsnake/game/types"
)

// OccupancyGrid marks the cells currently covered by a tail segment.
// Cells are addressed in grid units, not pixels, and stored row-major.
type OccupancyGrid struct {
	cols, rows int
	cells      []bool
}

// NewOccupancyGrid allocates an empty grid of cols x rows cells
func NewOccupancyGrid(cols, rows int) *OccupancyGrid {
	return &OccupancyGrid{cols: cols, rows: rows, cells: make([]bool, cols*rows)}
}

func (g *OccupancyGrid) Cols() int { return g.cols }
func (g *OccupancyGrid) Rows() int { return g.rows }

// index panics on cells outside the grid; callers bounds-check first.
func (g *OccupancyGrid) index(cell types.Point) int {
	if cell.X < 0 || cell.X >= g.cols || cell.Y < 0 || cell.Y >= g.rows {
		panic(fmt.Sprintf("occupancy: cell %v outside %dx%d grid", cell, g.cols, g.rows))
	}
	return cell.Y*g.cols + cell.X
}

func (g *OccupancyGrid) Get(cell types.Point) bool {
	return g.cells[g.index(cell)]
}

func (g *OccupancyGrid) Set(cell types.Point, occupied bool) {
	g.cells[g.index(cell)] = occupied
}

// Clear marks every cell free
func (g *OccupancyGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Count returns the number of occupied cells
func (g *OccupancyGrid) Count() int {
	n := 0
	for _, occupied := range g.cells {
		if occupied {
			n++
		}
	}
	return n
}
