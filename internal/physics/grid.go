package physics

import (
	"math"
	"slices"
)

// Grid is a uniform grid for broad-phase collision detection over a bounded
// rectangle. Items are inserted by position and index; nearby items are then
// found through a 3x3 cell neighborhood lookup.
//
// Cell size must be >= the largest interaction distance queried, so that any
// pair closer than that distance lands in neighboring cells. Positions outside
// the rectangle are clamped to the border cells, which keeps that guarantee.
type Grid struct {
	minX, minY  float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering [minX,maxX]x[minY,maxY].
func NewGrid(minX, minY, maxX, maxY, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Ceil((maxX-minX)/cellSize)), 1)
	rows := max(int(math.Ceil((maxY-minY)/cellSize)), 1)

	return &Grid{
		minX:        minX,
		minY:        minY,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *Grid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// Candidates appends to buf the indices stored in the 3x3 neighborhood of
// (x,y) and returns them in ascending order. Callers that stop at the first
// confirmed hit therefore see the same winner a linear scan would.
func (g *Grid) Candidates(x, y float64, buf []int) []int {
	buf = buf[:0]
	col, row := g.posToCell(x, y)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			buf = append(buf, g.cells[rowOffset+c].items...)
		}
	}

	slices.Sort(buf)
	return buf
}

// posToCell converts coordinates to cell coordinates, clamped to the grid.
func (g *Grid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.minX) * g.invCellSize))
	col = min(max(col, 0), g.cols-1)

	row = int(math.Floor((y - g.minY) * g.invCellSize))
	row = min(max(row, 0), g.rows-1)

	return col, row
}
