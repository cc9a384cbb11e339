package occupancy

// Cell addresses one grid cell.
type Cell struct {
	Row, Col int
}

// Mask marks boundary cells, same shape as the grid it came from.
type Mask struct {
	Rows, Cols int
	bits       []bool
	count      int
}

// At reports whether (row, col) is a boundary cell.
func (m *Mask) At(row, col int) bool {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return false
	}
	return m.bits[row*m.Cols+col]
}

// Count returns the number of boundary cells.
func (m *Mask) Count() int { return m.count }

// Cells returns the boundary cells in row-major scan order. The order is
// what makes mesh output deterministic, so it must stay stable.
func (m *Mask) Cells() []Cell {
	cells := make([]Cell, 0, m.count)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if m.bits[r*m.Cols+c] {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Boundary erodes the grid with a full 3x3 structuring element and keeps
// the occupied cells that did not survive. A cell survives erosion only if
// it and all 8 neighbors are Occupied; outside the grid counts as Free, so
// grid-border cells are always boundary when occupied. Interior occupied
// cells are enclosed and invisible and get no geometry.
func Boundary(g *Grid) *Mask {
	m := &Mask{Rows: g.Rows, Cols: g.Cols, bits: make([]bool, g.Rows*g.Cols)}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(r, c) != Occupied {
				continue
			}
			if !interior(g, r, c) {
				m.bits[r*g.Cols+c] = true
				m.count++
			}
		}
	}
	return m
}

func interior(g *Grid, row, col int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if g.At(row+dr, col+dc) != Occupied {
				return false
			}
		}
	}
	return true
}
