// Package occupancy turns normalized map intensities into a binary
// occupancy grid and extracts the boundary cells that need wall geometry.
package occupancy

// State of one grid cell.
type State uint8

const (
	Free State = iota
	Occupied
)

// Grid is a binary occupancy grid, row-major, row 0 at the raster's top.
type Grid struct {
	Rows, Cols int
	cells      []State
}

// NewGrid returns an all-Free grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, cells: make([]State, rows*cols)}
}

// At reports the state at (row, col). Cells outside the grid read as Free,
// which is what the erosion pass needs for the border.
func (g *Grid) At(row, col int) State {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Free
	}
	return g.cells[row*g.Cols+col]
}

// Set writes the state at (row, col). Panics out of range, like a slice.
func (g *Grid) Set(row, col int, s State) {
	g.cells[row*g.Cols+col] = s
}

// CountOccupied returns the number of Occupied cells.
func (g *Grid) CountOccupied() int {
	n := 0
	for _, s := range g.cells {
		if s == Occupied {
			n++
		}
	}
	return n
}

// Classify maps normalized intensities to a binary grid. The rules run in
// a fixed order per cell and independently, not as an if/else chain:
//
//	v <= 1-occupiedThresh  -> Occupied
//	v >= 1-freeThresh      -> Free (overwrites Occupied on overlap)
//	otherwise (unknown)    -> Occupied
//
// Free winning over Occupied when loose thresholds make both rules match
// is load-bearing: common map rasters contain sentinel values that satisfy
// both. Unknown space defaults to Occupied so unexplored areas block the
// vehicle model. Out-of-range thresholds are the caller's problem; the
// classifier is mechanical.
func Classify(pix []float64, rows, cols int, occupiedThresh, freeThresh float64) *Grid {
	g := NewGrid(rows, cols)
	occCut := 1.0 - occupiedThresh
	freeCut := 1.0 - freeThresh
	for i, v := range pix[:rows*cols] {
		s := Occupied // unknown band
		if v <= occCut {
			s = Occupied
		}
		if v >= freeCut {
			s = Free
		}
		g.cells[i] = s
	}
	return g
}
