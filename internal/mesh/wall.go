package mesh

import (
	"sync"
	"sync/atomic"
	"time"

	"f1map3d/internal/occupancy"
)

// Cuboids are shrunk to 90% of the cell footprint so neighboring walls
// never share a coincident face (z-fighting and phantom-gap artifacts).
const cubeShrink = 0.9

const progressStep = 1024

// Progress receives synthesis progress. Called from a single goroutine.
type Progress func(done, total int)

// WallConfig positions and sizes the wall cuboids.
type WallConfig struct {
	Resolution float64 // meters per cell, > 0
	OriginX    float64 // world X of grid cell (0,0)
	OriginY    float64 // world Y offset of the map
	Height     float64 // wall height, >= 0; 0 yields degenerate flat cuboids
	Workers    int     // <=1 means single-threaded
	Progress   Progress
}

// Walls is wall geometry plus the cell that owns each cuboid. Cuboid k
// owns Mesh.Vertices[8k:8k+8] and Mesh.Triangles[12k:12k+12]; Cells[k]
// records its grid position for error reporting.
type Walls struct {
	Mesh  Mesh
	Cells []occupancy.Cell
}

// BuildWalls emits one cuboid (8 vertices, 12 triangles) per boundary
// cell, in row-major cell order. Each cuboid spans
// [wx, wx+size] x [wy, wy+size] x [0, Height] where
//
//	wx = OriginX + col*Resolution
//	wy = OriginY + (rows-row-1)*Resolution
//
// The row flip converts raster coordinates (row 0 on top) to world
// coordinates (Y up). Output buffers are pre-sized from the boundary
// count, and cuboid k always lands at the same offsets, so the result is
// byte-identical regardless of Workers.
//
// Zero boundary cells produce an empty Walls with nil error; the caller
// still gets a floor-only mesh out of assembly.
func BuildWalls(mask *occupancy.Mask, cfg WallConfig) (*Walls, error) {
	cells := mask.Cells()
	total := len(cells)

	w := &Walls{
		Mesh: Mesh{
			Vertices:  make([]Vec3, 8*total),
			Triangles: make([][3]uint32, 12*total),
		},
		Cells: cells,
	}
	if total == 0 {
		if cfg.Progress != nil {
			cfg.Progress(0, 0)
		}
		return w, nil
	}

	if cfg.Workers <= 1 {
		for k, cell := range cells {
			emitCuboid(w, k, cell, mask.Rows, cfg)
			if cfg.Progress != nil && (k+1)%progressStep == 0 {
				cfg.Progress(k+1, total)
			}
		}
		if cfg.Progress != nil {
			cfg.Progress(total, total)
		}
		return w, nil
	}

	var done atomic.Int64
	stop := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(500 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					cfg.Progress(int(done.Load()), total)
				}
			}
		}()
	}

	// Contiguous chunks; every worker writes a disjoint slice range.
	var wg sync.WaitGroup
	chunk := (total + cfg.Workers - 1) / cfg.Workers
	for lo := 0; lo < total; lo += chunk {
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				emitCuboid(w, k, cells[k], mask.Rows, cfg)
			}
			done.Add(int64(hi - lo))
		}(lo, hi)
	}
	wg.Wait()
	close(stop)
	if cfg.Progress != nil {
		cfg.Progress(total, total)
	}
	return w, nil
}

// emitCuboid writes cuboid k into its reserved slots. Vertex layout:
// 0..3 bottom ring (minX minY, maxX minY, maxX maxY, minX maxY),
// 4..7 the same ring at z=Height. All faces wound outward.
func emitCuboid(w *Walls, k int, cell occupancy.Cell, gridRows int, cfg WallConfig) {
	wx := cfg.OriginX + float64(cell.Col)*cfg.Resolution
	wy := cfg.OriginY + float64(gridRows-cell.Row-1)*cfg.Resolution
	size := cfg.Resolution * cubeShrink

	x0, x1 := wx, wx+size
	y0, y1 := wy, wy+size
	z0, z1 := 0.0, cfg.Height

	v := w.Mesh.Vertices[8*k : 8*k+8]
	v[0] = Vec3{x0, y0, z0}
	v[1] = Vec3{x1, y0, z0}
	v[2] = Vec3{x1, y1, z0}
	v[3] = Vec3{x0, y1, z0}
	v[4] = Vec3{x0, y0, z1}
	v[5] = Vec3{x1, y0, z1}
	v[6] = Vec3{x1, y1, z1}
	v[7] = Vec3{x0, y1, z1}

	b := uint32(8 * k)
	t := w.Mesh.Triangles[12*k : 12*k+12]
	// bottom, normal -Z
	t[0] = [3]uint32{b + 0, b + 2, b + 1}
	t[1] = [3]uint32{b + 0, b + 3, b + 2}
	// top, normal +Z
	t[2] = [3]uint32{b + 4, b + 5, b + 6}
	t[3] = [3]uint32{b + 4, b + 6, b + 7}
	// front (y=y0), normal -Y
	t[4] = [3]uint32{b + 0, b + 1, b + 5}
	t[5] = [3]uint32{b + 0, b + 5, b + 4}
	// back (y=y1), normal +Y
	t[6] = [3]uint32{b + 2, b + 3, b + 7}
	t[7] = [3]uint32{b + 2, b + 7, b + 6}
	// left (x=x0), normal -X
	t[8] = [3]uint32{b + 0, b + 4, b + 7}
	t[9] = [3]uint32{b + 0, b + 7, b + 3}
	// right (x=x1), normal +X
	t[10] = [3]uint32{b + 1, b + 2, b + 6}
	t[11] = [3]uint32{b + 1, b + 6, b + 5}
}
