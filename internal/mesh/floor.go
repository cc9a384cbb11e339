package mesh

// BuildFloor returns one flat quad at z=0 covering the full map extent,
// [ox, ox+cols*res] x [oy, oy+rows*res], split into two upward-facing
// triangles. The floor is always produced, walls or not.
func BuildFloor(rows, cols int, resolution, originX, originY float64) *Mesh {
	x0, y0 := originX, originY
	x1 := originX + float64(cols)*resolution
	y1 := originY + float64(rows)*resolution

	return &Mesh{
		Vertices: []Vec3{
			{x0, y0, 0},
			{x1, y0, 0},
			{x1, y1, 0},
			{x0, y1, 0},
		},
		Triangles: [][3]uint32{
			{0, 1, 2},
			{0, 2, 3},
		},
	}
}
