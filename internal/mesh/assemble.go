package mesh

// Assemble merges wall and floor geometry into one index space: floor
// vertices are appended after the wall vertices and its triangle indices
// offset accordingly. It then repairs triangle winding against the
// outward-facing convention, drops exact-duplicate triangles, and rejects
// non-finite coordinates with the offending cell.
//
// A nil walls argument means "no walls" (floor-only mesh). Both inputs
// empty is impossible in the normal pipeline, since the floor is
// unconditional, but it is still reported as ErrEmptyGeometry rather than
// silently emitting a zero-triangle artifact.
func Assemble(walls *Walls, floor *Mesh) (*Mesh, error) {
	var wallMesh Mesh
	if walls != nil {
		wallMesh = walls.Mesh
	}

	if len(wallMesh.Triangles) == 0 && (floor == nil || len(floor.Triangles) == 0) {
		return nil, ErrEmptyGeometry
	}

	if walls != nil {
		for i, v := range wallMesh.Vertices {
			if !v.finite() {
				cell := walls.Cells[i/8]
				return nil, &GeometryError{Row: cell.Row, Col: cell.Col}
			}
		}
	}

	out := &Mesh{
		Vertices:  make([]Vec3, 0, len(wallMesh.Vertices)+4),
		Triangles: make([][3]uint32, 0, len(wallMesh.Triangles)+2),
	}
	out.Vertices = append(out.Vertices, wallMesh.Vertices...)
	out.Triangles = append(out.Triangles, wallMesh.Triangles...)

	if floor != nil {
		offset := uint32(len(wallMesh.Vertices))
		for _, v := range floor.Vertices {
			if !v.finite() {
				return nil, &GeometryError{Row: -1, Col: -1}
			}
			out.Vertices = append(out.Vertices, v)
		}
		for _, t := range floor.Triangles {
			out.Triangles = append(out.Triangles, [3]uint32{t[0] + offset, t[1] + offset, t[2] + offset})
		}
	}

	fixWinding(out, len(wallMesh.Triangles))
	dedupeTriangles(out)

	return out, nil
}

// fixWinding flips any triangle whose normal disagrees with the outward
// convention. Wall triangles come in blocks of 12 per cuboid; outward
// means the normal points away from the cuboid center. Floor triangles
// face +Z. Zero-area triangles (degenerate cuboids at Height 0) are left
// alone; their winding carries no orientation.
func fixWinding(m *Mesh, wallTris int) {
	for k := 0; k*12 < wallTris; k++ {
		vHi := 8*k + 8
		if vHi > len(m.Vertices) {
			vHi = len(m.Vertices)
		}
		block := m.Vertices[8*k : vHi]
		var center Vec3
		for _, v := range block {
			center = center.Add(v)
		}
		center = center.Scale(1.0 / float64(len(block)))

		tHi := 12 * (k + 1)
		if tHi > wallTris {
			tHi = wallTris
		}
		for i := 12 * k; i < tHi; i++ {
			t := m.Triangles[i]
			n := m.Normal(t)
			if n.Len() == 0 {
				continue
			}
			centroid := m.Vertices[t[0]].Add(m.Vertices[t[1]]).Add(m.Vertices[t[2]]).Scale(1.0 / 3.0)
			if n.Dot(centroid.Sub(center)) < 0 {
				m.Triangles[i] = [3]uint32{t[0], t[2], t[1]}
			}
		}
	}

	for i := wallTris; i < len(m.Triangles); i++ {
		t := m.Triangles[i]
		if n := m.Normal(t); n[2] < 0 {
			m.Triangles[i] = [3]uint32{t[0], t[2], t[1]}
		}
	}
}

// dedupeTriangles removes triangles whose vertex index sets are identical
// after normalization, keeping the first occurrence in order.
func dedupeTriangles(m *Mesh) {
	seen := make(map[[3]uint32]struct{}, len(m.Triangles))
	kept := m.Triangles[:0]
	for _, t := range m.Triangles {
		key := sortedKey(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, t)
	}
	m.Triangles = kept
}

func sortedKey(t [3]uint32) [3]uint32 {
	a, b, c := t[0], t[1], t[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]uint32{a, b, c}
}
