// Package export serializes assembled meshes to interchange formats.
// Files are written to a temporary path and renamed into place, so a
// failed run never leaves a valid-looking partial artifact.
package export

import (
	"bufio"
	"fmt"
	"io"

	"f1map3d/internal/mesh"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Fixed 6-decimal formatting
// keeps output byte-stable across runs for golden comparisons. OBJ face
// indices are 1-based.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", len(m.Vertices), len(m.Triangles))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v[0], v[1], v[2])
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: write obj: %w", err)
	}
	return nil
}
