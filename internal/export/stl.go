package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"f1map3d/internal/mesh"
)

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then 50 bytes per triangle (normal + 3 vertices as
// little-endian float32, plus a zero attribute word). Normals are
// recomputed from the winding; degenerate triangles get a zero normal,
// which STL consumers accept.
func WriteSTL(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "f1map3d track mesh")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("export: write stl header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("export: write stl count: %w", err)
	}

	var rec [50]byte
	for _, t := range m.Triangles {
		n := m.Normal(t)
		if l := n.Len(); l > 0 {
			n = n.Scale(1.0 / l)
		}
		putVec3(rec[0:], n)
		putVec3(rec[12:], m.Vertices[t[0]])
		putVec3(rec[24:], m.Vertices[t[1]])
		putVec3(rec[36:], m.Vertices[t[2]])
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("export: write stl triangle: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: write stl: %w", err)
	}
	return nil
}

func putVec3(b []byte, v mesh.Vec3) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(float32(v[i])))
	}
}
