// Package mesh synthesizes the 3D track mesh: one cuboid per boundary
// cell, a floor quad, and an assembly pass that merges them into a single
// indexed triangle mesh.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyGeometry reports a mesh with zero triangles where at least the
// floor was expected. Distinct from the valid floor-only case.
var ErrEmptyGeometry = errors.New("empty mesh geometry")

// GeometryError names the source cell of malformed geometry (NaN/Inf
// coordinates). Row/Col are -1 when the floor quad is at fault.
type GeometryError struct {
	Row, Col int
}

func (e *GeometryError) Error() string {
	if e.Row < 0 {
		return "mesh: non-finite vertex in floor quad"
	}
	return fmt.Sprintf("mesh: non-finite vertex at cell (%d,%d)", e.Row, e.Col)
}

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) finite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Mesh is an indexed triangle mesh. Triangles are wound counter-clockwise
// as seen from the outward-facing side.
type Mesh struct {
	Vertices  []Vec3
	Triangles [][3]uint32
}

// Normal returns the (unnormalized) face normal of triangle t.
func (m *Mesh) Normal(t [3]uint32) Vec3 {
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a))
}
