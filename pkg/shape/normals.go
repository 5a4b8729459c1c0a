package shape

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// ComputeNormals computes per-vertex and per-triangle unit normals for
// a 3D triangulated point set. Triangle normals follow the right-hand
// rule over the winding order of each trilist row. Vertex normals are
// the normalized sum of the unnormalized cross products of every
// triangle touching the vertex, so larger triangles contribute more.
// Degenerate triangles and unreferenced vertices get a zero normal.
func ComputeNormals(points *mat.Dense, trilist [][3]int32) (vertex, face []r3.Vector, err error) {
	_, d := points.Dims()
	if d != 3 {
		return nil, nil, fmt.Errorf("normals require a 3D point set, got %dD", d)
	}
	n, _ := points.Dims()
	vertex = make([]r3.Vector, n)
	face = make([]r3.Vector, len(trilist))
	for i, t := range trilist {
		a := rowVec3(points, int(t[0]))
		b := rowVec3(points, int(t[1]))
		c := rowVec3(points, int(t[2]))
		cross := b.Sub(a).Cross(c.Sub(a))
		face[i] = normalizeSafe(cross)
		for _, v := range t {
			vertex[v] = vertex[v].Add(cross)
		}
	}
	for i := range vertex {
		vertex[i] = normalizeSafe(vertex[i])
	}
	return vertex, face, nil
}

// VertexNormals returns the unit normal at each point of a 3D mesh,
// row-aligned with the points.
func (m *TriMesh) VertexNormals() ([]r3.Vector, error) {
	vertex, _, err := ComputeNormals(m.points, m.trilist)
	return vertex, err
}

// TriNormals returns the unit normal of each triangle of a 3D mesh,
// row-aligned with the trilist.
func (m *TriMesh) TriNormals() ([]r3.Vector, error) {
	_, face, err := ComputeNormals(m.points, m.trilist)
	return face, err
}

// normalizeSafe normalizes v, mapping near-zero vectors to the zero
// vector instead of dividing by zero.
func normalizeSafe(v r3.Vector) r3.Vector {
	if v.Norm() <= 1e-12 {
		return r3.Vector{}
	}
	return v.Normalize()
}

// rowVec3 loads row i of a 3-column matrix as an r3 vector.
func rowVec3(points *mat.Dense, i int) r3.Vector {
	row := points.RawRowView(i)
	return r3.Vector{X: row[0], Y: row[1], Z: row[2]}
}
