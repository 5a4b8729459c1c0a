package shape

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// EdgeIndices returns the point-index pair of every edge of every
// triangle. Shared edges appear once per owning triangle, so the result
// always has 3*NTris rows, grouped into the AB, BC and CA blocks laid
// out by TrilistToAdjacency. See UniqueEdgeIndices for the deduplicated
// form.
func (m *TriMesh) EdgeIndices() [][2]int32 {
	return TrilistToAdjacency(m.trilist)
}

// UniqueEdgeIndices returns each physical edge exactly once, with the
// endpoints of every pair ordered ascending. The row order carries no
// meaning and callers must not depend on it.
func (m *TriMesh) UniqueEdgeIndices() [][2]int32 {
	seen := make(map[[2]int32]bool)
	var unique [][2]int32
	for _, e := range m.EdgeIndices() {
		key := sortedPair(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}
	return unique
}

// sortedPair orders an edge pair so that both traversal directions map
// to one canonical key.
func sortedPair(e [2]int32) [2]int32 {
	if e[0] > e[1] {
		return [2]int32{e[1], e[0]}
	}
	return e
}

// EdgeVectors returns the coordinate difference along every edge of
// every triangle, row-aligned with EdgeIndices (row i is the vector
// from the first to the second point of pair i).
func (m *TriMesh) EdgeVectors() *mat.Dense {
	return m.edgeVectorsFor(m.EdgeIndices())
}

// UniqueEdgeVectors returns the coordinate difference along each unique
// edge, row-aligned with UniqueEdgeIndices.
func (m *TriMesh) UniqueEdgeVectors() *mat.Dense {
	return m.edgeVectorsFor(m.UniqueEdgeIndices())
}

// edgeVectorsFor stacks the coordinate difference of every pair into a
// len(pairs) x n_dims matrix.
func (m *TriMesh) edgeVectorsFor(pairs [][2]int32) *mat.Dense {
	out := mat.NewDense(len(pairs), m.NDims(), nil)
	for i, e := range pairs {
		floats.SubTo(out.RawRowView(i),
			m.points.RawRowView(int(e[1])),
			m.points.RawRowView(int(e[0])))
	}
	return out
}

// EdgeLengths returns the Euclidean length of every edge of every
// triangle, row-aligned with EdgeIndices.
func (m *TriMesh) EdgeLengths() []float64 {
	return rowNorms(m.EdgeVectors())
}

// UniqueEdgeLengths returns the Euclidean length of each unique edge,
// row-aligned with UniqueEdgeIndices.
func (m *TriMesh) UniqueEdgeLengths() []float64 {
	return rowNorms(m.UniqueEdgeVectors())
}

// rowNorms computes the 2-norm of each matrix row.
func rowNorms(vecs *mat.Dense) []float64 {
	r, _ := vecs.Dims()
	norms := make([]float64, r)
	for i := 0; i < r; i++ {
		norms[i] = floats.Norm(vecs.RawRowView(i), 2)
	}
	return norms
}

// MeanEdgeLength returns the mean edge length. With unique set each
// physical edge counts once towards the average; otherwise shared edges
// count once per owning triangle and are double-weighted.
func (m *TriMesh) MeanEdgeLength(unique bool) float64 {
	if unique {
		return stat.Mean(m.UniqueEdgeLengths(), nil)
	}
	return stat.Mean(m.EdgeLengths(), nil)
}

// BoundaryTriIndex returns the indices, ascending, of the triangles on
// the mesh boundary: those owning at least one edge that no other
// triangle shares. An edge is identified by its unordered endpoint
// pair, so two triangles meeting along an edge cancel it regardless of
// winding.
func (m *TriMesh) BoundaryTriIndex() []int {
	count := make(map[[2]int32]int)
	owner := make(map[[2]int32]int)
	for i, t := range m.trilist {
		for _, e := range [3][2]int32{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			key := sortedPair(e)
			count[key]++
			owner[key] = i
		}
	}
	onBoundary := make(map[int]bool)
	for key, c := range count {
		if c == 1 {
			onBoundary[owner[key]] = true
		}
	}
	boundary := make([]int, 0, len(onBoundary))
	for i := range onBoundary {
		boundary = append(boundary, i)
	}
	sort.Ints(boundary)
	return boundary
}
