package shape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// squareMesh builds the unit square split along the 0-2 diagonal, both
// triangles wound counter-clockwise.
func squareMesh(t *testing.T) *TriMesh {
	t.Helper()
	points := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	})
	m, err := NewTriMesh(points, [][3]int32{{0, 1, 2}, {0, 2, 3}})
	require.NoError(t, err)
	return m
}

// --- Construction ---

func TestNewTriMeshExplicitTrilist(t *testing.T) {
	m := squareMesh(t)
	assert.Equal(t, 2, m.NTris())
	assert.Equal(t, 4, m.NPoints())
	assert.Equal(t, [3]int32{0, 1, 2}, m.Trilist()[0])
}

func TestNewTriMeshCopiesTrilist(t *testing.T) {
	points := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1})
	trilist := [][3]int32{{0, 1, 2}}
	m, err := NewTriMesh(points, trilist)
	require.NoError(t, err)

	trilist[0] = [3]int32{2, 1, 0}
	assert.Equal(t, [3]int32{0, 1, 2}, m.Trilist()[0], "mutating caller trilist must not reach the mesh")
}

func TestNewTriMeshValidation(t *testing.T) {
	points := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1})
	tests := []struct {
		name    string
		trilist [][3]int32
		wantErr string
	}{
		{"index past the points", [][3]int32{{0, 1, 3}}, "references point 3"},
		{"negative index", [][3]int32{{0, -1, 2}}, "references point -1"},
		{"no triangles", [][3]int32{}, "at least one triangle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriMesh(points, tt.trilist)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// --- Triangulation fallback ---

func TestNewTriMeshDelaunayFallback(t *testing.T) {
	points := mat.NewDense(4, 2, []float64{
		0, 0,
		2, 0,
		2, 1,
		0, 2,
	})
	m, err := NewTriMesh(points, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NTris(), "a convex quad triangulates into two triangles")
	used := make(map[int32]bool)
	for _, tri := range m.Trilist() {
		for _, idx := range tri {
			require.GreaterOrEqual(t, idx, int32(0))
			require.Less(t, idx, int32(4))
			used[idx] = true
		}
	}
	assert.Len(t, used, 4, "every corner of the quad should be referenced")
}

func TestNewTriMeshDelaunayRejects3D(t *testing.T) {
	points := mat.NewDense(4, 3, []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	})
	_, err := NewTriMesh(points, nil)
	assert.ErrorContains(t, err, "2D points")
}

// stubTriangulator returns a canned trilist, counting calls, to prove
// injected triangulators reach mesh construction.
type stubTriangulator struct {
	calls   int
	trilist [][3]int32
	err     error
}

func (s *stubTriangulator) Triangulate(points *mat.Dense) ([][3]int32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.trilist, nil
}

var _ Triangulator = (*stubTriangulator)(nil)

func TestNewTriMeshTriangulatorInjection(t *testing.T) {
	points := mat.NewDense(3, 3, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0})

	t.Run("override is used", func(t *testing.T) {
		stub := &stubTriangulator{trilist: [][3]int32{{0, 1, 2}}}
		m, err := NewTriMesh(points, nil, WithTriangulator(stub))
		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, 1, m.NTris())
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		stub := &stubTriangulator{err: fmt.Errorf("no can do")}
		_, err := NewTriMesh(points, nil, WithTriangulator(stub))
		assert.ErrorContains(t, err, "triangulating points")
		assert.ErrorContains(t, err, "no can do")
	})
}

// --- Masking ---

func TestTriMeshFromMaskIdentity(t *testing.T) {
	m := squareMesh(t)
	masked, err := m.FromMask([]bool{true, true, true, true})
	require.NoError(t, err)

	assert.Equal(t, m.NPoints(), masked.NPoints())
	assert.Equal(t, m.NTris(), masked.NTris())

	masked.Points().Set(0, 0, 99)
	assert.Equal(t, 0.0, m.Points().At(0, 0), "identity mask must still detach storage")
}

func TestTriMeshFromMaskWrongLength(t *testing.T) {
	m := squareMesh(t)
	_, err := m.FromMask([]bool{true, true})
	assert.ErrorContains(t, err, "one per point")
}

func TestTriMeshFromMaskDropsCornerTriangles(t *testing.T) {
	m := squareMesh(t)
	masked, err := m.FromMask([]bool{true, false, true, true})
	require.NoError(t, err)

	require.Equal(t, 3, masked.NPoints())
	require.Equal(t, 1, masked.NTris())
	assert.Equal(t, [3]int32{0, 1, 2}, masked.Trilist()[0], "surviving triangle should be renumbered")
	assert.Equal(t, []float64{0, 0}, masked.Points().RawRowView(0))
	assert.Equal(t, []float64{1, 1}, masked.Points().RawRowView(1))
	assert.Equal(t, []float64{0, 1}, masked.Points().RawRowView(2))
}

func TestTriMeshFromMaskRemovesIsolatedPoints(t *testing.T) {
	points := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		2, 1,
		2, 0,
	})
	m, err := NewTriMesh(points, [][3]int32{{0, 1, 2}, {1, 4, 3}})
	require.NoError(t, err)

	// Dropping point 4 kills the second triangle, which leaves point 3
	// masked-in but attached to nothing.
	masked, err := m.FromMask([]bool{true, true, true, true, false})
	require.NoError(t, err)

	assert.Equal(t, 3, masked.NPoints(), "isolated point 3 should go with its triangle")
	require.Equal(t, 1, masked.NTris())
	assert.Equal(t, [3]int32{0, 1, 2}, masked.Trilist()[0])
}

func TestTriMeshFromMaskKeepsTriangleIndices(t *testing.T) {
	points := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		5, 5,
		7, 7,
	})
	m, err := NewTriMesh(points, [][3]int32{{0, 1, 2}})
	require.NoError(t, err)

	// Points 3 and 4 sit outside every triangle. Dropping one of them
	// renumbers nothing: the surviving trilist is untouched, and the
	// other unattached point goes with it.
	masked, err := m.FromMask([]bool{true, true, true, true, false})
	require.NoError(t, err)

	assert.Equal(t, 3, masked.NPoints())
	require.Equal(t, 1, masked.NTris())
	assert.Equal(t, [3]int32{0, 1, 2}, masked.Trilist()[0], "no referenced point moved, so no index changes")
	assert.Equal(t, []float64{0, 1}, masked.Points().RawRowView(2))
}

func TestTriMeshFromMaskLeavesNoTriangles(t *testing.T) {
	m := squareMesh(t)
	_, err := m.FromMask([]bool{true, false, false, true})
	assert.ErrorContains(t, err, "leaves no triangles")
}

// --- Vectorization and copying ---

func TestTriMeshVectorRoundTrip(t *testing.T) {
	m := squareMesh(t)
	vec := m.AsVector()
	require.Len(t, vec, 8)

	scaled := make([]float64, len(vec))
	for i, v := range vec {
		scaled[i] = 2 * v
	}
	back, err := m.FromVector(scaled)
	require.NoError(t, err)

	assert.Equal(t, m.Trilist(), back.Trilist(), "connectivity must survive the round trip")
	assert.Equal(t, []float64{2, 2}, back.Points().RawRowView(2))
}

func TestTriMeshCopyDetaches(t *testing.T) {
	m := squareMesh(t)
	c := m.Copy()

	c.Points().Set(0, 0, 99)
	c.Trilist()[0] = [3]int32{2, 1, 0}

	assert.Equal(t, 0.0, m.Points().At(0, 0))
	assert.Equal(t, [3]int32{0, 1, 2}, m.Trilist()[0])
}

func TestTriMeshString(t *testing.T) {
	m := squareMesh(t)
	assert.Equal(t, "TriMesh: 4 points, 2 tris (2D)", m.String())
}
