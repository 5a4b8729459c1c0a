package shape

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TriMesh is a point cloud with connectivity given by a triangle list.
// Each trilist row (A, B, C) is one oriented triangular face. Meshes are
// replaced wholesale (masking builds a new mesh); the trilist is never
// partially rewritten in place.
type TriMesh struct {
	PointCloud
	trilist [][3]int32
}

// NewTriMesh builds a mesh over the given points. A nil trilist asks for
// a Delaunay triangulation of the points instead (2D point sets only;
// inject a different primitive with WithTriangulator). Every corner
// index must lie in [0, n_points) and at least one triangle is required.
// The trilist is copied unless a share policy is selected; a [][3]int32
// is packed by construction, so unlike the points matrix there is no
// layout under which sharing it could fail.
func NewTriMesh(points *mat.Dense, trilist [][3]int32, opts ...Option) (*TriMesh, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	adopted, err := adoptDense(points, o.policy)
	if err != nil {
		return nil, err
	}
	pc := PointCloud{points: adopted}

	if trilist == nil {
		tri := o.tri
		if tri == nil {
			tri = DefaultTriangulator()
		}
		trilist, err = tri.Triangulate(pc.points)
		if err != nil {
			return nil, fmt.Errorf("triangulating points: %w", err)
		}
	} else {
		if err := validateTrilist(trilist, pc.NPoints()); err != nil {
			return nil, err
		}
		if o.policy == CopyData {
			copied := make([][3]int32, len(trilist))
			copy(copied, trilist)
			trilist = copied
		}
	}
	if len(trilist) == 0 {
		return nil, fmt.Errorf("mesh needs at least one triangle")
	}
	return &TriMesh{PointCloud: pc, trilist: trilist}, nil
}

// validateTrilist checks every corner index against the point count.
func validateTrilist(trilist [][3]int32, nPoints int) error {
	for i, t := range trilist {
		for _, idx := range t {
			if idx < 0 || int(idx) >= nPoints {
				return fmt.Errorf("trilist row %d references point %d, want [0, %d)", i, idx, nPoints)
			}
		}
	}
	return nil
}

// NTris returns the number of triangles.
func (m *TriMesh) NTris() int {
	return len(m.trilist)
}

// Trilist returns the live triangle list. Callers must not resize or
// renumber it.
func (m *TriMesh) Trilist() [][3]int32 {
	return m.trilist
}

// Copy returns a deep copy of the mesh.
func (m *TriMesh) Copy() *TriMesh {
	trilist := make([][3]int32, len(m.trilist))
	copy(trilist, m.trilist)
	return &TriMesh{PointCloud: *m.PointCloud.Copy(), trilist: trilist}
}

// FromVector rebuilds a mesh with this mesh's connectivity from a flat
// row-major coordinate vector.
func (m *TriMesh) FromVector(vec []float64) (*TriMesh, error) {
	pc, err := m.PointCloud.FromVector(vec)
	if err != nil {
		return nil, err
	}
	trilist := make([][3]int32, len(m.trilist))
	copy(trilist, m.trilist)
	return &TriMesh{PointCloud: *pc, trilist: trilist}, nil
}

// FromMask returns a new mesh keeping only the masked-in points,
// dropping every triangle that references a removed point and
// renumbering the rest into the reduced index space. A retained point
// left without any surviving triangle (an isolated point) is removed as
// well, so whenever the mask removes at least one point every point of
// the result belongs to at least one triangle. An all-true mask is the
// fast path: it returns a plain copy without touching connectivity.
func (m *TriMesh) FromMask(mask []bool) (*TriMesh, error) {
	if len(mask) != m.NPoints() {
		return nil, fmt.Errorf("mask has %d entries, want one per point (%d)", len(mask), m.NPoints())
	}
	all := true
	for _, keep := range mask {
		if !keep {
			all = false
			break
		}
	}
	if all {
		return m.Copy(), nil
	}

	narrowed := m.isolatedMask(mask)
	kept := maskTrilist(m.trilist, narrowed)
	if len(kept) == 0 {
		return nil, fmt.Errorf("mask leaves no triangles")
	}
	pc, err := m.PointCloud.FromMask(narrowed)
	if err != nil {
		return nil, err
	}
	return &TriMesh{PointCloud: *pc, trilist: renumberTrilist(kept, narrowed)}, nil
}

// isolatedMask narrows a point mask by dropping retained points that no
// surviving triangle references.
func (m *TriMesh) isolatedMask(mask []bool) []bool {
	kept := maskTrilist(m.trilist, mask)
	referenced := make([]bool, len(mask))
	for _, t := range kept {
		referenced[t[0]] = true
		referenced[t[1]] = true
		referenced[t[2]] = true
	}
	narrowed := make([]bool, len(mask))
	for i, keep := range mask {
		narrowed[i] = keep && referenced[i]
	}
	return narrowed
}

func (m *TriMesh) String() string {
	return fmt.Sprintf("TriMesh: %d points, %d tris (%dD)", m.NPoints(), m.NTris(), m.NDims())
}
