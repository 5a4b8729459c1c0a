package shape

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// TriAreas returns the area of each triangle, row-aligned with the
// trilist. In 2D the areas are signed: counter-clockwise winding is
// positive, clockwise negative. In 3D the areas are unsigned magnitudes.
// Any other dimensionality is an error.
func (m *TriMesh) TriAreas() ([]float64, error) {
	switch m.NDims() {
	case 2:
		return m.triAreas2D(), nil
	case 3:
		return m.triAreas3D(), nil
	default:
		return nil, fmt.Errorf("triangle areas require a 2D or 3D mesh, got %dD", m.NDims())
	}
}

// triAreas2D computes half the cross product z-component of the two
// triangle edge vectors, keeping the winding sign.
func (m *TriMesh) triAreas2D() []float64 {
	areas := make([]float64, len(m.trilist))
	for i, t := range m.trilist {
		a := m.points.RawRowView(int(t[0]))
		b := m.points.RawRowView(int(t[1]))
		c := m.points.RawRowView(int(t[2]))
		ij0, ij1 := b[0]-a[0], b[1]-a[1]
		ik0, ik1 := c[0]-a[0], c[1]-a[1]
		areas[i] = (ij0*ik1 - ij1*ik0) * 0.5
	}
	return areas
}

// triAreas3D computes half the cross product magnitude of the two
// triangle edge vectors.
func (m *TriMesh) triAreas3D() []float64 {
	areas := make([]float64, len(m.trilist))
	for i, t := range m.trilist {
		a := rowVec3(m.points, int(t[0]))
		b := rowVec3(m.points, int(t[1]))
		c := rowVec3(m.points, int(t[2]))
		areas[i] = b.Sub(a).Cross(c.Sub(a)).Norm() * 0.5
	}
	return areas
}

// MeanTriArea returns the mean triangle area, signed in 2D and unsigned
// in 3D, with the same dimensionality restriction as TriAreas.
func (m *TriMesh) MeanTriArea() (float64, error) {
	areas, err := m.TriAreas()
	if err != nil {
		return 0, err
	}
	return stat.Mean(areas, nil), nil
}
