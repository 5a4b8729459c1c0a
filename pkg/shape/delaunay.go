package shape

import (
	"fmt"
	"sync"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/mat"
)

// Triangulator produces a trilist for a set of points. Implementations
// are injected into NewTriMesh through WithTriangulator when the caller
// wants to control how an absent trilist is synthesized.
type Triangulator interface {
	Triangulate(points *mat.Dense) ([][3]int32, error)
}

// DelaunayTriangulator triangulates 2D point sets with a Delaunay
// triangulation.
type DelaunayTriangulator struct{}

var _ Triangulator = DelaunayTriangulator{}

// Triangulate computes the Delaunay triangulation of a 2D point set.
func (DelaunayTriangulator) Triangulate(points *mat.Dense) ([][3]int32, error) {
	n, d := points.Dims()
	if d != 2 {
		return nil, fmt.Errorf("delaunay triangulation requires 2D points, got %dD", d)
	}
	pts := make([]delaunay.Point, n)
	for i := 0; i < n; i++ {
		row := points.RawRowView(i)
		pts[i] = delaunay.Point{X: row[0], Y: row[1]}
	}
	triangulation, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("delaunay triangulation: %w", err)
	}
	flat := triangulation.Triangles
	if len(flat) == 0 {
		return nil, fmt.Errorf("delaunay triangulation produced no triangles (degenerate input)")
	}
	trilist := make([][3]int32, len(flat)/3)
	for i := range trilist {
		trilist[i] = [3]int32{int32(flat[3*i]), int32(flat[3*i+1]), int32(flat[3*i+2])}
	}
	return trilist, nil
}

var defaultTriangulator = sync.OnceValue(func() Triangulator {
	return DelaunayTriangulator{}
})

// DefaultTriangulator returns the triangulator used by NewTriMesh when
// no trilist and no override are given. The instance is created on
// first use and shared by all callers.
func DefaultTriangulator() Triangulator {
	return defaultTriangulator()
}
