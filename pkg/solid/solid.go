// Package solid turns implicit solids from the github.com/deadsy/sdfx
// CAD library into welded triangle meshes.
package solid

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/mat"

	"github.com/jassonvia/menpo/pkg/shape"
)

// Tessellate renders a signed distance field into a triangle mesh using
// marching cubes at the given cell resolution. Marching cubes emits an
// independent corner per triangle, so coincident corners are welded by
// coordinate into shared points; the result is a watertight mesh whose
// connectivity queries see shared edges, not a triangle soup. Slivers
// whose corners collapse onto one another during welding are dropped.
func Tessellate(s sdf.SDF3, cells int) (*shape.TriMesh, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("marching cubes needs a positive cell count, got %d", cells)
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	index := make(map[[3]float64]int32)
	var coords []float64
	trilist := make([][3]int32, 0, len(triangles))
	for _, tri := range triangles {
		var ids [3]int32
		for j := 0; j < 3; j++ {
			v := tri[j]
			key := [3]float64{v.X, v.Y, v.Z}
			id, ok := index[key]
			if !ok {
				id = int32(len(index))
				index[key] = id
				coords = append(coords, v.X, v.Y, v.Z)
			}
			ids[j] = id
		}
		if ids[0] == ids[1] || ids[1] == ids[2] || ids[2] == ids[0] {
			continue
		}
		trilist = append(trilist, ids)
	}
	if len(trilist) == 0 {
		return nil, fmt.Errorf("solid tessellated to no triangles")
	}
	points := mat.NewDense(len(index), 3, coords)
	return shape.NewTriMesh(points, trilist, shape.WithCopyPolicy(shape.ShareStrict))
}
