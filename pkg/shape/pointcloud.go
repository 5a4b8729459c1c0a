package shape

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PointCloud is an ordered set of n-dimensional points backed by a dense
// row-major matrix: row i holds the coordinates of point i. Identity is
// immutable; coordinates may be written through the backing matrix.
type PointCloud struct {
	points *mat.Dense // n_points x n_dims
}

// NewPointCloud builds a point cloud around an n_points x n_dims matrix.
// The matrix is copied unless a share policy is selected via
// WithCopyPolicy; sharing is only honorable when the matrix is packed
// (not a strided sub-matrix view).
func NewPointCloud(points *mat.Dense, opts ...Option) (*PointCloud, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	adopted, err := adoptDense(points, o.policy)
	if err != nil {
		return nil, err
	}
	return &PointCloud{points: adopted}, nil
}

// adoptDense applies a CopyPolicy to a caller-provided matrix. Under the
// share policies a strided view cannot be adopted: lenient copies and
// warns, strict refuses.
func adoptDense(m *mat.Dense, policy CopyPolicy) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("points matrix is nil")
	}
	switch policy {
	case CopyData:
		return mat.DenseCopyOf(m), nil
	case ShareLenient, ShareStrict:
		rm := m.RawMatrix()
		if rm.Stride == rm.Cols {
			return m, nil
		}
		if policy == ShareStrict {
			return nil, fmt.Errorf("cannot share points storage: matrix is a strided view (stride %d, cols %d)",
				rm.Stride, rm.Cols)
		}
		slog.Warn("points storage was not shared, a copy has been made; pass a packed matrix to avoid the copy",
			"stride", rm.Stride, "cols", rm.Cols)
		return mat.DenseCopyOf(m), nil
	default:
		return nil, fmt.Errorf("unknown copy policy %d", int(policy))
	}
}

// NPoints returns the number of points.
func (pc *PointCloud) NPoints() int {
	r, _ := pc.points.Dims()
	return r
}

// NDims returns the dimensionality of each point.
func (pc *PointCloud) NDims() int {
	_, c := pc.points.Dims()
	return c
}

// Points returns the live backing matrix. Coordinates may be mutated in
// place; the shape must not change.
func (pc *PointCloud) Points() *mat.Dense {
	return pc.points
}

// Copy returns a deep copy of the cloud.
func (pc *PointCloud) Copy() *PointCloud {
	return &PointCloud{points: mat.DenseCopyOf(pc.points)}
}

// FromMask returns a new cloud holding only the points where mask is
// true, preserving order. The mask needs one entry per point and must
// select at least one of them.
func (pc *PointCloud) FromMask(mask []bool) (*PointCloud, error) {
	n, d := pc.points.Dims()
	if len(mask) != n {
		return nil, fmt.Errorf("mask has %d entries, want one per point (%d)", len(mask), n)
	}
	kept := 0
	for _, keep := range mask {
		if keep {
			kept++
		}
	}
	if kept == n {
		return pc.Copy(), nil
	}
	if kept == 0 {
		return nil, fmt.Errorf("mask selects no points")
	}
	out := mat.NewDense(kept, d, nil)
	row := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		out.SetRow(row, pc.points.RawRowView(i))
		row++
	}
	return &PointCloud{points: out}, nil
}

// Centre returns the mean position of the points.
func (pc *PointCloud) Centre() []float64 {
	n, d := pc.points.Dims()
	centre := make([]float64, d)
	for i := 0; i < n; i++ {
		floats.Add(centre, pc.points.RawRowView(i))
	}
	floats.Scale(1/float64(n), centre)
	return centre
}

// Bounds returns the per-dimension minimum and maximum over all points.
func (pc *PointCloud) Bounds() (lo, hi []float64) {
	n, d := pc.points.Dims()
	lo = make([]float64, d)
	hi = make([]float64, d)
	copy(lo, pc.points.RawRowView(0))
	copy(hi, pc.points.RawRowView(0))
	for i := 1; i < n; i++ {
		row := pc.points.RawRowView(i)
		for j := 0; j < d; j++ {
			if row[j] < lo[j] {
				lo[j] = row[j]
			}
			if row[j] > hi[j] {
				hi[j] = row[j]
			}
		}
	}
	return lo, hi
}

// Range returns the per-dimension extent of the cloud (max minus min).
func (pc *PointCloud) Range() []float64 {
	lo, hi := pc.Bounds()
	floats.Sub(hi, lo)
	return hi
}

// AsVector returns the coordinates flattened row-major into a fresh
// slice.
func (pc *PointCloud) AsVector() []float64 {
	n, d := pc.points.Dims()
	vec := make([]float64, 0, n*d)
	for i := 0; i < n; i++ {
		vec = append(vec, pc.points.RawRowView(i)...)
	}
	return vec
}

// FromVector rebuilds a cloud of this cloud's shape from a flat
// row-major coordinate vector.
func (pc *PointCloud) FromVector(vec []float64) (*PointCloud, error) {
	n, d := pc.points.Dims()
	if len(vec) != n*d {
		return nil, fmt.Errorf("vector has %d entries, want %d (%d points x %d dims)",
			len(vec), n*d, n, d)
	}
	data := make([]float64, len(vec))
	copy(data, vec)
	return &PointCloud{points: mat.NewDense(n, d, data)}, nil
}

func (pc *PointCloud) String() string {
	return fmt.Sprintf("PointCloud: %d points (%dD)", pc.NPoints(), pc.NDims())
}
