// Package decomposition provides the eigendecomposition primitive that
// linear statistical models are built on.
package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PrincipalComponents computes the principal eigenvectors and
// eigenvalues of the sample covariance of data, one sample per row.
//
// With center set the column mean is subtracted before decomposition
// and returned; otherwise the data is used as-is and the returned mean
// is all zeros. With bias set eigenvalues are normalized by n_samples,
// otherwise by n_samples - 1.
//
// Components are returned one per row in descending eigenvalue order.
// At most min(n_samples - 1, n_features) components carry variance, so
// exactly that many rows are returned. The sign of each component is
// arbitrary: v and -v span the same axis and either may come back.
func PrincipalComponents(data *mat.Dense, center, bias bool) (*mat.Dense, []float64, []float64, error) {
	n, d := data.Dims()
	if n < 2 {
		return nil, nil, nil, fmt.Errorf("need at least 2 samples to decompose, got %d", n)
	}

	mean := make([]float64, d)
	if center {
		col := make([]float64, n)
		for j := 0; j < d; j++ {
			mat.Col(col, j, data)
			mean[j] = stat.Mean(col, nil)
		}
	}
	centred := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		floats.SubTo(centred.RawRowView(i), data.RawRowView(i), mean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(centred, mat.SVDThin); !ok {
		return nil, nil, nil, fmt.Errorf("SVD failed to converge")
	}

	denom := float64(n - 1)
	if bias {
		denom = float64(n)
	}
	singular := svd.Values(nil)

	k := n - 1
	if d < k {
		k = d
	}
	eigenvalues := make([]float64, k)
	for i := 0; i < k; i++ {
		eigenvalues[i] = singular[i] * singular[i] / denom
	}

	var v mat.Dense
	svd.VTo(&v)
	components := mat.NewDense(k, d, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			components.Set(i, j, v.At(j, i))
		}
	}
	return components, eigenvalues, mean, nil
}
