package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MeanLinearModel is a linear subspace with an origin offset: instances
// are the mean plus a weighted sum of components. Components are stored
// one per row and are assumed orthonormal, which every fitting path in
// this package guarantees.
type MeanLinearModel struct {
	components *mat.Dense
	mean       []float64
}

// NewMeanLinearModel builds a model from a component matrix, one
// component per row, and a mean with one entry per feature. Both are
// copied.
func NewMeanLinearModel(components *mat.Dense, mean []float64) (*MeanLinearModel, error) {
	_, d := components.Dims()
	if len(mean) != d {
		return nil, fmt.Errorf("mean has %d entries, want one per feature (%d)", len(mean), d)
	}
	return &MeanLinearModel{
		components: mat.DenseCopyOf(components),
		mean:       append([]float64(nil), mean...),
	}, nil
}

// NComponents returns the number of components spanning the subspace.
func (m *MeanLinearModel) NComponents() int {
	r, _ := m.components.Dims()
	return r
}

// NFeatures returns the length of the vectors the model operates on.
func (m *MeanLinearModel) NFeatures() int {
	_, d := m.components.Dims()
	return d
}

// MeanVector returns a copy of the model mean.
func (m *MeanLinearModel) MeanVector() []float64 {
	return append([]float64(nil), m.mean...)
}

// Components returns a copy of the component matrix, one component per
// row.
func (m *MeanLinearModel) Components() *mat.Dense {
	return mat.DenseCopyOf(m.components)
}

// ProjectVector returns the weight of each component for x: the dot
// product of every component with the mean-centred x.
func (m *MeanLinearModel) ProjectVector(x []float64) ([]float64, error) {
	centred, err := m.centre(x)
	if err != nil {
		return nil, err
	}
	var w mat.VecDense
	w.MulVec(m.components, mat.NewVecDense(len(centred), centred))
	return w.RawVector().Data, nil
}

// InstanceVector synthesizes a vector from component weights: the mean
// plus the weighted sum of components. Fewer weights than components is
// allowed and treated as zero weight for the remainder; more is an
// error.
func (m *MeanLinearModel) InstanceVector(weights []float64) ([]float64, error) {
	k := m.NComponents()
	if len(weights) > k {
		return nil, fmt.Errorf("got %d weights, model has only %d components", len(weights), k)
	}
	padded := make([]float64, k)
	copy(padded, weights)
	var x mat.VecDense
	x.MulVec(m.components.T(), mat.NewVecDense(k, padded))
	out := make([]float64, m.NFeatures())
	floats.AddTo(out, x.RawVector().Data, m.mean)
	return out, nil
}

// ReconstructVector projects x onto the subspace and synthesizes the
// closest vector the model can express.
func (m *MeanLinearModel) ReconstructVector(x []float64) ([]float64, error) {
	w, err := m.ProjectVector(x)
	if err != nil {
		return nil, err
	}
	return m.InstanceVector(w)
}

// ProjectOutVector removes the subspace span from x, returning the
// mean-centred residual orthogonal to every component.
func (m *MeanLinearModel) ProjectOutVector(x []float64) ([]float64, error) {
	centred, err := m.centre(x)
	if err != nil {
		return nil, err
	}
	var w, back mat.VecDense
	w.MulVec(m.components, mat.NewVecDense(len(centred), centred))
	back.MulVec(m.components.T(), &w)
	out := make([]float64, len(centred))
	floats.SubTo(out, centred, back.RawVector().Data)
	return out, nil
}

// centre validates the length of x and subtracts the mean.
func (m *MeanLinearModel) centre(x []float64) ([]float64, error) {
	if len(x) != m.NFeatures() {
		return nil, fmt.Errorf("vector has %d entries, want %d", len(x), m.NFeatures())
	}
	centred := make([]float64, len(x))
	floats.SubTo(centred, x, m.mean)
	return centred, nil
}

// trim drops all but the first k components. Callers validate k.
func (m *MeanLinearModel) trim(k int) {
	kept := mat.NewDense(k, m.NFeatures(), nil)
	for i := 0; i < k; i++ {
		copy(kept.RawRowView(i), m.components.RawRowView(i))
	}
	m.components = kept
}
