package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// planeModel spans the xy-plane inside 3-space, offset to (1,1,1).
func planeModel(t *testing.T) *MeanLinearModel {
	t.Helper()
	components := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 1, 0,
	})
	m, err := NewMeanLinearModel(components, []float64{1, 1, 1})
	require.NoError(t, err)
	return m
}

func TestNewMeanLinearModelValidation(t *testing.T) {
	_, err := NewMeanLinearModel(mat.NewDense(2, 3, nil), []float64{1, 2})
	assert.ErrorContains(t, err, "one per feature")
}

func TestMeanLinearModelShape(t *testing.T) {
	m := planeModel(t)
	assert.Equal(t, 2, m.NComponents())
	assert.Equal(t, 3, m.NFeatures())
}

func TestMeanLinearModelAccessorsCopy(t *testing.T) {
	m := planeModel(t)

	mean := m.MeanVector()
	mean[0] = 99
	assert.Equal(t, 1.0, m.MeanVector()[0], "returned mean must be a copy")

	comps := m.Components()
	comps.Set(0, 0, 99)
	assert.Equal(t, 1.0, m.Components().At(0, 0), "returned components must be a copy")
}

func TestMeanLinearModelProjectVector(t *testing.T) {
	m := planeModel(t)

	w, err := m.ProjectVector([]float64{2, 3, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, w, 1e-12)

	_, err = m.ProjectVector([]float64{1, 2})
	assert.ErrorContains(t, err, "want 3")
}

func TestMeanLinearModelInstanceVector(t *testing.T) {
	m := planeModel(t)

	tests := []struct {
		name    string
		weights []float64
		want    []float64
	}{
		{"full weights", []float64{1, 2}, []float64{2, 3, 1}},
		{"short weights pad with zero", []float64{1}, []float64{2, 1, 1}},
		{"no weights give the mean", nil, []float64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.InstanceVector(tt.weights)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}

	t.Run("too many weights", func(t *testing.T) {
		_, err := m.InstanceVector([]float64{1, 2, 3})
		assert.ErrorContains(t, err, "only 2 components")
	})
}

func TestMeanLinearModelReconstructVector(t *testing.T) {
	m := planeModel(t)

	// The z offset from the mean is outside the span and is dropped.
	got, err := m.ReconstructVector([]float64{2, 3, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, 1}, got, 1e-12)
}

func TestMeanLinearModelProjectOutVector(t *testing.T) {
	m := planeModel(t)

	got, err := m.ProjectOutVector([]float64{2, 3, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 4}, got, 1e-12,
		"only the off-plane residual survives, mean-centred")
}
