package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/jassonvia/menpo/pkg/decomposition"
)

// PCAOption adjusts how New fits a model.
type PCAOption func(*pcaOptions)

type pcaOptions struct {
	centre bool
	biased bool
}

func defaultPCAOptions() pcaOptions {
	return pcaOptions{centre: true, biased: false}
}

// WithoutCentering fits the model on the raw data, leaving the mean at
// zero. Use it when the data is already centred elsewhere.
func WithoutCentering() PCAOption {
	return func(o *pcaOptions) { o.centre = false }
}

// WithBiasedEstimator normalizes eigenvalues by n_samples instead of
// n_samples - 1.
func WithBiasedEstimator() PCAOption {
	return func(o *pcaOptions) { o.biased = true }
}

// PCA is a principal component analysis model over any vectorizable
// type. The full eigenvalue spectrum found at fit time survives
// trimming, so the variance captured by discarded components stays
// available as a noise variance estimate.
type PCA[T Vectorizable[T]] struct {
	*MeanLinearModel
	template    T
	eigenvalues []float64
	nSamples    int
	centred     bool
	biased      bool
}

// New fits a PCA model to a set of samples. At least two samples are
// required and every sample must flatten to the same length. The first
// sample becomes the template new instances are rebuilt through.
func New[T Vectorizable[T]](samples []T, opts ...PCAOption) (*PCA[T], error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("need at least 2 samples to fit a model, got %d", len(samples))
	}
	o := defaultPCAOptions()
	for _, opt := range opts {
		opt(&o)
	}
	first := samples[0].AsVector()
	if len(first) == 0 {
		return nil, fmt.Errorf("samples flatten to empty vectors")
	}
	data := mat.NewDense(len(samples), len(first), nil)
	copy(data.RawRowView(0), first)
	for i, s := range samples[1:] {
		vec := s.AsVector()
		if len(vec) != len(first) {
			return nil, fmt.Errorf("sample %d flattens to %d entries, want %d", i+1, len(vec), len(first))
		}
		copy(data.RawRowView(i+1), vec)
	}
	components, eigenvalues, mean, err := decomposition.PrincipalComponents(data, o.centre, o.biased)
	if err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}
	linear, err := NewMeanLinearModel(components, mean)
	if err != nil {
		return nil, err
	}
	return &PCA[T]{
		MeanLinearModel: linear,
		template:        samples[0],
		eigenvalues:     eigenvalues,
		nSamples:        len(samples),
		centred:         o.centre,
		biased:          o.biased,
	}, nil
}

// NSamples returns the number of samples the model was fit on.
func (p *PCA[T]) NSamples() int { return p.nSamples }

// Template returns the sample the model rebuilds instances through.
func (p *PCA[T]) Template() T { return p.template }

// Centred reports whether the mean was subtracted at fit time.
func (p *PCA[T]) Centred() bool { return p.centred }

// Biased reports whether eigenvalues were normalized by n_samples.
func (p *PCA[T]) Biased() bool { return p.biased }

// NAvailableComponents returns the number of components found at fit
// time. Trimming never shrinks it.
func (p *PCA[T]) NAvailableComponents() int {
	return len(p.eigenvalues)
}

// Eigenvalues returns the eigenvalue of each active component, largest
// first.
func (p *PCA[T]) Eigenvalues() []float64 {
	return append([]float64(nil), p.eigenvalues[:p.NComponents()]...)
}

// EigenvaluesRatio returns the fraction of the active variance captured
// by each active component.
func (p *PCA[T]) EigenvaluesRatio() []float64 {
	active := p.eigenvalues[:p.NComponents()]
	total := floats.Sum(active)
	ratio := make([]float64, len(active))
	for i, e := range active {
		ratio[i] = e / total
	}
	return ratio
}

// NoiseVariance returns the mean eigenvalue of the trimmed-away
// components, or zero while every component found at fit time is still
// active.
func (p *PCA[T]) NoiseVariance() float64 {
	active := p.NComponents()
	if active == len(p.eigenvalues) {
		return 0
	}
	return stat.Mean(p.eigenvalues[active:], nil)
}

// InverseNoiseVariance returns 1 / NoiseVariance, or an error while the
// noise variance is zero.
func (p *PCA[T]) InverseNoiseVariance() (float64, error) {
	nv := p.NoiseVariance()
	if nv == 0 {
		return 0, fmt.Errorf("noise variance is zero: trim components to estimate it")
	}
	return 1 / nv, nil
}

// TrimComponents irreversibly drops all but the first k active
// components. k must lie in [1, NComponents()]; trimming to the current
// count is a no-op. Dropped components leave their eigenvalues behind,
// feeding NoiseVariance, but can never be restored.
func (p *PCA[T]) TrimComponents(k int) error {
	active := p.NComponents()
	if k <= 0 {
		return fmt.Errorf("cannot trim to %d components, want at least 1", k)
	}
	if k > active {
		return fmt.Errorf("cannot trim to %d components, only %d are active", k, active)
	}
	if k == active {
		return nil
	}
	p.trim(k)
	return nil
}

// WhitenedComponents returns the active components rescaled so that
// projecting onto them yields unit-variance weights: each component is
// divided by the square root of its eigenvalue plus the noise variance.
func (p *PCA[T]) WhitenedComponents() *mat.Dense {
	nv := p.NoiseVariance()
	k, d := p.NComponents(), p.NFeatures()
	white := mat.NewDense(k, d, nil)
	for i := 0; i < k; i++ {
		row := white.RawRowView(i)
		copy(row, p.components.RawRowView(i))
		floats.Scale(1/math.Sqrt(p.eigenvalues[i]+nv), row)
	}
	return white
}

// ComponentVector returns a copy of active component i. With withMean
// set the component is scaled by scale times the square root of its
// eigenvalue and offset by the model mean, turning the unit axis into a
// deviation from the mean; otherwise the raw unit component is returned
// and scale is ignored.
func (p *PCA[T]) ComponentVector(i int, withMean bool, scale float64) ([]float64, error) {
	if i < 0 || i >= p.NComponents() {
		return nil, fmt.Errorf("component %d out of range [0, %d)", i, p.NComponents())
	}
	out := append([]float64(nil), p.components.RawRowView(i)...)
	if !withMean {
		return out, nil
	}
	floats.Scale(scale*math.Sqrt(p.eigenvalues[i]), out)
	floats.Add(out, p.mean)
	return out, nil
}

// DistanceToSubspaceVector returns the residual of x orthogonal to the
// active subspace, scaled by the inverse noise variance. The model must
// have been trimmed first so a noise variance estimate exists.
func (p *PCA[T]) DistanceToSubspaceVector(x []float64) ([]float64, error) {
	inv, err := p.InverseNoiseVariance()
	if err != nil {
		return nil, err
	}
	out, err := p.ProjectOutVector(x)
	if err != nil {
		return nil, err
	}
	floats.Scale(inv, out)
	return out, nil
}

// ProjectWhitenedVector projects x onto the whitened components and
// expands the whitened weights back through them. The raw vector is
// used as given: the model mean is neither subtracted nor added back.
// The whitened basis is not orthonormal, so this is a sheared
// reconstruction rather than the orthogonal projection
// ReconstructVector computes.
func (p *PCA[T]) ProjectWhitenedVector(x []float64) ([]float64, error) {
	if len(x) != p.NFeatures() {
		return nil, fmt.Errorf("vector has %d entries, want %d", len(x), p.NFeatures())
	}
	white := p.WhitenedComponents()
	var w, back mat.VecDense
	w.MulVec(white, mat.NewVecDense(len(x), x))
	back.MulVec(white.T(), &w)
	return back.RawVector().Data, nil
}

// Project returns the weight of each active component for an instance.
func (p *PCA[T]) Project(x T) ([]float64, error) {
	return p.ProjectVector(x.AsVector())
}

// Instance synthesizes a model instance from component weights through
// the template. Fewer weights than active components is allowed, the
// remainder is zero.
func (p *PCA[T]) Instance(weights []float64) (T, error) {
	var zero T
	vec, err := p.InstanceVector(weights)
	if err != nil {
		return zero, err
	}
	return p.template.FromVector(vec)
}

// Reconstruct projects an instance onto the active subspace and
// rebuilds the closest instance the model can express.
func (p *PCA[T]) Reconstruct(x T) (T, error) {
	var zero T
	vec, err := p.ReconstructVector(x.AsVector())
	if err != nil {
		return zero, err
	}
	return x.FromVector(vec)
}

// ProjectOut rebuilds an instance from the mean-centred residual of x
// orthogonal to the active subspace.
func (p *PCA[T]) ProjectOut(x T) (T, error) {
	var zero T
	vec, err := p.ProjectOutVector(x.AsVector())
	if err != nil {
		return zero, err
	}
	return x.FromVector(vec)
}

// DistanceToSubspace rebuilds an instance from the inverse-noise-scaled
// residual of x outside the active subspace.
func (p *PCA[T]) DistanceToSubspace(x T) (T, error) {
	var zero T
	vec, err := p.DistanceToSubspaceVector(x.AsVector())
	if err != nil {
		return zero, err
	}
	return x.FromVector(vec)
}

// ProjectWhitened rebuilds an instance from the sheared whitened
// reconstruction of x.
func (p *PCA[T]) ProjectWhitened(x T) (T, error) {
	var zero T
	vec, err := p.ProjectWhitenedVector(x.AsVector())
	if err != nil {
		return zero, err
	}
	return x.FromVector(vec)
}
