package model

// Vectorizable is satisfied by types that can flatten themselves into a
// fixed-length vector and rebuild a like instance from one. The round
// trip FromVector(AsVector()) must reproduce the receiver, and
// instances of the same shape must always flatten to the same length.
type Vectorizable[T any] interface {
	AsVector() []float64
	FromVector(vec []float64) (T, error)
}
