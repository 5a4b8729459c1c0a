// Package model provides linear statistical models over vectorizable
// shapes, principally a trimmable principal component analysis with
// whitening and subspace distance queries.
package model
