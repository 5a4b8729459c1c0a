// Package shape provides ordered point sets and triangle meshes with
// derived geometric queries: adjacency and edge extraction, boundary
// detection, normals, areas, and connectivity-preserving masking.
// Coordinates live in gonum dense matrices, one point per row, so the
// types compose directly with the rest of the numerical stack.
package shape
