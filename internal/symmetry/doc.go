// Package symmetry holds the Laue-class operator registry and reduces Miller
// indices to a canonical representative of their orbit.
//
// The representative is the lexicographically greatest (h, k, l) reachable
// from the input, so equivalent reflections from two datasets meet on the
// same key as long as both are reduced with the same OperatorSet.
package symmetry
