// Package distance provides the vector similarity primitives used by the
// clustering engine.
//
// Accumulation is done in float64 regardless of the float32 input so that
// repeated similarity sums stay stable across large clusters.
//
// # Usage
//
//	dot := distance.Dot(a, b)
//	sim := distance.Cosine(a, b)
package distance
