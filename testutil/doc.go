// Package testutil provides testing utilities for medoids.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating seeded random vectors and a naive,
// cache-free reference clusterer used as ground truth.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UnitVectors(100, 16)
//	clustered, labels := rng.ClusteredVectors(100, 16, 4, 0.05)
//
// # Ground Truth
//
//	ref := testutil.ReferenceClustering(vecs, k, 0)
package testutil
