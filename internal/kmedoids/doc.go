// Package kmedoids implements the two steps of similarity-driven k-medoids
// clustering: assigning points to their most similar medoid and choosing the
// most representative member of a cluster.
//
// Both steps are expressed over point indices and a SimilarityFunc, so the
// caller owns the vectors and any memoization of pairwise scores.
package kmedoids
