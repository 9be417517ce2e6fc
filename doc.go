// Package medoids clusters a fixed set of vectors into k groups around
// medoids chosen by cosine similarity.
//
// A medoid is an actual member of its cluster: the one whose summed cosine
// similarity to all other members is highest. The engine alternates two steps
// until no medoid moves:
//
//  1. assign every vector to its most similar medoid (ties go to the lowest
//     cluster index);
//  2. replace each cluster's medoid with its most representative member (ties
//     go to the lowest point index).
//
// Medoids start at points 0..k-1, so a run is fully deterministic.
//
// # Quick Start
//
//	e, err := medoids.New(vectors, 8)
//	if err != nil {
//	    return err
//	}
//	res, err := e.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	for c, members := range res.Clusters {
//	    fmt.Println(c, res.Medoids[c], members)
//	}
//
// # Similarity Cache
//
// Pairwise similarities are memoized per engine for its whole lifetime. The
// dataset passed to New must therefore not be modified afterwards. An Engine
// is not safe for concurrent use; independent engines are.
//
// # Termination
//
// The medoid-swap loop can oscillate. Runs are capped at DefaultMaxIterations
// passes (see WithMaxIterations); a capped run reports Converged == false.
//
// # Errors
//
//   - *ConfigurationError: empty dataset or k outside [1, n], from New.
//   - *DimensionMismatchError: two compared vectors differ in length. The run
//     is aborted and no result is returned.
//
// # Loading Data
//
// The dataset package reads the dense text format used by the command line
// tool from any blobstore.BlobStore (local disk, memory, S3, MinIO).
package medoids
