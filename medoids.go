package medoids

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/medoids/distance"
	"github.com/hupe1980/medoids/internal/kmedoids"
	"github.com/hupe1980/medoids/internal/simcache"
)

// maxCacheHint bounds the initial size of the similarity cache. The cache
// still grows past it as pairs are computed.
const maxCacheHint = 1 << 16

// Engine clusters a fixed dataset into k groups around medoids chosen by
// cosine similarity.
//
// The dataset is not copied and must not be modified while the engine is in
// use. Pairwise similarities are memoized for the lifetime of the engine.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	data [][]float32
	k    int
	opts options

	cache *simcache.Cache

	medoids    []int
	assignment []int
	clusters   []*roaring.Bitmap
}

// New creates an engine for data and k.
//
// It returns a *ConfigurationError if data is empty or k is outside [1, len(data)].
// Vector lengths are not checked here; a mismatch surfaces as a
// *DimensionMismatchError the first time the offending pair is compared.
func New(data [][]float32, k int, optFns ...Option) (*Engine, error) {
	n := len(data)
	if n == 0 {
		return nil, &ConfigurationError{K: k, N: n, cause: ErrEmptyDataset}
	}
	if k < 1 || k > n {
		return nil, &ConfigurationError{K: k, N: n, cause: ErrInvalidK}
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{
		data:       data,
		k:          k,
		opts:       opts,
		cache:      simcache.New(min(n*k, maxCacheHint)),
		medoids:    make([]int, k),
		assignment: make([]int, n),
	}
	e.resetMedoids()
	return e, nil
}

// K returns the number of clusters.
func (e *Engine) K() int { return e.k }

// Len returns the number of vectors in the dataset.
func (e *Engine) Len() int { return len(e.data) }

// Similarity returns the cosine similarity between vectors i and j.
//
// Results are cached by unordered pair, so Similarity(i, j) and Similarity(j, i)
// return the same value. A similarity involving a zero vector is 0.
func (e *Engine) Similarity(i, j int) (float64, error) {
	if err := e.checkIndex(i); err != nil {
		return 0, err
	}
	if err := e.checkIndex(j); err != nil {
		return 0, err
	}
	return e.similarity(i, j)
}

func (e *Engine) similarity(i, j int) (float64, error) {
	return e.cache.GetOrCompute(i, j, func() (float64, error) {
		a, b := e.data[i], e.data[j]
		if len(a) != len(b) {
			return 0, &DimensionMismatchError{I: i, J: j, LenI: len(a), LenJ: len(b)}
		}
		return distance.Cosine(a, b), nil
	})
}

func (e *Engine) checkIndex(i int) error {
	if i < 0 || i >= len(e.data) {
		return fmt.Errorf("%w: %d (n=%d)", ErrIndexOutOfRange, i, len(e.data))
	}
	return nil
}

// SelectMedoid returns the member of a cluster that maximizes
// sqrt(sum of similarity(p, m) over all members p), and that score.
//
// Ties go to the first member in the given order. An empty slice yields
// ErrEmptyCluster.
func (e *Engine) SelectMedoid(members []int) (int, float64, error) {
	for _, m := range members {
		if err := e.checkIndex(m); err != nil {
			return -1, 0, err
		}
	}
	return kmedoids.SelectMedoid(members, e.similarity)
}

// Assign assigns every point to its most similar current medoid and returns
// the rebuilt partition. Ties go to the lowest cluster index.
func (e *Engine) Assign() (Partition, error) {
	if err := e.assign(); err != nil {
		return nil, err
	}
	return newPartition(e.clusters), nil
}

func (e *Engine) assign() error {
	clusters, err := kmedoids.Assign(len(e.data), e.medoids, e.similarity, e.assignment)
	if err != nil {
		return err
	}
	e.clusters = clusters
	return nil
}

// Medoids returns a copy of the current medoid indices, one per cluster.
func (e *Engine) Medoids() []int {
	return slices.Clone(e.medoids)
}

// Assignment returns a copy of the current point-to-cluster mapping.
func (e *Engine) Assignment() []int {
	return slices.Clone(e.assignment)
}

// CacheStats reports similarity cache usage.
func (e *Engine) CacheStats() CacheStats {
	s := e.cache.Stats()
	return CacheStats{Hits: s.Hits, Misses: s.Misses, Entries: s.Entries}
}

// Run clusters the dataset.
//
// Medoids start at indices 0..k-1. Each iteration assigns all points and then
// recomputes every non-empty cluster's medoid; the loop stops when no medoid
// changes. Clusters left empty by a pass are handled according to the
// EmptyClusterPolicy.
//
// If the iteration cap configured with WithMaxIterations is reached first,
// the last complete clustering is returned with Converged set to false.
// Any similarity error aborts the run and no result is returned.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	iterations, converged, err := e.run(ctx)
	elapsed := time.Since(start)

	e.opts.metricsCollector.RecordRun(iterations, converged, elapsed, err)
	e.opts.logger.WithK(e.k).LogRun(ctx, iterations, converged, elapsed, err)

	if err != nil {
		return nil, err
	}

	return &Result{
		Clusters:   newPartition(e.clusters),
		Medoids:    e.Medoids(),
		Assignment: e.Assignment(),
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

func (e *Engine) resetMedoids() {
	for c := range e.medoids {
		e.medoids[c] = c
	}
}

func (e *Engine) run(ctx context.Context) (int, bool, error) {
	e.resetMedoids()

	maxIter := e.opts.maxIterations
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return iter - 1, false, err
		}

		iterStart := time.Now()
		changed, err := e.step(ctx)
		if err != nil {
			return iter, false, err
		}
		e.opts.metricsCollector.RecordIteration(changed, time.Since(iterStart))
		e.opts.logger.LogIteration(ctx, iter, changed)

		if changed == 0 {
			return iter, true, nil
		}
		if maxIter > 0 && iter >= maxIter {
			// The medoids moved in this pass; reassign so the returned
			// partition is consistent with them.
			if err := e.assign(); err != nil {
				return iter, false, err
			}
			return iter, false, nil
		}
	}
}

// step runs one assignment pass followed by medoid recomputation and returns
// the number of medoids that changed.
func (e *Engine) step(ctx context.Context) (int, error) {
	if err := e.assign(); err != nil {
		return 0, err
	}

	changed := 0
	var empty []int
	for c, cluster := range e.clusters {
		if cluster.IsEmpty() {
			empty = append(empty, c)
			continue
		}

		m, _, err := kmedoids.SelectMedoid(kmedoids.Members(cluster), e.similarity)
		if err != nil {
			return 0, err
		}
		if m != e.medoids[c] {
			e.medoids[c] = m
			changed++
		}
	}

	for _, c := range empty {
		m, err := e.emptyClusterMedoid(c)
		if err != nil {
			return 0, err
		}
		e.opts.logger.LogEmptyCluster(ctx, c, e.medoids[c], m)
		if m != e.medoids[c] {
			e.medoids[c] = m
			changed++
		}
	}

	return changed, nil
}

// emptyClusterMedoid returns the medoid cluster c continues with after an
// assignment pass in which no point selected it.
func (e *Engine) emptyClusterMedoid(c int) (int, error) {
	if e.opts.emptyPolicy == KeepMedoid {
		return e.medoids[c], nil
	}

	taken := make(map[int]struct{}, len(e.medoids))
	for other, m := range e.medoids {
		if other != c {
			taken[m] = struct{}{}
		}
	}
	skip := func(p int) bool {
		_, ok := taken[p]
		return ok
	}

	p, ok, err := kmedoids.Farthest(e.assignment, e.medoids, skip, e.similarity)
	if err != nil {
		return 0, err
	}
	if !ok {
		return e.medoids[c], nil
	}
	return p, nil
}
