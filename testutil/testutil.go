package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformRangeVectors generates random vectors with values in range [-1, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformRangeVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()*2 - 1
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
// Uses Gaussian distribution for uniform distribution on the sphere.
func (r *RNG) UnitVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		r.fillUnit(vec)
		vectors[i] = vec
	}

	return vectors
}

func (r *RNG) fillUnit(vec []float32) {
	var norm float64
	for j := range vec {
		v := r.rand.NormFloat64()
		vec[j] = float32(v)
		norm += v * v
	}

	if norm == 0 {
		norm = 1
	}

	inv := float32(1.0 / math.Sqrt(norm))
	for j := range vec {
		vec[j] *= inv
	}
}

// ClusteredVectors generates vectors around random unit-vector centroids and
// returns them with the index of the centroid each one was drawn from.
// Point i belongs to centroid i % clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float32) ([][]float32, []int) {
	centroids := r.UnitVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dim)
	vectors := make([][]float32, num)
	labels := make([]int, num)

	for i := range num {
		c := i % clusters
		vec := data[i*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = centroids[c][j] + float32(r.rand.NormFloat64())*spread
		}
		vectors[i] = vec
		labels[i] = c
	}

	return vectors, labels
}

// Reference is the outcome of ReferenceClustering.
type Reference struct {
	Medoids    []int
	Assignment []int
	Iterations int
	Converged  bool
}

// ReferenceClustering runs cosine k-medoids without any caching, recomputing
// every similarity from the raw vectors. Empty clusters are reseeded with the
// point least similar to its own medoid. It panics on vectors of unequal length.
//
// maxIter of 0 means no cap.
func ReferenceClustering(data [][]float32, k, maxIter int) Reference {
	n := len(data)
	medoids := make([]int, k)
	for c := range medoids {
		medoids[c] = c
	}
	assignment := make([]int, n)

	assign := func() [][]int {
		clusters := make([][]int, k)
		for i := range n {
			best, bestSim := 0, cosine(data[i], data[medoids[0]])
			for c := 1; c < k; c++ {
				if s := cosine(data[i], data[medoids[c]]); s > bestSim {
					best, bestSim = c, s
				}
			}
			assignment[i] = best
			clusters[best] = append(clusters[best], i)
		}
		return clusters
	}

	for iter := 1; ; iter++ {
		clusters := assign()

		changed := false
		var empty []int
		for c, members := range clusters {
			if len(members) == 0 {
				empty = append(empty, c)
				continue
			}
			best, bestSum := -1, math.Inf(-1)
			for _, m := range members {
				var sum float64
				for _, p := range members {
					sum += cosine(data[p], data[m])
				}
				if sum > bestSum {
					best, bestSum = m, sum
				}
			}
			if best != medoids[c] {
				medoids[c] = best
				changed = true
			}
		}

		for _, c := range empty {
			best, bestSim := -1, math.Inf(1)
			for p := range n {
				if isOtherMedoid(medoids, c, p) {
					continue
				}
				if s := cosine(data[p], data[medoids[assignment[p]]]); s < bestSim {
					best, bestSim = p, s
				}
			}
			if best >= 0 && best != medoids[c] {
				medoids[c] = best
				changed = true
			}
		}

		if !changed {
			return Reference{Medoids: medoids, Assignment: assignment, Iterations: iter, Converged: true}
		}
		if maxIter > 0 && iter >= maxIter {
			assign()
			return Reference{Medoids: medoids, Assignment: assignment, Iterations: iter, Converged: false}
		}
	}
}

func isOtherMedoid(medoids []int, c, p int) bool {
	for other, m := range medoids {
		if other != c && m == p {
			return true
		}
	}
	return false
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		panic("testutil: vectors of unequal length")
	}
	var ab, aa, bb float64
	for i := range a {
		ab += float64(a[i]) * float64(b[i])
		aa += float64(a[i]) * float64(a[i])
		bb += float64(b[i]) * float64(b[i])
	}
	d := math.Sqrt(aa * bb)
	if d == 0 {
		return 0
	}
	return ab / d
}
