package medoids

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/medoids/internal/kmedoids"
)

// Partition maps a cluster index to the ascending indices of its members.
// Every point appears in exactly one cluster; a cluster may be empty.
type Partition [][]int

func newPartition(clusters []*roaring.Bitmap) Partition {
	p := make(Partition, len(clusters))
	for c, b := range clusters {
		p[c] = kmedoids.Members(b)
	}
	return p
}

// Sizes returns the number of members per cluster.
func (p Partition) Sizes() []int {
	sizes := make([]int, len(p))
	for c, members := range p {
		sizes[c] = len(members)
	}
	return sizes
}

// Result is the outcome of Engine.Run.
type Result struct {
	// Clusters holds the members of each cluster.
	Clusters Partition `json:"clusters"`
	// Medoids holds the representative point index of each cluster.
	Medoids []int `json:"medoids"`
	// Assignment maps each point index to its cluster index.
	Assignment []int `json:"assignment"`
	// Iterations is the number of assignment passes performed.
	Iterations int `json:"iterations"`
	// Converged is false when the iteration cap stopped the loop while
	// medoids were still moving.
	Converged bool `json:"converged"`
}

// CacheStats reports similarity cache usage.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}
