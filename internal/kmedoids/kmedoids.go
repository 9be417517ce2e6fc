package kmedoids

import (
	"errors"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrEmptyCluster is returned by SelectMedoid for a cluster without members.
var ErrEmptyCluster = errors.New("cluster has no members")

// SimilarityFunc returns the similarity between points i and j.
// Higher is more similar.
type SimilarityFunc func(i, j int) (float64, error)

// Assign maps every point 0..n-1 to the index of its most similar medoid and
// returns the resulting cluster memberships, one bitmap per medoid.
//
// assignment must have length n; it is overwritten. Ties go to the lowest
// cluster index. Clusters nobody selects are returned as empty bitmaps.
func Assign(n int, medoids []int, sim SimilarityFunc, assignment []int) ([]*roaring.Bitmap, error) {
	k := len(medoids)
	for i := 0; i < n; i++ {
		best := 0
		bestSim, err := sim(i, medoids[0])
		if err != nil {
			return nil, err
		}

		for c := 1; c < k; c++ {
			s, err := sim(i, medoids[c])
			if err != nil {
				return nil, err
			}
			if s > bestSim {
				best = c
				bestSim = s
			}
		}

		assignment[i] = best
	}

	clusters := make([]*roaring.Bitmap, k)
	for c := range clusters {
		clusters[c] = roaring.New()
	}
	for i := 0; i < n; i++ {
		clusters[assignment[i]].Add(uint32(i))
	}

	return clusters, nil
}

// Members returns the points of a cluster bitmap in ascending order.
func Members(b *roaring.Bitmap) []int {
	members := make([]int, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		members = append(members, int(it.Next()))
	}
	return members
}

// Score returns the summed similarity of candidate to every member,
// including the candidate itself.
func Score(members []int, candidate int, sim SimilarityFunc) (float64, error) {
	var sum float64
	for _, p := range members {
		s, err := sim(p, candidate)
		if err != nil {
			return 0, err
		}
		sum += s
	}
	return sum, nil
}

// SelectMedoid returns the member with the highest representativeness score
// sqrt(Score(members, m)) together with that score.
//
// Candidates are compared on the raw sum, so the winner is well defined even
// when sums are negative (the reported score is then NaN). The first member
// reaching the maximum wins.
func SelectMedoid(members []int, sim SimilarityFunc) (int, float64, error) {
	if len(members) == 0 {
		return -1, 0, ErrEmptyCluster
	}

	best := members[0]
	bestSum, err := Score(members, best, sim)
	if err != nil {
		return -1, 0, err
	}

	for _, m := range members[1:] {
		sum, err := Score(members, m, sim)
		if err != nil {
			return -1, 0, err
		}
		if sum > bestSum {
			best = m
			bestSum = sum
		}
	}

	return best, math.Sqrt(bestSum), nil
}

// Farthest returns the point whose similarity to the medoid of its assigned
// cluster is lowest, ignoring points for which skip reports true. Ties go to
// the lowest point index. ok is false when every point is skipped.
func Farthest(assignment, medoids []int, skip func(p int) bool, sim SimilarityFunc) (int, bool, error) {
	best := -1
	bestSim := math.Inf(1)
	for p, c := range assignment {
		if skip(p) {
			continue
		}
		s, err := sim(p, medoids[c])
		if err != nil {
			return -1, false, err
		}
		if s < bestSim {
			best = p
			bestSim = s
		}
	}
	return best, best >= 0, nil
}
