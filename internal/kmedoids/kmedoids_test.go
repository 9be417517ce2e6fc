package kmedoids

import (
	"errors"
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matrix returns a SimilarityFunc backed by a dense symmetric matrix.
func matrix(m [][]float64) SimilarityFunc {
	return func(i, j int) (float64, error) {
		return m[i][j], nil
	}
}

func TestAssign(t *testing.T) {
	// points 0,1 close together; 2,3 close together
	sim := matrix([][]float64{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	})

	assignment := make([]int, 4)
	clusters, err := Assign(4, []int{0, 2}, sim, assignment)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1, 1}, assignment)
	require.Len(t, clusters, 2)
	assert.Equal(t, []int{0, 1}, Members(clusters[0]))
	assert.Equal(t, []int{2, 3}, Members(clusters[1]))
}

func TestAssign_TieGoesToLowestCluster(t *testing.T) {
	sim := matrix([][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	assignment := make([]int, 3)
	clusters, err := Assign(3, []int{0, 1}, sim, assignment)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0}, assignment)
	assert.Equal(t, []int{0, 1, 2}, Members(clusters[0]))
	assert.True(t, clusters[1].IsEmpty())
}

func TestAssign_Error(t *testing.T) {
	boom := errors.New("boom")
	sim := func(i, j int) (float64, error) {
		if i == 2 {
			return 0, boom
		}
		return 1, nil
	}

	_, err := Assign(3, []int{0}, sim, make([]int, 3))
	assert.ErrorIs(t, err, boom)
}

func TestMembers(t *testing.T) {
	b := roaring.BitmapOf(9, 1, 4)
	assert.Equal(t, []int{1, 4, 9}, Members(b))
	assert.Empty(t, Members(roaring.New()))
}

func TestScore(t *testing.T) {
	sim := matrix([][]float64{
		{1, 0.5, 0.25},
		{0.5, 1, 0},
		{0.25, 0, 1},
	})

	sum, err := Score([]int{0, 1, 2}, 0, sim)
	require.NoError(t, err)
	assert.InDelta(t, 1.75, sum, 1e-12)
}

func TestSelectMedoid(t *testing.T) {
	sim := matrix([][]float64{
		{1, 0.5, 0.25},
		{0.5, 1, 0.75},
		{0.25, 0.75, 1},
	})

	m, score, err := SelectMedoid([]int{0, 1, 2}, sim)
	require.NoError(t, err)
	assert.Equal(t, 1, m)
	assert.InDelta(t, math.Sqrt(2.25), score, 1e-12)
}

func TestSelectMedoid_FirstMaximumWins(t *testing.T) {
	sim := matrix([][]float64{
		{1, 1},
		{1, 1},
	})

	m, score, err := SelectMedoid([]int{1, 0}, sim)
	require.NoError(t, err)
	assert.Equal(t, 1, m)
	assert.InDelta(t, math.Sqrt2, score, 1e-12)

	m, _, err = SelectMedoid([]int{0, 1}, sim)
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestSelectMedoid_NegativeSums(t *testing.T) {
	sim := matrix([][]float64{
		{1, -1, -1},
		{-1, 1, -0.5},
		{-1, -0.5, 1},
	})

	// sums: 0 -> -1, 1 -> -0.5, 2 -> -0.5
	m, score, err := SelectMedoid([]int{0, 1, 2}, sim)
	require.NoError(t, err)
	assert.Equal(t, 1, m)
	assert.True(t, math.IsNaN(score))
}

func TestSelectMedoid_Empty(t *testing.T) {
	_, _, err := SelectMedoid(nil, matrix(nil))
	assert.ErrorIs(t, err, ErrEmptyCluster)
}

func TestFarthest(t *testing.T) {
	sim := matrix([][]float64{
		{1, 0.9, 0.1, 0.1},
		{0.9, 1, 0.2, 0.2},
		{0.1, 0.2, 1, 1},
		{0.1, 0.2, 1, 1},
	})
	assignment := []int{0, 0, 0, 0}
	medoids := []int{0, 1}

	skipMedoid := func(p int) bool { return p == 0 }

	p, ok, err := Farthest(assignment, medoids, skipMedoid, sim)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, p)
}

func TestFarthest_AllSkipped(t *testing.T) {
	sim := matrix([][]float64{{1}})
	p, ok, err := Farthest([]int{0}, []int{0}, func(int) bool { return true }, sim)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1, p)
}
