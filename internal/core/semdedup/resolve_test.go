package semdedup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unit2D(deg float64) []float32 {
	rad := deg * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

func TestResolveClusterUpperTriangle(t *testing.T) {
	// Vectors at 0, 18 and 36 degrees: adjacent sims ~0.951, the outer
	// pair ~0.809. With eps 0.9 only the adjacent pairs qualify.
	vecs := [][]float32{unit2D(0), unit2D(18), unit2D(36)}

	pairs := resolveCluster(vecs, 0.9)
	assert.Equal(t, []dupePair{{head: 0, tail: 1}, {head: 1, tail: 2}}, pairs)
}

func TestResolveClusterStrictThreshold(t *testing.T) {
	// Identical vectors have similarity 1.0, which is not strictly above
	// an epsilon of 1.0 minus nothing: equal-to-threshold is not a match.
	vecs := [][]float32{{1, 0}, {1, 0}}

	assert.Empty(t, resolveCluster(vecs, 1.0))
	assert.Len(t, resolveCluster(vecs, 0.9999), 1)
}

func TestResolveClusterTinyClusters(t *testing.T) {
	assert.Empty(t, resolveCluster(nil, 0.9))
	assert.Empty(t, resolveCluster([][]float32{{1, 0}}, 0.9))
}

func TestGroupPairsTransitiveChain(t *testing.T) {
	// 1 is a duplicate of 0, and 2 of 1: the chain collapses into head 0
	// rather than making 1 both a head and a duplicate.
	groups, removed := groupPairs([]dupePair{{0, 1}, {1, 2}})

	assert.Equal(t, map[int][]int{0: {1, 2}}, groups)
	assert.Equal(t, []int{1, 2}, removed)
}

func TestGroupPairsNoDoubleCounting(t *testing.T) {
	// 2 matches both 0 and 1; it is removed once, under the earliest head.
	groups, removed := groupPairs([]dupePair{{0, 2}, {1, 2}})

	assert.Equal(t, map[int][]int{0: {2}}, groups)
	assert.Equal(t, []int{2}, removed)
}

func TestGroupPairsIndependentGroups(t *testing.T) {
	groups, removed := groupPairs([]dupePair{{0, 1}, {2, 3}})

	assert.Equal(t, map[int][]int{0: {1}, 2: {3}}, groups)
	assert.Equal(t, []int{1, 3}, removed)
}

func TestGroupPairsEmpty(t *testing.T) {
	groups, removed := groupPairs(nil)
	assert.Empty(t, groups)
	assert.Empty(t, removed)
}
