package semdedup

import (
	"math"
	"math/rand"
)

type kmeansResult struct {
	centroids [][]float32
	assign    []int
	dist      []float64
}

// runKMeans partitions vecs into k clusters by iterative relocation with a
// seeded initialization, so repeated runs over the same corpus are
// identical. Assignment is by euclidean distance unless spherical is set,
// in which case centroids stay unit-normalized and cosine distance is used.
// Exact distance ties go to the lowest cluster index.
func runKMeans(vecs [][]float32, k, iterations int, seed int64, spherical bool) kmeansResult {
	n := len(vecs)
	dim := len(vecs[0])

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	centroids := make([][]float32, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float32(nil), vecs[perm[c]]...)
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, v := range vecs {
			best := nearestCentroid(v, centroids, spherical)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		recomputeCentroids(vecs, assign, centroids, dim, spherical)
	}

	// Sync assignments and distances with the final centroids.
	dist := make([]float64, n)
	for i, v := range vecs {
		assign[i] = nearestCentroid(v, centroids, spherical)
		dist[i] = centroidDistance(v, centroids[assign[i]], spherical)
	}

	return kmeansResult{centroids: centroids, assign: assign, dist: dist}
}

func nearestCentroid(v []float32, centroids [][]float32, spherical bool) int {
	best := 0
	bestDist := math.Inf(1)
	for c, cent := range centroids {
		d := comparableDistance(v, cent, spherical)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// comparableDistance is cheap to compute and order-equivalent to the real
// distance (squared euclidean, or cosine distance for spherical).
func comparableDistance(v, cent []float32, spherical bool) float64 {
	if spherical {
		return 1 - dot(v, cent)
	}
	return sqEuclidean(v, cent)
}

func centroidDistance(v, cent []float32, spherical bool) float64 {
	if spherical {
		return 1 - dot(v, cent)
	}
	return math.Sqrt(sqEuclidean(v, cent))
}

// recomputeCentroids replaces each centroid with the mean of its members.
// Clusters that lost every member keep their previous centroid.
func recomputeCentroids(vecs [][]float32, assign []int, centroids [][]float32, dim int, spherical bool) {
	k := len(centroids)
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}

	for i, v := range vecs {
		c := assign[i]
		counts[c]++
		for j := range v {
			sums[c][j] += float64(v[j])
		}
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := 0; j < dim; j++ {
			centroids[c][j] = float32(sums[c][j] / float64(counts[c]))
		}
		if spherical {
			normalize(centroids[c])
		}
	}
}
