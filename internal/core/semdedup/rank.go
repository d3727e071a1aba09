package semdedup

import "sort"

// rankMembers orders a cluster's member corpus indices by cosine similarity
// to the centroid. keepCentral puts the most central members first, so they
// become duplicate-group heads and peripheral members become removal
// candidates; false reverses the order. Similarity ties keep original corpus
// order, which makes the ranking a total, deterministic order.
func rankMembers(members []int, vecs [][]float32, centroid []float32, keepCentral bool) []int {
	sims := make(map[int]float64, len(members))
	for _, m := range members {
		sims[m] = cosine(vecs[m], centroid)
	}

	ranked := append([]int(nil), members...)
	sort.SliceStable(ranked, func(a, b int) bool {
		sa, sb := sims[ranked[a]], sims[ranked[b]]
		if sa == sb {
			return ranked[a] < ranked[b]
		}
		if keepCentral {
			return sa > sb
		}
		return sa < sb
	})
	return ranked
}
