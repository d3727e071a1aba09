package semdedup

import "sort"

// dupePair marks the ranked positions of one duplicate discovery: head is
// the earlier-ranked member (kept), tail the later-ranked one (removed).
type dupePair struct {
	head int
	tail int
}

// resolveCluster computes pairwise cosine similarity over a cluster's
// members in ranked order and returns every upper-triangle pair whose
// similarity strictly exceeds eps. Pairs come out in ascending head order,
// ties by ascending tail. Clusters of size <= 1 produce nothing.
//
// The full matrix is O(n^2) per cluster; cluster sizes are kept bounded by
// choosing the cluster count proportional to corpus size.
func resolveCluster(vecs [][]float32, eps float64) []dupePair {
	var pairs []dupePair
	for i := 0; i < len(vecs); i++ {
		for j := i + 1; j < len(vecs); j++ {
			if dot(vecs[i], vecs[j]) > eps {
				pairs = append(pairs, dupePair{head: i, tail: j})
			}
		}
	}
	return pairs
}

// groupPairs folds raw duplicate pairs into head-keyed groups. When a pair's
// head was itself already marked a duplicate, the pair is re-keyed under
// that record's own head, so transitive chains collapse into the earliest
// head and no position ends up both head and duplicate. Returns the groups
// and the sorted set of removed positions.
func groupPairs(pairs []dupePair) (map[int][]int, []int) {
	groups := make(map[int][]int)
	owner := make(map[int]int) // duplicate position -> head position

	for _, p := range pairs {
		head := p.head
		for {
			h, dup := owner[head]
			if !dup {
				break
			}
			head = h
		}
		if _, gone := owner[p.tail]; gone || p.tail == head {
			continue
		}
		groups[head] = append(groups[head], p.tail)
		owner[p.tail] = head
	}

	removed := make([]int, 0, len(owner))
	for pos := range owner {
		removed = append(removed, pos)
	}
	sort.Ints(removed)
	return groups, removed
}
