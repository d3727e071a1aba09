// Package semdedup removes semantic near-duplicates from a text corpus.
// Records are embedded, clustered with k-means, ranked within each cluster
// by centroid centrality, and greedily deduplicated pairwise above a cosine
// similarity threshold. The output is a corpus-wide removal set plus
// head-keyed duplicate groups for provenance.
package semdedup

import (
	"context"
	"fmt"
	"log"

	"github.com/mathforge/curator/internal/core/model"
)

// MetricCosine is the only supported similarity metric.
const MetricCosine = "cosine"

type Params struct {
	// ClusterCount is k for kmeans. Zero means one cluster per ~100
	// records, the ratio used for corpus-level dedup runs.
	ClusterCount int

	// Epsilon is the similarity threshold: pairs strictly above it are
	// duplicates. Must be inside (0, 1).
	Epsilon float64

	// KeepCentral keeps the member nearest the centroid as the group head;
	// false prefers peripheral members as heads.
	KeepCentral bool

	// Metric names the pairwise similarity metric. Empty means cosine.
	Metric string

	// Iterations and Seed control kmeans. Zero values take the defaults
	// (20 iterations, seed 42).
	Iterations int
	Seed       int64

	// Spherical switches kmeans assignment to cosine distance.
	Spherical bool

	// BatchSize is the embedding batch size, a throughput knob with no
	// effect on output.
	BatchSize int
}

// DefaultParams returns the parameters the original corpus runs used.
func DefaultParams() Params {
	return Params{
		Epsilon:     0.99,
		KeepCentral: true,
		Metric:      MetricCosine,
		Iterations:  20,
		Seed:        42,
		BatchSize:   100,
	}
}

func (p *Params) validate(n int) error {
	if n == 0 {
		return &ConfigurationError{Reason: "empty corpus"}
	}
	if p.ClusterCount < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("cluster count %d must be positive", p.ClusterCount)}
	}
	if p.ClusterCount == 0 {
		p.ClusterCount = n / 100
		if p.ClusterCount < 1 {
			p.ClusterCount = 1
		}
	}
	if p.ClusterCount > n {
		return &ConfigurationError{Reason: fmt.Sprintf("cluster count %d exceeds corpus size %d", p.ClusterCount, n)}
	}
	if p.Epsilon <= 0 || p.Epsilon >= 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("epsilon %v outside (0, 1)", p.Epsilon)}
	}
	if p.Metric == "" {
		p.Metric = MetricCosine
	}
	if p.Metric != MetricCosine {
		return &ConfigurationError{Reason: fmt.Sprintf("unsupported similarity metric %q", p.Metric)}
	}
	if p.Iterations <= 0 {
		p.Iterations = 20
	}
	if p.Seed == 0 {
		p.Seed = 42
	}
	return nil
}

// Deduplicator runs the full pipeline against one embedding backend.
type Deduplicator struct {
	Embedder Embedder
}

func NewDeduplicator(e Embedder) *Deduplicator {
	return &Deduplicator{Embedder: e}
}

// Run deduplicates the corpus. Fatal errors abort the whole run with no
// partial output; given the same records, seed, and parameters the result
// is identical across runs.
func (d *Deduplicator) Run(ctx context.Context, records []model.Record, params Params) (*model.DedupResult, error) {
	if err := params.validate(len(records)); err != nil {
		return nil, err
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	vecs, err := embedCorpus(ctx, d.Embedder, texts, params.BatchSize)
	if err != nil {
		return nil, err
	}

	km := runKMeans(vecs, params.ClusterCount, params.Iterations, params.Seed, params.Spherical)

	result := &model.DedupResult{
		Removed:     make(map[string]bool),
		Groups:      make(map[string][]string),
		Assignments: make(map[string]model.CentroidAssignment, len(records)),
	}
	for i, r := range records {
		result.Assignments[r.ID] = model.CentroidAssignment{
			Cluster:  km.assign[i],
			Distance: km.dist[i],
		}
	}

	// Members per cluster, in original corpus order.
	clusters := make([][]int, params.ClusterCount)
	for i, c := range km.assign {
		clusters[c] = append(clusters[c], i)
	}

	for c, members := range clusters {
		if len(members) == 0 {
			log.Printf("cluster %d is empty, skipping", c)
			continue
		}
		if len(members) <= 1 {
			continue
		}

		ranked := rankMembers(members, vecs, km.centroids[c], params.KeepCentral)
		rankedVecs := make([][]float32, len(ranked))
		for pos, idx := range ranked {
			rankedVecs[pos] = vecs[idx]
		}

		pairs := resolveCluster(rankedVecs, params.Epsilon)
		groups, removed := groupPairs(pairs)

		// Translate ranked positions back to record ids. Clusters are
		// disjoint, so the merge is a plain union.
		for headPos, tails := range groups {
			headID := records[ranked[headPos]].ID
			for _, tailPos := range tails {
				result.Groups[headID] = append(result.Groups[headID], records[ranked[tailPos]].ID)
			}
		}
		for _, pos := range removed {
			result.Removed[records[ranked[pos]].ID] = true
		}
	}

	return result, nil
}
