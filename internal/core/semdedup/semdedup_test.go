package semdedup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathforge/curator/internal/core/model"
)

// stubEmbedder returns canned vectors keyed by text, so batching cannot
// change the output.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	batches int
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", t)
		}
		out[i] = append([]float32(nil), v...)
	}
	return out, nil
}

// fiveRecordCorpus builds one tight bundle around the x axis: p1 on the
// axis, p2/p4 tilted ±0.1 off it (pairwise sims with p1 around 0.995), and
// p3/p5 far out at ±53 degrees (sims with p1 of 0.6).
func fiveRecordCorpus() ([]model.Record, *stubEmbedder) {
	records := []model.Record{
		{ID: "p1", Text: "t1"},
		{ID: "p2", Text: "t2"},
		{ID: "p3", Text: "t3"},
		{ID: "p4", Text: "t4"},
		{ID: "p5", Text: "t5"},
	}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"t1": {1, 0, 0},
		"t2": {1, 0.1, 0},
		"t3": {0.6, 0.8, 0},
		"t4": {1, -0.1, 0},
		"t5": {0.6, -0.8, 0},
	}}
	return records, emb
}

func scenarioParams() Params {
	p := DefaultParams()
	p.ClusterCount = 1
	p.Epsilon = 0.95
	return p
}

func TestRunKeepCentral(t *testing.T) {
	// The most central record (p1) becomes the head; p2 and p4 exceed the
	// threshold against it and are removed, transitively merged even though
	// p2 and p4 also exceed the threshold against each other.
	records, emb := fiveRecordCorpus()
	d := NewDeduplicator(emb)

	res, err := d.Run(context.Background(), records, scenarioParams())
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"p1": {"p2", "p4"}}, res.Groups)
	assert.Equal(t, map[string]bool{"p2": true, "p4": true}, res.Removed)
}

func TestRunKeepPeripheral(t *testing.T) {
	// keep_central=false reverses the ranking, so the peripheral member of
	// the duplicate trio becomes the head. The removal count is unchanged.
	records, emb := fiveRecordCorpus()
	d := NewDeduplicator(emb)

	params := scenarioParams()
	params.KeepCentral = false

	res, err := d.Run(context.Background(), records, params)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"p2": {"p4", "p1"}}, res.Groups)
	assert.Len(t, res.Removed, 2)
	assert.True(t, res.Removed["p4"])
	assert.True(t, res.Removed["p1"])
}

func TestRunSingletonClusters(t *testing.T) {
	// Three well-separated records, one cluster each: no duplicates.
	records := []model.Record{
		{ID: "a", Text: "ta"},
		{ID: "b", Text: "tb"},
		{ID: "c", Text: "tc"},
	}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ta": {1, 0, 0},
		"tb": {0, 1, 0},
		"tc": {0, 0, 1},
	}}

	params := DefaultParams()
	params.ClusterCount = 3
	params.Epsilon = 0.9

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	require.NoError(t, err)

	assert.Empty(t, res.Removed)
	assert.Empty(t, res.Groups)
	assert.Len(t, res.Assignments, 3)
}

func TestRunTwoClusterUnion(t *testing.T) {
	// Two tight orthogonal bundles, each with an internal duplicate pair.
	// The aggregate must be the disjoint union of both clusters' results.
	records := []model.Record{
		{ID: "a1", Text: "ta1"},
		{ID: "a2", Text: "ta2"},
		{ID: "b1", Text: "tb1"},
		{ID: "b2", Text: "tb2"},
	}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ta1": {1, 0, 0},
		"ta2": {1, 0.05, 0},
		"tb1": {0, 1, 0},
		"tb2": {0, 1, 0.05},
	}}

	params := DefaultParams()
	params.ClusterCount = 2
	params.Epsilon = 0.99

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	require.Len(t, res.Removed, 2)

	// One of each pair is kept, the other removed; no id crosses bundles.
	for _, pair := range [][2]string{{"a1", "a2"}, {"b1", "b2"}} {
		kept, removed := pair[0], pair[1]
		if res.Removed[kept] {
			kept, removed = removed, kept
		}
		assert.True(t, res.Removed[removed])
		assert.False(t, res.Removed[kept])
		assert.Equal(t, []string{removed}, res.Groups[kept])
	}
}

func TestRunEmptyClusterSkipped(t *testing.T) {
	// Three coincident vectors with k=2: both centroids start identical, the
	// distance tie sends every record to cluster 0, and cluster 1 empties.
	// The run must complete, skip the empty cluster, and still dedup the
	// survivors.
	records := []model.Record{
		{ID: "a", Text: "ta"},
		{ID: "b", Text: "tb"},
		{ID: "c", Text: "tc"},
	}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ta": {1, 0, 0},
		"tb": {1, 0, 0},
		"tc": {1, 0, 0},
	}}

	params := DefaultParams()
	params.ClusterCount = 2
	params.Epsilon = 0.99

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	require.NoError(t, err)

	for id, a := range res.Assignments {
		assert.Equal(t, 0, a.Cluster, "record %s", id)
	}
	assert.Equal(t, map[string][]string{"a": {"b", "c"}}, res.Groups)
	assert.Equal(t, map[string]bool{"b": true, "c": true}, res.Removed)
}

func TestRunNearUnityThresholdRemovesNothing(t *testing.T) {
	records, emb := fiveRecordCorpus()

	params := scenarioParams()
	params.Epsilon = 0.9999

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	require.NoError(t, err)

	assert.Empty(t, res.Removed)
	assert.Empty(t, res.Groups)
}

func TestRunDeterministic(t *testing.T) {
	records, emb := fiveRecordCorpus()
	d := NewDeduplicator(emb)

	first, err := d.Run(context.Background(), records, scenarioParams())
	require.NoError(t, err)
	second, err := d.Run(context.Background(), records, scenarioParams())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunBatchSizeInvariance(t *testing.T) {
	baseline, _ := func() (*model.DedupResult, error) {
		records, emb := fiveRecordCorpus()
		return NewDeduplicator(emb).Run(context.Background(), records, scenarioParams())
	}()

	for _, batch := range []int{1, 2, 3, 100} {
		records, emb := fiveRecordCorpus()
		params := scenarioParams()
		params.BatchSize = batch

		res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
		require.NoError(t, err)
		assert.Equal(t, baseline, res, "batch size %d changed the output", batch)
	}
}

func TestRunPartitionInvariant(t *testing.T) {
	records, emb := fiveRecordCorpus()

	params := scenarioParams()
	params.ClusterCount = 2

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	require.NoError(t, err)

	require.Len(t, res.Assignments, len(records))
	for id, a := range res.Assignments {
		assert.GreaterOrEqual(t, a.Cluster, 0, "record %s", id)
		assert.Less(t, a.Cluster, params.ClusterCount, "record %s", id)
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	records, emb := fiveRecordCorpus()
	d := NewDeduplicator(emb)

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"cluster count above corpus size", func(p *Params) { p.ClusterCount = 10 }},
		{"negative cluster count", func(p *Params) { p.ClusterCount = -1 }},
		{"epsilon zero", func(p *Params) { p.Epsilon = 0 }},
		{"epsilon one", func(p *Params) { p.Epsilon = 1 }},
		{"epsilon above one", func(p *Params) { p.Epsilon = 1.2 }},
		{"unsupported metric", func(p *Params) { p.Metric = "l2" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := scenarioParams()
			tc.mutate(&params)

			_, err := d.Run(context.Background(), records, params)
			var cfgErr *ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}

	_, err := d.Run(context.Background(), nil, scenarioParams())
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunEmbeddingErrorAborts(t *testing.T) {
	records, _ := fiveRecordCorpus()
	emb := &stubEmbedder{err: errors.New("backend unavailable")}

	res, err := NewDeduplicator(emb).Run(context.Background(), records, scenarioParams())
	assert.Nil(t, res)

	var embErr *EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.ErrorContains(t, err, "backend unavailable")
}

func TestRunDimensionMismatch(t *testing.T) {
	records := []model.Record{
		{ID: "a", Text: "ta"},
		{ID: "b", Text: "tb"},
	}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ta": {1, 0, 0},
		"tb": {0, 1},
	}}

	params := DefaultParams()
	params.ClusterCount = 1
	params.Epsilon = 0.95

	res, err := NewDeduplicator(emb).Run(context.Background(), records, params)
	assert.Nil(t, res)

	var dimErr *DimensionMismatchError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)
}

func TestRunHeadNeverRemoved(t *testing.T) {
	records, emb := fiveRecordCorpus()

	res, err := NewDeduplicator(emb).Run(context.Background(), records, scenarioParams())
	require.NoError(t, err)

	for head, members := range res.Groups {
		assert.False(t, res.Removed[head], "head %s marked removed", head)
		assert.NotContains(t, members, head)
	}
}
