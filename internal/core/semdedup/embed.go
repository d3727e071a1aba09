package semdedup

import (
	"context"
	"fmt"

	"github.com/mathforge/curator/internal/core/common"
)

// Embedder is the backend contract: one vector per input text, in input
// order, identical output regardless of how the caller batches.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// maxEmbedRunes bounds the text sent to the backend. Backends enforce token
// limits of their own; the curation policy is truncate, never fail silently.
const maxEmbedRunes = 8192

// embedCorpus embeds every text in batches of batchSize and L2-normalizes
// the result. The batch split is a throughput knob only.
func embedCorpus(ctx context.Context, e Embedder, texts []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	vecs := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := make([]string, 0, end-start)
		for _, t := range texts[start:end] {
			batch = append(batch, common.TruncateRunes(t, maxEmbedRunes))
		}

		out, err := e.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, &EmbeddingError{Err: err}
		}
		vecs = append(vecs, out...)
	}

	if len(vecs) != len(texts) {
		return nil, &EmbeddingError{Err: fmt.Errorf("backend returned %d vectors for %d texts", len(vecs), len(texts))}
	}

	dim := 0
	for i, v := range vecs {
		if i == 0 {
			dim = len(v)
		}
		if len(v) != dim || len(v) == 0 {
			return nil, &DimensionMismatchError{Index: i, Want: dim, Got: len(v)}
		}
		normalize(v)
	}

	return vecs, nil
}
