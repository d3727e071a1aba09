package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver records every executed query so tests can assert on the
// provenance writes.
type MockDriver struct {
	mu      sync.Mutex
	Queries []ExecutedQuery
	Err     error
}

type ExecutedQuery struct {
	Query  string
	Params map[string]interface{}
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	m.Queries = append(m.Queries, ExecutedQuery{Query: query, Params: params})
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }

func (m *MockDriver) Close(ctx context.Context) error { return nil }

func (m *MockDriver) executed(query string) []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExecutedQuery
	for _, q := range m.Queries {
		if q.Query == query {
			out = append(out, q)
		}
	}
	return out
}

// MockEmbedder serves fixed vectors keyed by text.
type MockEmbedder struct {
	Vectors map[string][]float32
	Err     error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := m.Vectors[t]
		if !ok {
			return nil, fmt.Errorf("no fixture vector for %q", t)
		}
		out[i] = append([]float32(nil), v...)
	}
	return out, nil
}

// MockLLM replays queued responses in order.
type MockLLM struct {
	Responses []string
	Calls     int
	Err       error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Calls >= len(m.Responses) {
		return "", fmt.Errorf("mock LLM exhausted after %d calls", m.Calls)
	}
	resp := m.Responses[m.Calls]
	m.Calls++
	return resp, nil
}
