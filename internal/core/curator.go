package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mathforge/curator/internal/config"
	"github.com/mathforge/curator/internal/core/model"
	"github.com/mathforge/curator/internal/core/reformulate"
	"github.com/mathforge/curator/internal/core/semdedup"
	"github.com/mathforge/curator/internal/core/signals"
	"github.com/mathforge/curator/internal/driver"
	"github.com/mathforge/curator/internal/llm"
)

// Curator wires the curation pipeline together: signal annotation, LLM
// reformulation, and the semantic dedup core, with optional provenance
// persistence to a graph store.
type Curator struct {
	Driver       driver.GraphDriver
	LLM          llm.LLMClient
	Embedder     llm.EmbedderClient
	Reformulator *reformulate.Reformulator
	Annotator    *signals.Annotator
	Config       *config.Config
}

func NewCurator(graphDriver driver.GraphDriver, llmClient llm.LLMClient, embedderClient llm.EmbedderClient, cfg *config.Config) *Curator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Curator{
		Driver:       graphDriver,
		LLM:          llmClient,
		Embedder:     embedderClient,
		Reformulator: reformulate.NewReformulator(llmClient, cfg.Reformulation),
		Annotator:    signals.NewAnnotator(cfg.Concurrency.SignalWorkers),
		Config:       cfg,
	}
}

// DedupParams translates the config into core parameters. Unset fields fall
// back to the core defaults.
func (c *Curator) DedupParams() semdedup.Params {
	d := c.Config.Dedup
	p := semdedup.DefaultParams()
	p.ClusterCount = d.ClusterCount
	if d.Epsilon != 0 {
		p.Epsilon = d.Epsilon
	}
	p.KeepCentral = d.KeepCentral
	if d.Metric != "" {
		p.Metric = d.Metric
	}
	if d.Iterations != 0 {
		p.Iterations = d.Iterations
	}
	if d.Seed != 0 {
		p.Seed = d.Seed
	}
	p.Spherical = d.Spherical
	if d.BatchSize != 0 {
		p.BatchSize = d.BatchSize
	}
	return p
}

// Dedupe runs semantic deduplication over the records and, when a graph
// store is attached, persists the run's provenance. Returns the result and
// the run id.
func (c *Curator) Dedupe(ctx context.Context, records []model.Record) (*model.DedupResult, string, error) {
	if c.Embedder == nil {
		return nil, "", fmt.Errorf("configured LLM provider has no embedding support")
	}

	result, err := semdedup.NewDeduplicator(c.Embedder).Run(ctx, records, c.DedupParams())
	if err != nil {
		return nil, "", err
	}

	runID := uuid.New().String()
	if c.Driver != nil {
		if err := c.saveProvenance(ctx, runID, result); err != nil {
			// Provenance is an audit trail, not the output; a storage
			// failure does not invalidate the dedup result.
			log.Printf("failed to persist provenance for run %s: %v", runID, err)
		}
	}

	return result, runID, nil
}

// Annotate computes quality signals for every row.
func (c *Curator) Annotate(rows []model.ProblemRow) []model.Signals {
	return c.Annotator.AnnotateAll(rows)
}

// Reformulate rewrites one multiple-choice problem as open-ended.
func (c *Curator) Reformulate(ctx context.Context, problem, correctAnswer string) (*model.Reformulation, error) {
	return c.Reformulator.Reformulate(ctx, problem, correctAnswer)
}

func (c *Curator) saveProvenance(ctx context.Context, runID string, result *model.DedupResult) error {
	now := time.Now().UTC().Format(time.RFC3339)

	params := c.DedupParams()
	_, err := c.Driver.ExecuteQuery(ctx, driver.SaveRunQuery, map[string]interface{}{
		"id":            runID,
		"created_at":    now,
		"epsilon":       params.Epsilon,
		"cluster_count": params.ClusterCount,
		"keep_central":  params.KeepCentral,
	})
	if err != nil {
		return fmt.Errorf("failed to save run node: %w", err)
	}

	for id, a := range result.Assignments {
		_, err := c.Driver.ExecuteQuery(ctx, driver.SaveProblemNodeQuery, map[string]interface{}{
			"id":       id,
			"cluster":  a.Cluster,
			"distance": a.Distance,
			"removed":  result.Removed[id],
		})
		if err != nil {
			return fmt.Errorf("failed to save problem node %s: %w", id, err)
		}
	}

	for head, dups := range result.Groups {
		for _, dup := range dups {
			_, err := c.Driver.ExecuteQuery(ctx, driver.SaveDuplicateEdgeQuery, map[string]interface{}{
				"head_id":    head,
				"dup_id":     dup,
				"run_id":     runID,
				"created_at": now,
			})
			if err != nil {
				log.Printf("failed to link duplicate %s to head %s: %v", dup, head, err)
			}
		}
	}

	return nil
}
