package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mathforge/curator/internal/config"
	"github.com/mathforge/curator/internal/core"
	"github.com/mathforge/curator/internal/core/model"
	"github.com/mathforge/curator/internal/dataset"
	"github.com/mathforge/curator/internal/driver"
	"github.com/mathforge/curator/internal/llm"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.toml", "path to the TOML config")
		inputPath  = flag.String("input", "", "input dataset (JSONL)")
		outputPath = flag.String("output", "", "output dataset (JSONL)")
		mode       = flag.String("mode", "signals", "pipeline stage: signals, dedupe, or reformulate")
	)
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		log.Fatal("both -input and -output are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", *configPath, err)
		cfg = config.Default()
	}

	rows, err := dataset.LoadJSONL(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}
	log.Printf("Loaded %d rows from %s", len(rows), *inputPath)

	ctx := context.Background()
	switch *mode {
	case "signals":
		err = runSignals(cfg, rows, *outputPath)
	case "dedupe":
		err = runDedupe(ctx, cfg, rows, *outputPath)
	case "reformulate":
		err = runReformulate(ctx, cfg, rows, *outputPath)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("Failed to run %s: %v", *mode, err)
	}
}

// runSignals annotates every row in place and writes the full dataset back
// out with the signal columns added.
func runSignals(cfg *config.Config, rows []dataset.Row, outputPath string) error {
	curator := core.NewCurator(nil, nil, nil, cfg)

	problems := make([]model.ProblemRow, len(rows))
	for i, row := range rows {
		problems[i] = dataset.ToProblemRow(row)
	}

	annotations := curator.Annotate(problems)
	for i, row := range rows {
		if err := row.Set("signals", annotations[i]); err != nil {
			return err
		}
	}

	return dataset.WriteJSONL(outputPath, rows)
}

// runDedupe embeds and deduplicates the corpus, then writes only the kept
// rows. Provenance lands in the graph store when one is configured.
func runDedupe(ctx context.Context, cfg *config.Config, rows []dataset.Row, outputPath string) error {
	_, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	var graphDriver driver.GraphDriver
	if cfg.Graph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
		if err != nil {
			return fmt.Errorf("failed to connect to graph store: %w", err)
		}
		defer d.Close(ctx)
		if err := d.BuildIndices(ctx); err != nil {
			log.Printf("Warning: failed to build indices: %v", err)
		}
		graphDriver = d
	}

	records, err := dataset.ToRecords(rows, cfg.Dataset)
	if err != nil {
		return err
	}

	curator := core.NewCurator(graphDriver, nil, embedder, cfg)
	result, runID, err := curator.Dedupe(ctx, records)
	if err != nil {
		return err
	}

	kept := make([]dataset.Row, 0, len(rows))
	for i, row := range rows {
		if !result.Removed[records[i].ID] {
			kept = append(kept, row)
		}
	}

	log.Printf("Run %s: removed %d of %d rows across %d duplicate groups",
		runID, len(rows)-len(kept), len(rows), len(result.Groups))
	return dataset.WriteJSONL(outputPath, kept)
}

// runReformulate rewrites each multiple-choice problem via the two-pass LLM
// pipeline, appending one result line per row so an interrupted run resumes
// where it stopped.
func runReformulate(ctx context.Context, cfg *config.Config, rows []dataset.Row, outputPath string) error {
	llmClient, _, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	processed, err := dataset.LoadProcessed(filepath.Dir(outputPath))
	if err != nil {
		return err
	}
	if len(processed) > 0 {
		log.Printf("Checkpoint: skipping %d already reformulated rows", len(processed))
	}

	curator := core.NewCurator(nil, llmClient, nil, cfg)
	for i, row := range rows {
		id := dataset.RecordID(row, cfg.Dataset.IDField)
		if processed[id] {
			continue
		}

		problem := dataset.ToProblemRow(row)
		out := dataset.Row{}
		data := map[string]any{"uuid": id}

		result, err := curator.Reformulate(ctx, problem.Problem, problem.FinalAnswer)
		if err != nil {
			log.Printf("Row %d (%s): reformulation failed: %v", i, id, err)
			_ = out.Set("success", false)
			_ = out.Set("error", err.Error())
		} else {
			data["reformulated_problem"] = result.ReformulatedProblem
			data["reformulation_process"] = result.Process
			data["validation_passed"] = result.ValidationPassed
			if result.Judge != nil {
				data["judge_verdict"] = result.Judge.Verdict
				data["judge"] = result.Judge
			}
			_ = out.Set("success", true)
		}
		_ = out.Set("data", data)

		if err := dataset.AppendJSONL(outputPath, []dataset.Row{out}); err != nil {
			return err
		}
	}

	return nil
}
