package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type DedupConfig struct {
	// ClusterCount of 0 means one cluster per ~100 records.
	ClusterCount int     `toml:"cluster_count"`
	Epsilon      float64 `toml:"epsilon"`
	KeepCentral  bool    `toml:"keep_central"`
	Metric       string  `toml:"metric"`
	Iterations   int     `toml:"iterations"`
	Seed         int64   `toml:"seed"`
	Spherical    bool    `toml:"spherical"`
	BatchSize    int     `toml:"embedding_batch_size"`
}

type DatasetConfig struct {
	IDField    string   `toml:"id_field"`
	TextFields []string `toml:"text_fields"`
}

type ReformulationPrompts struct {
	Reformulate string `toml:"reformulate"`
	Judge       string `toml:"judge"`
}

type ConcurrencyConfig struct {
	SignalWorkers int `toml:"signal_workers"`
}

type Config struct {
	LLM           LLMConfig            `toml:"llm"`
	Graph         GraphConfig          `toml:"graph"`
	Dedup         DedupConfig          `toml:"dedup"`
	Dataset       DatasetConfig        `toml:"dataset"`
	Reformulation ReformulationPrompts `toml:"reformulation"`
	Concurrency   ConcurrencyConfig    `toml:"concurrency"`
}

// Default returns the values the original curation runs used: epsilon 0.99,
// central members kept, euclidean kmeans for 20 iterations with seed 42,
// embedding batches of 100.
func Default() *Config {
	return &Config{
		Dedup: DedupConfig{
			Epsilon:     0.99,
			KeepCentral: true,
			Metric:      "cosine",
			Iterations:  20,
			Seed:        42,
			BatchSize:   100,
		},
		Dataset: DatasetConfig{
			IDField:    "uuid",
			TextFields: []string{"problem", "final_answer"},
		},
		Concurrency: ConcurrencyConfig{SignalWorkers: 4},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
