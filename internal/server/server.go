package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mathforge/curator/internal/config"
	"github.com/mathforge/curator/internal/core"
	"github.com/mathforge/curator/internal/core/model"
	"github.com/mathforge/curator/internal/core/semdedup"
	"github.com/mathforge/curator/internal/driver"
	"github.com/mathforge/curator/internal/llm"
)

type Server struct {
	Curator *core.Curator
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars override the config file.
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envEmbeddingModel := os.Getenv("LLM_EMBEDDING_MODEL"); envEmbeddingModel != "" {
		cfg.LLM.EmbeddingModel = envEmbeddingModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}
	if envGraphURI := os.Getenv("GRAPH_URI"); envGraphURI != "" {
		cfg.Graph.URI = envGraphURI
	}

	// Default to Ollama if provider is empty
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	// The graph store only holds provenance; running without one is fine.
	var graphDriver driver.GraphDriver
	if cfg.Graph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
		if err != nil {
			log.Fatalf("Failed to connect to graph store: %v", err)
		}
		if err := d.BuildIndices(context.Background()); err != nil {
			log.Printf("Warning: failed to build indices: %v", err)
		}
		graphDriver = d
	} else {
		log.Println("No graph store configured, provenance persistence disabled")
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	return &Server{
		Curator: core.NewCurator(graphDriver, llmClient, embedderClient, cfg),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/dedupe", s.Dedupe)
	r.POST("/signals", s.Signals)
	r.POST("/reformulate", s.Reformulate)
	r.GET("/healthz", s.Health)

	return r
}

type DedupeRequest struct {
	Records []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"records"`
	Params *struct {
		Epsilon      float64 `json:"epsilon"`
		ClusterCount int     `json:"cluster_count"`
		KeepCentral  *bool   `json:"keep_central"`
	} `json:"params"`
}

func (s *Server) Dedupe(c *gin.Context) {
	var req DedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	records := make([]model.Record, len(req.Records))
	for i, r := range req.Records {
		records[i] = model.Record{ID: r.ID, Text: r.Text}
	}

	// Request params override the configured run defaults.
	cfg := *s.Curator.Config
	if req.Params != nil {
		if req.Params.Epsilon != 0 {
			cfg.Dedup.Epsilon = req.Params.Epsilon
		}
		if req.Params.ClusterCount != 0 {
			cfg.Dedup.ClusterCount = req.Params.ClusterCount
		}
		if req.Params.KeepCentral != nil {
			cfg.Dedup.KeepCentral = *req.Params.KeepCentral
		}
	}
	curator := *s.Curator
	curator.Config = &cfg

	result, runID, err := curator.Dedupe(c.Request.Context(), records)
	if err != nil {
		var cfgErr *semdedup.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
			return
		}
		log.Printf("Failed to dedupe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dedupe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      runID,
		"removed":     result.Removed,
		"groups":      result.Groups,
		"assignments": result.Assignments,
	})
}

type SignalsRequest struct {
	Rows []model.ProblemRow `json:"rows"`
}

func (s *Server) Signals(c *gin.Context) {
	var req SignalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signals": s.Curator.Annotate(req.Rows)})
}

type ReformulateRequest struct {
	Problem       string `json:"problem"`
	CorrectAnswer string `json:"correct_answer"`
}

func (s *Server) Reformulate(c *gin.Context) {
	var req ReformulateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Problem == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Curator.Reformulate(c.Request.Context(), req.Problem, req.CorrectAnswer)
	if err != nil {
		log.Printf("Failed to reformulate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reformulate"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
