package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"dealbrief-ai/internal/config"
	"dealbrief-ai/internal/connector"
	"dealbrief-ai/internal/docindex"
	"dealbrief-ai/internal/http"
	"dealbrief-ai/internal/llm"
	"dealbrief-ai/internal/storage"
	"dealbrief-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; sync and search will return empty results until it is configured")
	}

	// Initialize the document registry database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	registry := storage.NewDocumentRepo(db)

	// Initialize the Qdrant vector store. The collection itself is created
	// lazily on the first sync, so an empty Qdrant instance is fine here.
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, llm.VectorSize)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	slog.Info("Vector store ready", "url", cfg.QdrantURL, "collection", vectorstore.Collection)

	embedder := llm.NewEmbeddingsClient(cfg.OpenAIBaseURL)
	index := docindex.New(embedder, vectorStore, registry, llm.VectorSize)

	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.LLMModel)
	source := connector.NewClient(cfg.ConnectorURL)
	slog.Info("Connector client ready", "url", cfg.ConnectorURL)

	deps := &http.Deps{
		Index:       index,
		Source:      source,
		Registry:    registry,
		Enhancer:    llmClient,
		VectorStore: vectorStore,
		APIKey:      cfg.OpenAIAPIKey,
		SyncTimeout: cfg.SyncTimeout,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.OpenAIBaseURL, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
