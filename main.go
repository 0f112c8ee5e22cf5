package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/adapters/datasource"
	"github.com/askdata-labs/askdata-engine/pkg/adapters/datasource/mysql"
	"github.com/askdata-labs/askdata-engine/pkg/chat"
	"github.com/askdata-labs/askdata-engine/pkg/chunker"
	"github.com/askdata-labs/askdata-engine/pkg/config"
	"github.com/askdata-labs/askdata-engine/pkg/handlers"
	"github.com/askdata-labs/askdata-engine/pkg/ingest"
	"github.com/askdata-labs/askdata-engine/pkg/llm"
	"github.com/askdata-labs/askdata-engine/pkg/logging"
	"github.com/askdata-labs/askdata-engine/pkg/middleware"
	"github.com/askdata-labs/askdata-engine/pkg/scrape"
	"github.com/askdata-labs/askdata-engine/pkg/sqlgen"
	"github.com/askdata-labs/askdata-engine/pkg/vectordb"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.AI.Provider),
		zap.String("llm_model", cfg.AI.LLMModel),
		zap.String("embedding_model", cfg.AI.EmbeddingModel),
		zap.String("vector_path", cfg.Vector.Path),
		zap.Bool("query_target_configured", cfg.Database.Configured()))

	splitter, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		logger.Fatal("Failed to create chunker", zap.Error(err))
	}

	chatClient, err := llm.NewChatClient(&llm.Config{
		Provider: cfg.AI.Provider,
		Endpoint: cfg.AI.LLMBaseURL,
		Model:    cfg.AI.LLMModel,
		APIKey:   cfg.AI.LLMAPIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create chat client", zap.Error(err))
	}

	embeddingClient, err := llm.NewEmbeddingClient(&llm.Config{
		Endpoint: cfg.AI.EffectiveEmbeddingBaseURL(),
		Model:    cfg.AI.EmbeddingModel,
		APIKey:   cfg.AI.EffectiveEmbeddingAPIKey(),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create embedding client", zap.Error(err))
	}

	index, err := vectordb.NewSQLiteIndex(cfg.Vector.Path, cfg.Vector.Collection, logger)
	if err != nil {
		logger.Fatal("Failed to open vector index", zap.Error(err))
	}
	defer func() { _ = index.Close() }()

	store := vectordb.NewStore(index, embeddingClient, logger)
	extractor := ingest.NewExtractor(splitter, logger)

	renderer := scrape.NewChromeRenderer(
		time.Duration(cfg.Scraper.RenderTimeoutSec)*time.Second,
		cfg.Scraper.UserAgent,
		logger)
	scraper := scrape.NewScraper(scrape.Config{
		RequestDelay: time.Duration(cfg.Scraper.RequestDelayMs) * time.Millisecond,
		UserAgent:    cfg.Scraper.UserAgent,
	}, splitter, renderer, logger)

	chatEngine := chat.NewEngine(chatClient, store, chat.NewMemory(), cfg.AI.Temperature, logger)

	var executor *mysql.Executor
	var tester datasource.ConnectionTester
	var sqlExecutor datasource.SQLExecutor
	if cfg.Database.Configured() {
		executor, err = mysql.New(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("Failed to connect to query target", zap.Error(err))
		}
		defer func() { _ = executor.Close() }()
		tester = executor
		sqlExecutor = executor
	} else {
		logger.Info("No query target configured; /api/db/query is disabled")
	}

	queryEngine := sqlgen.New(chatClient, sqlExecutor, cfg.AI.SQLTemperature, cfg.Query.MaxRows, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewUploadHandler(extractor, store, logger).RegisterRoutes(mux)
	handlers.NewScrapeHandler(scraper, store, cfg.Scraper.MaxURLsPerBatch, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(chatEngine, logger).RegisterRoutes(mux)
	handlers.NewFilesHandler(store, logger).RegisterRoutes(mux)
	handlers.NewQueryHandler(queryEngine, tester, cfg.Query.ReadOnly, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting askdata-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
