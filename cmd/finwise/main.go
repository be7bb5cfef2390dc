// Command finwise runs the document question-answering service: upload,
// query and consent boundaries over HTTP, backed by a local Ollama
// instance for embeddings and answer synthesis.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/0xcro3dile/finwise-go/internal/adapters/embedding"
	"github.com/0xcro3dile/finwise-go/internal/adapters/extractor"
	"github.com/0xcro3dile/finwise-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/finwise-go/internal/adapters/llm"
	"github.com/0xcro3dile/finwise-go/internal/adapters/market"
	"github.com/0xcro3dile/finwise-go/internal/adapters/vectordb"
	"github.com/0xcro3dile/finwise-go/internal/adapters/websearch"
	"github.com/0xcro3dile/finwise-go/internal/config"
	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
	"github.com/0xcro3dile/finwise-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/finwise-go/internal/infrastructure/http"
	"github.com/0xcro3dile/finwise-go/internal/metrics"
	"github.com/0xcro3dile/finwise-go/internal/observability"
)

func main() {
	// Best effort: a missing .env just means everything comes from the
	// real environment.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "finwise: %v\n", err)
		os.Exit(1)
	}

	sink := observability.NewLogSink(observability.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger := sink.Logger()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	embedder := embedding.NewOllamaAdapter(cfg.Ollama.Host, cfg.Ollama.EmbeddingModel)
	llmClient := llm.NewOllamaAdapter(cfg.Ollama.Host, cfg.Ollama.LLMModel)

	var store ports.VectorStore
	switch cfg.Store.Type {
	case "sqlite":
		sqliteStore, err := vectordb.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Fatal().Err(err).Msg("opening vector store")
		}
		defer sqliteStore.Close()
		store = sqliteStore
	default:
		store = vectordb.NewInMemoryStore()
	}

	extractors := map[entities.ContentType]ports.ChunkExtractor{
		entities.ContentTypePDF:  extractor.NewPDFExtractor(),
		entities.ContentTypeText: extractor.NewTextExtractor(cfg.Ingest.ChunkSize),
	}

	ingestUC := usecases.NewIngestUseCase(extractors, embedder, store, sink)
	retriever := usecases.NewRetriever(embedder, store, sink, cfg.Retrieval.TopK, cfg.Retrieval.ConfidenceThreshold)
	gate := usecases.NewConsentGate()

	orchestrator := usecases.NewOrchestrator(
		usecases.NewIntentClassifier(),
		retriever,
		gate,
		llmClient,
		websearch.NewDuckDuckGoSearcher(""),
		market.NewYahooClient(""),
		sink,
		uuid.NewString,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink.Emit(entities.Event{
		Kind:  entities.EventStartup,
		Level: entities.LevelInfo,
		Payload: map[string]any{
			"addr":      cfg.Server.Addr,
			"store":     cfg.Store.Type,
			"top_k":     cfg.Retrieval.TopK,
			"threshold": cfg.Retrieval.ConfidenceThreshold,
		},
	})

	if cfg.Watch.Enabled {
		if err := startWatcher(ctx, cfg.Watch.Dir, ingestUC, logger); err != nil {
			logger.Error().Err(err).Str("dir", cfg.Watch.Dir).Msg("starting document watcher")
		}
	}

	server := httpserver.NewServer(
		orchestrator,
		ingestUC,
		m,
		registry,
		logger,
		cfg.Server.Addr,
		time.Duration(cfg.Gate.IdleTTLMinutes)*time.Minute,
	)
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// startWatcher ingests files dropped into the watch directory through the
// same pipeline as uploads.
func startWatcher(ctx context.Context, dir string, ingest *usecases.IngestUseCase, logger zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	watcher, err := filewatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		return err
	}

	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		watcher.Stop()
		return err
	}

	go func() {
		defer watcher.Stop()
		for event := range events {
			if event.Operation == ports.FileDeleted {
				continue
			}
			doc, err := readDocument(event.Path)
			if err != nil {
				logger.Warn().Err(err).Str("path", event.Path).Msg("reading dropped file")
				continue
			}
			result := ingest.Ingest(ctx, doc)
			if result.Status == entities.UploadFailure {
				logger.Warn().Str("file", result.Filename).Str("error", result.Error).Msg("drop-in ingest failed")
			}
		}
	}()

	logger.Info().Str("dir", dir).Msg("watching documents directory")
	return nil
}

// readDocument loads a dropped file, inferring the declared content type
// from its extension.
func readDocument(path string) (*entities.UploadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contentType := entities.ContentType(strings.TrimPrefix(filepath.Ext(path), "."))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		contentType = entities.ContentTypePDF
	case ".txt", ".text":
		contentType = entities.ContentTypeText
	}

	return &entities.UploadedDocument{
		Filename: filepath.Base(path),
		Type:     contentType,
		Data:     data,
	}, nil
}
