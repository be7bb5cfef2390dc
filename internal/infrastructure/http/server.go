// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/usecases"
	"github.com/0xcro3dile/finwise-go/internal/metrics"
)

// maxUploadBytes bounds one multipart upload request.
const maxUploadBytes = 64 << 20

// Server exposes the upload, query and consent boundaries over HTTP.
type Server struct {
	orchestrator *usecases.Orchestrator
	ingest       *usecases.IngestUseCase
	metrics      *metrics.Metrics
	registry     *prometheus.Registry
	log          zerolog.Logger
	addr         string
	gateIdleTTL  time.Duration
}

// NewServer creates the HTTP server.
func NewServer(
	orchestrator *usecases.Orchestrator,
	ingest *usecases.IngestUseCase,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	log zerolog.Logger,
	addr string,
	gateIdleTTL time.Duration,
) *Server {
	return &Server{
		orchestrator: orchestrator,
		ingest:       ingest,
		metrics:      m,
		registry:     registry,
		log:          log,
		addr:         addr,
		gateIdleTTL:  gateIdleTTL,
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/consent", s.handleConsent)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         s.addr,
		Handler:      corsMiddleware(s.loggingMiddleware(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
	}

	go s.purgeLoop(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.addr).Msg("finwise server starting")
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// purgeLoop reclaims gate records left idle past the configured TTL.
func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged := s.orchestrator.Gate().PurgeIdle(s.gateIdleTTL)
			if purged > 0 {
				s.log.Info().Int("purged", purged).Msg("reclaimed idle consent records")
			}
			s.metrics.ConsentPending.Set(float64(s.orchestrator.Gate().PendingCount()))
		}
	}
}

// handleUpload accepts one or more files and returns one UploadResult per
// file, in input order. Unsupported types come back as failures, never as
// a rejected request.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}

	results := make([]entities.UploadResult, 0, len(files))
	for _, header := range files {
		start := time.Now()

		doc, err := readUpload(header)
		if err != nil {
			results = append(results, entities.UploadResult{
				Filename: header.Filename,
				Status:   entities.UploadFailure,
				Error:    err.Error(),
			})
			s.metrics.ObserveUpload("unknown", string(entities.UploadFailure), start)
			continue
		}

		result := s.ingest.Ingest(r.Context(), doc)
		results = append(results, result)
		s.metrics.ObserveUpload(string(result.Type), string(result.Status), start)
	}

	writeJSON(w, http.StatusOK, results)
}

type queryRequest struct {
	Query string `json:"query"`
}

// handleQuery runs a question through the orchestrator. The response is
// either a final answer or an AWAITING_CONSENT outcome carrying the
// query ID to resume via /api/consent.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		http.Error(w, "Query required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	outcome, err := s.orchestrator.Answer(r.Context(), req.Query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.ObserveQuery(string(outcome.Intent), string(outcome.Status), start)
	s.metrics.ConsentPending.Set(float64(s.orchestrator.Gate().PendingCount()))
	writeJSON(w, http.StatusOK, outcome)
}

type consentRequest struct {
	QueryID  string `json:"query_id"`
	Decision string `json:"decision"`
}

// handleConsent resumes a suspended query with the user's decision and
// returns the final answer.
func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req consentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueryID == "" {
		http.Error(w, "query_id and decision required", http.StatusBadRequest)
		return
	}

	answer, err := s.orchestrator.SubmitConsent(r.Context(), req.QueryID, entities.ConsentDecision(req.Decision))
	switch {
	case errors.Is(err, usecases.ErrUnknownQuery):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, usecases.ErrDecisionPending):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch answer.Provenance {
	case entities.ProvenanceWeb:
		s.metrics.WebSearchesTotal.WithLabelValues("success").Inc()
	case entities.ProvenanceWebFailed:
		s.metrics.WebSearchesTotal.WithLabelValues("failure").Inc()
	}
	s.metrics.ConsentPending.Set(float64(s.orchestrator.Gate().PendingCount()))
	writeJSON(w, http.StatusOK, answer)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload materializes one multipart file into an UploadedDocument.
// The declared content type follows the part header, with the filename
// extension as fallback; unrecognized declarations pass through so the
// ingestor can report them as failures.
func readUpload(header *multipart.FileHeader) (*entities.UploadedDocument, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return &entities.UploadedDocument{
		Filename: header.Filename,
		Type:     contentTypeFor(header.Filename, header.Header.Get("Content-Type")),
		Data:     data,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// contentTypeFor maps a MIME declaration or filename extension onto the
// upload boundary's content type vocabulary. Unknown inputs map to a
// passthrough value the ingestor reports as unsupported.
func contentTypeFor(filename, mimeType string) entities.ContentType {
	switch mimeType {
	case "application/pdf":
		return entities.ContentTypePDF
	case "text/plain":
		return entities.ContentTypeText
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return entities.ContentTypePDF
	case ".txt", ".text":
		return entities.ContentTypeText
	}
	if mimeType != "" {
		return entities.ContentType(mimeType)
	}
	return entities.ContentType(strings.TrimPrefix(filepath.Ext(filename), "."))
}
