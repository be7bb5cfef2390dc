// Package usecases - orchestrator.go composes the end-to-end answer pipeline.
package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// Orchestrator is the single entry point for a query: it classifies
// intent, routes to a tool path or document retrieval, and drives the
// consent gate to completion on a retrieval miss.
type Orchestrator struct {
	classifier *IntentClassifier
	retriever  *Retriever
	gate       *ConsentGate
	llm        ports.LLMService
	web        ports.WebSearcher
	market     ports.MarketData
	events     ports.EventSink
	newID      func() string
	now        func() time.Time
}

// NewOrchestrator creates an Orchestrator with injected dependencies.
// newID supplies fresh query identifiers (uuid in production wiring).
func NewOrchestrator(
	classifier *IntentClassifier,
	retriever *Retriever,
	gate *ConsentGate,
	llm ports.LLMService,
	web ports.WebSearcher,
	market ports.MarketData,
	events ports.EventSink,
	newID func() string,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		retriever:  retriever,
		gate:       gate,
		llm:        llm,
		web:        web,
		market:     market,
		events:     events,
		newID:      newID,
		now:        time.Now,
	}
}

// Gate exposes the consent gate for idle-state reclamation by the host.
func (o *Orchestrator) Gate() *ConsentGate { return o.gate }

// Answer runs a raw question through the pipeline. It returns either a
// final answer or an AWAITING_CONSENT outcome carrying the query ID to
// resume with via SubmitConsent; it never blocks waiting on the user.
func (o *Orchestrator) Answer(ctx context.Context, rawQuery string) (*entities.QueryOutcome, error) {
	query := &entities.Query{ID: o.newID(), Text: strings.TrimSpace(rawQuery)}

	o.events.Emit(entities.Event{
		Kind:    entities.EventQueryReceived,
		Level:   entities.LevelInfo,
		Payload: map[string]any{"query_id": query.ID, "query": query.Text},
	})

	intent := o.classifier.Classify(query)
	o.events.Emit(entities.Event{
		Kind:    entities.EventIntentDetected,
		Level:   entities.LevelInfo,
		Payload: map[string]any{"query_id": query.ID, "intent": string(intent)},
	})

	switch intent {
	case entities.IntentPrice:
		if outcome := o.priceAnswer(ctx, query, intent); outcome != nil {
			return outcome, nil
		}
		// No usable symbol or quote: fall back to document retrieval.
	case entities.IntentAdvisory:
		return o.advisoryAnswer(ctx, query, intent)
	}

	return o.generalAnswer(ctx, query, intent)
}

// SubmitConsent resumes a query suspended at AWAITING_CONSENT. The first
// decision is binding; repeats return the previously computed answer.
func (o *Orchestrator) SubmitConsent(ctx context.Context, queryID string, decision entities.ConsentDecision) (*entities.Answer, error) {
	o.events.Emit(entities.Event{
		Kind:    entities.EventConsentReceived,
		Level:   entities.LevelInfo,
		Payload: map[string]any{"query_id": queryID, "decision": string(decision)},
	})

	if decision != entities.ConsentGranted && decision != entities.ConsentDenied {
		return nil, fmt.Errorf("invalid consent decision %q", decision)
	}

	dec, err := o.gate.Decide(queryID, decision)
	if err != nil {
		return nil, err
	}
	if dec.Replayed {
		return dec.Answer, nil
	}

	var answer *entities.Answer
	if dec.Decision == entities.ConsentDenied {
		answer = &entities.Answer{
			QueryID:    queryID,
			Text:       "Search cancelled. The answer stays not found in your documents.",
			Provenance: entities.ProvenanceNotFound,
		}
	} else {
		answer = o.webAnswer(ctx, queryID, dec.QueryText)
	}

	o.gate.Complete(queryID, answer)
	o.emitAnswer(queryID, answer)
	return answer, nil
}

// priceAnswer serves the PRICE intent from live market data. It returns
// nil when no symbol can be extracted or the quote fails, letting the
// caller fall through to the general path.
func (o *Orchestrator) priceAnswer(ctx context.Context, query *entities.Query, intent entities.IntentLabel) *entities.QueryOutcome {
	symbol := extractTicker(query.Text)
	if symbol == "" {
		return nil
	}

	quote, err := o.market.Quote(ctx, symbol)
	if err != nil {
		o.events.Emit(entities.Event{
			Kind:    entities.EventError,
			Level:   entities.LevelWarn,
			Payload: map[string]any{"query_id": query.ID, "symbol": symbol, "error": err.Error()},
		})
		return nil
	}

	answer := &entities.Answer{
		QueryID:    query.ID,
		Text:       formatQuote(quote),
		Provenance: entities.ProvenanceMarket,
	}
	o.emitAnswer(query.ID, answer)
	return &entities.QueryOutcome{
		Status:  entities.StatusAnswered,
		QueryID: query.ID,
		Intent:  intent,
		Answer:  answer,
	}
}

// advisoryAnswer serves the ADVISORY intent: document context is gathered
// when available, but advice is produced either way and never enters the
// consent gate.
func (o *Orchestrator) advisoryAnswer(ctx context.Context, query *entities.Query, intent entities.IntentLabel) (*entities.QueryOutcome, error) {
	result, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		o.emitError(query.ID, err)
		return nil, err
	}

	prompt := buildAdvisorPrompt(query.Text, result.Chunks, o.now())
	text, err := o.llm.Generate(ctx, prompt)
	if err != nil {
		o.emitError(query.ID, err)
		return nil, fmt.Errorf("generating advisory answer: %w", err)
	}

	answer := &entities.Answer{
		QueryID:    query.ID,
		Text:       text,
		Provenance: entities.ProvenanceDocument,
		Sources:    sourceFiles(result.Chunks),
	}
	o.emitAnswer(query.ID, answer)
	return &entities.QueryOutcome{
		Status:  entities.StatusAnswered,
		QueryID: query.ID,
		Intent:  intent,
		Answer:  answer,
	}, nil
}

// generalAnswer runs document retrieval. A hit short-circuits the gate
// with a DOCUMENT answer; a miss suspends the query at AWAITING_CONSENT.
func (o *Orchestrator) generalAnswer(ctx context.Context, query *entities.Query, intent entities.IntentLabel) (*entities.QueryOutcome, error) {
	result, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		o.emitError(query.ID, err)
		return nil, err
	}

	if !result.Found {
		o.gate.Open(query)
		o.events.Emit(entities.Event{
			Kind:    entities.EventConsentRequested,
			Level:   entities.LevelInfo,
			Payload: map[string]any{"query_id": query.ID},
		})
		return &entities.QueryOutcome{
			Status:  entities.StatusAwaitingConsent,
			QueryID: query.ID,
			Intent:  intent,
		}, nil
	}

	prompt := buildDocumentPrompt(query.Text, result.Chunks)
	text, err := o.llm.Generate(ctx, prompt)
	if err != nil {
		o.emitError(query.ID, err)
		return nil, fmt.Errorf("generating document answer: %w", err)
	}

	answer := &entities.Answer{
		QueryID:    query.ID,
		Text:       text,
		Provenance: entities.ProvenanceDocument,
		Sources:    sourceFiles(result.Chunks),
	}
	o.emitAnswer(query.ID, answer)
	return &entities.QueryOutcome{
		Status:  entities.StatusAnswered,
		QueryID: query.ID,
		Intent:  intent,
		Answer:  answer,
	}, nil
}

// webAnswer performs the consent-granted web search exactly once. Any
// failure is terminal for this query's web path: it becomes a WEB_FAILED
// answer, never a retry.
func (o *Orchestrator) webAnswer(ctx context.Context, queryID, queryText string) *entities.Answer {
	o.events.Emit(entities.Event{
		Kind:    entities.EventWebSearchInvoked,
		Level:   entities.LevelInfo,
		Payload: map[string]any{"query_id": queryID},
	})

	result, err := o.web.Search(ctx, queryText)
	if err != nil {
		wrapped := &entities.WebSearchError{Err: err}
		o.emitError(queryID, wrapped)
		return &entities.Answer{
			QueryID:    queryID,
			Text:       "The web search failed: " + err.Error(),
			Provenance: entities.ProvenanceWebFailed,
		}
	}

	text, err := o.llm.Generate(ctx, buildWebPrompt(queryText, result.Content))
	if err != nil {
		o.emitError(queryID, err)
		return &entities.Answer{
			QueryID:    queryID,
			Text:       "The web search succeeded but answer synthesis failed: " + err.Error(),
			Provenance: entities.ProvenanceWebFailed,
			Sources:    result.URLs,
		}
	}

	return &entities.Answer{
		QueryID:    queryID,
		Text:       text,
		Provenance: entities.ProvenanceWeb,
		Sources:    result.URLs,
	}
}

func (o *Orchestrator) emitAnswer(queryID string, answer *entities.Answer) {
	o.events.Emit(entities.Event{
		Kind:  entities.EventAnswerProduced,
		Level: entities.LevelInfo,
		Payload: map[string]any{
			"query_id":   queryID,
			"provenance": string(answer.Provenance),
		},
	})
}

func (o *Orchestrator) emitError(queryID string, err error) {
	o.events.Emit(entities.Event{
		Kind:    entities.EventError,
		Level:   entities.LevelError,
		Payload: map[string]any{"query_id": queryID, "error": err.Error()},
	})
}

func formatQuote(q *entities.Quote) string {
	if q.PreviousClose > 0 {
		change := q.Price - q.PreviousClose
		pct := change / q.PreviousClose * 100
		return fmt.Sprintf("%s: %.2f %s (%+.2f, %+.2f%% from previous close)",
			q.Symbol, q.Price, q.Currency, change, pct)
	}
	return fmt.Sprintf("%s: %.2f %s", q.Symbol, q.Price, q.Currency)
}

// sourceFiles lists the distinct document names backing the answer, in
// ranking order.
func sourceFiles(chunks []entities.ScoredChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	var files []string
	for _, sc := range chunks {
		if _, ok := seen[sc.Chunk.SourceFile]; ok {
			continue
		}
		seen[sc.Chunk.SourceFile] = struct{}{}
		files = append(files, sc.Chunk.SourceFile)
	}
	return files
}
