// Package usecases - gate.go holds the per-query web fallback state machine.
package usecases

import (
	"errors"
	"sync"
	"time"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// GateState is the lifecycle position of one query inside the gate.
type GateState string

const (
	// GateAwaitingConsent means retrieval missed and the query is
	// suspended until the caller supplies a consent decision.
	GateAwaitingConsent GateState = "AWAITING_CONSENT"
	// GateTerminal means a final answer exists for the query.
	GateTerminal GateState = "TERMINAL"
)

var (
	// ErrUnknownQuery is returned when a consent decision references a
	// query identifier the gate has never seen (or already reclaimed).
	ErrUnknownQuery = errors.New("unknown or expired query")

	// ErrDecisionPending is returned when a decision for the query is
	// already being acted on but its answer is not final yet.
	ErrDecisionPending = errors.New("consent decision already submitted")
)

type consentRecord struct {
	queryText string
	state     GateState
	decided   bool
	decision  entities.ConsentDecision
	answer    *entities.Answer
	updatedAt time.Time
}

// ConsentGate stores suspended queries keyed by query identifier, so
// concurrent queries never interfere. A record is inert state: if the
// caller never decides, it sits idle until PurgeIdle reclaims it.
type ConsentGate struct {
	mu      sync.Mutex
	records map[string]*consentRecord
	now     func() time.Time
}

// NewConsentGate creates an empty gate.
func NewConsentGate() *ConsentGate {
	return &ConsentGate{
		records: make(map[string]*consentRecord),
		now:     time.Now,
	}
}

// Open suspends a query at AWAITING_CONSENT after a retrieval miss.
// Opening an already-open query is a no-op.
func (g *ConsentGate) Open(query *entities.Query) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.records[query.ID]; ok {
		return
	}
	g.records[query.ID] = &consentRecord{
		queryText: query.Text,
		state:     GateAwaitingConsent,
		updatedAt: g.now(),
	}
}

// Pending reports whether a query is currently awaiting consent.
func (g *ConsentGate) Pending(queryID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[queryID]
	return ok && rec.state == GateAwaitingConsent && !rec.decided
}

// PendingCount returns how many queries sit at AWAITING_CONSENT.
func (g *ConsentGate) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, rec := range g.records {
		if rec.state == GateAwaitingConsent {
			n++
		}
	}
	return n
}

// Decision is the gate's reply to a submitted consent decision.
// When Replayed is set the decision was bound earlier and Answer carries
// the previously computed result; the caller must not re-run anything.
// Otherwise the caller owns driving the query to TERMINAL via Complete.
type Decision struct {
	QueryText string
	Decision  entities.ConsentDecision
	Answer    *entities.Answer
	Replayed  bool
}

// Decide binds a consent decision to a query. The first decision wins:
// any later submission for the same query identifier replays the stored
// outcome instead of re-prompting or re-querying documents.
func (g *ConsentGate) Decide(queryID string, decision entities.ConsentDecision) (*Decision, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[queryID]
	if !ok {
		return nil, ErrUnknownQuery
	}
	if rec.state == GateTerminal {
		return &Decision{
			QueryText: rec.queryText,
			Decision:  rec.decision,
			Answer:    rec.answer,
			Replayed:  true,
		}, nil
	}
	if rec.decided {
		return nil, ErrDecisionPending
	}

	rec.decided = true
	rec.decision = decision
	rec.updatedAt = g.now()
	return &Decision{QueryText: rec.queryText, Decision: decision}, nil
}

// Complete records the final answer and moves the query to TERMINAL.
func (g *ConsentGate) Complete(queryID string, answer *entities.Answer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[queryID]
	if !ok {
		return
	}
	rec.answer = answer
	rec.state = GateTerminal
	rec.updatedAt = g.now()
}

// PurgeIdle removes records untouched for longer than maxIdle and returns
// how many were reclaimed. New queries always start fresh, so purging a
// terminal or abandoned record never affects correctness.
func (g *ConsentGate) PurgeIdle(maxIdle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	cutoff := g.now().Add(-maxIdle)
	purged := 0
	for id, rec := range g.records {
		if rec.updatedAt.Before(cutoff) {
			delete(g.records, id)
			purged++
		}
	}
	return purged
}
