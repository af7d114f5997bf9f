// Package similarity ranks persisted careers against free text with a
// TF-IDF vector space fitted over career descriptions.
package similarity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/directionwise/internal/types"
)

// CareerSource supplies the catalog the engine indexes.
type CareerSource interface {
	ListCareers(ctx context.Context) ([]types.Career, error)
}

// Engine owns the fitted vectorizer and document vectors. It fits lazily on
// the first search and keeps the fit until InvalidateCache is called.
type Engine struct {
	source      CareerSource
	maxFeatures int

	mu      sync.Mutex
	fitted  bool
	vec     *vectorizer
	docs    []vector
	careers []types.Career
}

// NewEngine creates an engine over source.
func NewEngine(source CareerSource) *Engine {
	return &Engine{source: source, maxFeatures: DefaultMaxFeatures}
}

// InvalidateCache drops the fitted state so the next search refits.
func (e *Engine) InvalidateCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fitted = false
	e.vec = nil
	e.docs = nil
	e.careers = nil
}

// Fitted reports whether a vector space is cached.
func (e *Engine) Fitted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fitted
}

// Search returns up to k careers most similar to query, by descending
// similarity with ties in catalog order. Blank queries, k <= 0 and an
// empty catalog all yield an empty result.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]types.CareerMatch, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return []types.CareerMatch{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.fitLocked(ctx); err != nil {
		return nil, err
	}
	if len(e.careers) == 0 {
		return []types.CareerMatch{}, nil
	}

	q := e.vec.transform(query)
	matches := make([]types.CareerMatch, len(e.careers))
	for i, c := range e.careers {
		matches[i] = types.CareerMatch{Career: c, Similarity: cosine(q, e.docs[i])}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

func (e *Engine) fitLocked(ctx context.Context) error {
	if e.fitted {
		return nil
	}
	careers, err := e.source.ListCareers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load careers for indexing: %w", err)
	}

	docs := make([]string, len(careers))
	for i, c := range careers {
		docs[i] = c.Description + " " + c.Field
	}
	e.vec, e.docs = fitTransform(docs, e.maxFeatures)
	e.careers = careers
	e.fitted = true

	slog.Debug("similarity: fitted vector space",
		slog.Int("documents", len(docs)),
		slog.Int("vocabulary", len(e.vec.vocab)))
	return nil
}
