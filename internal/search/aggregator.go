package search

import (
	"context"

	"draftforge/internal/logger"
)

// Aggregator tries ranked backends in priority order and returns the first
// backend's results that come back non-empty. It never merges results from
// different backends within a single Search call. A failing backend is
// logged and skipped, never fatal.
type Aggregator struct {
	providers []Provider
}

// NewAggregator creates an aggregator over providers in priority order.
func NewAggregator(providers ...Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Configured reports whether at least one backend is available.
func (a *Aggregator) Configured() bool {
	return len(a.providers) > 0
}

// Search queries backends in priority order and returns the first
// non-empty result set. ErrNoProviders when nothing is configured,
// ErrNoResults when every backend came back empty or failed.
func (a *Aggregator) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	if len(a.providers) == 0 {
		return nil, ErrNoProviders
	}

	for _, provider := range a.providers {
		results, err := provider.Search(ctx, query, cfg)
		if err != nil {
			logger.Warn("Search backend failed, trying next", "backend", provider.Name(), "error", err.Error())
			continue
		}
		if len(results) == 0 {
			logger.Debug("Search backend returned no results", "backend", provider.Name(), "query", query)
			continue
		}
		return results, nil
	}

	return nil, ErrNoResults
}
