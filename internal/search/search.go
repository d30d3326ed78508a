// Package search provides ranked trend-search backends behind a common
// Provider interface. Backends are attempted in priority order; a backend
// without credentials is never attempted.
package search

import (
	"context"
	"sync"
	"time"

	"draftforge/internal/config"
)

// Provider is the unified interface every search backend implements.
type Provider interface {
	// Search performs a search and returns normalized results.
	Search(ctx context.Context, query string, cfg Config) ([]Result, error)

	// Name returns the name of the backend.
	Name() string
}

// Config holds per-request search configuration.
type Config struct {
	MaxResults int           // maximum number of results to return
	SinceTime  time.Duration // only results newer than this duration
	Language   string        // language preference (e.g. "en")
}

// Result is a normalized search result shared by all backends.
type Result struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// rateGate paces calls to a backend. Providers are shared across the
// goroutines of a parallel trend search, so the pacing state is guarded;
// the lock is held through the sleep, which serializes concurrent callers
// at the configured spacing.
type rateGate struct {
	mu       sync.Mutex
	limit    time.Duration
	lastCall time.Time
}

func (g *rateGate) wait() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if elapsed := time.Since(g.lastCall); elapsed < g.limit {
		time.Sleep(g.limit - elapsed)
	}
	g.lastCall = time.Now()
}

// RankedProviders builds the configured backends in priority order:
// SerpAPI first, Google Custom Search second, NewsAPI third. Backends
// missing credentials are left out.
func RankedProviders(cfg config.SearchProviders) []Provider {
	var providers []Provider
	if cfg.SerpAPI.APIKey != "" {
		providers = append(providers, NewSerpAPIProvider(cfg.SerpAPI.APIKey))
	}
	if cfg.Google.APIKey != "" && cfg.Google.SearchID != "" {
		providers = append(providers, NewGoogleProvider(cfg.Google.APIKey, cfg.Google.SearchID))
	}
	if cfg.NewsAPI.APIKey != "" {
		providers = append(providers, NewNewsAPIProvider(cfg.NewsAPI.APIKey))
	}
	return providers
}
