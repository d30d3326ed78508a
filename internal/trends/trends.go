// Package trends discovers trending article topics from the ranked search
// backends and can synthesize plausible topics offline when no backend is
// configured.
package trends

import (
	"context"
	"strings"
	"sync"
	"time"

	"draftforge/internal/core"
	"draftforge/internal/logger"
	"draftforge/internal/search"
)

// dedupePrefixLen is how many lowercased characters of a title are compared
// when deduplicating results from different backends.
const dedupePrefixLen = 50

// Service aggregates trending topics across backends.
type Service struct {
	aggregator *search.Aggregator
	news       search.Provider // direct line to the news backend for freshness, may be nil
	maxResults int
	language   string
}

// NewService creates a trends service. news may be nil when the tertiary
// backend has no credentials.
func NewService(aggregator *search.Aggregator, news search.Provider, maxResults int, language string) *Service {
	return &Service{
		aggregator: aggregator,
		news:       news,
		maxResults: maxResults,
		language:   language,
	}
}

// TrendingTopics runs several searches in parallel, both through the ranked
// aggregator and directly against the news backend, then merges
// everything and deduplicates by title prefix. Backend failures reduce the
// result set but never abort the operation. With no backend configured it
// falls back to synthesized suggestions.
func (s *Service) TrendingTopics(ctx context.Context, category string) ([]core.TrendingTopic, error) {
	if s.aggregator == nil || !s.aggregator.Configured() {
		logger.Warn("No search backend configured, synthesizing topic suggestions", "category", category)
		return SuggestTopics(category, s.maxResults), nil
	}

	queries := trendQueries(category)
	cfg := search.Config{
		MaxResults: s.maxResults,
		SinceTime:  7 * 24 * time.Hour,
		Language:   s.language,
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		merged []core.TrendingTopic
	)

	collect := func(results []search.Result) {
		mu.Lock()
		defer mu.Unlock()
		for _, r := range results {
			merged = append(merged, core.TrendingTopic{
				Title:       r.Title,
				Description: r.Description,
				URL:         r.URL,
				Source:      r.Source,
				PublishedAt: r.PublishedAt,
			})
		}
	}

	for _, query := range queries {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			results, err := s.aggregator.Search(ctx, q, cfg)
			if err != nil {
				logger.Warn("Trend search failed", "query", q, "error", err.Error())
				return
			}
			collect(results)
		}(query)

		if s.news != nil {
			wg.Add(1)
			go func(q string) {
				defer wg.Done()
				results, err := s.news.Search(ctx, q, cfg)
				if err != nil {
					logger.Warn("News trend search failed", "query", q, "error", err.Error())
					return
				}
				collect(results)
			}(query)
		}
	}

	wg.Wait()

	topics := dedupeByTitle(merged)
	if len(topics) == 0 {
		logger.Warn("No usable trend results, synthesizing topic suggestions", "category", category)
		return SuggestTopics(category, s.maxResults), nil
	}

	logger.Info("Trending topics collected", "category", category, "count", len(topics))
	return topics, nil
}

// trendQueries builds the search phrasings for a category.
func trendQueries(category string) []string {
	label := CategoryLabel(category)
	if label == "" {
		return []string{
			"trending technology topics this week",
			"latest software development news",
		}
	}
	return []string{
		"latest " + label + " news",
		label + " trending topics",
		"what is new in " + label,
	}
}

// dedupeByTitle drops topics whose first dedupePrefixLen lowercased
// characters match an earlier topic's.
func dedupeByTitle(topics []core.TrendingTopic) []core.TrendingTopic {
	seen := make(map[string]bool, len(topics))
	var out []core.TrendingTopic
	for _, topic := range topics {
		key := strings.ToLower(topic.Title)
		if runes := []rune(key); len(runes) > dedupePrefixLen {
			key = string(runes[:dedupePrefixLen])
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, topic)
	}
	return out
}
