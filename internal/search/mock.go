package search

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider implements Provider for testing purposes. Safe for
// concurrent use.
type MockProvider struct {
	mu      sync.Mutex
	name    string
	results []Result
	err     error
	calls   int
}

// NewMockProvider creates a mock backend with a canned result set.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "mock",
		results: []Result{
			{
				Title:       "Example Article 1",
				Description: "This is a mock search result for testing purposes.",
				URL:         "https://example.com/article1",
				Source:      "mock",
			},
			{
				Title:       "Test Article 2",
				Description: "Another mock search result with different content.",
				URL:         "https://test.org/article2",
				Source:      "mock",
			},
			{
				Title:       "Demo Article 3",
				Description: "Third mock result to simulate multiple search results.",
				URL:         "https://demo.net/article3",
				Source:      "mock",
			},
		},
	}
}

// Name returns the name of this backend.
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns the canned results, annotated with the query.
func (m *MockProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	results := make([]Result, maxResults)
	for i := 0; i < maxResults; i++ {
		result := m.results[i]
		result.Title = fmt.Sprintf("%s (for query: %s)", result.Title, query)
		results[i] = result
	}

	return results, nil
}

// SetResults customizes the mock result set.
func (m *MockProvider) SetResults(results []Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
}

// SetName customizes the backend name.
func (m *MockProvider) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
}

// SetError makes every Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Search was invoked.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
