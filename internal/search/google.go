package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"draftforge/internal/logger"
)

// GoogleProvider implements Provider using the Google Custom Search API,
// the secondary backend.
type GoogleProvider struct {
	apiKey   string
	searchID string
	client   *http.Client
	pace     rateGate
}

// NewGoogleProvider creates a new Google Custom Search backend.
func NewGoogleProvider(apiKey, searchID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:   apiKey,
		searchID: searchID,
		client:   &http.Client{Timeout: 30 * time.Second},
		pace:     rateGate{limit: 100 * time.Millisecond},
	}
}

// Name returns the name of this backend.
func (g *GoogleProvider) Name() string {
	return "google"
}

// Search performs a search using the Google Custom Search API.
func (g *GoogleProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	g.pace.wait()

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.searchID)
	params.Set("q", query)
	// Google CSE allows at most 10 results per request
	num := cfg.MaxResults
	if num <= 0 || num > 10 {
		num = 10
	}
	params.Set("num", strconv.Itoa(num))
	if cfg.SinceTime > 0 {
		since := time.Now().Add(-cfg.SinceTime)
		params.Set("sort", "date:r:"+since.Format("20060102"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/customsearch/v1?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google CSE request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Google CSE request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google CSE request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Google CSE response: %w", err)
	}

	if apiResponse.Error.Code != 0 {
		return nil, fmt.Errorf("google CSE API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	var results []Result
	for _, item := range apiResponse.Items {
		results = append(results, Result{
			Title:       item.Title,
			Description: item.Snippet,
			URL:         item.Link,
			Source:      g.Name(),
		})
	}

	logger.Debug("Google Custom Search completed", "query", query, "results", len(results))
	return results, nil
}
