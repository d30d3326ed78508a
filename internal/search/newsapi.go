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

// NewsAPIProvider implements Provider using NewsAPI, the tertiary backend.
// It favors freshness: results come from recent news coverage.
type NewsAPIProvider struct {
	apiKey string
	client *http.Client
	pace   rateGate
}

// NewNewsAPIProvider creates a new NewsAPI search backend.
func NewNewsAPIProvider(apiKey string) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		pace:   rateGate{limit: 500 * time.Millisecond},
	}
}

// Name returns the name of this backend.
func (n *NewsAPIProvider) Name() string {
	return "newsapi"
}

// Search performs a search against the NewsAPI "everything" endpoint.
func (n *NewsAPIProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	n.pace.wait()

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	if cfg.MaxResults > 0 {
		params.Set("pageSize", strconv.Itoa(cfg.MaxResults))
	}
	if cfg.Language != "" {
		params.Set("language", cfg.Language)
	}
	if cfg.SinceTime > 0 {
		params.Set("from", time.Now().Add(-cfg.SinceTime).Format("2006-01-02"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://newsapi.org/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create NewsAPI request: %w", err)
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute NewsAPI request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse NewsAPI response: %w", err)
	}

	if apiResponse.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI error: %s", apiResponse.Message)
	}

	var results []Result
	for _, item := range apiResponse.Articles {
		result := Result{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      n.Name(),
		}
		if published, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
			result.PublishedAt = published
		}
		results = append(results, result)
	}

	logger.Debug("NewsAPI search completed", "query", query, "results", len(results))
	return results, nil
}
