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

// SerpAPIProvider implements Provider using SerpAPI, the primary backend.
type SerpAPIProvider struct {
	apiKey string
	client *http.Client
	pace   rateGate
}

// NewSerpAPIProvider creates a new SerpAPI search backend.
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		pace: rateGate{limit: 1 * time.Second},
	}
}

// Name returns the name of this backend.
func (s *SerpAPIProvider) Name() string {
	return "serpapi"
}

// Search performs a search using SerpAPI.
func (s *SerpAPIProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	s.pace.wait()

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.apiKey)
	if cfg.MaxResults > 0 {
		params.Set("num", strconv.Itoa(cfg.MaxResults))
	}
	if cfg.Language != "" {
		params.Set("hl", cfg.Language)
	}
	if cfg.SinceTime > 0 {
		days := int(cfg.SinceTime.Hours() / 24)
		switch {
		case days <= 1:
			params.Set("tbs", "qdr:d")
		case days <= 7:
			params.Set("tbs", "qdr:w")
		case days <= 30:
			params.Set("tbs", "qdr:m")
		default:
			params.Set("tbs", "qdr:y")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://serpapi.com/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SerpAPI request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
			Date    string `json:"date"`
		} `json:"organic_results"`
		Error struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse SerpAPI response: %w", err)
	}

	if apiResponse.Error.Message != "" {
		return nil, fmt.Errorf("SerpAPI error: %s", apiResponse.Error.Message)
	}

	var results []Result
	for _, item := range apiResponse.OrganicResults {
		result := Result{
			Title:       item.Title,
			Description: item.Snippet,
			URL:         item.Link,
			Source:      s.Name(),
		}
		if item.Date != "" {
			if published, err := time.Parse("Jan 2, 2006", item.Date); err == nil {
				result.PublishedAt = published
			}
		}
		results = append(results, result)
	}

	logger.Debug("SerpAPI search completed", "query", query, "results", len(results))
	return results, nil
}
