// Package research gathers online context for a topic before planning.
// Everything here is best effort: failing searches or unreachable pages
// degrade the context, they never fail the pipeline.
package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"draftforge/internal/logger"
	"draftforge/internal/search"
)

const (
	// maxPages is how many top search results get their page fetched.
	maxPages = 3
	// maxPageChars caps the extracted text per page.
	maxPageChars = 1500
	// maxBodyBytes bounds how much of a page body is read at all.
	maxBodyBytes = 2 << 20
)

// Searcher is the slice of the search aggregator the gatherer needs.
type Searcher interface {
	Search(ctx context.Context, query string, cfg search.Config) ([]search.Result, error)
	Configured() bool
}

// Gatherer collects research notes for a topic.
type Gatherer struct {
	search Searcher
	http   *http.Client
}

// NewGatherer creates a gatherer over the ranked search backends.
func NewGatherer(searcher Searcher) *Gatherer {
	return &Gatherer{
		search: searcher,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// GatherContext searches for the topic and assembles research notes from
// result snippets plus extracted text of the top result pages. An empty
// string means no usable context, never an error.
func (g *Gatherer) GatherContext(ctx context.Context, topic string) string {
	if g.search == nil || !g.search.Configured() {
		logger.Debug("No search backend configured, skipping research", "topic", topic)
		return ""
	}

	results, err := g.search.Search(ctx, topic, search.Config{MaxResults: 5})
	if err != nil {
		logger.Warn("Research search failed, continuing without context", "topic", topic, "error", err.Error())
		return ""
	}

	var b strings.Builder
	b.WriteString("Search results:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", r.Title, r.Description, r.URL)
	}

	fetched := 0
	for _, r := range results {
		if fetched == maxPages {
			break
		}
		text, err := g.fetchPageText(ctx, r.URL)
		if err != nil {
			logger.Debug("Research page fetch failed", "url", r.URL, "error", err.Error())
			continue
		}
		if text == "" {
			continue
		}
		fetched++
		fmt.Fprintf(&b, "\nFrom %s:\n%s\n", r.URL, text)
	}

	logger.Info("Research context gathered", "topic", topic, "results", len(results), "pages", fetched)
	return b.String()
}

// fetchPageText downloads one page and extracts its paragraph text.
func (g *Gatherer) fetchPageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "draftforge/1.0 (research)")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return extractPageText(string(body)), nil
}

// mainContentSelectors are tried in order before falling back to the whole
// body.
var mainContentSelectors = []string{
	"article", "main", "[role='main']", ".post-content", ".entry-content", ".content", "#content",
}

// extractPageText pulls readable paragraph text out of an HTML page,
// dropping boilerplate elements first.
func extractPageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript").Remove()

	var b strings.Builder
	collect := func(s *goquery.Selection) {
		s.Find("p, li, blockquote").Each(func(_ int, item *goquery.Selection) {
			text := strings.TrimSpace(item.Text())
			if text == "" || b.Len() >= maxPageChars {
				return
			}
			b.WriteString(text)
			b.WriteString("\n")
		})
	}

	for _, selector := range mainContentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			collect(s)
		})
		if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		collect(doc.Find("body"))
	}

	text := strings.TrimSpace(b.String())
	if len(text) > maxPageChars {
		text = text[:maxPageChars]
	}
	return text
}
