package assemble

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"draftforge/internal/core"
)

var slugPatternRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks structural conventions of an assembled article and
// returns human-readable issues. Callers log these; validation never
// blocks assembly.
func Validate(article core.Article) []string {
	var issues []string

	if strings.TrimSpace(article.Title) == "" {
		issues = append(issues, "title is empty")
	}
	if !slugPatternRe.MatchString(article.Slug) {
		issues = append(issues, fmt.Sprintf("slug %q is not lowercase-hyphen", article.Slug))
	}
	if !strings.Contains(article.Content, "\n## ") && !strings.HasPrefix(article.Content, "## ") {
		issues = append(issues, "content has no H2 sections")
	}
	if n := utf8.RuneCountInString(article.SEO.MetaTitle); n == 0 || n > 60 {
		issues = append(issues, fmt.Sprintf("meta title length %d outside 1-60", n))
	}
	if n := utf8.RuneCountInString(article.SEO.MetaDescription); n == 0 || n > 160 {
		issues = append(issues, fmt.Sprintf("meta description length %d outside 1-160", n))
	}
	if article.Excerpt == "" {
		issues = append(issues, "excerpt is empty")
	}
	if article.Status == core.StatusPublished && article.PublishedAt == nil {
		issues = append(issues, "published article has no publishedAt")
	}
	if article.Status == core.StatusDraft && article.PublishedAt != nil {
		issues = append(issues, "draft article has a publishedAt")
	}

	return issues
}
