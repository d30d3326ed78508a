// Package seo generates search-engine metadata for articles and scores
// assembled articles with a deterministic rubric.
package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"draftforge/internal/core"
	"draftforge/internal/llm"
	"draftforge/internal/logger"
)

const (
	maxMetaTitleLen       = 60
	maxMetaDescriptionLen = 160
	maxExcerptLen         = 200
	maxKeywords           = 8
	maxTags               = 5

	// thresholds under which a model-provided value is treated as absent
	minMetaTitleLen       = 10
	minMetaDescriptionLen = 50
	minExcerptLen         = 50
)

// Completer is the completion surface the generator needs.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string, opts llm.Options, out any) error
}

// Metadata is the normalized result of one SEO generation call.
type Metadata struct {
	SEO     core.SEOMeta
	Excerpt string
	Tags    []core.Tag
}

// Generator produces SEO metadata through the completion client.
type Generator struct {
	llm Completer
}

// NewGenerator creates a metadata generator over a completion client.
func NewGenerator(llm Completer) *Generator {
	return &Generator{llm: llm}
}

const seoSystemPrompt = `You are an SEO specialist for a technical blog.
Respond with a single JSON object and nothing else.`

// seoPayload is the model's wire shape. Keywords arrive either as a
// comma-separated string or as a list, depending on the model's mood.
type seoPayload struct {
	MetaTitle       string          `json:"metaTitle"`
	MetaDescription string          `json:"metaDescription"`
	Excerpt         string          `json:"excerpt"`
	Keywords        json.RawMessage `json:"keywords"`
	Tags            []string        `json:"tags"`
}

// Generate asks the model for metadata and normalizes the result: length
// clamps, synthesized fallbacks for absent or too-short values, keyword
// and tag caps.
func (g *Generator) Generate(ctx context.Context, article core.Article) (Metadata, error) {
	var payload seoPayload

	prompt := buildSEOPrompt(article)
	if err := g.llm.CompleteJSON(ctx, seoSystemPrompt, prompt, llm.Options{}, &payload); err != nil {
		return Metadata{}, fmt.Errorf("generate seo for %q: %w", article.Title, err)
	}

	keywords, err := NormalizeKeywords(payload.Keywords)
	if err != nil {
		return Metadata{}, fmt.Errorf("generate seo for %q: %w", article.Title, err)
	}

	meta := Metadata{
		SEO: core.SEOMeta{
			MetaTitle:       normalizeMetaTitle(payload.MetaTitle, article.Title),
			MetaDescription: normalizeMetaDescription(payload.MetaDescription, article.Content),
			Keywords:        keywords,
		},
	}
	meta.Excerpt = normalizeExcerpt(payload.Excerpt, meta.SEO.MetaDescription)

	tags := payload.Tags
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	meta.SEO.Tags = tags
	for _, tag := range tags {
		meta.Tags = append(meta.Tags, core.Tag{Tag: tag})
	}

	logger.Debug("SEO metadata generated", "title", article.Title, "keywords", meta.SEO.Keywords)
	return meta, nil
}

func buildSEOPrompt(article core.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Produce SEO metadata for this article.\n\nTitle: %s\n\n", article.Title)
	fmt.Fprintf(&b, "Content (beginning):\n%s\n", clamp(StripMarkdown(article.Content), 2000))
	b.WriteString(`
Return a JSON object with this exact shape:
{
  "metaTitle": "max 60 characters",
  "metaDescription": "max 160 characters, compelling",
  "excerpt": "max 200 characters, teaser for listings",
  "keywords": ["five", "to", "eight", "keywords"],
  "tags": ["up", "to", "five", "tags"]
}`)

	return b.String()
}

// NormalizeKeywords coerces the model's keywords value, a JSON string or a
// JSON list, into a comma-joined string of at most 8 lowercased trimmed
// terms. Any other shape is ErrInvalidKeywords. An absent value yields an
// empty string.
func NormalizeKeywords(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var terms []string
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		terms = strings.Split(asString, ",")
	} else {
		var asList []string
		if err := json.Unmarshal(raw, &asList); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidKeywords, clamp(string(raw), 80))
		}
		terms = asList
	}

	var out []string
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		out = append(out, term)
		if len(out) == maxKeywords {
			break
		}
	}
	return strings.Join(out, ", "), nil
}

func normalizeMetaTitle(metaTitle, title string) string {
	if utf8.RuneCountInString(metaTitle) < minMetaTitleLen {
		metaTitle = title
	}
	return clamp(metaTitle, maxMetaTitleLen)
}

func normalizeMetaDescription(metaDescription, content string) string {
	if utf8.RuneCountInString(metaDescription) < minMetaDescriptionLen {
		metaDescription = StripMarkdown(content)
	}
	return clamp(metaDescription, maxMetaDescriptionLen)
}

func normalizeExcerpt(excerpt, metaDescription string) string {
	if utf8.RuneCountInString(excerpt) < minExcerptLen {
		excerpt = metaDescription
	}
	return clamp(excerpt, maxExcerptLen)
}

var (
	markupRe  = regexp.MustCompile("[*_`#>\\[\\]()]")
	spacesRe  = regexp.MustCompile(`\s+`)
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s.*$`)
)

// StripMarkdown flattens markdown to plain prose: headings dropped,
// inline markup characters removed, whitespace collapsed.
func StripMarkdown(text string) string {
	text = headingRe.ReplaceAllString(text, "")
	text = markupRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// clamp cuts s to at most n runes, breaking at the last space when one
// exists reasonably close to the limit.
func clamp(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return strings.TrimSpace(s)
	}
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > n/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
