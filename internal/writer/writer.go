// Package writer expands a planned outline into full markdown content and
// cleans the generated text with a deterministic post-processing pipeline.
package writer

import (
	"context"
	"fmt"
	"strings"

	"draftforge/internal/core"
	"draftforge/internal/llm"
	"draftforge/internal/logger"
)

// Completer is the completion surface the writer needs.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts llm.Options) (string, error)
}

// WriteOptions shape the content request.
type WriteOptions struct {
	Language    string // locale code
	TargetWords int
}

// Writer produces article bodies from outlines.
type Writer struct {
	llm     Completer
	cleaner *Cleaner
}

// New creates a writer over a completion client, using the default
// cleanup pattern set.
func New(llm Completer) *Writer {
	return &Writer{llm: llm, cleaner: NewCleaner(nil)}
}

const writeSystemPrompt = `You are a senior technical writer for a developer blog.
You write precise, concrete prose with working examples, never filler.
Output the article body as markdown. Do not include the article title as a heading.
Use ## for section headings and ### for subsections.`

// WriteContent turns an outline into cleaned markdown body text. The H1 is
// injected downstream from the article title, never written here.
func (w *Writer) WriteContent(ctx context.Context, outline core.Outline, opts WriteOptions) (string, error) {
	if len(outline.Sections) == 0 {
		return "", fmt.Errorf("write content: outline has no sections")
	}

	prompt := buildWritePrompt(outline, opts)
	raw, err := w.llm.Complete(ctx, writeSystemPrompt, prompt, llm.Options{
		MaxTokens: tokenBudget(opts.TargetWords),
	})
	if err != nil {
		return "", fmt.Errorf("write content for %q: %w", outline.Title, err)
	}

	cleaned := w.cleaner.Cleanup(raw)
	logger.Info("Content written", "title", outline.Title, "words", len(strings.Fields(cleaned)))
	return cleaned, nil
}

// tokenBudget sizes the completion budget from the word target. Roughly
// 1.5 tokens per word plus headroom for markdown structure.
func tokenBudget(targetWords int) int {
	if targetWords <= 0 {
		return 0 // client default
	}
	budget := targetWords*3/2 + 1000
	if budget > llm.MaxTokenCeiling {
		budget = llm.MaxTokenCeiling
	}
	return budget
}

func buildWritePrompt(outline core.Outline, opts WriteOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write the full article body for this plan.\n\nTitle: %s\n", outline.Title)
	if outline.ArticleType != "" {
		fmt.Fprintf(&b, "Type: %s\n", outline.ArticleType)
	}
	if outline.Angle != "" {
		fmt.Fprintf(&b, "Angle: %s\n", outline.Angle)
	}
	if outline.TargetAudience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", outline.TargetAudience)
	}
	if opts.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", core.LanguageLabel(opts.Language))
	}

	words := opts.TargetWords
	if words <= 0 {
		words = outline.EstimatedWordCount
	}
	if words > 0 {
		fmt.Fprintf(&b, "Target length: about %d words.\n", words)
	}

	b.WriteString("\nIntroduction plan:\n")
	fmt.Fprintf(&b, "- Hook: %s\n- Context: %s\n- Promise: %s\n",
		outline.Introduction.Hook, outline.Introduction.Context, outline.Introduction.Promise)

	b.WriteString("\nSections:\n")
	for i, section := range outline.Sections {
		fmt.Fprintf(&b, "%d. ## %s\n   Goal: %s\n", i+1, section.H2, section.NarrativeGoal)
		for _, point := range section.KeyPoints {
			fmt.Fprintf(&b, "   - %s\n", point)
		}
		for _, sub := range section.Subsections {
			fmt.Fprintf(&b, "   ### %s: %s\n", sub.H3, sub.Content)
		}
	}

	fmt.Fprintf(&b, "\nConclusion: %s (%s)\n", outline.Conclusion.Direction, outline.Conclusion.Type)

	b.WriteString(`
Style constraints:
- No meta commentary about the article itself or its structure.
- Prefer paragraphs; use lists only where enumeration genuinely helps.
- Concrete examples over abstract claims.
- Do not write an "Introduction" or "Conclusion" heading; just write the prose.`)

	return b.String()
}
