// Package planner turns a raw topic into a structured article outline via
// a single JSON-mode completion.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"draftforge/internal/core"
	"draftforge/internal/llm"
	"draftforge/internal/logger"
	"draftforge/internal/trends"
)

// ErrInvalidOutline means the model returned an outline without sections.
var ErrInvalidOutline = errors.New("outline has no sections")

// Completer is the completion surface the planner needs.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string, opts llm.Options, out any) error
}

// PlanOptions shape the outline request.
type PlanOptions struct {
	Category      string
	Language      string // locale code, e.g. "en"
	TargetWords   int
	OnlineContext string // research notes, optional
}

// Planner builds outlines.
type Planner struct {
	llm Completer
}

// New creates a planner over a completion client.
func New(llm Completer) *Planner {
	return &Planner{llm: llm}
}

const planSystemPrompt = `You are an experienced editorial strategist for a technical blog.
You design article outlines that are specific, opinionated and worth reading.
Respond with a single JSON object and nothing else.`

// PlanTopic asks the model for a structured outline of the raw topic. The
// outline must contain at least one section, otherwise ErrInvalidOutline.
func (p *Planner) PlanTopic(ctx context.Context, raw string, opts PlanOptions) (core.Outline, error) {
	var outline core.Outline

	if strings.TrimSpace(raw) == "" {
		return outline, fmt.Errorf("plan topic: empty topic")
	}

	prompt := buildPlanPrompt(raw, opts)
	if err := p.llm.CompleteJSON(ctx, planSystemPrompt, prompt, llm.Options{}, &outline); err != nil {
		return core.Outline{}, fmt.Errorf("plan topic %q: %w", raw, err)
	}

	// older prompt shapes returned proposedTitle instead of title
	if outline.Title == "" {
		outline.Title = outline.ProposedTitle
	}
	if len(outline.Sections) == 0 {
		return core.Outline{}, fmt.Errorf("plan topic %q: %w", raw, ErrInvalidOutline)
	}

	logger.Info("Topic planned", "topic", raw, "title", outline.Title, "sections", len(outline.Sections))
	return outline, nil
}

func buildPlanPrompt(raw string, opts PlanOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a blog article about the following topic.\n\nTopic: %s\n", raw)
	if opts.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", trends.CategoryLabel(opts.Category))
	}
	if opts.Language != "" {
		fmt.Fprintf(&b, "Write the outline in %s.\n", core.LanguageLabel(opts.Language))
	}
	if opts.TargetWords > 0 {
		fmt.Fprintf(&b, "The finished article should be around %d words.\n", opts.TargetWords)
	}
	if opts.OnlineContext != "" {
		fmt.Fprintf(&b, "\nRecent context gathered from the web, use it to keep the outline current:\n%s\n", opts.OnlineContext)
	}

	b.WriteString(`
Return a JSON object with this exact shape:
{
  "title": "the article title",
  "articleType": "tutorial | analysis | guide | opinion",
  "angle": "the specific angle that makes this article worth reading",
  "targetAudience": "who this is for",
  "introduction": {"hook": "...", "context": "...", "promise": "..."},
  "sections": [
    {
      "h2": "section heading",
      "narrativeGoal": "what this section accomplishes",
      "keyPoints": ["...", "..."],
      "subsections": [{"h3": "subsection heading", "content": "what it covers"}]
    }
  ],
  "conclusion": {"type": "summary | call-to-action | outlook", "direction": "..."},
  "estimatedWordCount": 1800
}
Use between 4 and 7 sections. Subsections are optional per section.`)

	return b.String()
}
