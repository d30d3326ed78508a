// Package assemble orchestrates the article pipeline: research (optional),
// planning, writing, post-processing, SEO, and final assembly. Stages run
// strictly in order; a failed stage aborts the article.
package assemble

import (
	"context"
	"fmt"
	"time"

	"draftforge/internal/core"
	"draftforge/internal/logger"
	"draftforge/internal/planner"
	"draftforge/internal/seo"
	"draftforge/internal/writer"
)

// Planner plans outlines from raw topics.
type Planner interface {
	PlanTopic(ctx context.Context, raw string, opts planner.PlanOptions) (core.Outline, error)
}

// Writer expands an outline into cleaned markdown content.
type Writer interface {
	WriteContent(ctx context.Context, outline core.Outline, opts writer.WriteOptions) (string, error)
}

// SEOGenerator produces normalized metadata for an article.
type SEOGenerator interface {
	Generate(ctx context.Context, article core.Article) (seo.Metadata, error)
}

// Researcher gathers optional online context before planning.
type Researcher interface {
	GatherContext(ctx context.Context, topic string) string
}

// SlugStore is the read side of the document store used for slug probing.
type SlugStore interface {
	FindBySlug(slug string) (*core.Article, error)
}

// Deps are the collaborators a Generator orchestrates. Research and Store
// are optional; without a store every slug is taken as-is.
type Deps struct {
	Planner  Planner
	Writer   Writer
	SEO      SEOGenerator
	Research Researcher
	Store    SlugStore
	Author   string
}

// Options control one article generation.
type Options struct {
	Category       string
	Language       string // locale code, defaults to "en"
	TargetWords    int
	ResearchOnline bool
	AutoPublish    bool
}

// Generator runs the article pipeline.
type Generator struct {
	deps Deps
}

// NewGenerator creates a generator over its collaborators.
func NewGenerator(deps Deps) *Generator {
	return &Generator{deps: deps}
}

// Generate produces one article from a raw topic. Any stage failure aborts
// this article and surfaces the stage's error; there is no pipeline-level
// retry.
func (g *Generator) Generate(ctx context.Context, topic string, opts Options) (core.Article, error) {
	var onlineContext string
	if opts.ResearchOnline && g.deps.Research != nil {
		onlineContext = g.deps.Research.GatherContext(ctx, topic)
	}

	outline, err := g.deps.Planner.PlanTopic(ctx, topic, planner.PlanOptions{
		Category:      opts.Category,
		Language:      language(opts),
		TargetWords:   opts.TargetWords,
		OnlineContext: onlineContext,
	})
	if err != nil {
		return core.Article{}, fmt.Errorf("planning stage: %w", err)
	}

	article, err := g.GenerateFromOutline(ctx, outline, opts)
	if err != nil {
		return core.Article{}, err
	}

	if article.Generation != nil {
		article.Generation.SourceTopic = topic
	}
	return article, nil
}

// GenerateFromOutline runs the pipeline from an existing outline: writing,
// SEO, and final assembly.
func (g *Generator) GenerateFromOutline(ctx context.Context, outline core.Outline, opts Options) (core.Article, error) {
	content, err := g.deps.Writer.WriteContent(ctx, outline, writer.WriteOptions{
		Language:    language(opts),
		TargetWords: opts.TargetWords,
	})
	if err != nil {
		return core.Article{}, fmt.Errorf("writing stage: %w", err)
	}

	draft := core.Article{Title: outline.Title, Content: content}
	meta, err := g.deps.SEO.Generate(ctx, draft)
	if err != nil {
		return core.Article{}, fmt.Errorf("seo stage: %w", err)
	}

	article, err := g.assemble(outline, content, meta, opts)
	if err != nil {
		return core.Article{}, err
	}

	logger.Info("Article assembled", "title", article.Title, "slug", article.Slug, "status", article.Status)
	return article, nil
}

// assemble is the final pure stage: slug, reading time, publication state,
// and a structural validation pass that logs but never fails.
func (g *Generator) assemble(outline core.Outline, content string, meta seo.Metadata, opts Options) (core.Article, error) {
	slug, err := UniqueSlug(g.deps.Store, Slugify(outline.Title))
	if err != nil {
		return core.Article{}, fmt.Errorf("assembly stage: %w", err)
	}

	article := core.Article{
		Title:   outline.Title,
		Slug:    slug,
		Excerpt: meta.Excerpt,
		Content: content,
		SEO:     meta.SEO,
		Status:  core.StatusDraft,
		Tags:    meta.Tags,
		Author:  g.deps.Author,
		Generation: &core.GenerationMeta{
			Angle:          outline.Angle,
			OutlineSummary: outlineSummary(outline),
			GeneratedAt:    time.Now().UTC(),
		},
	}
	article.ReadingTime = core.EstimateReadingTime(article.WordCount())

	if opts.AutoPublish {
		now := time.Now().UTC()
		article.Status = core.StatusPublished
		article.PublishedAt = &now
	}

	for _, issue := range Validate(article) {
		logger.Warn("Article validation issue", "slug", article.Slug, "issue", issue)
	}

	return article, nil
}

func outlineSummary(outline core.Outline) string {
	summary := fmt.Sprintf("%d sections", len(outline.Sections))
	if outline.ArticleType != "" {
		summary = outline.ArticleType + ", " + summary
	}
	return summary
}

func language(opts Options) string {
	if opts.Language == "" {
		return "en"
	}
	return opts.Language
}
