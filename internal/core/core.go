// Package core holds the shared data model for the article generation
// pipeline. Types here carry no behavior beyond small derivations; every
// other package depends on core, core depends on nothing internal.
package core

import (
	"strings"
	"time"
)

// Status is the publication state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// SEOMeta holds search-engine metadata attached to an article.
type SEOMeta struct {
	MetaTitle       string   `json:"meta_title"`       // <= 60 chars
	MetaDescription string   `json:"meta_description"` // <= 160 chars
	Keywords        string   `json:"keywords"`         // comma-joined, <= 8 terms
	Tags            []string `json:"tags"`             // <= 5 labels
	OGImage         string   `json:"og_image,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
	NoIndex         bool     `json:"no_index"`
}

// Tag is an ordered label attached to an article.
type Tag struct {
	Tag string `json:"tag"`
}

// GenerationMeta is diagnostic information about how an article was
// produced. It is never persisted.
type GenerationMeta struct {
	SourceTopic    string    `json:"source_topic"`
	Angle          string    `json:"angle"`
	OutlineSummary string    `json:"outline_summary"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Article is a generated blog article, in flight or persisted.
type Article struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Excerpt     string          `json:"excerpt"`
	Content     string          `json:"content"`
	CoverImage  string          `json:"cover_image,omitempty"`
	SEO         SEOMeta         `json:"seo"`
	Status      Status          `json:"status"`
	PublishedAt *time.Time      `json:"published_at,omitempty"` // set iff Status == published
	Tags        []Tag           `json:"tags"`
	Author      string          `json:"author"`
	ReadingTime int             `json:"reading_time"` // minutes
	Generation  *GenerationMeta `json:"-"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// WordCount counts whitespace-separated words in the article content.
func (a *Article) WordCount() int {
	return len(strings.Fields(a.Content))
}

// EstimateReadingTime derives reading time in minutes from a word count,
// assuming 200 words per minute, rounded up.
func EstimateReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + 199) / 200
}

// Outline is the structured plan produced before full content is written.
type Outline struct {
	Title              string       `json:"title"`
	ProposedTitle      string       `json:"proposedTitle,omitempty"` // older shape, backfills Title
	ArticleType        string       `json:"articleType"`
	Angle              string       `json:"angle"`
	TargetAudience     string       `json:"targetAudience"`
	Introduction       Introduction `json:"introduction"`
	Sections           []Section    `json:"sections"`
	Conclusion         Conclusion   `json:"conclusion"`
	EstimatedWordCount int          `json:"estimatedWordCount"`
}

// Introduction describes the opening of the planned article.
type Introduction struct {
	Hook    string `json:"hook"`
	Context string `json:"context"`
	Promise string `json:"promise"`
}

// Section is one H2-level block of the outline.
type Section struct {
	H2            string       `json:"h2"`
	NarrativeGoal string       `json:"narrativeGoal"`
	KeyPoints     []string     `json:"keyPoints"`
	Subsections   []Subsection `json:"subsections"`
}

// Subsection is one H3-level block nested inside a section.
type Subsection struct {
	H3      string `json:"h3"`
	Content string `json:"content"`
}

// Conclusion describes how the planned article should close.
type Conclusion struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
}

// LocaleText maps a locale code to text in that locale.
type LocaleText map[string]string

// MultilingualSEO is SEOMeta with locale-sensitive fields split per locale.
type MultilingualSEO struct {
	MetaTitle       LocaleText `json:"meta_title"`
	MetaDescription LocaleText `json:"meta_description"`
	Keywords        LocaleText `json:"keywords"`
	Tags            []string   `json:"tags"`
	OGImage         string     `json:"og_image,omitempty"`
	CanonicalURL    string     `json:"canonical_url,omitempty"`
	NoIndex         bool       `json:"no_index"`
}

// MultilingualArticle is an Article whose locale-sensitive fields became
// locale-keyed maps. Non-locale fields stay scalar.
type MultilingualArticle struct {
	ID           string          `json:"id,omitempty"`
	Title        LocaleText      `json:"title"`
	Excerpt      LocaleText      `json:"excerpt"`
	Content      LocaleText      `json:"content"`
	SEO          MultilingualSEO `json:"seo"`
	Slug         string          `json:"slug"`
	CoverImage   string          `json:"cover_image,omitempty"`
	Status       Status          `json:"status"`
	PublishedAt  *time.Time      `json:"published_at,omitempty"`
	Tags         []Tag           `json:"tags"`
	Author       string          `json:"author"`
	ReadingTime  int             `json:"reading_time"`
	SourceLocale string          `json:"source_locale"`
	Locales      []string        `json:"locales"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// NewMultilingualArticle seeds a multilingual article from a source article,
// populating every locale-keyed field with the source locale entry.
func NewMultilingualArticle(a Article, sourceLocale string) MultilingualArticle {
	return MultilingualArticle{
		ID:      a.ID,
		Title:   LocaleText{sourceLocale: a.Title},
		Excerpt: LocaleText{sourceLocale: a.Excerpt},
		Content: LocaleText{sourceLocale: a.Content},
		SEO: MultilingualSEO{
			MetaTitle:       LocaleText{sourceLocale: a.SEO.MetaTitle},
			MetaDescription: LocaleText{sourceLocale: a.SEO.MetaDescription},
			Keywords:        LocaleText{sourceLocale: a.SEO.Keywords},
			Tags:            a.SEO.Tags,
			OGImage:         a.SEO.OGImage,
			CanonicalURL:    a.SEO.CanonicalURL,
			NoIndex:         a.SEO.NoIndex,
		},
		Slug:         a.Slug,
		CoverImage:   a.CoverImage,
		Status:       a.Status,
		PublishedAt:  a.PublishedAt,
		Tags:         a.Tags,
		Author:       a.Author,
		ReadingTime:  a.ReadingTime,
		SourceLocale: sourceLocale,
		Locales:      []string{sourceLocale},
	}
}

// TrendingTopic is a normalized result from any trend search backend.
type TrendingTopic struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// SEOScore is a derived, ephemeral quality score for an article. It is
// recomputed on demand and never persisted.
type SEOScore struct {
	Title           int      `json:"title"`            // max 20
	MetaTitle       int      `json:"meta_title"`       // max 15
	MetaDescription int      `json:"meta_description"` // max 15
	Keywords        int      `json:"keywords"`         // max 15
	Content         int      `json:"content"`          // max 20
	Structure       int      `json:"structure"`        // max 15
	Total           int      `json:"total"`            // out of 100
	Level           string   `json:"level"`
	Feedback        []string `json:"feedback"`
}
