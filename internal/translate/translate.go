// Package translate renders an article into multiple locales. Locales are
// translated concurrently; a failing locale falls back to the source text
// rather than failing the whole assembly.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"draftforge/internal/core"
	"draftforge/internal/llm"
	"draftforge/internal/logger"
)

// Completer is the completion surface the translator needs.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts llm.Options) (string, error)
	CompleteJSON(ctx context.Context, system, user string, opts llm.Options, out any) error
}

// Translator translates article fields between locales.
type Translator struct {
	llm Completer
}

// New creates a translator over a completion client.
func New(llm Completer) *Translator {
	return &Translator{llm: llm}
}

const translateSystemPrompt = `You are a professional translator for technical content.
Translate precisely, keep markdown structure, code blocks and proper nouns intact.
Respond with the translation only, no commentary.`

// TranslateText translates a single text between locales. Translating into
// the source locale is a no-op and makes no network call.
func (t *Translator) TranslateText(ctx context.Context, text, from, to string) (string, error) {
	if from == to || strings.TrimSpace(text) == "" {
		return text, nil
	}

	prompt := fmt.Sprintf("Translate the following %s text into %s:\n\n%s",
		core.LanguageLabel(from), core.LanguageLabel(to), text)
	out, err := t.llm.Complete(ctx, translateSystemPrompt, prompt, llm.Options{})
	if err != nil {
		return "", fmt.Errorf("translate %s to %s: %w", from, to, err)
	}
	return strings.TrimSpace(out), nil
}

// localeFields is one locale's translated field set.
type localeFields struct {
	title   string
	excerpt string
	content string
	seo     seoFields
}

type seoFields struct {
	metaTitle       string
	metaDescription string
	keywords        string
}

// TranslateArticle renders the article into every target locale. All
// locales run concurrently, and within a locale the four units (content,
// title, excerpt, SEO block) run concurrently as well.
//
// A locale where any unit's call fails falls back to the source values for
// all of its fields; partial locales are not produced. The one exception
// is the SEO block: when its payload comes back unusable the SEO fields
// alone fall back to the source SEO while the locale's other units keep
// their translations.
func (t *Translator) TranslateArticle(ctx context.Context, article core.Article, source string, targets []string) (core.MultilingualArticle, error) {
	ml := core.NewMultilingualArticle(article, source)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, target := range targets {
		if target == source {
			continue
		}

		wg.Add(1)
		go func(locale string) {
			defer wg.Done()

			fields, err := t.translateLocale(ctx, article, source, locale)
			if err != nil {
				logger.Warn("Locale translation failed, falling back to source", "locale", locale, "error", err.Error())
				fields = localeFields{
					title:   article.Title,
					excerpt: article.Excerpt,
					content: article.Content,
					seo: seoFields{
						metaTitle:       article.SEO.MetaTitle,
						metaDescription: article.SEO.MetaDescription,
						keywords:        article.SEO.Keywords,
					},
				}
			}

			mu.Lock()
			defer mu.Unlock()
			ml.Title[locale] = fields.title
			ml.Excerpt[locale] = fields.excerpt
			ml.Content[locale] = fields.content
			ml.SEO.MetaTitle[locale] = fields.seo.metaTitle
			ml.SEO.MetaDescription[locale] = fields.seo.metaDescription
			ml.SEO.Keywords[locale] = fields.seo.keywords
		}(target)
	}

	wg.Wait()

	for _, target := range targets {
		if target != source {
			ml.Locales = append(ml.Locales, target)
		}
	}

	logger.Info("Article translated", "slug", article.Slug, "locales", len(ml.Locales))
	return ml, nil
}

// translateLocale runs the four translation units for one locale
// concurrently and joins them. Any unit error fails the whole locale.
func (t *Translator) translateLocale(ctx context.Context, article core.Article, source, target string) (localeFields, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		fields localeFields
		first  error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if first == nil {
			first = err
		}
	}

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(err)
			}
		}()
	}

	run(func() error {
		out, err := t.TranslateText(ctx, article.Title, source, target)
		if err == nil {
			fields.title = out
		}
		return err
	})
	run(func() error {
		out, err := t.TranslateText(ctx, article.Excerpt, source, target)
		if err == nil {
			fields.excerpt = out
		}
		return err
	})
	run(func() error {
		out, err := t.TranslateText(ctx, article.Content, source, target)
		if err == nil {
			fields.content = out
		}
		return err
	})
	run(func() error {
		out, err := t.translateSEO(ctx, article.SEO, source, target)
		if err == nil {
			fields.seo = out
		}
		return err
	})

	wg.Wait()

	if first != nil {
		return localeFields{}, first
	}
	return fields, nil
}

// seoPayload is the wire shape of the SEO translation call.
type seoPayload struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	Excerpt         string `json:"excerpt"`
}

// translateSEO translates the SEO block in one JSON call. An unusable
// payload is not an error: the source SEO fields are kept for this locale
// while the locale's other units stand.
func (t *Translator) translateSEO(ctx context.Context, seo core.SEOMeta, source, target string) (seoFields, error) {
	fallback := seoFields{
		metaTitle:       seo.MetaTitle,
		metaDescription: seo.MetaDescription,
		keywords:        seo.Keywords,
	}

	prompt := fmt.Sprintf(`Translate the values of this %s SEO metadata into %s.
Return a JSON object with exactly these four keys: metaTitle, metaDescription, keywords, excerpt.
Keep metaTitle under 60 characters and metaDescription under 160 characters.

{"metaTitle": %q, "metaDescription": %q, "keywords": %q, "excerpt": ""}`,
		core.LanguageLabel(source), core.LanguageLabel(target),
		seo.MetaTitle, seo.MetaDescription, seo.Keywords)

	var payload seoPayload
	if err := t.llm.CompleteJSON(ctx, translateSystemPrompt, prompt, llm.Options{}, &payload); err != nil {
		if errors.Is(err, llm.ErrInvalidJSON) {
			logger.Warn("SEO translation unusable, keeping source SEO", "locale", target, "error", err.Error())
			return fallback, nil
		}
		return seoFields{}, err
	}

	if payload.MetaTitle == "" || payload.MetaDescription == "" {
		logger.Warn("SEO translation incomplete, keeping source SEO", "locale", target)
		return fallback, nil
	}

	return seoFields{
		metaTitle:       payload.MetaTitle,
		metaDescription: payload.MetaDescription,
		keywords:        payload.Keywords,
	}, nil
}
