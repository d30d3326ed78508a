package core

import "testing"

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"zero words", 0, 0},
		{"negative words", -5, 0},
		{"one word", 1, 1},
		{"exactly one minute", 200, 1},
		{"just over one minute", 201, 2},
		{"ten minutes", 2000, 10},
		{"rounds up", 2001, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadingTime(tt.words); got != tt.want {
				t.Errorf("EstimateReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	a := Article{Content: "one two  three\nfour\t five"}
	if got := a.WordCount(); got != 5 {
		t.Errorf("WordCount() = %d, want 5", got)
	}

	empty := Article{}
	if got := empty.WordCount(); got != 0 {
		t.Errorf("WordCount() on empty content = %d, want 0", got)
	}
}

func TestNewMultilingualArticleSeedsSourceLocale(t *testing.T) {
	source := Article{
		ID:      "article-1",
		Title:   "Connection Pools Explained",
		Excerpt: "A practical look at pool sizing.",
		Content: "## Sizing\n\nStart small.",
		Slug:    "connection-pools-explained",
		Status:  StatusDraft,
		Author:  "Pat",
		SEO: SEOMeta{
			MetaTitle:       "Connection Pools Explained",
			MetaDescription: "A practical look at pool sizing for busy services.",
			Keywords:        "connection pools, sizing",
			Tags:            []string{"databases"},
		},
		Tags:        []Tag{{Tag: "databases"}},
		ReadingTime: 3,
	}

	ml := NewMultilingualArticle(source, "en")

	if ml.Title["en"] != source.Title {
		t.Errorf("Title[en] = %q, want %q", ml.Title["en"], source.Title)
	}
	if ml.Content["en"] != source.Content {
		t.Errorf("Content[en] = %q, want source content", ml.Content["en"])
	}
	if ml.SEO.MetaTitle["en"] != source.SEO.MetaTitle {
		t.Errorf("SEO.MetaTitle[en] = %q, want source meta title", ml.SEO.MetaTitle["en"])
	}
	if ml.SEO.Keywords["en"] != source.SEO.Keywords {
		t.Errorf("SEO.Keywords[en] = %q, want source keywords", ml.SEO.Keywords["en"])
	}
	if ml.SourceLocale != "en" {
		t.Errorf("SourceLocale = %q, want en", ml.SourceLocale)
	}
	if len(ml.Locales) != 1 || ml.Locales[0] != "en" {
		t.Errorf("Locales = %v, want [en]", ml.Locales)
	}
	if ml.Slug != source.Slug || ml.Author != source.Author || ml.ReadingTime != source.ReadingTime {
		t.Error("scalar fields should carry over unchanged")
	}
}

func TestLanguageLabel(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "English"},
		{"de", "German"},
		{"ja", "Japanese"},
		{"xx", "xx"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := LanguageLabel(tt.locale); got != tt.want {
			t.Errorf("LanguageLabel(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
