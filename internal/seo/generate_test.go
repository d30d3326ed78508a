package seo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"draftforge/internal/core"
	"draftforge/internal/llm"
)

type mockCompleter struct {
	payload string
	err     error
}

func (m *mockCompleter) CompleteJSON(ctx context.Context, system, user string, opts llm.Options, out any) error {
	if m.err != nil {
		return m.err
	}
	return json.Unmarshal([]byte(m.payload), out)
}

func testArticle() core.Article {
	return core.Article{
		Title:   "Understanding Connection Pools in Production Go Services",
		Content: "## Why Pools Exist\n\n" + strings.TrimSpace(strings.Repeat("word ", 400)),
	}
}

func TestGenerateNormalizesPayload(t *testing.T) {
	payload := `{
		"metaTitle": "Connection Pools in Go: a Production Sizing Guide",
		"metaDescription": "` + strings.Repeat("d", 140) + `",
		"excerpt": "` + strings.Repeat("e", 120) + `",
		"keywords": ["Go", " Connection Pools ", "LATENCY", "sizing", "databases"],
		"tags": ["go", "databases", "performance"]
	}`
	g := NewGenerator(&mockCompleter{payload: payload})

	meta, err := g.Generate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if meta.SEO.MetaTitle != "Connection Pools in Go: a Production Sizing Guide" {
		t.Errorf("Expected meta title kept, got %q", meta.SEO.MetaTitle)
	}
	if meta.SEO.Keywords != "go, connection pools, latency, sizing, databases" {
		t.Errorf("Expected lowercased trimmed keywords, got %q", meta.SEO.Keywords)
	}
	if len(meta.Tags) != 3 || meta.Tags[0].Tag != "go" {
		t.Errorf("Expected 3 tags, got %+v", meta.Tags)
	}
	if utf8.RuneCountInString(meta.Excerpt) != 120 {
		t.Errorf("Expected excerpt kept at 120 chars, got %d", utf8.RuneCountInString(meta.Excerpt))
	}
}

func TestGenerateClampsLongValues(t *testing.T) {
	payload := `{
		"metaTitle": "` + strings.Repeat("t", 100) + `",
		"metaDescription": "` + strings.Repeat("d", 300) + `",
		"excerpt": "` + strings.Repeat("e", 300) + `",
		"keywords": ["a","b","c","d","e","f","g","h","i","j"],
		"tags": ["1","2","3","4","5","6","7"]
	}`
	g := NewGenerator(&mockCompleter{payload: payload})

	meta, err := g.Generate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n := utf8.RuneCountInString(meta.SEO.MetaTitle); n > 60 {
		t.Errorf("Expected meta title clamped to 60, got %d", n)
	}
	if n := utf8.RuneCountInString(meta.SEO.MetaDescription); n > 160 {
		t.Errorf("Expected meta description clamped to 160, got %d", n)
	}
	if n := utf8.RuneCountInString(meta.Excerpt); n > 200 {
		t.Errorf("Expected excerpt clamped to 200, got %d", n)
	}
	if got := len(strings.Split(meta.SEO.Keywords, ", ")); got != 8 {
		t.Errorf("Expected keywords capped at 8, got %d", got)
	}
	if len(meta.Tags) != 5 {
		t.Errorf("Expected tags capped at 5, got %d", len(meta.Tags))
	}
}

func TestGenerateSynthesizesMissingValues(t *testing.T) {
	payload := `{"metaTitle": "short", "metaDescription": "too short", "excerpt": "", "keywords": "go, pools", "tags": []}`
	g := NewGenerator(&mockCompleter{payload: payload})

	article := testArticle()
	meta, err := g.Generate(context.Background(), article)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(meta.SEO.MetaTitle, "Understanding Connection Pools") {
		t.Errorf("Expected meta title synthesized from article title, got %q", meta.SEO.MetaTitle)
	}
	if strings.Contains(meta.SEO.MetaDescription, "##") || meta.SEO.MetaDescription == "too short" {
		t.Errorf("Expected meta description synthesized from stripped content, got %q", meta.SEO.MetaDescription)
	}
	if meta.Excerpt != meta.SEO.MetaDescription {
		t.Errorf("Expected excerpt defaulted to meta description, got %q", meta.Excerpt)
	}
}

func TestGenerateKeywordsAsString(t *testing.T) {
	payload := `{"metaTitle": "A fine meta title for testing", "metaDescription": "` + strings.Repeat("d", 80) + `", "keywords": "Go, Caching,  Performance", "tags": []}`
	g := NewGenerator(&mockCompleter{payload: payload})

	meta, err := g.Generate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if meta.SEO.Keywords != "go, caching, performance" {
		t.Errorf("Expected string keywords normalized, got %q", meta.SEO.Keywords)
	}
}

func TestGenerateInvalidKeywordShape(t *testing.T) {
	payload := `{"metaTitle": "A fine meta title for testing", "keywords": {"nested": true}, "tags": []}`
	g := NewGenerator(&mockCompleter{payload: payload})

	_, err := g.Generate(context.Background(), testArticle())
	if !errors.Is(err, ErrInvalidKeywords) {
		t.Errorf("Expected ErrInvalidKeywords, got %v", err)
	}
}

func TestGeneratePropagatesCompletionError(t *testing.T) {
	wantErr := errors.New("backend down")
	g := NewGenerator(&mockCompleter{err: wantErr})

	_, err := g.Generate(context.Background(), testArticle())
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped completion error, got %v", err)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"list", `["Go", "SQL"]`, "go, sql", false},
		{"string", `"Go, SQL"`, "go, sql", false},
		{"empty list", `[]`, "", false},
		{"empty string", `""`, "", false},
		{"null", `null`, "", false},
		{"blank entries dropped", `["", "go", "  "]`, "go", false},
		{"object", `{"a": 1}`, "", true},
		{"number", `42`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeKeywords(json.RawMessage(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKeywords) {
					t.Errorf("Expected ErrInvalidKeywords, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	in := "## Heading\n\nSome **bold** and `code` with [a link](https://example.com).\n\n### Sub\n\nMore."
	out := StripMarkdown(in)

	if strings.Contains(out, "#") || strings.Contains(out, "**") || strings.Contains(out, "`") {
		t.Errorf("Expected markup removed, got %q", out)
	}
	if !strings.Contains(out, "Some bold and code") {
		t.Errorf("Expected prose kept, got %q", out)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp("short", 60); got != "short" {
		t.Errorf("Expected short string unchanged, got %q", got)
	}
	long := strings.Repeat("word ", 30)
	got := clamp(long, 60)
	if utf8.RuneCountInString(got) > 60 {
		t.Errorf("Expected clamp to 60 runes, got %d", utf8.RuneCountInString(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("Expected trailing space trimmed, got %q", got)
	}
}
