package writer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"draftforge/internal/core"
	"draftforge/internal/llm"
)

type mockCompleter struct {
	response string
	err      error
	prompts  []string
	opts     []llm.Options
}

func (m *mockCompleter) Complete(ctx context.Context, system, user string, opts llm.Options) (string, error) {
	m.prompts = append(m.prompts, user)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testOutline() core.Outline {
	return core.Outline{
		Title:          "Understanding Connection Pools",
		ArticleType:    "guide",
		Angle:          "sizing pools from real latency data",
		TargetAudience: "backend developers",
		Introduction:   core.Introduction{Hook: "hook", Context: "ctx", Promise: "promise"},
		Sections: []core.Section{
			{H2: "Why Pools Exist", NarrativeGoal: "motivate", KeyPoints: []string{"connection cost"}},
			{H2: "Sizing a Pool", NarrativeGoal: "teach", KeyPoints: []string{"Little's law"},
				Subsections: []core.Subsection{{H3: "Measuring latency", Content: "histograms"}}},
		},
		Conclusion:         core.Conclusion{Type: "summary", Direction: "start small"},
		EstimatedWordCount: 1500,
	}
}

func TestWriteContentCleansOutput(t *testing.T) {
	mock := &mockCompleter{response: "# Understanding Connection Pools\n\n## Why Pools Exist\n\nOpening a connection is expensive.\n\n\n\nReuse amortizes the cost."}
	w := New(mock)

	content, err := w.WriteContent(context.Background(), testOutline(), WriteOptions{Language: "en"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(content, "# Understanding Connection Pools") {
		t.Error("Expected H1 stripped from generated content")
	}
	if !strings.Contains(content, "## Why Pools Exist") {
		t.Error("Expected section heading kept")
	}
	if strings.Contains(content, "\n\n\n") {
		t.Error("Expected blank runs collapsed")
	}
}

func TestWriteContentPromptEmbedsOutline(t *testing.T) {
	mock := &mockCompleter{response: "body"}
	w := New(mock)

	_, err := w.WriteContent(context.Background(), testOutline(), WriteOptions{Language: "de", TargetWords: 1800})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prompt := mock.prompts[0]
	for _, want := range []string{
		"Understanding Connection Pools", "Why Pools Exist", "Little's law",
		"Measuring latency", "start small", "German", "1800",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestWriteContentTokenBudget(t *testing.T) {
	mock := &mockCompleter{response: "body"}
	w := New(mock)

	_, err := w.WriteContent(context.Background(), testOutline(), WriteOptions{TargetWords: 2000})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := mock.opts[0].MaxTokens; got != 4000 {
		t.Errorf("Expected token budget 4000 for 2000 words, got %d", got)
	}
}

func TestWriteContentEmptyOutline(t *testing.T) {
	w := New(&mockCompleter{response: "body"})

	if _, err := w.WriteContent(context.Background(), core.Outline{}, WriteOptions{}); err == nil {
		t.Error("Expected error for outline without sections")
	}
}

func TestWriteContentPropagatesError(t *testing.T) {
	wantErr := errors.New("rate limited")
	w := New(&mockCompleter{err: wantErr})

	_, err := w.WriteContent(context.Background(), testOutline(), WriteOptions{})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped completion error, got %v", err)
	}
}

func TestTokenBudget(t *testing.T) {
	if got := tokenBudget(0); got != 0 {
		t.Errorf("Expected 0 for unset target, got %d", got)
	}
	if got := tokenBudget(2000); got != 4000 {
		t.Errorf("Expected 4000, got %d", got)
	}
	if got := tokenBudget(100000); got != llm.MaxTokenCeiling {
		t.Errorf("Expected budget capped at %d, got %d", llm.MaxTokenCeiling, got)
	}
}
