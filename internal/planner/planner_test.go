package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"draftforge/internal/llm"
)

// mockCompleter returns a canned JSON payload for every CompleteJSON call.
type mockCompleter struct {
	payload string
	err     error
	prompts []string
}

func (m *mockCompleter) CompleteJSON(ctx context.Context, system, user string, opts llm.Options, out any) error {
	m.prompts = append(m.prompts, user)
	if m.err != nil {
		return m.err
	}
	return json.Unmarshal([]byte(m.payload), out)
}

const validOutlineJSON = `{
	"title": "Getting Started With htmx",
	"articleType": "tutorial",
	"angle": "server-driven interactivity without a build step",
	"targetAudience": "backend developers",
	"introduction": {"hook": "h", "context": "c", "promise": "p"},
	"sections": [
		{"h2": "Why htmx", "narrativeGoal": "motivate", "keyPoints": ["no build step"], "subsections": []},
		{"h2": "First request", "narrativeGoal": "show code", "keyPoints": ["hx-get"], "subsections": [{"h3": "Swapping", "content": "targets"}]}
	],
	"conclusion": {"type": "summary", "direction": "ship it"},
	"estimatedWordCount": 1600
}`

func TestPlanTopicValidOutline(t *testing.T) {
	mock := &mockCompleter{payload: validOutlineJSON}
	planner := New(mock)

	outline, err := planner.PlanTopic(context.Background(), "htmx for backend developers", PlanOptions{
		Category: "webDevelopment",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if outline.Title != "Getting Started With htmx" {
		t.Errorf("Expected title from payload, got %q", outline.Title)
	}
	if len(outline.Sections) != 2 {
		t.Errorf("Expected 2 sections, got %d", len(outline.Sections))
	}
	if outline.Sections[1].Subsections[0].H3 != "Swapping" {
		t.Errorf("Expected nested subsection, got %+v", outline.Sections[1])
	}
}

func TestPlanTopicBackfillsTitleFromProposedTitle(t *testing.T) {
	payload := `{
		"proposedTitle": "Older Shape Title",
		"sections": [{"h2": "One", "narrativeGoal": "g", "keyPoints": [], "subsections": []}],
		"introduction": {"hook": "", "context": "", "promise": ""},
		"conclusion": {"type": "", "direction": ""}
	}`
	planner := New(&mockCompleter{payload: payload})

	outline, err := planner.PlanTopic(context.Background(), "some topic", PlanOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if outline.Title != "Older Shape Title" {
		t.Errorf("Expected title backfilled from proposedTitle, got %q", outline.Title)
	}
}

func TestPlanTopicNoSections(t *testing.T) {
	payload := `{"title": "Empty Plan", "sections": []}`
	planner := New(&mockCompleter{payload: payload})

	_, err := planner.PlanTopic(context.Background(), "some topic", PlanOptions{})
	if !errors.Is(err, ErrInvalidOutline) {
		t.Errorf("Expected ErrInvalidOutline, got %v", err)
	}
}

func TestPlanTopicEmptyInput(t *testing.T) {
	planner := New(&mockCompleter{payload: validOutlineJSON})

	if _, err := planner.PlanTopic(context.Background(), "   ", PlanOptions{}); err == nil {
		t.Error("Expected error for blank topic")
	}
}

func TestPlanTopicPropagatesCompletionError(t *testing.T) {
	wantErr := errors.New("upstream down")
	planner := New(&mockCompleter{err: wantErr})

	_, err := planner.PlanTopic(context.Background(), "topic", PlanOptions{})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped completion error, got %v", err)
	}
}

func TestPlanPromptIncludesContext(t *testing.T) {
	mock := &mockCompleter{payload: validOutlineJSON}
	planner := New(mock)

	_, err := planner.PlanTopic(context.Background(), "edge rendering", PlanOptions{
		Category:      "webDevelopment",
		Language:      "de",
		TargetWords:   2000,
		OnlineContext: "CDN vendors shipped new runtimes this month",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(mock.prompts) != 1 {
		t.Fatalf("Expected a single completion call, got %d", len(mock.prompts))
	}

	prompt := mock.prompts[0]
	for _, want := range []string{"edge rendering", "web development", "German", "2000", "CDN vendors"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
