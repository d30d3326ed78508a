package assemble

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"draftforge/internal/core"
	"draftforge/internal/pace"
	"draftforge/internal/planner"
)

// failingPlanner fails for one specific topic.
type failingPlanner struct {
	outline core.Outline
	failFor string
	planned []string
}

func (p *failingPlanner) PlanTopic(ctx context.Context, raw string, opts planner.PlanOptions) (core.Outline, error) {
	p.planned = append(p.planned, raw)
	if raw == p.failFor {
		return core.Outline{}, errors.New("simulated planning failure")
	}
	return p.outline, nil
}

type countingPacer struct {
	waits int32
}

func (p *countingPacer) Wait(ctx context.Context) error {
	atomic.AddInt32(&p.waits, 1)
	return ctx.Err()
}

func TestGenerateBatchIsolatesFailures(t *testing.T) {
	p := &failingPlanner{outline: pipelineOutline(), failFor: "bad topic"}
	g := NewGenerator(Deps{
		Planner: p,
		Writer:  &mockWriter{content: pipelineContent()},
		SEO:     &mockSEO{meta: pipelineMeta()},
	})

	result := g.GenerateBatch(context.Background(), []string{"topic one", "bad topic", "topic three"}, Options{}, pace.None{})

	if len(result.Articles) != 2 {
		t.Errorf("Expected 2 articles, got %d", len(result.Articles))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Topic != "bad topic" {
		t.Errorf("Expected failing topic recorded, got %q", result.Errors[0].Topic)
	}
	if len(p.planned) != 3 {
		t.Errorf("Expected all topics attempted, got %v", p.planned)
	}
}

func TestGenerateBatchPacesBetweenItems(t *testing.T) {
	pacer := &countingPacer{}
	g := NewGenerator(Deps{
		Planner: &failingPlanner{outline: pipelineOutline()},
		Writer:  &mockWriter{content: pipelineContent()},
		SEO:     &mockSEO{meta: pipelineMeta()},
	})

	g.GenerateBatch(context.Background(), []string{"a", "b", "c"}, Options{}, pacer)

	// pauses go between items, not before the first
	if got := atomic.LoadInt32(&pacer.waits); got != 2 {
		t.Errorf("Expected 2 pacer waits for 3 topics, got %d", got)
	}
}

func TestGenerateBatchCancellation(t *testing.T) {
	g := NewGenerator(Deps{
		Planner: &failingPlanner{outline: pipelineOutline()},
		Writer:  &mockWriter{content: pipelineContent()},
		SEO:     &mockSEO{meta: pipelineMeta()},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := g.GenerateBatch(ctx, []string{"a", "b", "c"}, Options{}, pace.NewFixedDelay(time.Minute))

	// the first item runs, the pause before the second sees the cancel
	if len(result.Articles) != 1 {
		t.Errorf("Expected 1 article before cancellation, got %d", len(result.Articles))
	}
	if len(result.Errors) != 1 || result.Errors[0].Topic != "b" {
		t.Errorf("Expected cancellation recorded for second topic, got %+v", result.Errors)
	}
}

func TestGenerateBatchEmptyTopics(t *testing.T) {
	g := NewGenerator(Deps{
		Planner: &failingPlanner{outline: pipelineOutline()},
		Writer:  &mockWriter{content: pipelineContent()},
		SEO:     &mockSEO{meta: pipelineMeta()},
	})

	result := g.GenerateBatch(context.Background(), nil, Options{}, nil)

	if len(result.Articles) != 0 || len(result.Errors) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}
