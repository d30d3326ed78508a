package assemble

import (
	"context"
	"fmt"

	"draftforge/internal/core"
	"draftforge/internal/logger"
	"draftforge/internal/pace"
)

// BatchError records one failed topic inside a batch run.
type BatchError struct {
	Topic string
	Err   error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Topic, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// BatchResult is the outcome of a batch run: the articles that succeeded
// and the per-topic errors of those that did not.
type BatchResult struct {
	Articles []core.Article
	Errors   []BatchError
}

// GenerateBatch runs the full pipeline for each topic sequentially, with
// the pacer inserting a pause between successive items. A failing topic is
// recorded and the batch continues; only context cancellation stops the
// run early.
func (g *Generator) GenerateBatch(ctx context.Context, topics []string, opts Options, pacer pace.Pacer) BatchResult {
	if pacer == nil {
		pacer = pace.None{}
	}

	var result BatchResult
	for i, topic := range topics {
		if i > 0 {
			if err := pacer.Wait(ctx); err != nil {
				result.Errors = append(result.Errors, BatchError{Topic: topic, Err: err})
				return result
			}
		}

		article, err := g.Generate(ctx, topic, opts)
		if err != nil {
			logger.Error("Batch item failed", err, "topic", topic)
			result.Errors = append(result.Errors, BatchError{Topic: topic, Err: err})
			if ctx.Err() != nil {
				return result
			}
			continue
		}
		result.Articles = append(result.Articles, article)
	}

	logger.Info("Batch finished", "succeeded", len(result.Articles), "failed", len(result.Errors))
	return result
}
