// Package llm wraps an OpenAI-compatible chat completions API. It knows
// per-model parameter quirks, detects truncation and refusals, and can
// repair truncated JSON output.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"draftforge/internal/config"
	"draftforge/internal/logger"
	"draftforge/internal/retry"
)

const (
	// DefaultMaxTokens is the token budget used when options leave it unset.
	DefaultMaxTokens = 4096
	// MaxTokenCeiling caps the budget growth of the adaptive JSON retry.
	MaxTokenCeiling = 16384
	// jsonRetries is how many extra attempts a truncated JSON completion
	// gets, doubling the token budget each time.
	jsonRetries = 2
)

// Options control a single completion request.
type Options struct {
	Model       string  // overrides the client default when set
	MaxTokens   int     // token budget, DefaultMaxTokens when 0
	Temperature float64 // ignored for reasoning models
	TopP        float64
	JSONMode    bool // ask for a JSON object response
}

// Client is a completion client for an OpenAI-compatible endpoint.
type Client struct {
	http        *resty.Client
	model       string
	temperature float64
	maxTokens   int
	policy      retry.Policy
}

// NewClient builds a client from configuration.
func NewClient(cfg config.AI) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion API key is required; set OPENAI_API_KEY or ai.api_key")
	}

	timeout := 120 * time.Second
	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid ai.timeout %q: %w", cfg.Timeout, err)
		}
		timeout = parsed
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetAuthToken(cfg.APIKey).
			SetTimeout(timeout),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		policy:      retry.DefaultPolicy(),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	MaxTokens           int             `json:"max_tokens,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	Temperature         *float64        `json:"temperature,omitempty"`
	TopP                *float64        `json:"top_p,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// buildRequest assembles the wire request, applying per-model quirks: the
// token limit parameter name depends on the model family, and sampling
// parameters are omitted entirely for reasoning models.
func (c *Client) buildRequest(system, user string, opts Options) chatRequest {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	if usesLegacyTokenParam(model) {
		req.MaxTokens = maxTokens
	} else {
		req.MaxCompletionTokens = maxTokens
	}

	if supportsSampling(model) {
		temperature := opts.Temperature
		if temperature == 0 {
			temperature = c.temperature
		}
		req.Temperature = &temperature
		if opts.TopP > 0 {
			topP := opts.TopP
			req.TopP = &topP
		}
	}

	if opts.JSONMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	return req
}

// send posts one chat request, with retry-with-backoff around transient
// network and rate-limit failures. Client errors other than 429 are not
// retried.
func (c *Client) send(ctx context.Context, req chatRequest) (*chatResponse, error) {
	var out chatResponse

	err := c.policy.Do(ctx, "chat completion", func() error {
		out = chatResponse{}
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&out).
			SetError(&out).
			Post("/chat/completions")
		if err != nil {
			return fmt.Errorf("completion request failed: %w", err)
		}

		status := resp.StatusCode()
		switch {
		case status == http.StatusOK:
			return nil
		case status == http.StatusTooManyRequests || status >= 500:
			return fmt.Errorf("completion API returned status %d", status)
		default:
			message := resp.Status()
			if out.Error != nil {
				message = out.Error.Message
			}
			return retry.Stop(fmt.Errorf("completion API error (%d): %s", status, message))
		}
	})
	if err != nil {
		return nil, err
	}

	if out.Error != nil {
		return nil, fmt.Errorf("completion API error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices: %w", ErrEmptyGeneration)
	}

	return &out, nil
}

// complete runs one request and classifies the outcome.
func (c *Client) complete(ctx context.Context, system, user string, opts Options) (content, finishReason string, err error) {
	resp, err := c.send(ctx, c.buildRequest(system, user, opts))
	if err != nil {
		return "", "", err
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", choice.FinishReason, fmt.Errorf("%w: %s", ErrGenerationRefused, choice.Message.Refusal)
	}
	if choice.Message.Content == "" {
		if choice.FinishReason == "length" {
			return "", choice.FinishReason, ErrGenerationTruncated
		}
		return "", choice.FinishReason, ErrEmptyGeneration
	}

	logger.Debug("Completion finished", "finish_reason", choice.FinishReason, "total_tokens", resp.Usage.TotalTokens)
	return choice.Message.Content, choice.FinishReason, nil
}

// Complete generates plain text from a system and user prompt.
func (c *Client) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	content, _, err := c.complete(ctx, system, user, opts)
	return content, err
}

// CompleteJSON generates a JSON completion and unmarshals it into out.
// When the response is cut off by the token limit the call is retried up to
// two more times with a doubled token budget (capped at MaxTokenCeiling);
// content that fails to parse after a length cutoff goes through structural
// repair before parsing is retried.
func (c *Client) CompleteJSON(ctx context.Context, system, user string, opts Options, out any) error {
	opts.JSONMode = true
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var lastErr error
	for attempt := 0; attempt <= jsonRetries; attempt++ {
		opts.MaxTokens = maxTokens

		content, finishReason, err := c.complete(ctx, system, user, opts)
		if err != nil {
			if attempt < jsonRetries && isTruncated(err) {
				maxTokens = doubleCapped(maxTokens)
				logger.Warn("JSON completion truncated, retrying", "attempt", attempt+1, "max_tokens", maxTokens)
				lastErr = err
				continue
			}
			return err
		}

		text := stripCodeFence(content)
		if err := json.Unmarshal([]byte(text), out); err == nil {
			return nil
		}

		if finishReason == "length" {
			repaired := RepairTruncatedJSON(text)
			if err := json.Unmarshal([]byte(repaired), out); err == nil {
				logger.Warn("Recovered truncated JSON via structural repair")
				return nil
			}
			if attempt < jsonRetries {
				maxTokens = doubleCapped(maxTokens)
				logger.Warn("Truncated JSON not repairable, retrying", "attempt", attempt+1, "max_tokens", maxTokens)
				lastErr = ErrGenerationTruncated
				continue
			}
		}

		return fmt.Errorf("%w: %s", ErrInvalidJSON, excerpt(text, 200))
	}

	return lastErr
}

func isTruncated(err error) bool {
	return errors.Is(err, ErrGenerationTruncated)
}

func doubleCapped(tokens int) int {
	tokens *= 2
	if tokens > MaxTokenCeiling {
		tokens = MaxTokenCeiling
	}
	return tokens
}
