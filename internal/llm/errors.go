package llm

import "errors"

var (
	// ErrGenerationRefused is returned when the upstream signals a content
	// policy refusal for the request.
	ErrGenerationRefused = errors.New("generation refused by model")

	// ErrGenerationTruncated is returned when the generation stopped at the
	// token limit and produced no usable content.
	ErrGenerationTruncated = errors.New("generation truncated at token limit")

	// ErrEmptyGeneration is returned when the model returned empty content
	// for any other reason.
	ErrEmptyGeneration = errors.New("model returned empty content")

	// ErrInvalidJSON is returned when a JSON completion cannot be parsed
	// after all repair attempts and retries are exhausted.
	ErrInvalidJSON = errors.New("model returned invalid JSON")
)
