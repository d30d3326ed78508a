package search

import "errors"

var (
	// ErrMissingAPIKey is returned when a required API key is not provided
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrNoResults is returned when no configured backend produced results
	ErrNoResults = errors.New("no search results found")

	// ErrNoProviders is returned when no backend has credentials configured
	ErrNoProviders = errors.New("no search backend is configured")
)
