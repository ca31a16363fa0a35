package llm

import "errors"

// Sentinel kinds for text-generation errors.
var (
	ErrMissingAPIKey = errors.New("generation API key is required")
	ErrGenerate      = errors.New("generation call failed")
	ErrEmptyResponse = errors.New("generation returned no text")
)
