// Package llm adapts Google's Gemini API to the planner's text-generation
// contract.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/d6vs-git/us-squash-sub000/pkg/logger"
)

const defaultModel = "gemini-2.0-flash"

// Gemini generates plan text through the Gemini API. It satisfies the
// planner's TextGenerator contract.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature *float32
	log         logger.Logger
}

// NewGemini constructs a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	g := &Gemini{
		client: client,
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Get().Named("llm")
	}
	return g, nil
}

// Generate sends the prompt and returns the response text verbatim.
// Structural validation of the output is the caller's concern.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if g.temperature != nil {
		config.Temperature = g.temperature
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.log.Debug(ctx, "generation complete",
		logger.String("model", g.model),
		logger.Int("chars", len(text)),
	)
	return text, nil
}
