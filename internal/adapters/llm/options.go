package llm

import "github.com/d6vs-git/us-squash-sub000/pkg/logger"

// Option applies a configuration option to the Gemini generator.
type Option func(*Gemini)

// WithModel overrides the generation model.
func WithModel(model string) Option {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTemperature sets the sampling temperature. Planning output is
// consumed structurally, so it defaults low.
func WithTemperature(t float32) Option {
	return func(g *Gemini) {
		g.temperature = &t
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(log logger.Logger) Option {
	return func(g *Gemini) {
		if log != nil {
			g.log = log
		}
	}
}
