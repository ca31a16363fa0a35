// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FederationBaseURL is the upstream ranking/entrants API root.
	FederationBaseURL string `koanf:"federation_base_url"`

	// GenAIAPIKey authenticates the text-generation call.
	GenAIAPIKey string `koanf:"genai_api_key"`

	// GenAIModel selects the generation model.
	GenAIModel string `koanf:"genai_model"`

	// RankingPageSize is the listing page size served by the federation.
	RankingPageSize int `koanf:"ranking_page_size"`

	// MaxSearchPages bounds the player search to cap worst-case latency.
	MaxSearchPages int `koanf:"max_search_pages"`

	// MaxCandidates caps how many classified tournaments reach the prompt.
	MaxCandidates int `koanf:"max_candidates"`

	// EnrichConcurrency bounds the parallel entrant-lookup fan-out.
	EnrichConcurrency int `koanf:"enrich_concurrency"`

	// EnrichLimit caps how many candidates get authoritative entrant counts.
	EnrichLimit int `koanf:"enrich_limit"`

	// DivisionPopularity maps division names to their share of a
	// tournament's total field.
	DivisionPopularity map[string]float64 `koanf:"division_popularity"`

	// DefaultPopularity is used for divisions absent from the table.
	DefaultPopularity float64 `koanf:"default_popularity"`
}

// New returns the configuration defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		FederationBaseURL: "https://api.ussquash.example/resources",
		GenAIModel:        "gemini-2.0-flash",
		RankingPageSize:   50,
		MaxSearchPages:    20,
		MaxCandidates:     100,
		EnrichConcurrency: 5,
		EnrichLimit:       20,
		DefaultPopularity: 0.2,
	}
}
