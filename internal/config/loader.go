package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SQUASHPLAN_CONFIG is set
//  3. env (prefix SQUASHPLAN_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SQUASHPLAN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SQUASHPLAN_ADDR, SQUASHPLAN_MAX_SEARCH_PAGES, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("SQUASHPLAN_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "squashplan_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.FederationBaseURL == "":
		return fmt.Errorf("federation_base_url must not be empty: %w", ErrInvalidConfig)
	case c.RankingPageSize < 1:
		return fmt.Errorf("ranking_page_size must be positive: %w", ErrInvalidConfig)
	case c.MaxSearchPages < 1:
		return fmt.Errorf("max_search_pages must be positive: %w", ErrInvalidConfig)
	case c.MaxCandidates < 1:
		return fmt.Errorf("max_candidates must be positive: %w", ErrInvalidConfig)
	case c.EnrichConcurrency < 1:
		return fmt.Errorf("enrich_concurrency must be positive: %w", ErrInvalidConfig)
	}
	return nil
}
