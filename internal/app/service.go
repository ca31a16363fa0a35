// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	federation "github.com/d6vs-git/us-squash-sub000/internal/adapters/federation"
	llm "github.com/d6vs-git/us-squash-sub000/internal/adapters/llm"
	config "github.com/d6vs-git/us-squash-sub000/internal/config"
	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	plan "github.com/d6vs-git/us-squash-sub000/internal/domain/plan"
	rankings "github.com/d6vs-git/us-squash-sub000/internal/domain/rankings"
	planner "github.com/d6vs-git/us-squash-sub000/internal/planner"
	"github.com/d6vs-git/us-squash-sub000/pkg/logger"
)

// Service implements the API dependencies for the planning system.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	// Collaborators; injectable for tests, built from config otherwise.
	source    rankings.PageSource
	entrants  classify.EntrantsSource
	generator planner.TextGenerator

	planner *planner.Planner

	started     bool
	startedAt   time.Time
	plansServed atomic.Int64
	planErrors  atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPageSource injects a ranking page source.
func WithPageSource(source rankings.PageSource) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithEntrantsSource injects an entrant-count source.
func WithEntrantsSource(entrants classify.EntrantsSource) Option {
	return func(s *Service) {
		s.entrants = entrants
	}
}

// WithGenerator injects a text generator.
func WithGenerator(g planner.TextGenerator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service around the loaded configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting planning service...")

	if s.source == nil {
		client := federation.New(s.cfg.FederationBaseURL)
		s.source = client
		if s.entrants == nil {
			s.entrants = client
		}
	}

	if s.generator == nil {
		gen, err := llm.NewGemini(ctx, s.cfg.GenAIAPIKey, llm.WithModel(s.cfg.GenAIModel))
		if err != nil {
			return err
		}
		s.generator = gen
	}

	s.planner = planner.New(s.source, s.generator,
		planner.WithSearcher(rankings.NewSearcher(s.source,
			rankings.WithPageSize(s.cfg.RankingPageSize),
			rankings.WithMaxPages(s.cfg.MaxSearchPages),
		)),
		planner.WithClassifier(classify.NewClassifier(
			classify.WithDivisionPopularity(s.cfg.DivisionPopularity, s.cfg.DefaultPopularity),
			classify.WithEnrichConcurrency(s.cfg.EnrichConcurrency),
		)),
		planner.WithEntrantsSource(s.entrants),
		planner.WithMaxCandidates(s.cfg.MaxCandidates),
		planner.WithEnrichLimit(s.cfg.EnrichLimit),
		planner.WithLogger(s.logger.Named("planner")),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "planning service started",
		logger.String("federation", s.cfg.FederationBaseURL),
		logger.String("model", s.cfg.GenAIModel),
		logger.Int("maxSearchPages", s.cfg.MaxSearchPages),
	)

	return nil
}

// Stop shuts the service down. Requests in flight finish on their own
// contexts; there is no background state to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "planning service stopped")
}

// GenerateRecommendations runs the planning pipeline for one player.
func (s *Service) GenerateRecommendations(ctx context.Context, user planner.UserData, tournaments []classify.Tournament, goal planner.Goal) (*plan.TournamentRecommendation, error) {
	s.mu.RLock()
	p := s.planner
	s.mu.RUnlock()

	if p == nil {
		return nil, ErrNotStarted
	}

	rec, err := p.GenerateRecommendations(ctx, user, tournaments, goal)
	if err != nil {
		s.planErrors.Add(1)
		return nil, err
	}
	s.plansServed.Add(1)
	return rec, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"plans_served":   s.plansServed.Load(),
		"plan_errors":    s.planErrors.Load(),
		"max_candidates": s.cfg.MaxCandidates,
	}
	if s.started {
		stats["uptime_seconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}
