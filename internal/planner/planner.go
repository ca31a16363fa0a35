// Package planner orchestrates the tournament planning pipeline: resolve
// the player's division, look up ranking state, filter and classify
// candidate tournaments, delegate sequencing to the text generator, and
// validate the result.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	constraint "github.com/d6vs-git/us-squash-sub000/internal/domain/constraint"
	division "github.com/d6vs-git/us-squash-sub000/internal/domain/division"
	plan "github.com/d6vs-git/us-squash-sub000/internal/domain/plan"
	points "github.com/d6vs-git/us-squash-sub000/internal/domain/points"
	rankings "github.com/d6vs-git/us-squash-sub000/internal/domain/rankings"
	"github.com/d6vs-git/us-squash-sub000/pkg/logger"
	"github.com/d6vs-git/us-squash-sub000/pkg/metrics"
)

// Stage identifies a step of the planning pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageResolvingDivision      Stage = "resolving_division"
	StageLookingUpRanking       Stage = "looking_up_ranking"
	StageFilteringTournaments   Stage = "filtering_tournaments"
	StageClassifyingTournaments Stage = "classifying_tournaments"
	StageGenerating             Stage = "generating"
	StageValidating             Stage = "validating"
	StageDone                   Stage = "done"
	StageFailed                 Stage = "failed"
)

// Default planning bounds.
const (
	defaultMaxCandidates = 100
	defaultEnrichLimit   = 20
)

// TextGenerator is the external text-generation collaborator. Opaque and
// non-deterministic; its output shape is handled by the plan package.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Planner builds tournament recommendations. Each request builds its own
// planning context from scratch; no state is shared between requests.
type Planner struct {
	resolver   *division.Resolver
	searcher   *rankings.Searcher
	classifier *classify.Classifier
	entrants   classify.EntrantsSource
	generator  TextGenerator

	maxCandidates int
	enrichLimit   int

	log logger.Logger
}

// Option applies a configuration option to the Planner.
type Option func(*Planner)

// WithResolver replaces the division resolver.
func WithResolver(r *division.Resolver) Option {
	return func(p *Planner) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithClassifier replaces the tournament classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(p *Planner) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithEntrantsSource sets the authoritative entrants lookup. Optional;
// without it candidates keep their heuristic estimates.
func WithEntrantsSource(s classify.EntrantsSource) Option {
	return func(p *Planner) {
		p.entrants = s
	}
}

// WithMaxCandidates caps how many classified candidates reach the prompt.
func WithMaxCandidates(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxCandidates = n
		}
	}
}

// WithEnrichLimit caps how many candidates get authoritative entrant counts.
func WithEnrichLimit(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.enrichLimit = n
		}
	}
}

// WithLogger sets a custom logger for the planner.
func WithLogger(log logger.Logger) Option {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// New constructs a Planner around a ranking page source and a text
// generator, with default configuration.
func New(source rankings.PageSource, generator TextGenerator, opts ...Option) *Planner {
	p := &Planner{
		resolver:      division.NewResolver(),
		searcher:      rankings.NewSearcher(source),
		classifier:    classify.NewClassifier(),
		generator:     generator,
		maxCandidates: defaultMaxCandidates,
		enrichLimit:   defaultEnrichLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get().Named("planner")
	}
	return p
}

// WithSearcher replaces the ranking searcher (paging bounds live there).
func WithSearcher(s *rankings.Searcher) Option {
	return func(p *Planner) {
		if s != nil {
			p.searcher = s
		}
	}
}

// GenerateRecommendations runs the full planning pipeline and returns a
// structurally valid recommendation, or a StageError on fatal conditions.
func (p *Planner) GenerateRecommendations(ctx context.Context, user UserData, tournaments []classify.Tournament, goal Goal) (*plan.TournamentRecommendation, error) {
	start := time.Now()
	defer func() {
		metrics.RecordPlanDuration(time.Since(start).Seconds())
	}()

	// ResolvingDivision: fatal when unresolved; planning cannot proceed
	// without an eligibility division.
	div, err := p.resolver.Resolve(division.Profile{BirthDate: user.BirthDate, Gender: user.Gender})
	if err != nil {
		return nil, p.fail(ctx, StageResolvingDivision, err)
	}
	p.log.Debug(ctx, "division resolved",
		logger.Int("divisionID", div.ID),
		logger.String("divisionName", div.Name),
	)

	// LookingUpRanking: best-effort; fall back to the unranked sentinel.
	info := p.lookupPlayer(ctx, div, user)
	target := p.lookupTarget(ctx, div, goal)

	// FilteringTournaments: deterministic; empty results are valid.
	cons := constraint.Parse(goal.Description)
	filtered := constraint.Filter(tournaments, cons)
	p.log.Debug(ctx, "tournaments filtered",
		logger.Int("before", len(tournaments)),
		logger.Int("after", len(filtered)),
		logger.String("constraints", cons.String()),
	)

	// ClassifyingTournaments, then bounded best-effort entrant enrichment.
	cands := p.classifier.Classify(filtered, div.Name)
	if len(cands) > p.maxCandidates {
		cands = cands[:p.maxCandidates]
	}
	if p.entrants != nil {
		enrich := cands
		if len(enrich) > p.enrichLimit {
			enrich = enrich[:p.enrichLimit]
		}
		p.classifier.EnrichEntrants(ctx, enrich, div.ID, p.entrants)
	}

	// Generating: a single call, no retries; transport failure is fatal.
	pctx := PlanningContext{
		Player:      info,
		Target:      target,
		Goal:        goal,
		Constraints: cons,
		Candidates:  cands,
	}
	genStart := time.Now()
	raw, err := p.generator.Generate(ctx, buildPrompt(pctx))
	metrics.RecordGenerationLatency(time.Since(genStart).Seconds())
	if err != nil {
		return nil, p.fail(ctx, StageGenerating, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	// Validating: parse/repair, reconcile, consistency-check.
	rec, repaired, err := plan.Decode(raw)
	if repaired > 0 {
		metrics.RecordParseRepair()
		p.log.Warn(ctx, "generated plan needed parse repair", logger.Int("passes", repaired))
	}
	if err != nil {
		metrics.RecordParseFailure()
		return nil, p.fail(ctx, StageValidating, err)
	}

	p.reconcile(ctx, rec, info, target, goal)

	rec.PlanID = uuid.New().String()
	metrics.RecordPlanGenerated()
	p.log.Info(ctx, "plan generated",
		logger.String("planID", rec.PlanID),
		logger.Int("tournaments", len(rec.TournamentSequence)),
		logger.Int("warnings", len(rec.Warnings)),
	)
	return rec, nil
}

// lookupPlayer finds the requesting player's ranking snapshot, degrading
// to the unranked sentinel when the listing does not contain them.
func (p *Planner) lookupPlayer(ctx context.Context, div division.Division, user UserData) UserRankingInfo {
	entry, found, err := p.searcher.FindPlayer(ctx, div.ID, user.PlayerID, user.FullName())
	if err != nil || !found {
		p.log.Warn(ctx, "player not found in ranking listing; using unranked sentinel",
			logger.Int("playerID", user.PlayerID),
			logger.String("division", div.Name),
		)
		entry = rankings.Unranked(user.PlayerID, user.FullName())
	}
	// The engine's own arithmetic is authoritative for derived fields.
	entry.AveragedPoints = points.AveragedPoints(entry.TotalPoints, entry.Exposures)
	return UserRankingInfo{
		Entry:        entry,
		DivisionID:   div.ID,
		DivisionName: div.Name,
		Unranked:     !found,
	}
}

// lookupTarget finds the player currently occupying the goal rank, when
// the goal names one. Degrades to nil on any miss.
func (p *Planner) lookupTarget(ctx context.Context, div division.Division, goal Goal) *rankings.Entry {
	if goal.TargetRanking < 1 {
		return nil
	}
	entries, err := p.searcher.FetchUpTo(ctx, div.ID, goal.TargetRanking)
	if err != nil {
		return nil
	}
	entry, ok := rankings.AtRank(entries, goal.TargetRanking)
	if !ok {
		p.log.Warn(ctx, "target rank not present in listing",
			logger.Int("targetRank", goal.TargetRanking),
		)
		return nil
	}
	entry.AveragedPoints = points.AveragedPoints(entry.TotalPoints, entry.Exposures)
	return &entry
}

// reconcile overwrites the requesting player's numbers with ground truth,
// backfills trusted target state the generator left empty, and attaches
// non-fatal consistency warnings.
func (p *Planner) reconcile(ctx context.Context, rec *plan.TournamentRecommendation, info UserRankingInfo, target *rankings.Entry, goal Goal) {
	if !info.Unranked {
		plan.Reconcile(rec, plan.Authoritative{
			Rank:           info.Rank,
			TotalPoints:    info.TotalPoints,
			Exposures:      info.Exposures,
			Divisor:        points.Divisor(info.Exposures),
			AveragedPoints: info.AveragedPoints,
			DivisionName:   info.DivisionName,
		})
	}

	targetAvg := 0
	if target != nil {
		targetAvg = target.AveragedPoints
		if rec.CurrentAnalysis.TargetRanking == 0 {
			rec.CurrentAnalysis.TargetRanking = goal.TargetRanking
		}
		if rec.CurrentAnalysis.TargetPlayerName == "" {
			rec.CurrentAnalysis.TargetPlayerName = target.FullName()
		}
		if rec.CurrentAnalysis.TargetAveragedPoints == 0 {
			rec.CurrentAnalysis.TargetAveragedPoints = targetAvg
			rec.CurrentAnalysis.AveragedPointsGap = targetAvg - rec.CurrentAnalysis.AveragedPoints
		}
	}

	warnings := plan.ConsistencyWarnings(rec, targetAvg, goal.TargetRanking)
	for _, w := range warnings {
		p.log.Warn(ctx, "plan consistency check", logger.String("warning", w))
	}
	rec.Warnings = warnings
	metrics.RecordPlanWarnings(len(warnings))
}

func (p *Planner) fail(ctx context.Context, stage Stage, err error) *StageError {
	metrics.RecordPlanFailure(string(stage))
	p.log.Error(ctx, "planning failed",
		logger.String("stage", string(stage)),
		logger.Error(err),
	)
	return &StageError{Stage: stage, Err: err}
}
