package classify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// defaultEnrichConcurrency bounds the entrant-lookup fan-out.
const defaultEnrichConcurrency = 5

// EntrantsSource looks up the authoritative entrant list for one
// tournament division. Best-effort: failure means "no authoritative
// count", never a fatal error.
type EntrantsSource interface {
	FetchDivisionEntrants(ctx context.Context, tournamentID, divisionID int) ([]Entrant, error)
}

// EnrichEntrants fills ActualEntrants on each candidate from the
// authoritative source, fanning out with bounded concurrency. Each lookup
// is independent: a failed or empty lookup leaves that candidate on its
// heuristic estimate.
func (c *Classifier) EnrichEntrants(ctx context.Context, cands []Candidate, divisionID int, source EntrantsSource) {
	if source == nil || len(cands) == 0 {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.enrichConcurrency)

	for i := range cands {
		g.Go(func() error {
			entrants, err := source.FetchDivisionEntrants(ctx, cands[i].ID, divisionID)
			if err != nil || len(entrants) == 0 {
				return nil //nolint:nilerr // per-item fallback to the estimate
			}
			n := len(entrants)
			cands[i].ActualEntrants = &n
			return nil
		})
	}
	_ = g.Wait()
}
