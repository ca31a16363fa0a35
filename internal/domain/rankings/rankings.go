// Package rankings implements paginated search over the federation's
// ranking listings.
//
// The listing is exposed through a PageSource so transport concerns stay in
// the adapters layer. Short or failed pages signal end of data rather than
// errors: a player who never appears is a degraded result, not a failure.
package rankings

import (
	"context"
	"sort"
	"strings"
)

// Default paging configuration constants.
const (
	defaultPageSize   = 50
	defaultMaxPages   = 20
	fetchSafetyMargin = 2 // extra pages fetched beyond the target rank
)

// UnrankedRank is the sentinel rank substituted when a player cannot be
// found in any listing page.
const UnrankedRank = 9999

// Entry is one ranked player snapshot. Immutable once fetched; a fresh
// fetch produces a new snapshot.
type Entry struct {
	Rank           int    `json:"rank"`
	PlayerID       int    `json:"player_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	TotalPoints    int    `json:"total_points"`
	Exposures      int    `json:"exposures"`
	AveragedPoints int    `json:"averaged_points"`
	Location       string `json:"location,omitempty"`
	Club           string `json:"club,omitempty"`
}

// FullName joins the name parts for matching and display.
func (e Entry) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Unranked returns the sentinel snapshot for a player absent from the
// listing: bottom rank, zero points, minimum exposures.
func Unranked(playerID int, name string) Entry {
	first, last := splitName(name)
	return Entry{
		Rank:      UnrankedRank,
		PlayerID:  playerID,
		FirstName: first,
		LastName:  last,
		Exposures: 1,
	}
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// PageSource fetches one page of a division's ranking listing. Page numbers
// are 1-based. An empty or short page signals end of data.
type PageSource interface {
	FetchPage(ctx context.Context, divisionID, page int) ([]Entry, error)
}

// Searcher runs paginated searches against a PageSource.
type Searcher struct {
	source   PageSource
	pageSize int
	maxPages int
}

// Option applies a configuration option to the Searcher.
type Option func(*Searcher)

// WithPageSize sets the listing page size.
func WithPageSize(size int) Option {
	return func(s *Searcher) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxPages bounds how many pages FindPlayer will scan. The cap exists
// to bound worst-case latency when the sought player never appears.
func WithMaxPages(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// NewSearcher creates a Searcher with configuration options.
func NewSearcher(source PageSource, opts ...Option) *Searcher {
	s := &Searcher{
		source:   source,
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindPlayer scans listing pages sequentially for a player matched by
// exact numeric id or by case-insensitive substring between full names
// (either direction). It stops at the first match, a short page, a fetch
// error, or the page cap. Not finding the player is not an error.
func (s *Searcher) FindPlayer(ctx context.Context, divisionID, playerID int, playerName string) (Entry, bool, error) {
	target := strings.ToLower(strings.TrimSpace(playerName))

	for page := 1; page <= s.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return Entry{}, false, err
		}
		entries, err := s.source.FetchPage(ctx, divisionID, page)
		if err != nil {
			// Treat as end of data; the caller substitutes the sentinel.
			return Entry{}, false, nil
		}
		for _, e := range entries {
			if matches(e, playerID, target) {
				return e, true, nil
			}
		}
		if len(entries) < s.pageSize {
			return Entry{}, false, nil
		}
	}
	return Entry{}, false, nil
}

func matches(e Entry, playerID int, target string) bool {
	if playerID != 0 && e.PlayerID == playerID {
		return true
	}
	if target == "" {
		return false
	}
	full := strings.ToLower(e.FullName())
	if full == "" {
		return false
	}
	return strings.Contains(full, target) || strings.Contains(target, full)
}

// FetchUpTo collects ranking entries covering at least targetRank,
// fetching a couple of pages beyond as a safety margin. Individual page
// failures are skipped; whatever was collected is returned sorted
// ascending by rank.
func (s *Searcher) FetchUpTo(ctx context.Context, divisionID, targetRank int) ([]Entry, error) {
	if targetRank < 1 {
		targetRank = 1
	}
	pages := (targetRank+s.pageSize-1)/s.pageSize + fetchSafetyMargin

	var collected []Entry
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return collected, err
		}
		entries, err := s.source.FetchPage(ctx, divisionID, page)
		if err != nil {
			continue
		}
		collected = append(collected, entries...)
		if len(entries) < s.pageSize {
			break
		}
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Rank < collected[j].Rank
	})
	return collected, nil
}

// AtRank returns the entry occupying the given rank, if present.
func AtRank(entries []Entry, rank int) (Entry, bool) {
	for _, e := range entries {
		if e.Rank == rank {
			return e, true
		}
	}
	return Entry{}, false
}
