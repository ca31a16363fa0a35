// Package federation is the HTTP adapter for the federation's public API.
// It provides the ranking listing pages and tournament entrant lists the
// planning engine consumes.
package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	rankings "github.com/d6vs-git/us-squash-sub000/internal/domain/rankings"
	"github.com/d6vs-git/us-squash-sub000/pkg/logger"
	"github.com/d6vs-git/us-squash-sub000/pkg/metrics"
)

const (
	defaultTimeout    = 15 * time.Second
	sessionCookieName = "fed_session"
)

// Client talks to the federation REST API. It satisfies both
// rankings.PageSource and classify.EntrantsSource.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	sessionCookie string
	log           logger.Logger
}

// New constructs a federation client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("federation")
	}
	return c
}

// rankingRow is one record of the federation's ranking listing.
type rankingRow struct {
	Ranking     int    `json:"Ranking"`
	PlayerID    int    `json:"PlayerId"`
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	TotalPoints int    `json:"TotalPoints"`
	Exposures   int    `json:"Exposures"`
	AvgPoints   int    `json:"AvgPoints"`
	City        string `json:"City"`
	State       string `json:"State"`
	ClubName    string `json:"ClubName"`
}

// entrantRow is one record of a tournament division's entrant list.
type entrantRow struct {
	PlayerID  int    `json:"PlayerId"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
}

// FetchPage returns one page of the division's ranking listing. An empty
// slice with a nil error means the listing is exhausted.
func (c *Client) FetchPage(ctx context.Context, divisionID, page int) ([]rankings.Entry, error) {
	url := fmt.Sprintf("%s/rankings/%d?pageNumber=%d", c.baseURL, divisionID, page)

	var rows []rankingRow
	if err := c.getJSON(ctx, url, &rows); err != nil {
		metrics.RecordRankingPageError()
		return nil, err
	}
	metrics.RecordRankingPageFetched()

	entries := make([]rankings.Entry, 0, len(rows))
	for _, row := range rows {
		location := row.City
		if row.State != "" {
			if location != "" {
				location += ", "
			}
			location += row.State
		}
		entries = append(entries, rankings.Entry{
			Rank:           row.Ranking,
			PlayerID:       row.PlayerID,
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			TotalPoints:    row.TotalPoints,
			Exposures:      row.Exposures,
			AveragedPoints: row.AvgPoints,
			Location:       location,
			Club:           row.ClubName,
		})
	}
	return entries, nil
}

// FetchDivisionEntrants returns the confirmed entrants of one tournament
// division. Best effort by contract: callers keep their estimates when it
// fails.
func (c *Client) FetchDivisionEntrants(ctx context.Context, tournamentID, divisionID int) ([]classify.Entrant, error) {
	url := fmt.Sprintf("%s/tournaments/%d/divisions/%d/entrants", c.baseURL, tournamentID, divisionID)

	var rows []entrantRow
	if err := c.getJSON(ctx, url, &rows); err != nil {
		metrics.RecordEntrantLookupError()
		return nil, err
	}
	metrics.RecordEntrantLookup()

	entrants := make([]classify.Entrant, 0, len(rows))
	for _, row := range rows {
		entrants = append(entrants, classify.Entrant{
			PlayerID: row.PlayerID,
			Name:     strings.TrimSpace(row.FirstName + " " + row.LastName),
		})
	}
	return entrants, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.sessionCookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(ctx, "federation request rejected",
			logger.String("url", url),
			logger.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
