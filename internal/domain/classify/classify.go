// Package classify assigns candidate tournaments a tier, a scheduling
// priority, and a division-entrant estimate.
//
// Tournament payloads arrive loosely typed from the upstream listing API,
// so Tournament models them as an explicit struct with optional fields
// validated at the boundary.
package classify

import (
	"sort"
	"strings"
	"time"
)

// Type is the tier vocabulary for candidate tournaments.
type Type string

// Tier values, best first.
const (
	TypeJuniorOpen        Type = "junior_open"
	TypeSuperChampionship Type = "super_championship"
	TypeChampionship      Type = "championship"
	TypeGold              Type = "gold"
	TypeSilverNational    Type = "silver_national"
	TypeSilver            Type = "silver"
	TypeBronzeNational    Type = "bronze_national"
	TypeBronze            Type = "bronze"
)

// Priorities per tier. Lower sorts first.
const (
	priorityJuniorOpen        = 0
	prioritySuperChampionship = 1
	priorityChampionship      = 2
	priorityGold              = 3
	prioritySilverNational    = 4
	prioritySilver            = 5
	priorityBronzeNational    = 6
	priorityBronze            = 7
)

// Entrant is one registered player in a tournament division.
type Entrant struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
}

// Tournament is the raw upstream tournament record. Distance and entry fee
// are optional: nil means unknown, and unknown values never exclude a
// candidate downstream.
type Tournament struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description,omitempty"`
	EventType        string               `json:"event_type,omitempty"`
	StartDate        string               `json:"start_date,omitempty"` // YYYY-MM-DD
	City             string               `json:"city,omitempty"`
	State            string               `json:"state,omitempty"`
	TotalEntrants    int                  `json:"total_entrants,omitempty"`
	DivisionEntrants map[string][]Entrant `json:"division_entrants,omitempty"`
	DistanceMiles    *float64             `json:"distance_miles,omitempty"`
	EntryFee         *float64             `json:"entry_fee,omitempty"`
}

// Candidate is a tournament augmented with classification results. Built
// fresh per planning request; never cached across requests.
type Candidate struct {
	Tournament

	Type              Type `json:"tournament_type"`
	Priority          int  `json:"priority"`
	EstimatedEntrants int  `json:"estimated_division_entrants"`
	ActualEntrants    *int `json:"actual_division_entrants,omitempty"`
}

// DivisionEntrantCount returns the authoritative count when real entrant
// data was fetched, falling back to the estimate.
func (c Candidate) DivisionEntrantCount() int {
	if c.ActualEntrants != nil {
		return *c.ActualEntrants
	}
	return c.EstimatedEntrants
}

// Classify assigns each tournament a tier, priority, and entrant estimate
// for the given division, returning candidates ordered by priority with
// start-date tie-breaks.
func (c *Classifier) Classify(tournaments []Tournament, divisionName string) []Candidate {
	out := make([]Candidate, 0, len(tournaments))
	for _, t := range tournaments {
		typ, prio := classifyOne(t)
		cand := Candidate{
			Tournament: t,
			Type:       typ,
			Priority:   prio,
		}
		cand.EstimatedEntrants = c.estimateEntrants(t, typ, divisionName)
		out = append(out, cand)
	}
	SortCandidates(out)
	return out
}

// classifyOne inspects name, description, and event type for tier
// keywords. Silver and bronze are checked before the bare "national"
// keyword so "Silver National" lands in its own tier rather than gold.
func classifyOne(t Tournament) (Type, int) {
	text := strings.ToLower(t.Name + " " + t.Description + " " + t.EventType)

	switch {
	case strings.Contains(text, "junior open"):
		return TypeJuniorOpen, priorityJuniorOpen
	case strings.Contains(text, "jct"), strings.Contains(text, "championship"):
		if strings.Contains(text, "super") {
			return TypeSuperChampionship, prioritySuperChampionship
		}
		return TypeChampionship, priorityChampionship
	case strings.Contains(text, "gold"):
		return TypeGold, priorityGold
	case strings.Contains(text, "silver"):
		if strings.Contains(text, "national") {
			return TypeSilverNational, prioritySilverNational
		}
		return TypeSilver, prioritySilver
	case strings.Contains(text, "bronze"):
		if strings.Contains(text, "national") {
			return TypeBronzeNational, priorityBronzeNational
		}
		return TypeBronze, priorityBronze
	case strings.Contains(text, "national"):
		return TypeGold, priorityGold
	default:
		return TypeSilver, prioritySilver
	}
}

// SortCandidates orders ascending by priority, ties broken by ascending
// start date. Candidates with unparseable dates sort after dated ones at
// the same priority.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Priority != cands[j].Priority {
			return cands[i].Priority < cands[j].Priority
		}
		ti, iok := parseStart(cands[i].StartDate)
		tj, jok := parseStart(cands[j].StartDate)
		switch {
		case iok && jok:
			return ti.Before(tj)
		case iok:
			return true
		default:
			return false
		}
	})
}

func parseStart(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
