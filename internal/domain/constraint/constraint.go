// Package constraint extracts objective travel and budget constraints from
// free-text player notes and filters candidates against them.
//
// Only objective constraints live here; subjective preferences in the notes
// are passed through to the text-generation step as soft guidance.
package constraint

import (
	"regexp"
	"strconv"
	"strings"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
)

// localOnlyRadius is the travel cap implied by "no travel" / "local only".
const localOnlyRadius = 50

// Constraints is the structured record produced by Parse. Nil fields mean
// the note expressed no such constraint.
type Constraints struct {
	MaxTravelMiles *float64 `json:"max_travel_miles,omitempty"`
	MaxBudget      *float64 `json:"max_budget,omitempty"`
}

var (
	milesRe  = regexp.MustCompile(`(?i)(?:within|max|under)\s+(\d+(?:\.\d+)?)\s*miles?`)
	budgetRe = regexp.MustCompile(`(?i)(?:budget|under|max|limit)\s*(?:of\s*)?\$\s*(\d+(?:\.\d+)?)`)
	localRe  = regexp.MustCompile(`(?i)\bno travel\b|\blocal only\b`)
)

// Parse scans free-text notes for travel-distance and budget constraints.
func Parse(notes string) Constraints {
	var c Constraints

	if m := milesRe.FindStringSubmatch(notes); m != nil {
		if miles, err := strconv.ParseFloat(m[1], 64); err == nil {
			c.MaxTravelMiles = &miles
		}
	}
	if c.MaxTravelMiles == nil && localRe.MatchString(notes) {
		radius := float64(localOnlyRadius)
		c.MaxTravelMiles = &radius
	}

	if m := budgetRe.FindStringSubmatch(notes); m != nil {
		if budget, err := strconv.ParseFloat(m[1], 64); err == nil {
			c.MaxBudget = &budget
		}
	}

	return c
}

// Empty reports whether no objective constraint was recognized.
func (c Constraints) Empty() bool {
	return c.MaxTravelMiles == nil && c.MaxBudget == nil
}

// String renders the constraints for logging and prompt context.
func (c Constraints) String() string {
	var parts []string
	if c.MaxTravelMiles != nil {
		parts = append(parts, "max travel "+strconv.FormatFloat(*c.MaxTravelMiles, 'f', -1, 64)+" miles")
	}
	if c.MaxBudget != nil {
		parts = append(parts, "budget $"+strconv.FormatFloat(*c.MaxBudget, 'f', -1, 64))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// Filter removes candidates whose known distance or entry fee exceeds a
// cap. Candidates with unknown distance or fee are never excluded.
func Filter(cands []classify.Tournament, c Constraints) []classify.Tournament {
	if c.Empty() {
		return cands
	}
	out := make([]classify.Tournament, 0, len(cands))
	for _, t := range cands {
		if c.MaxTravelMiles != nil && t.DistanceMiles != nil && *t.DistanceMiles > *c.MaxTravelMiles {
			continue
		}
		if c.MaxBudget != nil && t.EntryFee != nil && *t.EntryFee > *c.MaxBudget {
			continue
		}
		out = append(out, t)
	}
	return out
}
