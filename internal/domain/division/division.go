// Package division maps a player profile to a federation eligibility
// division using the static division table.
package division

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Junior age cutoff: players aged 18 or under compete in U-brackets.
const juniorMaxAge = 18

// Profile carries the fields resolution needs from a player record.
// BirthDate uses the federation's YYYY-MM-DD wire format; Gender is a
// single-letter code ("M" or "F").
type Profile struct {
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

var ageThresholdRe = regexp.MustCompile(`(\d+)\+`)

// Resolver resolves profiles against the static division table. The zero
// value is ready to use; Now is overridable for deterministic tests.
type Resolver struct {
	Now func() time.Time
}

// NewResolver creates a Resolver with the real clock.
func NewResolver() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve returns the eligibility division for the given profile.
// Resolution is fatal to planning when it fails: a missing or malformed
// birth date or gender yields ErrUnresolved.
func (r *Resolver) Resolve(p Profile) (Division, error) {
	if strings.TrimSpace(p.BirthDate) == "" || strings.TrimSpace(p.Gender) == "" {
		return Division{}, fmt.Errorf("missing birth date or gender: %w", ErrUnresolved)
	}

	born, err := parseBirthDate(p.BirthDate)
	if err != nil {
		return Division{}, fmt.Errorf("parse birth date %q: %w", p.BirthDate, ErrUnresolved)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	age := ageAt(born, now())

	gender := strings.ToUpper(strings.TrimSpace(p.Gender))[:1]

	if age <= juniorMaxAge {
		name := juniorPrefix(gender) + juniorBracket(age) + " Singles"
		if d, ok := byName(name); ok {
			return d, nil
		}
		return Division{}, fmt.Errorf("no junior division named %q: %w", name, ErrUnresolved)
	}

	return resolveAdult(gender, age)
}

// parseBirthDate accepts the plain date form and the full RFC3339 form the
// upstream profile API has been seen to return.
func parseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ageAt computes whole years, counting a not-yet-reached birthday this
// year as the lower age.
func ageAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// juniorBracket picks the U-bracket token for a junior age.
func juniorBracket(age int) string {
	switch {
	case age <= 10:
		return "U11"
	case age <= 12:
		return "U13"
	case age <= 14:
		return "U15"
	case age <= 16:
		return "U17"
	default:
		return "U19"
	}
}

func juniorPrefix(gender string) string {
	if gender == "F" {
		return "G"
	}
	return "B"
}

func adultKeyword(gender string) string {
	if gender == "F" {
		return "Women"
	}
	return "Men"
}

// resolveAdult picks the adult division whose embedded age threshold best
// matches the player: the highest threshold the player still qualifies for,
// falling back to the nearest threshold when none qualifies.
func resolveAdult(gender string, age int) (Division, error) {
	keyword := adultKeyword(gender)

	var candidates []Division
	for _, d := range table {
		if strings.Contains(d.Name, keyword) && !strings.HasPrefix(d.Name, "All ") {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		if d, ok := byName("All " + keyword); ok {
			return d, nil
		}
		return Division{}, fmt.Errorf("no adult division for gender %q: %w", gender, ErrUnresolved)
	}

	best := candidates[0]
	bestThreshold := -1
	bestDiff := 1 << 30
	for _, d := range candidates {
		threshold := embeddedThreshold(d.Name)
		if age >= threshold {
			if threshold > bestThreshold {
				best, bestThreshold = d, threshold
			}
			continue
		}
		if bestThreshold < 0 && threshold-age < bestDiff {
			best, bestDiff = d, threshold-age
		}
	}
	return best, nil
}

// embeddedThreshold extracts the "N+" age threshold from a division name.
// Open divisions carry no threshold and count as zero, so every adult
// qualifies for them.
func embeddedThreshold(name string) int {
	m := ageThresholdRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
