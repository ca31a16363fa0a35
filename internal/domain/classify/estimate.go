package classify

import "math"

// Bracket size bounds for entrant estimates.
const (
	minBracketSize = 4
	maxBracketSize = 24
)

// defaultPopularity is used for divisions absent from the popularity table.
const defaultPopularity = 0.2

// defaultDivisionPopularity approximates what share of a tournament's total
// field enters a given division. Derived from historical draw sheets.
var defaultDivisionPopularity = map[string]float64{
	"BU11 Singles":        0.15,
	"BU13 Singles":        0.20,
	"BU15 Singles":        0.25,
	"BU17 Singles":        0.30,
	"BU19 Singles":        0.30,
	"GU11 Singles":        0.10,
	"GU13 Singles":        0.15,
	"GU15 Singles":        0.20,
	"GU17 Singles":        0.25,
	"GU19 Singles":        0.25,
	"Men's Open Singles":  0.35,
	"Women's Open Singles": 0.25,
}

// tierFactor scales the estimate by competitiveness class: championship
// events pull bigger division draws than bronze ones.
func tierFactor(t Type) float64 {
	switch t {
	case TypeJuniorOpen, TypeSuperChampionship, TypeChampionship:
		return 1.5
	case TypeGold:
		return 1.2
	case TypeBronzeNational, TypeBronze:
		return 0.8
	default:
		return 1.0
	}
}

// estimateEntrants estimates the division draw size. A per-division
// entrant list in the payload is authoritative; otherwise the estimate is
// total entrants scaled by division popularity and tier, clamped to
// realistic bracket sizes.
func (c *Classifier) estimateEntrants(t Tournament, typ Type, divisionName string) int {
	if entrants, ok := t.DivisionEntrants[divisionName]; ok && len(entrants) > 0 {
		return len(entrants)
	}

	popularity, ok := c.popularity[divisionName]
	if !ok {
		popularity = c.defaultPopularity
	}

	est := float64(t.TotalEntrants) * popularity * tierFactor(typ)
	est = math.Max(minBracketSize, math.Min(maxBracketSize, est))
	return int(math.Round(est))
}
