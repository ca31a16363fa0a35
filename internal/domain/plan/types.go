// Package plan defines the tournament recommendation structures and the
// repair pipeline that normalizes raw text-generation output into them.
package plan

// MaxSequenceLength is the planning horizon: a plan never schedules more
// than four tournaments.
const MaxSequenceLength = 4

// CurrentAnalysis compares the requesting player's snapshot against the
// player occupying the target rank.
type CurrentAnalysis struct {
	CurrentRanking       int    `json:"currentRanking"`
	TotalPoints          int    `json:"totalPoints"`
	Exposures            int    `json:"exposures"`
	Divisor              int    `json:"divisor"`
	AveragedPoints       int    `json:"averagedPoints"`
	DivisionName         string `json:"divisionName"`
	TargetRanking        int    `json:"targetRanking"`
	TargetPlayerName     string `json:"targetPlayerName,omitempty"`
	TargetAveragedPoints int    `json:"targetAveragedPoints"`
	AveragedPointsGap    int    `json:"averagedPointsGap"`
}

// Strategy is the per-tournament tactical block of a sequence item.
type Strategy struct {
	RequiredFinish    string `json:"requiredFinish"`
	EstimatedEntrants int    `json:"estimatedEntrants"`
	TournamentType    string `json:"tournamentType"`
	PointsAvailable   int    `json:"pointsAvailable"`
	Reasoning         string `json:"reasoning"`
}

// PointsProgression tracks the projected ranking state after one step.
type PointsProgression struct {
	PointsEarned   int    `json:"pointsEarned"`
	TotalPoints    int    `json:"totalPoints"`
	Exposures      int    `json:"exposures"`
	Divisor        int    `json:"divisor"`
	AveragedPoints int    `json:"averagedPoints"`
	RemainingGap   int    `json:"remainingGap"`
	Progress       string `json:"progress,omitempty"`
}

// SequenceItem is one step of the plan.
type SequenceItem struct {
	SequenceNumber    int               `json:"sequenceNumber"`
	TournamentID      int               `json:"tournamentId"`
	TournamentName    string            `json:"tournamentName"`
	Strategy          Strategy          `json:"strategy"`
	PointsProgression PointsProgression `json:"pointsProgression"`
}

// Summary aggregates the whole plan.
type Summary struct {
	TotalTournaments             int    `json:"totalTournaments"`
	TotalPointsToEarn            int    `json:"totalPointsToEarn"`
	FinalProjectedAveragedPoints int    `json:"finalProjectedAveragedPoints"`
	ProjectedFinalRanking        int    `json:"projectedFinalRanking"`
	TimelineMonths               int    `json:"timelineMonths"`
	SuccessProbability           string `json:"successProbability"`
}

// TournamentRecommendation is the full plan returned to callers. After
// repair it is always structurally valid: required blocks present, the
// sequence capped, deduplicated, and contiguously numbered.
type TournamentRecommendation struct {
	PlanID             string          `json:"planId,omitempty"`
	CurrentAnalysis    CurrentAnalysis `json:"currentAnalysis"`
	TournamentSequence []SequenceItem  `json:"tournamentSequence"`
	Summary            Summary         `json:"summary"`
	Warnings           []string        `json:"warnings,omitempty"`
}

// Authoritative carries ground-truth player state used to overwrite the
// generator's numbers for the requesting player.
type Authoritative struct {
	Rank           int
	TotalPoints    int
	Exposures      int
	Divisor        int
	AveragedPoints int
	DivisionName   string
}
