package plan

import (
	"fmt"
	"math"

	points "github.com/d6vs-git/us-squash-sub000/internal/domain/points"
)

// projectionTolerance is the accepted relative drift between the plan's
// final projected average and the target player's authoritative average.
const projectionTolerance = 0.05

// Reconcile overwrites the requesting player's currentAnalysis fields with
// authoritative values. The generator's numbers for the target player and
// its step-by-step reasoning stay untouched.
func Reconcile(rec *TournamentRecommendation, auth Authoritative) {
	rec.CurrentAnalysis.CurrentRanking = auth.Rank
	rec.CurrentAnalysis.TotalPoints = auth.TotalPoints
	rec.CurrentAnalysis.Exposures = auth.Exposures
	rec.CurrentAnalysis.Divisor = auth.Divisor
	rec.CurrentAnalysis.AveragedPoints = auth.AveragedPoints
	rec.CurrentAnalysis.DivisionName = auth.DivisionName
	if rec.CurrentAnalysis.TargetAveragedPoints > 0 {
		rec.CurrentAnalysis.AveragedPointsGap = rec.CurrentAnalysis.TargetAveragedPoints - auth.AveragedPoints
	}
}

// ConsistencyWarnings cross-checks the plan's arithmetic against
// authoritative values. Violations are reported, never fatal: a plan with
// visible caveats beats no plan.
func ConsistencyWarnings(rec *TournamentRecommendation, targetAveragedPoints, targetRanking int) []string {
	var warnings []string

	if targetAveragedPoints > 0 {
		projected := rec.Summary.FinalProjectedAveragedPoints
		drift := math.Abs(float64(projected-targetAveragedPoints)) / float64(targetAveragedPoints)
		if drift > projectionTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"final projected averaged points %d misses target %d by %.0f%%",
				projected, targetAveragedPoints, drift*100))
		}

		reached := projected >= targetAveragedPoints
		rank := rec.Summary.ProjectedFinalRanking
		if targetRanking > 0 && rank > 0 {
			if reached && rank > targetRanking {
				warnings = append(warnings, fmt.Sprintf(
					"target average reached but projected ranking %d is worse than target %d", rank, targetRanking))
			}
			if !reached && rank <= targetRanking {
				warnings = append(warnings, fmt.Sprintf(
					"target average not reached but projected ranking %d is at or better than target %d", rank, targetRanking))
			}
		}
	}

	// Per-step divisor arithmetic is advisory; drift is surfaced without
	// rewriting the generator's progression.
	for _, item := range rec.TournamentSequence {
		prog := item.PointsProgression
		if prog.Exposures <= 0 {
			continue
		}
		want := points.AveragedPoints(prog.TotalPoints, prog.Exposures)
		if prog.AveragedPoints != want {
			warnings = append(warnings, fmt.Sprintf(
				"step %d averaged points %d disagree with computed %d (total %d, exposures %d)",
				item.SequenceNumber, prog.AveragedPoints, want, prog.TotalPoints, prog.Exposures))
		}
	}

	return warnings
}
