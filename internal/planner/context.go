package planner

import (
	"encoding/json"
	"strings"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	constraint "github.com/d6vs-git/us-squash-sub000/internal/domain/constraint"
	rankings "github.com/d6vs-git/us-squash-sub000/internal/domain/rankings"
)

// UserData is the requesting player's profile as supplied by the caller.
type UserData struct {
	PlayerID  int    `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

// FullName joins the profile name parts.
func (u UserData) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Goal is the caller-supplied target. Opaque apart from TargetRanking,
// which is the only field the engine validates.
type Goal struct {
	Type          string `json:"type"`
	Description   string `json:"description"`
	Timeframe     string `json:"timeframe"`
	TargetRanking int    `json:"target_ranking,omitempty"`
}

// UserRankingInfo combines the player's ranking snapshot with their
// resolved division. Created once per planning request, never mutated.
type UserRankingInfo struct {
	rankings.Entry

	DivisionID   int    `json:"division_id"`
	DivisionName string `json:"division_name"`
	Unranked     bool   `json:"unranked"`
}

// PlanningContext is the structured input handed to the text generator.
type PlanningContext struct {
	Player      UserRankingInfo        `json:"player"`
	Target      *rankings.Entry        `json:"target,omitempty"`
	Goal        Goal                   `json:"goal"`
	Constraints constraint.Constraints `json:"constraints"`
	Candidates  []classify.Candidate   `json:"candidates"`
}

// buildPrompt renders the planning context for the generation call. The
// response contract matters more than the prose: the generator must come
// back with a single JSON object shaped like TournamentRecommendation.
func buildPrompt(pctx PlanningContext) string {
	payload, _ := json.MarshalIndent(pctx, "", "  ")

	var sb strings.Builder
	sb.WriteString("You are a tournament planning assistant for competitive squash players.\n")
	sb.WriteString("Using the planning context below, build a sequenced plan of at most 4 tournaments\n")
	sb.WriteString("that moves the player from their current averaged points toward the target.\n\n")
	sb.WriteString("Planning context:\n")
	sb.Write(payload)
	sb.WriteString("\n\nRespond with ONLY one JSON object with exactly these top-level keys:\n")
	sb.WriteString(`{"currentAnalysis": {...}, "tournamentSequence": [...], "summary": {...}}`)
	sb.WriteString("\nEach tournamentSequence item needs sequenceNumber, tournamentId, tournamentName,")
	sb.WriteString("\na strategy block (requiredFinish, estimatedEntrants, tournamentType, pointsAvailable, reasoning)")
	sb.WriteString("\nand a pointsProgression block (pointsEarned, totalPoints, exposures, divisor, averagedPoints, remainingGap).")
	sb.WriteString("\nUse integers for all numeric fields. No markdown fences, no commentary.")
	return sb.String()
}
