package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Decode turns raw text-generation output into a structurally valid
// recommendation. The input may be a string, raw bytes, or an already
// structured value. Text goes through extraction and an ordered chain of
// parse repairs; the result is then capped, deduplicated, renumbered, and
// checked for required blocks. The second return value is the number of
// repair passes it took to parse, zero for clean input.
func Decode(raw any) (*TournamentRecommendation, int, error) {
	data, err := extract(raw)
	if err != nil {
		return nil, 0, err
	}

	rec, repaired, err := parseWithRepairs(data)
	if err != nil {
		return nil, repaired, err
	}

	repairSequence(rec)

	return rec, repaired, nil
}

// extract locates the JSON object in the raw value. Structured values are
// re-marshaled as-is; text has code fences stripped and is sliced between
// the first '{' and the last '}'.
func extract(raw any) ([]byte, error) {
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal structured response: %w", ErrParse)
		}
		return data, nil
	}

	text = stripCodeFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w", ErrNoJSON)
	}
	return []byte(text[start : end+1]), nil
}

// stripCodeFences removes markdown fence wrapping, with or without a
// language tag.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return s
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return s
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	whitespaceRunRe = regexp.MustCompile(`[\n\r\t]+`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// repair strategies, tried in order until one parses.
var repairs = []func(string) string{
	func(s string) string { return s },
	func(s string) string {
		s = whitespaceRunRe.ReplaceAllString(s, " ")
		return trailingCommaRe.ReplaceAllString(s, "$1")
	},
	func(s string) string {
		s = whitespaceRunRe.ReplaceAllString(s, " ")
		s = trailingCommaRe.ReplaceAllString(s, "$1")
		s = strings.ReplaceAll(s, "'", `"`)
		return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
	},
}

// rawEnvelope is used for the required-field check before committing to
// the full structure.
type rawEnvelope struct {
	CurrentAnalysis    json.RawMessage `json:"currentAnalysis"`
	TournamentSequence json.RawMessage `json:"tournamentSequence"`
	Summary            json.RawMessage `json:"summary"`
}

func parseWithRepairs(data []byte) (*TournamentRecommendation, int, error) {
	var lastErr error
	for attempt, fix := range repairs {
		candidate := []byte(fix(string(data)))

		var env rawEnvelope
		if err := json.Unmarshal(candidate, &env); err != nil {
			lastErr = err
			continue
		}
		if err := checkRequired(env); err != nil {
			return nil, attempt, err
		}

		var rec TournamentRecommendation
		if err := json.Unmarshal(candidate, &rec); err != nil {
			lastErr = err
			continue
		}
		return &rec, attempt, nil
	}
	return nil, len(repairs), fmt.Errorf("%w: %v", ErrParse, lastErr)
}

// checkRequired enforces presence of the three top-level blocks and the
// array shape of tournamentSequence.
func checkRequired(env rawEnvelope) error {
	switch {
	case len(env.CurrentAnalysis) == 0:
		return fmt.Errorf("missing currentAnalysis: %w", ErrMalformed)
	case len(env.Summary) == 0:
		return fmt.Errorf("missing summary: %w", ErrMalformed)
	case len(env.TournamentSequence) == 0:
		return fmt.Errorf("missing tournamentSequence: %w", ErrMalformed)
	}
	seq := strings.TrimSpace(string(env.TournamentSequence))
	if !strings.HasPrefix(seq, "[") {
		return fmt.Errorf("tournamentSequence is not an array: %w", ErrMalformed)
	}
	return nil
}

// repairSequence drops duplicate tournament ids (first occurrence wins),
// truncates to the planning horizon, renumbers contiguously, and keeps
// summary.totalTournaments in step.
func repairSequence(rec *TournamentRecommendation) {
	seen := make(map[int]bool, len(rec.TournamentSequence))
	kept := rec.TournamentSequence[:0]
	for _, item := range rec.TournamentSequence {
		if seen[item.TournamentID] {
			continue
		}
		seen[item.TournamentID] = true
		kept = append(kept, item)
		if len(kept) == MaxSequenceLength {
			break
		}
	}
	for i := range kept {
		kept[i].SequenceNumber = i + 1
	}
	rec.TournamentSequence = kept
	rec.Summary.TotalTournaments = len(kept)
}
