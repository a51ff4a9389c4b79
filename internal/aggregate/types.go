package aggregate

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
)

// Outcome marks how a dataset example fared in the join.
type Outcome string

const (
	// OutcomeMatched means a record with a usable binary score was found.
	OutcomeMatched Outcome = "matched"
	// OutcomeMissing means no record exists for the example_id.
	OutcomeMissing Outcome = "missing"
	// OutcomeMalformed means a record exists but its score is absent or
	// unparseable. Reported distinctly from missing.
	OutcomeMalformed Outcome = "malformed"
)

// ScoredRecord is the minimal shape the aggregator needs from a judged or
// generation file. Score is kept raw so one bad value marks a single
// record malformed instead of failing the file read.
type ScoredRecord struct {
	ExampleID   string          `json:"example_id"`
	Generation  string          `json:"generation,omitempty"`
	Score       json.RawMessage `json:"score,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

// ParseScore extracts a binary score. Accepts 0/1 numbers, booleans and
// their string forms; anything else is malformed.
func (r ScoredRecord) ParseScore() (int, bool) {
	raw := strings.TrimSpace(string(r.Score))
	if raw == "" || raw == "null" {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(r.Score, &num); err == nil {
		return binarize(num), true
	}

	var b bool
	if err := json.Unmarshal(r.Score, &b); err == nil {
		if b {
			return 1, true
		}
		return 0, true
	}

	var s string
	if err := json.Unmarshal(r.Score, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return 1, true
		case "false":
			return 0, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return binarize(f), true
		}
	}
	return 0, false
}

func binarize(f float64) int {
	if f >= 0.5 {
		return 1
	}
	return 0
}

// DetailRow is one detailed-output line per dataset example, carrying its
// join outcome and score.
type DetailRow struct {
	ExampleID   string           `json:"example_id"`
	Category    dataset.Category `json:"category"`
	Prompt      string           `json:"prompt"`
	Reference   string           `json:"reference"`
	MediaURL    string           `json:"media_url,omitempty"`
	Generation  string           `json:"generation,omitempty"`
	Score       *int             `json:"score"`
	Explanation string           `json:"explanation,omitempty"`
	Outcome     Outcome          `json:"outcome"`
}

// CategoryStat holds pooled statistics for one category. Percentage is
// nil when the category has no matched examples: undefined, never a
// division by zero.
type CategoryStat struct {
	Name       string   `json:"-"`
	Count      int      `json:"count"`
	Correct    int      `json:"correct"`
	Percentage *float64 `json:"percentage"`
}

// Result is the full aggregation output, recomputed from scratch on every
// run. Both the table and the JSON summary are rendered from it.
type Result struct {
	// Categories preserves first-appearance order from the dataset.
	Categories []CategoryStat
	Overall    CategoryStat
	// Missing counts dataset examples with no record at all; Malformed
	// counts records whose score could not be parsed; UnknownIDs counts
	// scored records whose example_id is absent from the dataset.
	Missing    int
	Malformed  int
	UnknownIDs int
	Details    []DetailRow
}
