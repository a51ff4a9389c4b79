package report

import (
	"time"

	"github.com/DjordjeVuckovic/vibe-eval/internal/aggregate"
)

// Entry pairs one evaluated file with its aggregation result. The table
// renders one row per entry.
type Entry struct {
	Name   string
	Result *aggregate.Result
}

// Summary is the machine-readable artifact. It is built from the same
// aggregate.Result the table renders, so the two can never disagree.
type Summary struct {
	RunID       string                            `json:"run_id"`
	GeneratedAt time.Time                         `json:"generated_at"`
	Source      string                            `json:"source,omitempty"`
	Categories  map[string]aggregate.CategoryStat `json:"categories"`
	Overall     aggregate.CategoryStat            `json:"overall"`
	Excluded    ExcludedCounts                    `json:"excluded"`
}

// ExcludedCounts reports examples left out of the statistics, by reason.
type ExcludedCounts struct {
	Missing    int `json:"missing"`
	Malformed  int `json:"malformed"`
	UnknownIDs int `json:"unknown_ids"`
}
