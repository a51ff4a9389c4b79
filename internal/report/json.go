package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/DjordjeVuckovic/vibe-eval/internal/aggregate"
	"github.com/google/uuid"
)

// BuildSummary projects an aggregation result into the summary artifact.
func BuildSummary(source string, res *aggregate.Result) Summary {
	cats := make(map[string]aggregate.CategoryStat, len(res.Categories))
	for _, cs := range res.Categories {
		cats[cs.Name] = cs
	}
	return Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Categories:  cats,
		Overall:     res.Overall,
		Excluded: ExcludedCounts{
			Missing:    res.Missing,
			Malformed:  res.Malformed,
			UnknownIDs: res.UnknownIDs,
		},
	}
}

func WriteSummary(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
