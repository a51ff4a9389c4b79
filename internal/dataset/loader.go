package dataset

import (
	"fmt"

	"github.com/DjordjeVuckovic/vibe-eval/internal/recordio"
)

// Load reads the benchmark dataset and validates that every example has a
// non-empty id and that ids are unique within the file.
func Load(path string) ([]Example, error) {
	examples, err := recordio.ReadAll[Example](path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("dataset %s has no examples", path)
	}

	seen := make(map[string]struct{}, len(examples))
	for i, ex := range examples {
		if ex.ExampleID == "" {
			return nil, fmt.Errorf("dataset example at index %d has no example_id", i)
		}
		if _, dup := seen[ex.ExampleID]; dup {
			return nil, fmt.Errorf("dataset has duplicate example_id %q", ex.ExampleID)
		}
		seen[ex.ExampleID] = struct{}{}
	}
	return examples, nil
}

// LoadGenerations reads per-example model outputs. Duplicate ids keep the
// first occurrence; an empty id fails the load.
func LoadGenerations(path string) ([]Generation, error) {
	gens, err := recordio.ReadAll[Generation](path)
	if err != nil {
		return nil, fmt.Errorf("load generations: %w", err)
	}
	for i, g := range gens {
		if g.ExampleID == "" {
			return nil, fmt.Errorf("generation at index %d has no example_id", i)
		}
	}
	return gens, nil
}

// IndexGenerations builds the example_id lookup used by the judge engine.
// The first generation wins when a file carries duplicates.
func IndexGenerations(gens []Generation) map[string]Generation {
	byID := make(map[string]Generation, len(gens))
	for _, g := range gens {
		if _, ok := byID[g.ExampleID]; !ok {
			byID[g.ExampleID] = g
		}
	}
	return byID
}
