// Package aggregate joins judged records against the dataset and computes
// reproducible per-category and overall statistics.
package aggregate

import (
	"math"

	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
)

// Aggregate joins every dataset example against the scored records by
// example_id. Only examples present in both sides contribute to the
// percentages; misses and malformed records are counted, never folded
// into a zero score. The overall percentage is pooled across all matched
// examples, not an average of category percentages.
func Aggregate(examples []dataset.Example, records []ScoredRecord) *Result {
	recByID := make(map[string]ScoredRecord, len(records))
	for _, rec := range records {
		if rec.ExampleID == "" {
			continue
		}
		if _, ok := recByID[rec.ExampleID]; !ok {
			recByID[rec.ExampleID] = rec
		}
	}

	res := &Result{Overall: CategoryStat{Name: "overall"}}

	statIdx := make(map[string]int)
	stat := func(name string) *CategoryStat {
		if i, ok := statIdx[name]; ok {
			return &res.Categories[i]
		}
		res.Categories = append(res.Categories, CategoryStat{Name: name})
		statIdx[name] = len(res.Categories) - 1
		return &res.Categories[len(res.Categories)-1]
	}

	datasetIDs := make(map[string]struct{}, len(examples))
	for _, ex := range examples {
		datasetIDs[ex.ExampleID] = struct{}{}

		row := DetailRow{
			ExampleID: ex.ExampleID,
			Category:  ex.Category,
			Prompt:    ex.Prompt,
			Reference: ex.Reference,
			MediaURL:  ex.MediaURL,
		}
		cs := stat(string(ex.Category))

		rec, found := recByID[ex.ExampleID]
		if !found {
			res.Missing++
			row.Outcome = OutcomeMissing
			res.Details = append(res.Details, row)
			continue
		}

		row.Generation = rec.Generation
		row.Explanation = rec.Explanation

		score, ok := rec.ParseScore()
		if !ok {
			res.Malformed++
			row.Outcome = OutcomeMalformed
			res.Details = append(res.Details, row)
			continue
		}

		row.Outcome = OutcomeMatched
		row.Score = &score
		res.Details = append(res.Details, row)

		cs.Count++
		cs.Correct += score
		res.Overall.Count++
		res.Overall.Correct += score
	}

	for _, rec := range records {
		if rec.ExampleID == "" {
			continue
		}
		if _, ok := datasetIDs[rec.ExampleID]; !ok {
			res.UnknownIDs++
		}
	}

	for i := range res.Categories {
		res.Categories[i].Percentage = percentage(res.Categories[i].Correct, res.Categories[i].Count)
	}
	res.Overall.Percentage = percentage(res.Overall.Correct, res.Overall.Count)

	return res
}

func percentage(correct, count int) *float64 {
	if count == 0 {
		return nil
	}
	p := RoundPercent(100 * float64(correct) / float64(count))
	return &p
}

// RoundPercent rounds to one decimal place with round-half-up, the fixed
// canonical rounding for all reported percentages.
func RoundPercent(p float64) float64 {
	return math.Floor(p*10+0.5) / 10
}
