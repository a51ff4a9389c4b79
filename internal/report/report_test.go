package report

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/vibe-eval/internal/aggregate"
	"github.com/DjordjeVuckovic/vibe-eval/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *aggregate.Result {
	t.Helper()
	examples := []dataset.Example{
		{ExampleID: "e1", Category: dataset.CategoryNormal},
		{ExampleID: "e2", Category: dataset.CategoryNormal},
		{ExampleID: "e3", Category: dataset.CategoryHard},
	}
	records := []aggregate.ScoredRecord{
		{ExampleID: "e1", Score: json.RawMessage("1")},
		{ExampleID: "e2", Score: json.RawMessage("1")},
		{ExampleID: "e3", Score: json.RawMessage("0")},
	}
	return aggregate.Aggregate(examples, records)
}

func TestWriteTableRendersResultNumbers(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []Entry{{Name: "model-a.jsonl", Result: sampleResult(t)}})

	out := buf.String()
	assert.Contains(t, out, "model-a.jsonl")
	assert.Contains(t, out, "normal")
	assert.Contains(t, out, "hard")
	assert.Contains(t, out, "100.0")
	assert.Contains(t, out, "0.0")
	assert.Contains(t, out, "66.7")
}

func TestWriteTableUndefinedCategoryShowsNA(t *testing.T) {
	examples := []dataset.Example{
		{ExampleID: "e1", Category: dataset.CategoryNormal},
		{ExampleID: "e2", Category: dataset.CategoryHard},
	}
	records := []aggregate.ScoredRecord{
		{ExampleID: "e1", Score: json.RawMessage("1")},
	}
	res := aggregate.Aggregate(examples, records)

	var buf bytes.Buffer
	WriteTable(&buf, []Entry{{Name: "partial.jsonl", Result: res}})

	assert.Contains(t, buf.String(), "N/A")
}

func TestSummaryAgreesWithTableSource(t *testing.T) {
	res := sampleResult(t)
	s := BuildSummary("model-a.jsonl", res)

	// Table and summary share the one computed result; percentages must
	// be byte-for-byte the same values.
	require.Contains(t, s.Categories, "normal")
	require.Contains(t, s.Categories, "hard")
	assert.Equal(t, res.Overall, s.Overall)

	for _, cs := range res.Categories {
		assert.Equal(t, cs.Count, s.Categories[cs.Name].Count)
		assert.Equal(t, cs.Correct, s.Categories[cs.Name].Correct)
		assert.Equal(t, cs.Percentage, s.Categories[cs.Name].Percentage)
	}

	assert.NotEmpty(t, s.RunID)
	assert.False(t, s.GeneratedAt.IsZero())
	assert.Equal(t, "model-a.jsonl", s.Source)
}

func TestWriteSummaryRoundTrip(t *testing.T) {
	res := sampleResult(t)
	s := BuildSummary("model-a.jsonl", res)

	path := t.TempDir() + "/summary.json"
	require.NoError(t, WriteSummary(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Summary
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.NotNil(t, loaded.Overall.Percentage)
	assert.Equal(t, 66.7, *loaded.Overall.Percentage)
	assert.Equal(t, 3, loaded.Overall.Count)
}
