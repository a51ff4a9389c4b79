package recordio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/vibe-eval/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ExampleID string `json:"example_id"`
	Score     int    `json:"score"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadAll(t *testing.T) {
	path := writeFile(t, `{"example_id":"e1","score":1}

{"example_id":"e2","score":0}
`)

	records, err := ReadAll[testRecord](path)
	require.NoError(t, err)

	assert.Equal(t, []testRecord{
		{ExampleID: "e1", Score: 1},
		{ExampleID: "e2", Score: 0},
	}, records)
}

func TestReadAllSchemaError(t *testing.T) {
	path := writeFile(t, `{"example_id":"e1","score":1}
not json at all
`)

	_, err := ReadAll[testRecord](path)

	var schemaErr *apperr.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, path, schemaErr.Path)
	assert.Equal(t, 2, schemaErr.Line)
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := ReadAll[testRecord](filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
}

func TestWriteAllRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	in := []testRecord{{ExampleID: "e1", Score: 1}, {ExampleID: "e2", Score: 0}}

	require.NoError(t, WriteAll(path, in))

	out, err := ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadExistingIDs(t *testing.T) {
	path := writeFile(t, `{"example_id":"e1","score":1}
{"example_id":"e2","score":0}
{"example_id":"e1","score":1}
`)

	ids, err := LoadExistingIDs(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"e1": {}, "e2": {}}, ids)
}

func TestLoadExistingIDsMissingFile(t *testing.T) {
	ids, err := LoadExistingIDs(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadExistingIDsToleratesPartialTrailingLine(t *testing.T) {
	// A crash mid-write must not block resuming from the intact records.
	path := writeFile(t, `{"example_id":"e1","score":1}
{"example_id":"e2","sco`)

	ids, err := LoadExistingIDs(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"e1": {}}, ids)
}

func TestAppenderStreamsCompleteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	a, err := OpenAppender[testRecord](path)
	require.NoError(t, err)

	require.NoError(t, a.Append(testRecord{ExampleID: "e1", Score: 1}))

	// Durable before Close: a concurrent reader sees the full record.
	records, err := ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, []testRecord{{ExampleID: "e1", Score: 1}}, records)

	require.NoError(t, a.Append(testRecord{ExampleID: "e2", Score: 0}))
	require.NoError(t, a.Close())

	records, err = ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAppenderAppendModePreservesRecords(t *testing.T) {
	path := writeFile(t, `{"example_id":"e1","score":1}
`)

	a, err := OpenAppender[testRecord](path, WithAppend())
	require.NoError(t, err)
	require.NoError(t, a.Append(testRecord{ExampleID: "e2", Score: 0}))
	require.NoError(t, a.Close())

	records, err := ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, []testRecord{
		{ExampleID: "e1", Score: 1},
		{ExampleID: "e2", Score: 0},
	}, records)
}

func TestAppenderTruncatesWithoutAppendMode(t *testing.T) {
	path := writeFile(t, `{"example_id":"stale","score":1}
`)

	a, err := OpenAppender[testRecord](path)
	require.NoError(t, err)
	require.NoError(t, a.Append(testRecord{ExampleID: "e1", Score: 1}))
	require.NoError(t, a.Close())

	records, err := ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Equal(t, []testRecord{{ExampleID: "e1", Score: 1}}, records)
}

func TestAppenderBuffered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	a, err := OpenAppender[testRecord](path, WithBuffered())
	require.NoError(t, err)
	require.NoError(t, a.Append(testRecord{ExampleID: "e1", Score: 1}))
	require.NoError(t, a.Close())

	records, err := ReadAll[testRecord](path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
