package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/syncguard/internal/snapshot"
	"github.com/readtrack/syncguard/pkg/errors"
)

func TestParseJSONList(t *testing.T) {
	data := []byte(`[
		{"id": "b1", "progress": 50, "title": "Dune", "tags": ["sf"]},
		{"id": "b2", "progress": 80.5, "lastUpdated": "2025-01-15T09:00:00Z"}
	]`)

	records, err := snapshot.Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "b1", records[0].ID())
	progress, ok := records[1].Progress()
	require.True(t, ok)
	assert.Equal(t, 80.5, progress)

	tags, ok := records[0].Tags()
	require.True(t, ok)
	assert.Equal(t, []string{"sf"}, tags)
}

func TestParseYAMLList(t *testing.T) {
	data := []byte(`
- id: b1
  progress: 50
  title: Dune
- id: b2
  progress: 80
`)

	records, err := snapshot.Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b2", records[1].ID())
}

func TestParseSingleRecord(t *testing.T) {
	records, err := snapshot.Parse([]byte(`{"id": "b1", "progress": 10}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].ID())
}

func TestParseEmptyDocument(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("  \n"), []byte("null"), []byte("[]")} {
		records, err := snapshot.Parse(data)
		require.NoError(t, err)
		assert.Empty(t, records)
	}
}

func TestParseMalformedEntriesDegrade(t *testing.T) {
	data := []byte(`[{"id": "b1"}, "not a record", 42]`)

	records, err := snapshot.Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "b1", records[0].ID())
	assert.Nil(t, records[1])
	assert.Nil(t, records[2])
}

func TestParseScalarDocument(t *testing.T) {
	_, err := snapshot.Parse([]byte(`"just a string"`))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestParseInvalidSyntax(t *testing.T) {
	_, err := snapshot.Parse([]byte(`{"id": `))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "b1"}]`), 0o644))

	records, err := snapshot.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].ID())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := snapshot.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
