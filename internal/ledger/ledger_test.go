package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")

	l := New(path)
	assert.Equal(t, 0, l.Size())
	assert.False(t, l.IsProcessed("a.jpg"))

	require.NoError(t, l.MarkProcessed([]string{"a.jpg", "b.jpg"}))
	assert.True(t, l.IsProcessed("a.jpg"))
	assert.True(t, l.IsProcessed("b.jpg"))
	assert.Equal(t, 2, l.Size())

	// A fresh instance sees the persisted state.
	reloaded := New(path)
	assert.True(t, reloaded.IsProcessed("a.jpg"))
	assert.True(t, reloaded.IsProcessed("b.jpg"))
	assert.Equal(t, 2, reloaded.Size())
}

func TestLedgerFileShape(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	l := New(path)
	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var ff fileFormat
	require.NoError(t, json.Unmarshal(data, &ff))
	assert.Equal(t, []string{"a.jpg"}, ff.Processed)
	assert.False(t, ff.LastUpdated.IsZero())
}

func TestLedgerMissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	l := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Equal(t, 0, l.Size())
}

func TestLedgerCorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l := New(path)
	assert.Equal(t, 0, l.Size())

	// Marking still works and repairs the file.
	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))
	assert.True(t, New(path).IsProcessed("a.jpg"))
}

func TestLedgerMarkProcessedIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	l := New(path)

	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))
	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))
	assert.Equal(t, 1, l.Size())
}

func TestLedgerCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "processed.json")
	l := New(path)

	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLedgerReset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	l := New(path)
	require.NoError(t, l.MarkProcessed([]string{"a.jpg"}))

	require.NoError(t, l.Reset())
	assert.Equal(t, 0, l.Size())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
