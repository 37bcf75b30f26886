package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConvertible(t *testing.T) {
	t.Parallel()

	c := New()

	assert.True(t, c.IsConvertible("IMG_0001.HEIC"))
	assert.True(t, c.IsConvertible("img_0001.heic"))
	assert.True(t, c.IsConvertible("img_0001.heif"))
	assert.False(t, c.IsConvertible("img_0001.jpg"))
	assert.False(t, c.IsConvertible("img_0001.png"))
	assert.False(t, c.IsConvertible("heic.txt"))
}

func TestConvertNonConvertibleReturnsOriginal(t *testing.T) {
	t.Parallel()

	c := New()
	got := c.Convert(context.Background(), filepath.Join(t.TempDir(), "shoe.jpg"))
	assert.Equal(t, "shoe.jpg", got)
}

func TestConvertFailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	// The source is not a real HEIC image, so any installed tool fails and
	// the converter falls back to the original name.
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.heic")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	c := New()
	got := c.Convert(context.Background(), path)
	assert.Equal(t, "broken.heic", got)

	_, err := os.Stat(path)
	assert.NoError(t, err, "failed conversion must leave the original in place")
}

func TestConvertAllMissingDirectory(t *testing.T) {
	t.Parallel()

	c := New()
	assert.Equal(t, 0, c.ConvertAll(context.Background(), filepath.Join(t.TempDir(), "nope")))
}

func TestConvertAllSkipsNonHEIC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shoe.jpg"), []byte("x"), 0o644))

	c := New()
	assert.Equal(t, 0, c.ConvertAll(context.Background(), dir))

	_, err := os.Stat(filepath.Join(dir, "shoe.jpg"))
	assert.NoError(t, err)
}
