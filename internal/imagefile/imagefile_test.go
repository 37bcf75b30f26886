package imagefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     bool
	}{
		{"shoe.jpg", true},
		{"shoe.JPG", true},
		{"shoe.jpeg", true},
		{"shoe.png", true},
		{"IMG_0001.HEIC", true},
		{"shoe.webp", true},
		{"notes.txt", false},
		{"shoe.jpg.bak", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsImageFile(tt.filename))
		})
	}
}

func TestListImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("aa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.heic"), []byte("bbb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755))

	images, err := ListImages(dir)
	require.NoError(t, err)
	require.Len(t, images, 2)

	byName := make(map[string]SourceImage)
	for _, img := range images {
		byName[img.Filename] = img
	}
	assert.Contains(t, byName, "a.jpg")
	assert.Contains(t, byName, "b.heic")
	assert.Equal(t, int64(2), byName["a.jpg"].SizeBytes)
	assert.False(t, byName["a.jpg"].ModifiedAt.IsZero())
}

func TestListImagesMissingDirectory(t *testing.T) {
	t.Parallel()

	images, err := ListImages(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	// Destination directory does not exist yet.
	dst := filepath.Join(dir, "nested", "dst.jpg")
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFileMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "dst.jpg"))
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gone.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, Remove(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing an already-gone file is not an error.
	assert.NoError(t, Remove(path))
}
