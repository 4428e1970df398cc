package library

import (
	"os"
	"path/filepath"
	"testing"

	"wallpick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.png", "a.JPG", "c.webp", "notes.txt", "d.jpeg.bak", "e.gif", "f.bmp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))

	s, err := NewScanner("")
	require.NoError(t, err)

	images, err := s.Scan(dir)
	require.NoError(t, err)

	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.Name
	}
	assert.Equal(t, []string{"a.JPG", "b.png", "c.webp", "e.gif", "f.bmp"}, names)
	assert.Equal(t, filepath.Join(dir, "b.png"), images[1].Path)
	assert.Equal(t, int64(len("b.png")), images[1].Size)
	assert.False(t, images[1].ModTime.IsZero())
}

func TestScanCustomPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "one.png", "two.jpg")

	s, err := NewScanner("*.png")
	require.NoError(t, err)
	images, err := s.Scan(dir)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "one.png", images[0].Name)
}

func TestScanSymlink(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	writeFiles(t, other, "real.png")
	require.NoError(t, os.Symlink(filepath.Join(other, "real.png"), filepath.Join(dir, "link.png")))

	s, _ := NewScanner("")
	images, err := s.Scan(dir)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "link.png", images[0].Name)
}

func TestScanErrors(t *testing.T) {
	s, _ := NewScanner("")

	_, err := s.Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	dir := t.TempDir()
	writeFiles(t, dir, "file.png")
	_, err = s.Scan(filepath.Join(dir, "file.png"))
	require.Error(t, err)
	assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
}

func TestInvalidPattern(t *testing.T) {
	_, err := NewScanner("*.[png")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestPathsAndIndex(t *testing.T) {
	images := []Image{{Path: "/w/a.png"}, {Path: "/w/b.png"}}
	assert.Equal(t, []string{"/w/a.png", "/w/b.png"}, Paths(images))
	assert.Equal(t, 1, IndexOf(images, "/w/b.png"))
	assert.Equal(t, -1, IndexOf(images, "/w/c.png"))
}
