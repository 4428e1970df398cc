// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates files in dir from a name to content map.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// Touch creates files in dir with placeholder content. The content is not
// a valid image.
func Touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	files := make(map[string]string, len(names))
	for _, name := range names {
		files[name] = "image"
	}
	WriteFiles(t, dir, files)
}

// PNG encodes a w x h image filled with c.
func PNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// WritePNG writes a solid w x h PNG to dir/name and returns its path.
func WritePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, PNG(t, w, h, color.RGBA{0x40, 0x80, 0xc0, 0xff}), 0o644))
	return path
}

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
