// Package library lists the wallpaper images in a directory.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"wallpick/internal/errors"
	"wallpick/internal/log"

	"github.com/gobwas/glob"
)

// DefaultPattern matches the formats the decoder understands.
const DefaultPattern = "*.{jpg,jpeg,png,webp,gif,bmp}"

// Image is one entry of a wallpaper directory.
type Image struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Scanner lists image files in a directory. It does not recurse.
type Scanner struct {
	pattern string
	matcher glob.Glob
}

// NewScanner compiles pattern. An empty pattern means DefaultPattern.
func NewScanner(pattern string) (*Scanner, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matcher, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.NewConfigError("invalid image pattern", "library.pattern", errors.InvalidConfig, err)
	}
	return &Scanner{pattern: pattern, matcher: matcher}, nil
}

// Pattern returns the glob the scanner was built with.
func (s *Scanner) Pattern() string {
	return s.pattern
}

// Match reports whether name looks like a wallpaper. Matching ignores case.
func (s *Scanner) Match(name string) bool {
	return s.matcher.Match(strings.ToLower(name))
}

// Scan returns the images in dir sorted by name.
func (s *Scanner) Scan(dir string) ([]Image, error) {
	logger := log.LogWithFields(log.F("dir", dir))

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("wallpaper directory does not exist", dir, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("cannot stat wallpaper directory", dir, errors.FileAccessDenied, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot read wallpaper directory", dir, errors.FileAccessDenied, err)
	}

	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if !s.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks so linked wallpapers are listed.
		fi, err := os.Stat(path)
		if err != nil {
			logger.With(log.F("path", path)).Debugf("Skipping unreadable entry: %v", err)
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		images = append(images, Image{
			Name:    entry.Name(),
			Path:    path,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Name < images[j].Name
	})

	logger.Debugf("Found %d images", len(images))
	return images, nil
}

// Paths returns the paths of images in order.
func Paths(images []Image) []string {
	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.Path
	}
	return paths
}

// IndexOf returns the position of path in images, or -1.
func IndexOf(images []Image, path string) int {
	for i, img := range images {
		if img.Path == path {
			return i
		}
	}
	return -1
}
