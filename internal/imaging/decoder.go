// Package imaging opens wallpaper files and turns them into bounded,
// upright bitmaps for the preview pipeline.
package imaging

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Registered image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"wallpick/internal/errors"

	"github.com/rwcarlsen/goexif/exif"
)

const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080

	// DefaultMaxSourcePixels admits 16K (15360x8640) wallpapers.
	DefaultMaxSourcePixels = 150_000_000

	sniffLen = 512
)

var knownExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

var sniffedFormats = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Decoder reads image files from disk. Decoded images larger than the
// MaxWidth x MaxHeight box are downscaled, keeping aspect ratio, before they
// are returned. JPEG EXIF orientation is applied.
//
// Files whose header declares more than MaxSourcePixels pixels are rejected
// before any pixel memory is allocated.
type Decoder struct {
	MaxWidth        int
	MaxHeight       int
	MaxSourcePixels int64
}

// NewDecoder creates a decoder bounded to maxWidth x maxHeight. Non-positive
// values fall back to 1920x1080.
func NewDecoder(maxWidth, maxHeight int) *Decoder {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return &Decoder{MaxWidth: maxWidth, MaxHeight: maxHeight, MaxSourcePixels: DefaultMaxSourcePixels}
}

// Decode opens path and decodes it. Failures are *errors.DecodeError with
// kind FileNotFound, UnsupportedFormat, CorruptImage or IOError.
func (d *Decoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewDecodeError(path, errors.FileNotFound, nil)
		}
		return nil, errors.NewDecodeError(path, errors.IOError, err)
	}
	defer f.Close()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.NewDecodeError(path, errors.IOError, err)
	}
	header = header[:n]

	contentType := http.DetectContentType(header)
	if !sniffedFormats[contentType] {
		ext := strings.ToLower(filepath.Ext(path))
		if knownExtensions[ext] {
			// Right name, wrong bytes.
			return nil, errors.NewDecodeError(path, errors.CorruptImage, errors.Newf("content looks like %s", contentType))
		}
		return nil, errors.NewDecodeError(path, errors.UnsupportedFormat, errors.Newf("content type %s", contentType))
	}

	cfg, _, err := image.DecodeConfig(io.MultiReader(bytes.NewReader(header), f))
	if err != nil {
		return nil, errors.NewDecodeError(path, errors.CorruptImage, err)
	}
	if err := d.checkSize(cfg); err != nil {
		return nil, errors.NewDecodeError(path, errors.CorruptImage, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.NewDecodeError(path, errors.IOError, err)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewDecodeError(path, errors.CorruptImage, err)
	}

	img = d.bound(img)

	if contentType == "image/jpeg" {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			img = ApplyOrientation(img, readOrientation(f))
		}
	}

	return img, nil
}

func (d *Decoder) checkSize(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Newf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	limit := d.MaxSourcePixels
	if limit <= 0 {
		limit = DefaultMaxSourcePixels
	}
	if int64(cfg.Width)*int64(cfg.Height) > limit {
		return errors.Newf("%dx%d exceeds the %d pixel limit", cfg.Width, cfg.Height, limit)
	}
	return nil
}

func (d *Decoder) bound(img image.Image) image.Image {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), d.MaxWidth, d.MaxHeight)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return Scale(img, w, h)
}

// readOrientation returns the EXIF orientation tag, or 1 when the file has
// none.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	return orientationOf(x)
}

func orientationOf(x *exif.Exif) int {
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}
