package imaging

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"os"
	"time"

	"wallpick/internal/errors"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Info describes an image file without decoding its pixels.
type Info struct {
	Path        string     `json:"path"`
	ContentType string     `json:"content_type"`
	Format      string     `json:"format"`
	Size        int64      `json:"size"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Orientation int        `json:"orientation"`
	Taken       *time.Time `json:"taken,omitempty"`
	Camera      string     `json:"camera,omitempty"`
}

// Upright reports the displayed dimensions, with width and height swapped
// for the EXIF orientations that rotate by 90 degrees.
func (i Info) Upright() (int, int) {
	if i.Orientation >= 5 && i.Orientation <= 8 {
		return i.Height, i.Width
	}
	return i.Width, i.Height
}

// Inspect reads the header and metadata of the image at path. Failures use
// the same kinds as Decode.
func Inspect(path string) (Info, error) {
	info := Info{Path: path, Orientation: 1}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, errors.NewDecodeError(path, errors.FileNotFound, nil)
		}
		return info, errors.NewDecodeError(path, errors.IOError, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return info, errors.NewDecodeError(path, errors.IOError, err)
	}
	info.Size = st.Size()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return info, errors.NewDecodeError(path, errors.IOError, err)
	}
	header = header[:n]

	info.ContentType = http.DetectContentType(header)
	if !sniffedFormats[info.ContentType] {
		return info, errors.NewDecodeError(path, errors.UnsupportedFormat, errors.Newf("content type %s", info.ContentType))
	}

	cfg, format, err := image.DecodeConfig(io.MultiReader(bytes.NewReader(header), f))
	if err != nil {
		return info, errors.NewDecodeError(path, errors.CorruptImage, err)
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height

	if info.ContentType != "image/jpeg" {
		return info, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	x, err := exif.Decode(f)
	if err != nil {
		// No EXIF block.
		return info, nil
	}
	info.Orientation = orientationOf(x)
	if taken, err := x.DateTime(); err == nil {
		info.Taken = &taken
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			info.Camera = model
		}
	}
	return info, nil
}
