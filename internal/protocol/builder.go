package protocol

import (
	"image"

	"wallpick/internal/errors"
	"wallpick/internal/imaging"

	"github.com/muesli/termenv"
)

// Protocol is a decoded image ready to be drawn. Building one is expensive;
// rendering it again at the same size is free.
type Protocol interface {
	// Render draws the image into at most cols x rows cells, keeping its
	// aspect ratio. Lines are separated by "\n".
	Render(cols, rows int) string
	// Bounds returns the dimensions of the image the protocol was built from.
	Bounds() image.Rectangle
}

// Builder creates protocols of one Kind.
type Builder struct {
	Kind    Kind
	Profile termenv.Profile
}

// NewBuilder returns a builder for kind. profile controls the color escape
// sequences halfblocks emit.
func NewBuilder(kind Kind, profile termenv.Profile) *Builder {
	return &Builder{Kind: kind, Profile: profile}
}

// Build prepares img for drawing on s. The image is downscaled to the pixel
// size of s, so the returned protocol holds no more than one surface worth
// of pixels.
func (b *Builder) Build(img image.Image, s Surface) (Protocol, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	s = s.normalized()
	if !s.Valid() {
		return nil, errors.Newf("invalid surface %dx%d", s.Cols, s.Rows)
	}

	source := img.Bounds()
	w, h := imaging.Fit(source.Dx(), source.Dy(), s.PixelWidth(), s.PixelHeight())
	if w != source.Dx() || h != source.Dy() {
		img = imaging.Scale(img, w, h)
	}

	r := raster{
		img:        img,
		source:     source,
		cellWidth:  s.CellWidth,
		cellHeight: s.CellHeight,
	}

	switch b.Kind {
	case Halfblocks:
		return &halfblocks{raster: r, profile: b.Profile}, nil
	case ASCII:
		return &asciiArt{raster: r}, nil
	default:
		return nil, errors.Newf("unknown protocol %s", b.Kind)
	}
}

// raster holds the pre-scaled pixels and the last rendered frame.
type raster struct {
	img        image.Image
	source     image.Rectangle
	cellWidth  int
	cellHeight int

	lastCols, lastRows int
	last               string
	renders            int
}

func (r *raster) Bounds() image.Rectangle { return r.source }

func (r *raster) memo(cols, rows int) (string, bool) {
	if r.renders > 0 && cols == r.lastCols && rows == r.lastRows {
		return r.last, true
	}
	return "", false
}

func (r *raster) remember(cols, rows int, out string) string {
	r.lastCols, r.lastRows, r.last = cols, rows, out
	r.renders++
	return out
}

// fit returns the on-screen size of the image in a cols x rows area, in
// cells horizontally and in 1/sub cells vertically. Unlike imaging.Fit it
// also scales up.
func (r *raster) fit(cols, rows, sub int) (int, int) {
	b := r.img.Bounds()
	boxW, boxH := cols*r.cellWidth, rows*r.cellHeight

	var pw, ph int
	if b.Dx()*boxH >= b.Dy()*boxW {
		pw, ph = boxW, b.Dy()*boxW/b.Dx()
	} else {
		pw, ph = b.Dx()*boxH/b.Dy(), boxH
	}

	c := clamp((pw+r.cellWidth/2)/r.cellWidth, 1, cols)
	v := clamp((ph*sub+r.cellHeight/2)/r.cellHeight, 1, rows*sub)
	return c, v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
