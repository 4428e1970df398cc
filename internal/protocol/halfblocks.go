package protocol

import (
	"image/color"
	"strings"

	"wallpick/internal/imaging"

	"github.com/muesli/termenv"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// halfblocks draws two pixels per cell: the upper one as the foreground of
// an upper half block and the lower one as its background.
type halfblocks struct {
	raster
	profile termenv.Profile
}

func (h *halfblocks) Render(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if out, ok := h.memo(cols, rows); ok {
		return out
	}

	c, v := h.fit(cols, rows, 2)
	grid := imaging.Scale(h.img, c, v)

	var sb strings.Builder
	for y := 0; y < v; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c; x++ {
			top := grid.RGBAAt(x, y)
			var bottom color.RGBA
			if y+1 < v {
				bottom = grid.RGBAAt(x, y+1)
			}
			sb.WriteString(h.cell(top, bottom))
		}
	}
	return h.remember(cols, rows, sb.String())
}

func (h *halfblocks) cell(top, bottom color.RGBA) string {
	switch {
	case top.A == 0 && bottom.A == 0:
		return " "
	case top.A == 0:
		return h.profile.String(lowerHalf).Foreground(h.profile.FromColor(bottom)).String()
	case bottom.A == 0:
		return h.profile.String(upperHalf).Foreground(h.profile.FromColor(top)).String()
	default:
		return h.profile.String(upperHalf).
			Foreground(h.profile.FromColor(top)).
			Background(h.profile.FromColor(bottom)).
			String()
	}
}

var _ Protocol = (*halfblocks)(nil)
