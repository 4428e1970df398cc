package protocol

import (
	"strings"

	"wallpick/internal/imaging"
)

// ramp runs from dark to light.
const ramp = " .:-=+*#%@"

// asciiArt draws one character per cell, picked by luminance. It is used
// when the terminal has no color.
type asciiArt struct {
	raster
}

func (a *asciiArt) Render(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if out, ok := a.memo(cols, rows); ok {
		return out
	}

	c, v := a.fit(cols, rows, 1)
	grid := imaging.Scale(a.img, c, v)

	var sb strings.Builder
	for y := 0; y < v; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c; x++ {
			p := grid.RGBAAt(x, y)
			// Rec. 601 luma on premultiplied channels, 0-255.
			lum := (299*int(p.R) + 587*int(p.G) + 114*int(p.B)) / 1000
			sb.WriteByte(ramp[lum*(len(ramp)-1)/255])
		}
	}
	return a.remember(cols, rows, sb.String())
}

var _ Protocol = (*asciiArt)(nil)
