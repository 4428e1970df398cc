// Package protocol turns decoded images into text that a terminal can draw:
// colored half blocks when the terminal has color, an ASCII ramp otherwise.
package protocol

import (
	"golang.org/x/sys/unix"
)

// Fallback cell size when the terminal does not report pixel dimensions.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Surface describes the area a preview is drawn into.
type Surface struct {
	Cols       int // width in cells
	Rows       int // height in cells
	CellWidth  int // pixels per cell, horizontally
	CellHeight int // pixels per cell, vertically
}

// PixelWidth returns the width of the surface in pixels.
func (s Surface) PixelWidth() int { return s.Cols * s.CellWidth }

// PixelHeight returns the height of the surface in pixels.
func (s Surface) PixelHeight() int { return s.Rows * s.CellHeight }

// Valid reports whether every dimension is positive.
func (s Surface) Valid() bool {
	return s.Cols > 0 && s.Rows > 0 && s.CellWidth > 0 && s.CellHeight > 0
}

func (s Surface) normalized() Surface {
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		s.CellWidth, s.CellHeight = DefaultCellWidth, DefaultCellHeight
	}
	return s
}

// QuerySurface asks the terminal on fd for its size. cols and rows are used
// when the terminal cannot be queried; the cell size then falls back to
// DefaultCellWidth x DefaultCellHeight.
func QuerySurface(fd int, cols, rows int) Surface {
	s := Surface{Cols: cols, Rows: rows}

	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return s.normalized()
	}

	s.Cols, s.Rows = int(ws.Col), int(ws.Row)
	if ws.Xpixel > 0 && ws.Ypixel > 0 {
		s.CellWidth = int(ws.Xpixel) / s.Cols
		s.CellHeight = int(ws.Ypixel) / s.Rows
	}
	return s.normalized()
}
