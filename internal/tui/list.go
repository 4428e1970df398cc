package tui

import (
	"io"

	"wallpick/internal/library"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// imageItem adapts a library.Image to list.Item.
type imageItem library.Image

func (i imageItem) FilterValue() string { return i.Name }

func listItems(images []library.Image) []list.Item {
	items := make([]list.Item, len(images))
	for i, img := range images {
		items[i] = imageItem(img)
	}
	return items
}

// rowDelegate draws one image per line: cursor marker, name and size.
type rowDelegate struct {
	styles Styles
}

func (d rowDelegate) Height() int                         { return 1 }
func (d rowDelegate) Spacing() int                        { return 0 }
func (d rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	img, ok := item.(imageItem)
	if !ok {
		return
	}
	_, _ = io.WriteString(w, d.row(library.Image(img), index == m.Index(), m.Width()))
}

// row pads or cuts the name so the size lines up on the right edge.
func (d rowDelegate) row(img library.Image, selected bool, width int) string {
	marker, style := "  ", d.styles.Item
	if selected {
		marker, style = "> ", d.styles.Selected
	}

	size := humanize.Bytes(uint64(max(img.Size, 0)))
	nameW := width - len(marker) - 1 - runewidth.StringWidth(size)
	if nameW < 4 {
		return style.Render(marker + runewidth.Truncate(img.Name, max(width-len(marker), 0), ellipsis))
	}

	name := runewidth.FillRight(runewidth.Truncate(img.Name, nameW, ellipsis), nameW)
	return style.Render(marker+name) + " " + d.styles.Size.Render(size)
}

// newImageList builds a bare list: no title, filter, status bar,
// pagination or help of its own. The browser draws those.
func newImageList(images []library.Image, styles Styles) list.Model {
	l := list.New(listItems(images), rowDelegate{styles: styles}, 0, 0)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
