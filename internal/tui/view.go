package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	previewPercent = 40
	previewGap     = 1 // blank column between preview and list
	shortFooter    = 2 // status line + short help
	ellipsis       = "…"
)

// layout is the split of the terminal into the bordered panes.
type layout struct {
	innerW   int
	innerH   int
	previewW int
	listW    int
}

func newLayout(width, height, footer int) layout {
	innerW := max(width-2, 2)
	innerH := max(height-footer-2, 1)
	pw := innerW * previewPercent / 100
	return layout{innerW: innerW, innerH: innerH, previewW: pw, listW: innerW - pw}
}

// PreviewArea returns the cells a preview can occupy in a terminal of the
// given size.
func PreviewArea(width, height int) (cols, rows int) {
	l := newLayout(width, height, shortFooter)
	return max(l.previewW-previewGap, 1), l.innerH
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footer := m.footer()
	l := newLayout(m.width, m.height, lipgloss.Height(footer))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPreview(l), m.renderList(l))

	return lipgloss.JoinVertical(lipgloss.Left, m.frame(body, l), footer)
}

// frame draws a rounded border around body with the monitor name set into
// the top edge.
func (m *Model) frame(body string, l layout) string {
	border := lipgloss.RoundedBorder()
	title := m.Monitor()
	if title == "" {
		title = "wallpick"
	}

	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(m.styles.Border).
		Width(l.innerW).
		Height(l.innerH).
		Render(body)

	return m.titleBar(border, title, l.innerW+2) + "\n" + box
}

func (m *Model) titleBar(border lipgloss.Border, title string, width int) string {
	edge := lipgloss.NewStyle().Foreground(m.styles.Border)

	label := runewidth.Truncate(title, max(width-6, 0), ellipsis)
	fill := width - 5 - runewidth.StringWidth(label)
	if label == "" || fill < 1 {
		return edge.Render(border.TopLeft + strings.Repeat(border.Top, max(width-2, 0)) + border.TopRight)
	}

	return edge.Render(border.TopLeft+border.Top+" ") +
		m.styles.Title.Render(label) +
		edge.Render(" "+strings.Repeat(border.Top, fill)+border.TopRight)
}

func (m *Model) renderPreview(l layout) string {
	cols, rows := max(l.previewW-previewGap, 1), l.innerH
	pane := lipgloss.NewStyle().
		Width(l.previewW).
		Height(l.innerH).
		PaddingRight(previewGap)

	path := m.SelectedPath()
	if path == "" {
		return pane.Render(m.styles.Muted.Render("No images"))
	}
	if p, ok := m.preview.Current(); ok {
		return pane.Render(p.Render(cols, rows))
	}
	if err := m.preview.Failure(path); err != nil {
		return pane.Render(m.styles.Error.Render("Preview failed: " + err.Error()))
	}
	if m.preview.Disconnected() {
		return pane.Render(m.styles.Muted.Render("Preview unavailable"))
	}
	return pane.Render(m.styles.Muted.Render("Loading preview..."))
}

func (m *Model) renderList(l layout) string {
	pane := lipgloss.NewStyle().Width(l.listW)
	if len(m.images) == 0 {
		return pane.Render(m.styles.Muted.Render("No images in " + m.dir))
	}
	return pane.Render(m.list.View())
}

func (m *Model) footer() string {
	style := m.styles.Status
	if m.statusErr {
		style = m.styles.Error
	}
	status := runewidth.Truncate(m.status, max(m.width, 1), ellipsis)
	return style.Render(status) + "\n" + m.help.View(m.keys)
}
