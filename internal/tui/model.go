// Package tui is the interactive wallpaper browser: an image list next to a
// live preview, driven by a bubbletea program.
package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"wallpick/internal/config"
	"wallpick/internal/errors"
	"wallpick/internal/library"
	"wallpick/internal/log"
	"wallpick/internal/protocol"
	"wallpick/internal/wallpaper"
	"wallpick/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Previewer is the part of the preview pipeline the browser drives. It is
// only called from the bubbletea update loop.
type Previewer interface {
	Select(path string) error
	Drain() int
	Current() (protocol.Protocol, bool)
	Failure(path string) error
	Invalidate(path string) error
	Pending() (string, bool)
	Disconnected() bool
}

// Options configure a Model.
type Options struct {
	Dir     string
	Scanner *library.Scanner
	Preview Previewer
	Setter  wallpaper.Setter
	Events  <-chan watch.Event
	Tick    time.Duration
	Theme   string
	Monitor string // preferred monitor, if present
}

// Model is the bubbletea model of the browser.
type Model struct {
	dir     string
	scanner *library.Scanner
	images  []library.Image
	list    list.Model

	preview   Previewer
	setter    wallpaper.Setter
	events    <-chan watch.Event
	tickEvery time.Duration

	monitors  []string
	monitor   int
	preferred string
	applying  bool

	keys   keyMap
	help   help.Model
	styles Styles
	width  int
	height int

	status    string
	statusErr bool

	logger *log.Logger
}

// New scans opts.Dir and selects its first image.
func New(opts Options) (*Model, error) {
	if opts.Preview == nil {
		return nil, errors.New("tui: no previewer")
	}
	scanner := opts.Scanner
	if scanner == nil {
		var err error
		if scanner, err = library.NewScanner(library.DefaultPattern); err != nil {
			return nil, err
		}
	}
	tickEvery := opts.Tick
	if tickEvery <= 0 {
		tickEvery = config.DefaultTickMS * time.Millisecond
	}

	images, err := scanner.Scan(opts.Dir)
	if err != nil {
		return nil, err
	}

	styles := NewStyles(opts.Theme)
	m := &Model{
		dir:       opts.Dir,
		scanner:   scanner,
		images:    images,
		list:      newImageList(images, styles),
		preview:   opts.Preview,
		setter:    opts.Setter,
		events:    opts.Events,
		tickEvery: tickEvery,
		preferred: opts.Monitor,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    styles,
		logger:    log.LogWithFields(log.F("component", "tui")),
	}
	if opts.Monitor != "" {
		m.monitors = []string{opts.Monitor}
	}
	m.status = countStatus(len(images))
	m.selectCurrent()
	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(m.tickEvery), waitForFile(m.events), loadMonitors(m.setter))
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		m.preview.Drain()
		return m, tick(m.tickEvery)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileEventMsg:
		m.handleFileEvent(watch.Event(msg))
		return m, waitForFile(m.events)

	case watchClosedMsg:
		m.events = nil
		m.logger.Debug("Directory watch closed")
		return m, nil

	case monitorsMsg:
		m.setMonitors(msg.names, msg.err)
		return m, nil

	case appliedMsg:
		m.applying = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to set wallpaper: %v", msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Wallpaper set on %s: %s", msg.monitor, filepath.Base(msg.path)))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(m.list.CursorUp)
	case key.Matches(msg, m.keys.Down):
		m.move(m.list.CursorDown)
	case key.Matches(msg, m.keys.Top):
		m.move(func() { m.list.Select(0) })
	case key.Matches(msg, m.keys.Bottom):
		m.move(func() { m.list.Select(len(m.images) - 1) })
	case key.Matches(msg, m.keys.Apply):
		return m, m.applySelected()
	case key.Matches(msg, m.keys.Monitor):
		m.nextMonitor()
	case key.Matches(msg, m.keys.Rescan):
		m.rescan()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

// move applies a list cursor movement and previews the new selection.
func (m *Model) move(step func()) {
	if len(m.images) == 0 {
		return
	}
	before := m.list.Index()
	step()
	if m.list.Index() != before {
		m.selectCurrent()
	}
}

// resize fits the list to the pane left next to the preview.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	l := newLayout(m.width, m.height, lipgloss.Height(m.footer()))
	m.list.SetSize(l.listW, l.innerH)
}

func (m *Model) selectCurrent() {
	if err := m.preview.Select(m.SelectedPath()); err != nil {
		m.setError("Previews unavailable: preview worker stopped")
	}
}

// rescan reloads the directory and keeps the selection on the same file
// when it still exists.
func (m *Model) rescan() {
	selected := m.SelectedPath()

	images, err := m.scanner.Scan(m.dir)
	if err != nil {
		m.logger.WithError(err).Warn("Rescan failed")
		m.setError(fmt.Sprintf("Rescan failed: %v", err))
		return
	}
	cursor := m.list.Index()
	m.images = images
	m.statusErr = false
	m.list.SetItems(listItems(images))

	if i := library.IndexOf(images, selected); i >= 0 {
		cursor = i
	}
	m.list.Select(max(0, min(cursor, len(images)-1)))
	m.selectCurrent()
	if !m.statusErr {
		m.setStatus(countStatus(len(images)))
	}
}

func (m *Model) handleFileEvent(mod watch.Event) {
	m.logger.With(log.F("path", mod.Path), log.F("op", mod.Op.String())).Debug("Wallpaper directory changed")
	m.rescan()
	if err := m.preview.Invalidate(mod.Path); err != nil {
		m.setError("Previews unavailable: preview worker stopped")
	}
}

func (m *Model) applySelected() tea.Cmd {
	path := m.SelectedPath()
	switch {
	case path == "":
		m.setError("No image selected")
		return nil
	case m.setter == nil:
		m.setError("No wallpaper backend configured")
		return nil
	case m.applying:
		return nil
	}

	monitor := m.Monitor()
	if monitor == "" {
		m.setError("No monitor available")
		return nil
	}
	m.applying = true
	m.setStatus(fmt.Sprintf("Setting %s on %s...", filepath.Base(path), monitor))
	return applyWallpaper(m.setter, monitor, path)
}

func (m *Model) nextMonitor() {
	if len(m.monitors) < 2 {
		return
	}
	m.monitor = (m.monitor + 1) % len(m.monitors)
	m.setStatus("Monitor: " + m.monitors[m.monitor])
}

func (m *Model) setMonitors(names []string, err error) {
	if err != nil {
		m.logger.WithError(err).Warn("Could not list monitors")
		m.setError(fmt.Sprintf("Could not list monitors: %v", err))
		return
	}
	m.monitors = names
	m.monitor = 0
	for i, name := range names {
		if name == m.preferred {
			m.monitor = i
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func countStatus(n int) string {
	if n == 1 {
		return "1 image"
	}
	return fmt.Sprintf("%d images", n)
}

// Images returns the listed images.
func (m *Model) Images() []library.Image { return m.images }

// Cursor returns the index of the selected image.
func (m *Model) Cursor() int { return m.list.Index() }

// SelectedPath returns the path of the selected image, or "" when the list
// is empty.
func (m *Model) SelectedPath() string {
	i := m.list.Index()
	if i < 0 || i >= len(m.images) {
		return ""
	}
	return m.images[i].Path
}

// Monitor returns the monitor wallpapers are applied to.
func (m *Model) Monitor() string {
	if len(m.monitors) == 0 {
		return ""
	}
	return m.monitors[m.monitor]
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// ShowFullHelp reports whether the full help is shown.
func (m *Model) ShowFullHelp() bool { return m.help.ShowAll }
