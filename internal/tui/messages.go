package tui

import (
	"context"
	"time"

	"wallpick/internal/wallpaper"
	"wallpick/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// Timeouts for calls into the compositor.
const (
	monitorsTimeout = 5 * time.Second
	applyTimeout    = 15 * time.Second
)

type tickMsg time.Time

type fileEventMsg watch.Event

type watchClosedMsg struct{}

type monitorsMsg struct {
	names []string
	err   error
}

type appliedMsg struct {
	monitor string
	path    string
	err     error
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForFile delivers the next watcher event. A nil channel yields no
// command.
func waitForFile(events <-chan watch.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		mod, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return fileEventMsg(mod)
	}
}

func loadMonitors(s wallpaper.Setter) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), monitorsTimeout)
		defer cancel()
		names, err := s.Monitors(ctx)
		return monitorsMsg{names: names, err: err}
	}
}

func applyWallpaper(s wallpaper.Setter, monitor, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
		defer cancel()
		err := s.SetWallpaper(ctx, monitor, path)
		return appliedMsg{monitor: monitor, path: path, err: err}
	}
}
