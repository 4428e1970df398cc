package main

import (
	"context"
	"os"
	"time"

	"wallpick/internal/errors"
	"wallpick/internal/imaging"
	"wallpick/internal/library"
	"wallpick/internal/log"
	"wallpick/internal/preview"
	"wallpick/internal/protocol"
	"wallpick/internal/tui"
	"wallpick/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Terminal size assumed when stdout is not a terminal.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// browse runs the interactive browser over dir until the user quits or ctx
// is cancelled.
func (a *app) browse(ctx context.Context, dir string) error {
	cfg := a.cfg
	logger := log.LogWithFields(log.F("dir", dir))

	scanner, err := library.NewScanner(cfg.Library.Pattern)
	if err != nil {
		return err
	}
	picker := protocol.NewPicker()
	kind, err := picker.Pick(cfg.Preview.Protocol)
	if err != nil {
		return err
	}
	setter, err := a.newSetter()
	if err != nil {
		return err
	}

	term := protocol.QuerySurface(int(os.Stdout.Fd()), fallbackCols, fallbackRows)
	cols, rows := tui.PreviewArea(term.Cols, term.Rows)
	surface := protocol.Surface{Cols: cols, Rows: rows, CellWidth: term.CellWidth, CellHeight: term.CellHeight}
	logger.With(log.F("protocol", kind.String()), log.F("pattern", scanner.Pattern()), log.F("cols", cols), log.F("rows", rows)).Info("Starting browser")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pipeline := preview.Start(ctx,
		imaging.NewDecoder(cfg.Preview.MaxWidth, cfg.Preview.MaxHeight),
		protocol.NewBuilder(kind, picker.Profile),
		surface,
		cfg.Capacity(),
	)
	defer func() {
		if err := pipeline.Stop(); err != nil {
			log.LogError(err, "Preview worker stopped with an error")
		}
	}()

	watcher, err := watch.New(watch.WithMatcher(scanner.Match))
	if err != nil {
		return errors.Wrap(err, "create directory watcher")
	}
	defer watcher.Close()

	model, err := tui.New(tui.Options{
		Dir:     dir,
		Scanner: scanner,
		Preview: pipeline,
		Setter:  setter,
		Events:  watcher.Events(),
		Tick:    time.Duration(cfg.UI.TickMS) * time.Millisecond,
		Theme:   cfg.UI.Theme,
		Monitor: a.monitor,
	})
	if err != nil {
		return err
	}

	if err := watcher.AddDirectory(dir); err != nil {
		logger.WithError(err).Warn("Directory changes will not be picked up")
	}

	g, gctx := errgroup.WithContext(ctx)
	if err := watcher.Start(gctx); err != nil {
		return err
	}

	g.Go(func() error {
		defer cancel()
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		watcher.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "run browser")
	}
	logger.Info("Browser closed")
	return nil
}
