package wallpaper

import (
	"context"
	"fmt"

	"wallpick/internal/errors"
	"wallpick/internal/log"

	"github.com/goccy/go-json"
)

const hyprctl = "hyprctl"

// Hyprpaper sets wallpapers through hyprctl's hyprpaper IPC.
type Hyprpaper struct {
	runner Runner
	lock   *Lock
}

// NewHyprpaper returns the hyprpaper backend. lock may be nil.
func NewHyprpaper(runner Runner, lock *Lock) *Hyprpaper {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Hyprpaper{runner: runner, lock: lock}
}

func (h *Hyprpaper) Name() string { return "hyprpaper" }

// SetWallpaper unloads every image, preloads path and shows it on monitor.
func (h *Hyprpaper) SetWallpaper(ctx context.Context, monitor, path string) error {
	release, err := h.lock.Acquire(ctx)
	if err != nil {
		return errors.NewCompositorError(h.Name(), "acquire apply lock", "", errors.CompositorFailed, err)
	}
	defer release()

	logger := log.LogWithFields(log.F("monitor", monitor), log.F("path", path))

	// Unloading with nothing loaded fails; only a missing hyprctl matters.
	if _, err := h.run(ctx, "unload images", "hyprpaper", "unload", "all"); err != nil {
		return err
	}

	out, err := h.run(ctx, "preload "+path, "hyprpaper", "preload", path)
	if err != nil {
		return err
	}
	if !out.Success() {
		logger.Warnf("hyprpaper preload reported: %s", out.Message())
	}

	out, err = h.run(ctx, "change wallpaper", "hyprpaper", "wallpaper", fmt.Sprintf("%s, %s", monitor, path))
	if err != nil {
		return err
	}
	if !out.Success() {
		return errors.NewCompositorError(h.Name(), "hyprctl command failed and returned", out.Message(), errors.CompositorFailed, nil)
	}

	logger.Info("Wallpaper changed")
	return nil
}

type hyprMonitor struct {
	Name string `json:"name"`
}

// Monitors lists active outputs from `hyprctl monitors -j`.
func (h *Hyprpaper) Monitors(ctx context.Context) ([]string, error) {
	out, err := h.run(ctx, "list monitors", "monitors", "-j")
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, errors.NewCompositorError(h.Name(), "hyprctl command failed and returned", out.Message(), errors.CompositorFailed, nil)
	}

	var monitors []hyprMonitor
	if err := json.Unmarshal(out.Stdout, &monitors); err != nil {
		return nil, errors.NewCompositorError(h.Name(), "hyprctl returned nothing or not an array", "", errors.CompositorFailed, err)
	}

	names := make([]string, 0, len(monitors))
	for _, m := range monitors {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	if len(names) == 0 {
		return nil, errors.NewCompositorError(h.Name(), "no monitors reported", "", errors.NoMonitors, nil)
	}
	return names, nil
}

func (h *Hyprpaper) run(ctx context.Context, what string, args ...string) (Output, error) {
	out, err := h.runner.Run(ctx, hyprctl, args...)
	if err != nil {
		return out, errors.NewCompositorError(h.Name(), "failed to "+what, "", errors.CompositorUnavailable, err)
	}
	return out, nil
}
