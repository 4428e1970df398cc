// Package wallpaper applies an image as the desktop background through an
// external tool.
package wallpaper

import (
	"context"

	"wallpick/internal/config"
	"wallpick/internal/errors"
	"wallpick/internal/log"
)

// Setter changes the wallpaper of one monitor.
type Setter interface {
	Name() string
	SetWallpaper(ctx context.Context, monitor, path string) error
	Monitors(ctx context.Context) ([]string, error)
}

// New builds the backend selected in cfg. The hyprpaper backend is only
// usable under Hyprland; elsewhere a warning is logged and it is returned
// anyway so the failure shows up when applying.
func New(cfg *config.Config, runner Runner, lock *Lock) (Setter, error) {
	switch cfg.Wallpaper.Backend {
	case "", "hyprpaper":
		if d := DetectDesktop(nil); d != Hyprland {
			log.LogWithFields(log.F("desktop", d.String())).Warn("hyprpaper backend selected outside Hyprland")
		}
		return NewHyprpaper(runner, lock), nil
	case "command":
		return NewCommand(cfg.Wallpaper.Command, cfg.Wallpaper.Monitors, runner, lock)
	default:
		return nil, errors.NewConfigError("unknown backend "+cfg.Wallpaper.Backend, "wallpaper.backend", errors.InvalidConfig, nil)
	}
}
