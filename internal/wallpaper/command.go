package wallpaper

import (
	"context"
	"strings"

	"wallpick/internal/errors"
	"wallpick/internal/log"
)

// Placeholders substituted into a Command's argv.
const (
	PathPlaceholder    = "{path}"
	MonitorPlaceholder = "{monitor}"
)

// AllMonitors is reported by a Command backend configured without monitor
// names.
const AllMonitors = "all"

// Command runs a user-supplied program, e.g.
// ["swaybg", "-o", "{monitor}", "-i", "{path}"].
type Command struct {
	argv     []string
	monitors []string
	runner   Runner
	lock     *Lock
}

// NewCommand returns a backend that runs argv. lock may be nil.
func NewCommand(argv, monitors []string, runner Runner, lock *Lock) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.NewConfigError("wallpaper command is empty", "wallpaper.command", errors.InvalidConfig, nil)
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Command{argv: argv, monitors: monitors, runner: runner, lock: lock}, nil
}

func (c *Command) Name() string { return "command" }

// Args returns argv with placeholders filled in.
func (c *Command) Args(monitor, path string) []string {
	r := strings.NewReplacer(PathPlaceholder, path, MonitorPlaceholder, monitor)
	args := make([]string, len(c.argv))
	for i, a := range c.argv {
		args[i] = r.Replace(a)
	}
	return args
}

func (c *Command) SetWallpaper(ctx context.Context, monitor, path string) error {
	release, err := c.lock.Acquire(ctx)
	if err != nil {
		return errors.NewCompositorError(c.Name(), "acquire apply lock", "", errors.CompositorFailed, err)
	}
	defer release()

	args := c.Args(monitor, path)
	out, err := c.runner.Run(ctx, args[0], args[1:]...)
	if err != nil {
		return errors.NewCompositorError(c.Name(), "failed to run "+args[0], "", errors.CompositorUnavailable, err)
	}
	if !out.Success() {
		return errors.NewCompositorError(c.Name(), args[0]+" failed", out.Message(), errors.CompositorFailed, nil)
	}

	log.LogWithFields(log.F("monitor", monitor), log.F("path", path), log.F("command", args[0])).Info("Wallpaper changed")
	return nil
}

// Monitors returns the configured names, or AllMonitors when there are none.
func (c *Command) Monitors(context.Context) ([]string, error) {
	if len(c.monitors) == 0 {
		return []string{AllMonitors}, nil
	}
	return append([]string(nil), c.monitors...), nil
}
