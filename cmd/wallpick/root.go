package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"wallpick/internal/config"
	"wallpick/internal/log"
	"wallpick/internal/wallpaper"

	"github.com/spf13/cobra"
)

// app carries the flags and collaborators shared by all commands.
type app struct {
	cfgFile string
	debug   bool
	monitor string

	cfg      *config.Config
	runner   wallpaper.Runner
	stdin    io.Reader
	lockPath string // empty means wallpaper.DefaultLockPath
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{runner: wallpaper.ExecRunner{}, stdin: os.Stdin})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wallpick [directory]",
		Short: "Browse wallpapers in the terminal and set them",
		Long: `wallpick lists the images of a wallpaper directory next to a live
preview and sets the selected one as the desktop background.

Without a directory argument the directory from the config file is used.`,
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = log.Close() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd.Context(), a.directory(args))
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/wallpick/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "write debug output to the log file")
	rootCmd.PersistentFlags().StringVarP(&a.monitor, "monitor", "m", "", "monitor to set the wallpaper on")

	rootCmd.AddCommand(newSetCmd(a))
	rootCmd.AddCommand(newMonitorsCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newInfoCmd())

	return rootCmd
}

// setup loads the configuration and sends logs to the log file, since the
// browser owns the terminal.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfigFile(a.cfgFile)
	} else {
		a.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	level := a.cfg.Log.Level
	if a.debug {
		level = "debug"
	}
	if err := log.Configure(log.WithFile(expandHome(a.cfg.Log.File)), log.WithLevel(level)); err != nil {
		cmd.PrintErrln(mutedText("Warning: logging disabled: " + err.Error()))
		_ = log.Configure(log.WithOutput(io.Discard))
	}
	log.SetDebug(a.debug)

	log.LogWithFields(log.F("version", version), log.F("command", cmd.Name())).Debug("Starting")
	return nil
}

// directory returns the wallpaper directory as an absolute path. The
// compositor resolves paths against its own working directory.
func (a *app) directory(args []string) string {
	dir := a.cfg.Directories.Wallpapers
	if len(args) > 0 {
		dir = args[0]
	}
	dir = expandHome(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// newSetter builds the configured wallpaper backend with the cross-process
// apply lock. A lock that cannot be created is skipped.
func (a *app) newSetter() (wallpaper.Setter, error) {
	path := a.lockPath
	if path == "" {
		var err error
		if path, err = wallpaper.DefaultLockPath(); err != nil {
			log.LogWithError(err).Warn("Apply lock unavailable")
		}
	}

	var lock *wallpaper.Lock
	if path != "" {
		l, err := wallpaper.NewLock(path)
		if err != nil {
			log.LogWithError(err).Warn("Apply lock unavailable")
		} else {
			lock = l
		}
	}
	return wallpaper.New(a.cfg, a.runner, lock)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
