package main

import (
	"fmt"
	"os"
	"path/filepath"

	"wallpick/internal/errors"
	"wallpick/internal/wallpaper"

	"github.com/spf13/cobra"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <image>",
		Short: "Set an image as wallpaper",
		Long: `Set an image as wallpaper without opening the browser.

With several monitors and no --monitor flag, a numbered list is printed and
the choice is read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := imagePath(args[0])
			if err != nil {
				return err
			}

			setter, err := a.newSetter()
			if err != nil {
				return err
			}

			monitor := a.monitor
			if monitor == "" {
				monitors, err := setter.Monitors(cmd.Context())
				if err != nil {
					return err
				}
				if monitor, err = wallpaper.ChooseMonitor(a.stdin, cmd.OutOrStdout(), monitors); err != nil {
					return err
				}
			}

			if err := setter.SetWallpaper(cmd.Context(), monitor, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText(fmt.Sprintf("Wallpaper set on %s: %s", monitor, filepath.Base(path))))
			return nil
		},
	}
}

// imagePath resolves arg to an absolute path of an existing regular file.
func imagePath(arg string) (string, error) {
	path, err := filepath.Abs(expandHome(arg))
	if err != nil {
		return "", errors.NewFileError("invalid image path", arg, errors.InvalidPath, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileError("image not found", path, errors.FileNotFound, err)
		}
		return "", errors.NewFileError("cannot access image", path, errors.IOError, err)
	}
	if !info.Mode().IsRegular() {
		return "", errors.NewFileError("not a regular file", path, errors.InvalidPath, nil)
	}
	return path, nil
}
