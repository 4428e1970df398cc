package main

import (
	"fmt"
	"io"
	"time"

	"wallpick/internal/library"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// maxNameWidth caps the name column of the plain listing.
const maxNameWidth = 48

type listEntry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func newListCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List the wallpapers in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := library.NewScanner(a.cfg.Library.Pattern)
			if err != nil {
				return err
			}
			dir := a.directory(args)
			images, err := scanner.Scan(dir)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), images)
			}
			writeTable(cmd.OutOrStdout(), dir, images)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results in JSON format")
	return cmd
}

func writeJSON(w io.Writer, images []library.Image) error {
	entries := make([]listEntry, len(images))
	for i, img := range images {
		entries[i] = listEntry{Name: img.Name, Path: img.Path, Size: img.Size, Modified: img.ModTime}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, dir string, images []library.Image) {
	fmt.Fprintln(w, primaryText(fmt.Sprintf("%s (%d images)", dir, len(images))))

	width := 0
	for _, img := range images {
		width = max(width, runewidth.StringWidth(img.Name))
	}
	width = min(width, maxNameWidth)

	for _, img := range images {
		name := runewidth.FillRight(runewidth.Truncate(img.Name, width, "…"), width)
		fmt.Fprintf(w, "%s  %9s  %s\n", name, humanize.Bytes(uint64(max(img.Size, 0))), mutedText(humanize.Time(img.ModTime)))
	}
}
