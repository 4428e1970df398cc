package main

import (
	"fmt"
	"io"

	"wallpick/internal/imaging"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Show the size, format and camera details of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := imagePath(args[0])
			if err != nil {
				return err
			}
			info, err := imaging.Inspect(path)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			writeInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results in JSON format")
	return cmd
}

func writeInfo(w io.Writer, info imaging.Info) {
	width, height := info.Upright()
	fmt.Fprintln(w, primaryText(info.Path))
	fmt.Fprintf(w, "  Format:      %s (%s)\n", info.Format, info.ContentType)
	fmt.Fprintf(w, "  Dimensions:  %dx%d\n", width, height)
	fmt.Fprintf(w, "  Size:        %s\n", humanize.Bytes(uint64(max(info.Size, 0))))
	if info.Orientation != 1 {
		fmt.Fprintf(w, "  Orientation: %d\n", info.Orientation)
	}
	if info.Taken != nil {
		fmt.Fprintf(w, "  Taken:       %s\n", info.Taken.Format("2006-01-02 15:04:05"))
	}
	if info.Camera != "" {
		fmt.Fprintf(w, "  Camera:      %s\n", info.Camera)
	}
}
