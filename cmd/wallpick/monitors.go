package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMonitorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List the monitors wallpapers can be set on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setter, err := a.newSetter()
			if err != nil {
				return err
			}
			monitors, err := setter.Monitors(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, primaryText(fmt.Sprintf("Monitors (%s):", setter.Name())))
			for i, m := range monitors {
				fmt.Fprintf(out, "[%d] %s\n", i+1, m)
			}
			return nil
		},
	}
}
