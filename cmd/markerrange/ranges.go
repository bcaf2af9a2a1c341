package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func rangesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ranges",
		Short: "List the ranges derived from the scene's markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			client, logger, err := openClient(cfg)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			ranges := client.Renderer.Ranges()
			if len(ranges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no markers in scene")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRANGE\tFRAMES")
			for _, r := range ranges {
				fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID(), r.Label(), r.Frames())
			}
			return w.Flush()
		},
	}
}
