package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/helixml/markerrange/domain/repository"
	"github.com/helixml/markerrange/domain/run"
	"github.com/spf13/cobra"
)

func historyCmd(flags *globalFlags) *cobra.Command {
	var (
		rangeID string
		status  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded render runs, newest first",
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

			if !client.History.Enabled() {
				return fmt.Errorf("render history is disabled (HISTORY_ENABLED=false)")
			}

			if limit <= 0 {
				limit = cfg.History().Limit()
			}
			options := []repository.Option{repository.WithLimit(limit)}
			if rangeID != "" {
				options = append(options, run.WithRangeID(rangeID))
			}
			if status != "" {
				options = append(options, run.WithStatus(run.Status(status)))
			}

			runs, err := client.History.List(cmd.Context(), options...)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRANGE\tMODE\tSTATUS\tSTARTED\tDURATION\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID(),
					r.RangeID(),
					r.Mode(),
					r.Status(),
					r.StartedAt().Local().Format(time.DateTime),
					r.Duration().Round(time.Millisecond),
					r.Error(),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&rangeID, "range", "", "Only runs for this range ID")
	cmd.Flags().StringVar(&status, "status", "", "Only runs with this status: running, succeeded, failed")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of runs (default: HISTORY_LIMIT)")

	return cmd
}
