package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/wordbench/internal/config"
	"github.com/stellarlinkco/wordbench/internal/store"
)

type leaderboardOptions struct {
	taskName string
	limit    int
}

func newLeaderboardCmd(st *cliState) *cobra.Command {
	var opts leaderboardOptions

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show saved runs for a task ranked by usage rate",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if st == nil || st.cfg == nil {
				return fmt.Errorf("leaderboard: missing config (internal error)")
			}

			db, err := store.Open(st.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.GetLeaderboard(cmd.Context(), opts.taskName, opts.limit)
			if err != nil {
				return err
			}

			return printRuns(cmd, runs)
		},
	}

	cmd.Flags().StringVar(&opts.taskName, "task", "", "task name")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "max rows (0 = default)")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func printRuns(cmd *cobra.Command, runs []store.Run) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tPROVIDER\tTARGET\tUSAGE_RATE\tHITS\tSAMPLES\tDATE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\t%d\t%d\t%s\n",
			r.ID, r.Model, r.Provider, r.TargetWord, r.UsageRate, r.Hits, r.Samples,
			r.EvalDate.Format(time.RFC3339))
	}
	return tw.Flush()
}
