package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/wordbench/internal/config"
	"github.com/stellarlinkco/wordbench/internal/store"
)

type historyOptions struct {
	model    string
	taskName string
}

func newHistoryCmd(st *cliState) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved runs for one model and task",
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
				return fmt.Errorf("history: missing config (internal error)")
			}

			db, err := store.Open(st.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.GetModelHistory(cmd.Context(), opts.model, opts.taskName)
			if err != nil {
				return err
			}

			return printRuns(cmd, runs)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "model name")
	cmd.Flags().StringVar(&opts.taskName, "task", "", "task name")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}
