package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/wordbench/internal/config"
	"github.com/stellarlinkco/wordbench/internal/store"
)

func newTranscriptsCmd(st *cliState) *cobra.Command {
	var runID int64

	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "Dump persisted prompt/response/score triples for a run",
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
				return fmt.Errorf("transcripts: missing config (internal error)")
			}

			db, err := store.Open(st.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ts, err := db.GetTranscripts(cmd.Context(), runID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range ts {
				fmt.Fprintf(out, "--- %s (score=%.1f", t.SampleID, t.Score)
				if t.MatchedForm != "" {
					fmt.Fprintf(out, " form=%s", t.MatchedForm)
				}
				fmt.Fprintln(out, ")")
				fmt.Fprintf(out, "prompt: %s\n", t.Prompt)
				if t.Error != "" {
					fmt.Fprintf(out, "error: %s\n", t.Error)
					continue
				}
				fmt.Fprintf(out, "response: %s\n", t.Response)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&runID, "run", 0, "run id")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}
