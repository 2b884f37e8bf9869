package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/wordbench/internal/task"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := task.DefaultRegistry().List()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSAMPLES\tDESCRIPTION")
			for _, t := range tasks {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Name, len(t.Samples(task.Options{})), t.Description)
			}
			return tw.Flush()
		},
	}
}
