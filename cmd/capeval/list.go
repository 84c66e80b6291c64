package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/capeval/internal/runner"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available evaluators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCASES\tMETRICS")
			for _, e := range runner.DefaultEvaluators() {
				metrics := make([]string, 0, len(e.Weights()))
				for metric := range e.Weights() {
					metrics = append(metrics, metric)
				}
				sort.Strings(metrics)
				fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name(), len(e.TestCases()), strings.Join(metrics, ", "))
			}
			return tw.Flush()
		},
	}
}
