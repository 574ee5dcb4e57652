/*
PURPOSE:
  Defines the 'list-algorithms' and 'describe' subcommands.
  Shows what can be measured and the complexity of each algorithm.

REQUIREMENTS:
  User-specified:
  - List available algorithms and input orders.
  - Show best/average/worst time and space complexity for an algorithm.

  Implementation-discovered:
  - Slugs are what users type on the command line.

ARCHITECTURE INTEGRATION:
  - Calls: internal/algo.All(), algo.Parse(), Registry.Describe()

ERROR HANDLING:
  - Unknown algorithm names are returned as errors.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  complexity-runner list-algorithms
  complexity-runner describe merge-sort

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/algo/registry.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/output"
)

var listAlgorithmsCmd = &cobra.Command{
	Use:   "list-algorithms",
	Short: "List measurable algorithms and input orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		console := output.NewConsole(cmd.OutOrStdout())

		console.Title("Algorithms")
		tw := tabwriter.NewWriter(console, 0, 0, 2, ' ', 0)
		for _, s := range algo.All() {
			fmt.Fprintf(tw, "- %s\t%s\n", s.Name, s.Slug)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(console)
		console.Title("Input orders")
		for _, o := range input.Orders() {
			fmt.Fprintf(console, "- %s\n", o)
		}
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [algorithm]",
	Short: "Show the time and space complexity of an algorithm",
	Long:  `Shows the complexity summary for one algorithm, or for all of them when no name is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		console := output.NewConsole(cmd.OutOrStdout())
		reg := algo.NewRegistry(0)

		ids := make([]algo.ID, 0, len(algo.All()))
		if len(args) == 1 {
			id, err := algo.Parse(args[0])
			if err != nil {
				return err
			}
			ids = append(ids, id)
		} else {
			for _, s := range algo.All() {
				ids = append(ids, s.ID)
			}
		}

		for i, id := range ids {
			desc, err := reg.Describe(id)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(console)
			}
			console.Box(desc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listAlgorithmsCmd)
	rootCmd.AddCommand(describeCmd)
}
