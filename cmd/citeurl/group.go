package main

import (
	"github.com/matsen/citeurl/internal/citation"
	"github.com/spf13/cobra"
)

var groupDropNone bool

func init() {
	groupCmd.Flags().BoolVar(&groupDropNone, "drop-none", false, "Drop inputs that fail to normalize instead of bucketing them by status")
	rootCmd.AddCommand(groupCmd)
}

var groupCmd = &cobra.Command{
	Use:   "group [input...]",
	Short: "Group normalized identifiers by namespace",
	Long: `Group normalized identifiers by namespace.

Inputs that normalize successfully are bucketed under their namespace
(doi, pubmed, pmc, ...) with duplicates collapsed. Inputs that fail land
under their status tag ("unknown" or "irreconcilable") unless --drop-none
is given. With no arguments, inputs are read one per line from stdin.

Examples:
  cat urls.txt | citeurl group
  citeurl group --drop-none https://doi.org/10.21105/joss.01708 28961395`,
	RunE: runGroup,
}

func runGroup(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	groups := groupsToJSON(citation.Group(inputs, !groupDropNone))

	if humanOutput {
		printGroupsHuman(groups)
	} else {
		outputJSON(groups)
	}
	return nil
}
