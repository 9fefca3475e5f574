package main

import (
	"github.com/matsen/citeurl/internal/citation"
	"github.com/spf13/cobra"
)

var parseSort bool

func init() {
	parseCmd.Flags().BoolVar(&parseSort, "sort", false, "Sort inputs before parsing")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [input...]",
	Short: "Normalize citation strings to (namespace, identifier) pairs",
	Long: `Normalize citation strings to canonical (namespace, identifier) pairs.

Inputs can be publisher URLs, repository links, bare DOIs, or bare PubMed
identifiers. With no arguments, inputs are read one per line from stdin.

Each input is classified one of three ways:
  success         a namespace and identifier were extracted
  unknown         no rule recognized the shape
  irreconcilable  the shape is recognized but carries no stable identifier

Examples:
  citeurl parse https://doi.org/10.21105/joss.01708
  citeurl parse 28961395 https://arxiv.org/abs/2006.11287
  cat urls.txt | citeurl parse --sort`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	results := citation.ParseMany(inputs, parseSort)

	if humanOutput {
		for _, r := range results {
			printResultHuman(r)
		}
	} else {
		outputJSON(results)
	}
	return nil
}
