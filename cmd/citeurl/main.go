// Package main provides the citeurl CLI entry point.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citeurl",
	Short: "Normalize citation URLs and identifiers",
	Long: `citeurl normalizes citation strings - publisher URLs, repository links,
and bare identifiers - into canonical (namespace, identifier) pairs.

Core features:
  - Parse single strings or whole batches from stdin
  - Group normalized identifiers by namespace (doi, pubmed, pmc, arxiv, ...)
  - Ingest EndNote and Zotero XML library exports
  - Extract DOIs from article PDFs
  - Upload missing publications to Wikidata, with a local ledger so
    repeated runs are idempotent

All commands output JSON by default for scripting and agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// readInputs returns the command arguments, or one input per non-empty
// stdin line when no arguments were given.
func readInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return inputs, nil
}
