package main

import (
	"github.com/spf13/cobra"
)

var (
	endnoteDropNone bool
	endnoteUpload   bool
)

func init() {
	endnoteCmd.Flags().BoolVar(&endnoteDropNone, "drop-none", false, "Drop URLs that fail to normalize instead of bucketing them by status")
	endnoteCmd.Flags().BoolVar(&endnoteUpload, "upload", false, "Ensure the identifiers exist on Wikidata")
	rootCmd.AddCommand(endnoteCmd)
}

var endnoteCmd = &cobra.Command{
	Use:   "endnote <file.xml>",
	Short: "Normalize the citation URLs in an EndNote XML export",
	Long: `Normalize the citation URLs in an EndNote XML export.

Every text and PDF URL in the library is run through the normalizer and
the results are grouped by namespace. DOIs stored directly in the
electronic-resource-num field are merged into the doi group without
normalization.

With --upload, the identifiers are pushed to Wikidata: existing items
are found by their external-id statement and missing ones are created.
Requires WIKIDATA_USERNAME and WIKIDATA_PASSWORD (environment, .env
file, or 'citeurl config').

Examples:
  citeurl endnote library.xml
  citeurl endnote library.xml --upload`,
	Args: cobra.ExactArgs(1),
	RunE: runEndnote,
}

func runEndnote(cmd *cobra.Command, args []string) error {
	return runLibrary(cmd, args[0], endnoteDropNone, endnoteUpload)
}
