package main

import (
	"github.com/spf13/cobra"
)

var (
	zoteroDropNone bool
	zoteroUpload   bool
)

func init() {
	zoteroCmd.Flags().BoolVar(&zoteroDropNone, "drop-none", false, "Drop URLs that fail to normalize instead of bucketing them by status")
	zoteroCmd.Flags().BoolVar(&zoteroUpload, "upload", false, "Ensure the identifiers exist on Wikidata")
	rootCmd.AddCommand(zoteroCmd)
}

var zoteroCmd = &cobra.Command{
	Use:   "zotero <file.xml>",
	Short: "Normalize the citation URLs in a Zotero XML export",
	Long: `Normalize the citation URLs in a Zotero XML export.

Zotero writes the same EndNote-style XML as EndNote itself, so this is
the endnote command under another name; see 'citeurl endnote --help'
for details.

Examples:
  citeurl zotero library.xml
  citeurl zotero library.xml --upload`,
	Args: cobra.ExactArgs(1),
	RunE: runZotero,
}

func runZotero(cmd *cobra.Command, args []string) error {
	return runLibrary(cmd, args[0], zoteroDropNone, zoteroUpload)
}
