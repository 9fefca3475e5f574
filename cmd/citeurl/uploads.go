package main

import (
	"fmt"
	"os"
	"time"

	"github.com/matsen/citeurl/internal/config"
	"github.com/matsen/citeurl/internal/ledger"
	"github.com/spf13/cobra"
)

var uploadsType string

func init() {
	uploadsCmd.Flags().StringVar(&uploadsType, "type", "", "Filter by identifier type (doi, pmid, pmcid, arxiv, biorxiv)")
	rootCmd.AddCommand(uploadsCmd)
}

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "List identifiers recorded in the upload ledger",
	Long: `List identifiers recorded in the upload ledger.

The ledger tracks every identifier pushed to Wikidata so repeated runs
of 'endnote --upload' and 'zotero --upload' skip work already done.

Examples:
  citeurl uploads
  citeurl uploads --type doi`,
	RunE: runUploads,
}

func runUploads(cmd *cobra.Command, args []string) error {
	path := config.ResolvedLedgerPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Nothing has been uploaded yet.
		if humanOutput {
			fmt.Println("No uploads recorded")
		} else {
			outputJSON([]ledger.Entry{})
		}
		return nil
	}

	db, err := ledger.Open(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	entries, err := db.List(uploadsType)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No uploads recorded")
			return nil
		}
		for _, e := range entries {
			when := time.Unix(e.UploadedAt, 0).Format("2006-01-02")
			fmt.Printf("%-8s %-30s %-10s %s\n", e.IDType, e.Identifier, e.QID, when)
		}
	} else {
		outputJSON(entries)
	}
	return nil
}
