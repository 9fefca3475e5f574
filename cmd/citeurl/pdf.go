package main

import (
	"fmt"

	"github.com/matsen/citeurl/internal/citation"
	"github.com/matsen/citeurl/internal/pdf"
	"github.com/spf13/cobra"
)

var (
	pdfAll   bool
	pdfPages int
)

func init() {
	pdfCmd.Flags().BoolVar(&pdfAll, "all", false, "Report every DOI found instead of just the first")
	pdfCmd.Flags().IntVar(&pdfPages, "pages", pdf.DefaultMaxPages, "Number of pages to scan (0 scans the whole document)")
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>...",
	Short: "Extract DOIs from article PDFs",
	Long: `Extract DOIs from article PDFs.

Scans the first few pages of each file for DOI patterns. Extracted DOIs
are reported as normalization results in the doi namespace, so the
output shape matches the parse command. A PDF with no DOI yields an
empty result list, not an error.

Examples:
  citeurl pdf paper.pdf
  citeurl pdf --all --pages 10 *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPDF,
}

// PDFReport is the per-file output of the pdf command.
type PDFReport struct {
	File    string            `json:"file"`
	Results []citation.Result `json:"results"`
}

func runPDF(cmd *cobra.Command, args []string) error {
	reports := make([]PDFReport, 0, len(args))
	for _, path := range args {
		dois, err := pdf.ExtractDOIs(path, pdfPages)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", path, err)
		}
		if !pdfAll && len(dois) > 1 {
			dois = dois[:1]
		}

		results := make([]citation.Result, len(dois))
		for i, doi := range dois {
			results[i] = citation.Result{
				Status:     citation.StatusSuccess,
				Prefix:     "doi",
				Identifier: doi,
			}
		}
		reports = append(reports, PDFReport{File: path, Results: results})
	}

	if humanOutput {
		for _, rep := range reports {
			fmt.Printf("%s\n", rep.File)
			if len(rep.Results) == 0 {
				fmt.Println("  no DOI found")
				continue
			}
			for _, r := range rep.Results {
				fmt.Printf("  %s\n", r.Identifier)
			}
		}
	} else {
		outputJSON(reports)
	}
	return nil
}
