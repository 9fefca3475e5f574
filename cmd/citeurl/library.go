package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/citeurl/internal/citation"
	"github.com/matsen/citeurl/internal/config"
	"github.com/matsen/citeurl/internal/ledger"
	"github.com/matsen/citeurl/internal/refxml"
	"github.com/matsen/citeurl/internal/wikidata"
	"github.com/spf13/cobra"
)

// LibraryReport is the output of the endnote and zotero commands.
type LibraryReport struct {
	File    string                  `json:"file"`
	Records int                     `json:"records"`
	Groups  map[string][]string     `json:"groups"`
	Uploads []wikidata.UploadResult `json:"uploads,omitempty"`
}

// runLibrary ingests an EndNote-style XML export, groups its citation
// URLs by namespace, and optionally uploads the identifiers to Wikidata.
// Both the endnote and zotero commands funnel through here; the exports
// share a format.
func runLibrary(cmd *cobra.Command, path string, dropNone, upload bool) error {
	f, err := refxml.ParseFile(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	groups := groupsToJSON(citation.Group(f.URLs(), !dropNone))

	// EndNote keeps DOIs in electronic-resource-num; those skip the
	// normalizer entirely.
	if nums := f.ResourceNumbers(); len(nums) > 0 {
		set := make(map[string]struct{}, len(groups["doi"])+len(nums))
		for _, id := range groups["doi"] {
			set[id] = struct{}{}
		}
		for _, num := range nums {
			set[num] = struct{}{}
		}
		groups["doi"] = setToSorted(set)
	}

	report := LibraryReport{
		File:    path,
		Records: len(f.Records),
		Groups:  groups,
	}

	if upload {
		report.Uploads = uploadGroups(cmd, groups)
	}

	if humanOutput {
		fmt.Printf("%s: %d records\n\n", report.File, report.Records)
		printGroupsHuman(report.Groups)
		for _, u := range report.Uploads {
			printUploadHuman(u)
		}
	} else {
		outputJSON(report)
	}
	return nil
}

// uploadPlan names one batch of identifiers to push to Wikidata.
type uploadPlan struct {
	IDType      string
	Source      string
	Identifiers []string
}

// uploadPlans turns grouped identifiers into upload batches. Only
// namespaces with a Wikidata external-id property are planned; PMC
// identifiers lose their PMC prefix because the property stores the
// bare number.
func uploadPlans(groups map[string][]string) []uploadPlan {
	plans := []uploadPlan{
		{IDType: "doi", Source: "crossref", Identifiers: groups["doi"]},
		{IDType: "pmid", Source: "europepmc", Identifiers: groups["pubmed"]},
		{IDType: "pmcid", Source: "europepmc", Identifiers: groups["pmc"]},
		{IDType: "arxiv", Source: "arxiv", Identifiers: groups["arxiv"]},
		{IDType: "biorxiv", Source: "biorxiv", Identifiers: groups["biorxiv"]},
	}

	var out []uploadPlan
	for _, plan := range plans {
		if len(plan.Identifiers) == 0 {
			continue
		}
		if plan.IDType == "pmcid" {
			trimmed := make([]string, len(plan.Identifiers))
			for i, id := range plan.Identifiers {
				trimmed[i] = strings.TrimPrefix(id, "PMC")
			}
			plan.Identifiers = trimmed
		}
		out = append(out, plan)
	}
	return out
}

// uploadGroups ensures every plannable identifier exists on Wikidata,
// recording successes in the local ledger. Exits on setup failures;
// per-identifier failures come back in the results.
func uploadGroups(cmd *cobra.Command, groups map[string][]string) []wikidata.UploadResult {
	plans := uploadPlans(groups)
	if len(plans) == 0 {
		return nil
	}

	// Credentials may live in a .env file alongside the library.
	_ = godotenv.Load()

	opts := []wikidata.ClientOption{
		wikidata.WithCredentials(config.GetWikidataUsername(), config.GetWikidataPassword()),
	}
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if cfg.EditIntervalSecs > 0 {
		opts = append(opts, wikidata.WithEditInterval(time.Duration(cfg.EditIntervalSecs)*time.Second))
	}

	client := wikidata.NewClient(opts...)
	ctx := cmd.Context()
	if err := client.Login(ctx); err != nil {
		exitWithError(ExitAuthError, "%v", err)
	}

	ledgerPath := config.ResolvedLedgerPath()
	if err := os.MkdirAll(filepath.Dir(ledgerPath), 0755); err != nil {
		exitWithError(ExitError, "creating ledger directory: %v", err)
	}
	db, err := ledger.Open(ledgerPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	var results []wikidata.UploadResult
	for _, plan := range plans {
		results = append(results,
			client.EnsurePublications(ctx, plan.IDType, plan.Source, plan.Identifiers, db)...)
	}
	return results
}

// printUploadHuman prints one upload outcome as a single line.
func printUploadHuman(u wikidata.UploadResult) {
	switch {
	case u.Err != "":
		fmt.Printf("failed   %s:%s (%s)\n", u.IDType, u.Identifier, u.Err)
	case u.Skipped:
		fmt.Printf("skipped  %s:%s (already uploaded)\n", u.IDType, u.Identifier)
	case u.Created:
		fmt.Printf("created  %s:%s -> %s\n", u.IDType, u.Identifier, u.QID)
	default:
		fmt.Printf("found    %s:%s -> %s\n", u.IDType, u.Identifier, u.QID)
	}
}
