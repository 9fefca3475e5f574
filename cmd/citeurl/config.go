package main

import (
	"fmt"
	"strings"

	"github.com/matsen/citeurl/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  citeurl config                                # Show all config
  citeurl config wikidata-username              # Get specific value
  citeurl config wikidata-username SomeUser     # Set value
  citeurl config edit-interval-secs 3           # Space out Wikidata edits

Keys:
  wikidata-username   Wikidata login for uploads
  wikidata-password   Wikidata password (prefer the WIKIDATA_PASSWORD env var)
  ledger-path         Path to the upload ledger database
  edit-interval-secs  Seconds between consecutive Wikidata edits

Config lives in ~/.config/citeurl/config.yml. Environment variables
(WIKIDATA_USERNAME, WIKIDATA_PASSWORD) take priority over the file.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("wikidata-username:  %s\n", cfg.WikidataUsername)
			fmt.Printf("wikidata-password:  %s\n", maskSecret(cfg.WikidataPassword))
			fmt.Printf("ledger-path:        %s\n", cfg.LedgerPath)
			fmt.Printf("edit-interval-secs: %d\n", cfg.EditIntervalSecs)
		} else {
			outputJSON(map[string]interface{}{
				"wikidata_username":  cfg.WikidataUsername,
				"wikidata_password":  maskSecret(cfg.WikidataPassword),
				"ledger_path":        cfg.LedgerPath,
				"edit_interval_secs": cfg.EditIntervalSecs,
			})
		}
		return nil
	}

	// Convert key format (wikidata-username -> wikidata_username)
	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if key == "wikidata_password" {
			value = maskSecret(value)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if key == "ledger_path" {
		value = config.ExpandTilde(value)
	}
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s\n", args[0])
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (wikidata-username, wikidata_username)
// to the yaml form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "-", "_")
}

// maskSecret hides a credential value in display output.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
