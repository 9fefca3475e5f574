package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/matsen/citeurl/internal/citation"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// printResultHuman prints one normalization result as a single aligned line.
func printResultHuman(r citation.Result) {
	if r.Status == citation.StatusSuccess {
		fmt.Printf("%-14s %-10s %s\n", r.Status, r.Prefix, r.Identifier)
	} else {
		fmt.Printf("%-14s %-10s %s\n", r.Status, "-", r.Identifier)
	}
}

// setToSorted flattens an identifier set into a sorted slice.
func setToSorted(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// groupsToJSON converts grouped identifier sets into sorted slices so the
// JSON output is deterministic.
func groupsToJSON(groups map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(groups))
	for tag, set := range groups {
		out[tag] = setToSorted(set)
	}
	return out
}

// printGroupsHuman prints grouped identifiers with one section per tag.
func printGroupsHuman(groups map[string][]string) {
	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		fmt.Printf("[%s] (%d)\n", tag, len(groups[tag]))
		for _, id := range groups[tag] {
			fmt.Printf("  %s\n", id)
		}
		fmt.Println()
	}
}
