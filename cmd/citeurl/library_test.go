package main

import (
	"reflect"
	"testing"
)

func TestUploadPlans(t *testing.T) {
	groups := map[string][]string{
		"doi":            {"10.21105/joss.01708", "10.1101/174094"},
		"pubmed":         {"28961395"},
		"pmc":            {"PMC6880876", "PMC4954285"},
		"unknown":        {"https://example.com/nope"},
		"irreconcilable": {"https://www.pnas.org/content/pnas/early/x"},
	}

	plans := uploadPlans(groups)

	if len(plans) != 3 {
		t.Fatalf("got %d plans, want 3: %+v", len(plans), plans)
	}

	byType := make(map[string]uploadPlan)
	for _, p := range plans {
		byType[p.IDType] = p
	}

	if _, ok := byType["doi"]; !ok {
		t.Error("no doi plan")
	}
	if byType["doi"].Source != "crossref" {
		t.Errorf("doi source = %q, want crossref", byType["doi"].Source)
	}
	if byType["pmid"].Source != "europepmc" {
		t.Errorf("pmid source = %q, want europepmc", byType["pmid"].Source)
	}

	// PMC prefix is stripped; the Wikidata property stores bare numbers.
	want := []string{"6880876", "4954285"}
	if !reflect.DeepEqual(byType["pmcid"].Identifiers, want) {
		t.Errorf("pmcid identifiers = %v, want %v", byType["pmcid"].Identifiers, want)
	}

	// Failure buckets never become plans.
	for _, p := range plans {
		if p.IDType == "unknown" || p.IDType == "irreconcilable" {
			t.Errorf("failure bucket planned for upload: %+v", p)
		}
	}
}

func TestUploadPlans_Empty(t *testing.T) {
	if plans := uploadPlans(map[string][]string{}); plans != nil {
		t.Errorf("uploadPlans(empty) = %+v, want nil", plans)
	}
	if plans := uploadPlans(map[string][]string{"unknown": {"x"}}); plans != nil {
		t.Errorf("uploadPlans(failures only) = %+v, want nil", plans)
	}
}
