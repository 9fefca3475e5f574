// Package citation normalizes citation strings - publisher URLs, repository
// links, and bare identifiers - into canonical (namespace, identifier) pairs.
//
// The entry point is Parse, which absorbs the inconsistent URL shapes found
// in bibliographic exports: mixed protocols, trailing file suffixes, version
// tags, and per-publisher path layouts. Every input is classified one of
// three ways: success (a namespace and identifier were extracted), unknown
// (no rule recognized the shape), or irreconcilable (the shape is recognized
// but is known to carry no stable identifier).
package citation

import "fmt"

// Status classifies the outcome of normalizing one citation string.
type Status int

const (
	// StatusSuccess means a namespace and identifier were extracted.
	StatusSuccess Status = iota

	// StatusUnknown means no rule recognized the input. The input may
	// still be a valid citation in a shape we do not handle yet.
	StatusUnknown

	// StatusIrreconcilable means the input matches a publisher URL shape
	// that structurally omits a stable identifier (for example a
	// volume/issue/page-range path with no DOI segment). Callers can
	// distinguish this from StatusUnknown to decide whether to give up
	// permanently or retry with another source.
	StatusIrreconcilable
)

// String returns the status tag used in grouped output.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnknown:
		return "unknown"
	case StatusIrreconcilable:
		return "irreconcilable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalJSON renders the status as its string tag.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Result is the outcome of normalizing one citation string.
//
// Prefix is the namespace tag (doi, pubmed, pmc, arxiv, biorxiv, medrxiv,
// ...) and is non-empty exactly when Status is StatusSuccess. On any other
// status, Identifier holds the caller's input verbatim so diagnostics show
// the string that failed, not an intermediate form.
type Result struct {
	Status     Status `json:"status"`
	Prefix     string `json:"prefix,omitempty"`
	Identifier string `json:"identifier"`
}
