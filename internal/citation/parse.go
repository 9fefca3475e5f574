package citation

import "strings"

// Parse normalizes a citation string that might be a messy publisher URL.
//
// It accepts bare PubMed numbers, bare DOIs from known preprint
// registrants, and http(s) URLs in the publisher shapes the dispatcher
// understands. Parse is a pure function and total over all inputs: every
// string maps to exactly one Result and nothing ever panics or errors.
//
//	Parse("https://joss.theoj.org/papers/10.21105/joss.01708")
//	  => {success doi 10.21105/joss.01708}
//	Parse("http://www.biorxiv.org/content/early/2017/08/09/174094")
//	  => {success doi 10.1101/174094}
func Parse(text string) Result {
	// A bare run of digits is taken to be a PubMed identifier.
	if isDigits(text) {
		return Result{Status: StatusSuccess, Prefix: "pubmed", Identifier: text}
	}

	for _, protocol := range protocols {
		if strings.HasPrefix(text, protocol) {
			res := dispatch(strings.TrimPrefix(text, protocol))
			if res.Status != StatusSuccess {
				// Diagnostics should show the caller's string,
				// not the protocol-stripped remainder.
				res.Identifier = text
			}
			return res
		}
	}

	for _, doiPrefix := range rawDOIPrefixes {
		candidate := strings.TrimSuffix(text, ".pdf")
		if strings.HasPrefix(candidate, doiPrefix) {
			return Result{Status: StatusSuccess, Prefix: "doi", Identifier: stripVersionTag(candidate, ".v")}
		}
	}

	return Result{Status: StatusUnknown, Identifier: text}
}

// isDigits reports whether s is a non-empty run of ASCII digits. PubMed
// identifiers are purely numeric; the looser all-alphanumeric check used by
// some exporters would misclassify arbitrary tokens as PMIDs.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripVersionTag removes at most one trailing version tag built from
// marker plus a single digit: marker ".v" strips ".v0" through ".v9",
// marker "/v" strips "/v0" through "/v9", and so on. This is a bounded
// trial, not a numeric-suffix strip: multi-digit version schemes exist and
// must be left alone.
func stripVersionTag(s, marker string) string {
	for digit := byte('0'); digit <= '9'; digit++ {
		tag := marker + string(digit)
		if strings.HasSuffix(s, tag) {
			return strings.TrimSuffix(s, tag)
		}
	}
	return s
}
