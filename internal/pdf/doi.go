// Package pdf extracts DOIs from PDF files, for articles saved to disk
// without a citation URL.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds the page scan. DOIs almost always appear on the
// first page of an article.
const DefaultMaxPages = 3

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI extracts the first DOI found in the file, scanning up to
// DefaultMaxPages pages. Returns "" when no DOI is present; that is not
// an error.
func ExtractDOI(filePath string) (string, error) {
	dois, err := ExtractDOIs(filePath, DefaultMaxPages)
	if err != nil {
		return "", err
	}
	if len(dois) == 0 {
		return "", nil
	}
	return dois[0], nil
}

// ExtractDOIs extracts every distinct DOI found in the first maxPages
// pages of the file, in order of appearance. maxPages <= 0 scans the
// whole document.
func ExtractDOIs(filePath string, maxPages int) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var dois []string
	seen := make(map[string]struct{})
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		for _, doi := range FindDOIs(text) {
			if _, ok := seen[doi]; ok {
				continue
			}
			seen[doi] = struct{}{}
			dois = append(dois, doi)
		}
	}

	return dois, nil
}

// FindDOIs returns the plausible DOIs in a block of text, in order.
func FindDOIs(text string) []string {
	matches := doiPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var dois []string
	for _, match := range matches {
		// Trailing punctuation belongs to the sentence, not the DOI.
		match = strings.TrimRight(match, ".,;:)")
		if plausibleDOI(match) {
			dois = append(dois, match)
		}
	}
	return dois
}

// plausibleDOI performs basic validation on a DOI candidate.
func plausibleDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
