// Package refxml reads EndNote-style XML reference libraries. Both EndNote
// and Zotero export this format, so one reader serves both.
package refxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// File is a parsed reference library export.
type File struct {
	Records []Record `xml:"records>record"`
}

// Record is a single bibliographic record. Only the fields the normalizer
// consumes are mapped; everything else in the export is ignored.
type Record struct {
	TextURLs       []string `xml:"urls>text-urls>url"`
	PDFURLs        []string `xml:"urls>pdf-urls>url"`
	ResourceNumber string   `xml:"electronic-resource-num"`
}

// Parse reads an EndNote XML document. Malformed XML is an error; this is
// a boundary component and does not fail soft the way the normalizer does.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing EndNote XML: %w", err)
	}
	return &f, nil
}

// ParseFile reads an EndNote XML export from disk.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer fh.Close()
	return Parse(fh)
}

// URLs returns every text or PDF URL that looks like a web link. EndNote
// also stores internal-pdf:// attachment paths in pdf-urls; those are
// filtered out here.
func (f *File) URLs() []string {
	var urls []string
	for _, rec := range f.Records {
		for _, group := range [][]string{rec.TextURLs, rec.PDFURLs} {
			for _, url := range group {
				url = strings.TrimSpace(url)
				if strings.HasPrefix(url, "http") {
					urls = append(urls, url)
				}
			}
		}
	}
	return urls
}

// ResourceNumbers returns the electronic-resource-num field of every record
// that has one. EndNote stores DOIs there, so callers may treat these as
// doi-namespace identifiers without running them through the normalizer.
func (f *File) ResourceNumbers() []string {
	var nums []string
	for _, rec := range f.Records {
		if num := strings.TrimSpace(rec.ResourceNumber); num != "" {
			nums = append(nums, num)
		}
	}
	return nums
}
