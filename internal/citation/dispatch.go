package citation

import (
	"strings"
	"unicode"
)

// A structuralRule recognizes one publisher-specific URL shape that needs
// more than a literal prefix match: date-segment skipping, query-string
// extraction, version-marker stripping. apply reports whether the rule
// matched; rules run in order and the first match wins, so adding a
// publisher is an insertion in the table below rather than a control-flow
// edit.
type structuralRule struct {
	name  string
	apply func(string) (Result, bool)
}

var structuralRules = []structuralRule{
	{"pnas-numeric", pnasNumericPath},
	{"pubmed", pubmedPath},
	{"prefix-map", literalPrefix},
	{"pmc", pmcArticlePath},
	{"biorxiv-early", biorxivEarlyPath},
	{"biorxiv-content", biorxivContentPath},
	{"preprints", preprintsPath},
	{"frontiers", frontiersPath},
	{"nature", natureArticlePath},
	{"plos", plosFileQuery},
	{"elife", elifeDownloadPath},
	{"eutils", eutilsLinkQuery},
	{"europepmc", europePMCPath},
	{"jbc-early", jbcEarlyPath},
}

// dispatch classifies a URL whose protocol has already been stripped.
// Irreconcilable shapes are rejected before anything else can claim them,
// then trailing noise suffixes are removed, then the structural rules run
// in order. Rules that partially match a shape but find it malformed fall
// through soft to unknown; dispatch never panics.
func dispatch(remainder string) Result {
	for _, prefix := range irreconcilablePrefixes {
		if strings.HasPrefix(remainder, prefix) {
			return Result{Status: StatusIrreconcilable, Identifier: remainder}
		}
	}

	for _, suffix := range suffixes {
		remainder = strings.TrimSuffix(remainder, suffix)
	}

	for _, rule := range structuralRules {
		if res, ok := rule.apply(remainder); ok {
			return res
		}
	}

	return Result{Status: StatusUnknown, Identifier: remainder}
}

func success(namespace, identifier string) (Result, bool) {
	return Result{Status: StatusSuccess, Prefix: namespace, Identifier: identifier}, true
}

// pnasNumericPath flags PNAS content URLs made entirely of numeric path
// segments. Those are volume/issue/page-range links with no article
// identifier to recover.
func pnasNumericPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.pnas.org/content/")
	if !ok {
		return Result{}, false
	}
	for _, segment := range strings.Split(rest, "/") {
		if !isDigits(segment) {
			return Result{}, false
		}
	}
	return Result{Status: StatusIrreconcilable, Identifier: url}, true
}

func pubmedPath(url string) (Result, bool) {
	id, ok := strings.CutPrefix(url, "www.ncbi.nlm.nih.gov/pubmed/")
	if !ok || id == "" {
		return Result{}, false
	}
	// Some exports concatenate several PMIDs with commas; keep the first.
	if comma := strings.Index(id, ","); comma >= 0 {
		id = id[:comma]
	}
	if id == "" {
		return Result{}, false
	}
	return success("pubmed", id)
}

// literalPrefix is the common clean case: a known prefix followed directly
// by the identifier.
func literalPrefix(url string) (Result, bool) {
	for prefix, namespace := range prefixMap {
		if rest, ok := strings.CutPrefix(url, prefix); ok && rest != "" {
			return success(namespace, rest)
		}
	}
	return Result{}, false
}

// pmcArticlePath keeps only the first path segment, dropping trailing
// filename segments like /pdf/MSB-13-954.pdf.
func pmcArticlePath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.ncbi.nlm.nih.gov/pmc/articles/")
	if !ok {
		return Result{}, false
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return Result{}, false
	}
	return success("pmc", id)
}

var biorxivEarlyPrefixes = []string{
	"www.biorxiv.org/content/early/",
	"www.biorxiv.org/content/biorxiv/early/",
}

// biorxivEarlyPath handles date-stamped "early" URLs: the first three path
// segments are year/month/day, the fourth is the article number, optionally
// carrying a vN revision marker. bioRxiv DOIs all live under the 10.1101
// registrant prefix.
func biorxivEarlyPath(url string) (Result, bool) {
	for _, prefix := range biorxivEarlyPrefixes {
		rest, ok := strings.CutPrefix(url, prefix)
		if !ok {
			continue
		}
		parts := strings.Split(rest, "/")
		if len(parts) < 4 || parts[3] == "" {
			return Result{}, false
		}
		id := parts[3]
		if v := strings.Index(id, "v"); v >= 0 {
			id = id[:v]
		}
		if id == "" {
			return Result{}, false
		}
		return success("doi", "10.1101/"+id)
	}
	return Result{}, false
}

// biorxivContentPath handles plain content URLs where the path already is a
// full DOI, unlike the "early" shape above.
func biorxivContentPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.biorxiv.org/content/")
	if !ok {
		return Result{}, false
	}
	rest = strings.TrimRightFunc(rest, unicode.IsSpace)
	rest = stripVersionTag(rest, "v")
	if rest == "" {
		return Result{}, false
	}
	return success("doi", rest)
}

func preprintsPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.preprints.org/manuscript/")
	if !ok {
		return Result{}, false
	}
	rest = stripVersionTag(rest, "/v")
	if rest == "" {
		return Result{}, false
	}
	return success("doi", "10.20944/preprints"+rest)
}

func frontiersPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.frontiersin.org/article/")
	if !ok {
		return Result{}, false
	}
	rest = strings.TrimSuffix(rest, "/full")
	if rest == "" {
		return Result{}, false
	}
	return success("doi", rest)
}

func natureArticlePath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.nature.com/articles/")
	if !ok {
		return Result{}, false
	}
	rest = strings.TrimSuffix(rest, ".pdf")
	if rest == "" {
		return Result{}, false
	}
	return success("doi", "10.1038/"+rest)
}

// plosFileQuery extracts the DOI from PLOS "article/file" download URLs,
// where the DOI travels in the id query field. Field order in the query
// string does not matter.
func plosFileQuery(url string) (Result, bool) {
	if !strings.HasPrefix(url, "journals.plos.org/") {
		return Result{}, false
	}
	_, query, ok := strings.Cut(url, "/article/file?")
	if !ok {
		return Result{}, false
	}
	if id := parseQuery(query)["id"]; id != "" {
		return success("doi", id)
	}
	return Result{}, false
}

// elifeDownloadPath handles eLife asset download URLs whose second path
// segment is a hyphenated asset name like "elife-57264-fig1-v2.jpg"; the
// numeric token after "elife" is the article number.
func elifeDownloadPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "elifesciences.org/download/")
	if !ok {
		return Result{}, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return Result{}, false
	}
	name, _, _ := strings.Cut(parts[1], "?")
	tokens := strings.Split(name, "-")
	if len(tokens) < 2 || !isDigits(tokens[1]) {
		return Result{}, false
	}
	return success("doi", "10.7554/eLife."+tokens[1])
}

// eutilsLinkQuery handles NCBI E-utilities link-resolver URLs. These often
// arrive HTML-entity-escaped, so "&amp;" is folded back before parsing.
// Only pubmed-sourced links are accepted.
func eutilsLinkQuery(url string) (Result, bool) {
	query, ok := strings.CutPrefix(url, "eutils.ncbi.nlm.nih.gov/entrez/eutils/elink.fcgi?")
	if !ok {
		return Result{}, false
	}
	fields := parseQuery(strings.ReplaceAll(query, "&amp;", "&"))
	if fields["dbfrom"] != "pubmed" {
		return Result{}, false
	}
	if id := fields["id"]; id != "" {
		return success("pubmed", id)
	}
	return Result{}, false
}

// europePMCPath extracts PMC identifiers from Europe PMC article URLs,
// which appear both as /articles/PMC123 and as /article/PMC/123, in either
// casing. The canonical identifier always carries an uppercase PMC prefix.
func europePMCPath(url string) (Result, bool) {
	if rest, ok := strings.CutPrefix(url, "europepmc.org/articles/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		digits, ok := strings.CutPrefix(strings.ToUpper(id), "PMC")
		if !ok || !isDigits(digits) {
			return Result{}, false
		}
		return success("pmc", "PMC"+digits)
	}
	for _, prefix := range []string{"europepmc.org/article/PMC/", "europepmc.org/article/pmc/"} {
		rest, ok := strings.CutPrefix(url, prefix)
		if !ok {
			continue
		}
		digits, _, _ := strings.Cut(rest, "/")
		if !isDigits(digits) {
			return Result{}, false
		}
		return success("pmc", "PMC"+digits)
	}
	return Result{}, false
}

// jbcEarlyPath mirrors the bioRxiv "early" shape for JBC ahead-of-print
// URLs: three date segments, then an id like jbc.RA118.006805.
func jbcEarlyPath(url string) (Result, bool) {
	rest, ok := strings.CutPrefix(url, "www.jbc.org/content/early/")
	if !ok {
		return Result{}, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 4 || parts[3] == "" {
		return Result{}, false
	}
	return success("doi", "10.1074/"+parts[3])
}

// parseQuery splits a raw query string into fields. Later duplicates of a
// key overwrite earlier ones. Values are not percent-decoded so DOI values
// pass through byte for byte.
func parseQuery(query string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != "" {
			fields[key] = value
		}
	}
	return fields
}
