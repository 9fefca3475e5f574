package citation

// The rule tables below are fixed, process-wide, read-only data. They are
// never written after package initialization, so Parse is safe for
// unsynchronized concurrent use.

// protocols are the URL schemes recognized before dispatch. Every entry
// ends in "://"; all other tables are protocol-agnostic because the
// protocol is stripped first.
var protocols = []string{"https://", "http://"}

// rawDOIPrefixes mark inputs that are already bare DOIs from known preprint
// registrants (Research Square, ChemRxiv, Preprints.org, JOSS), not wrapped
// in a URL.
var rawDOIPrefixes = []string{
	"10.21203/",
	"10.26434/",
	"10.20944/",
	"10.21105/",
}

// suffixes is trailing noise stripped after protocol removal. Each entry is
// stripped at most once, in order; a later entry can still match after an
// earlier strip, which is how "174094.full.pdf" loses ".pdf" and then
// ".full".
var suffixes = []string{".pdf", ".full", ".full.pdf", ".article-metrics", "/pdf"}

// prefixMap maps literal host+path prefixes to a namespace for the clean
// case where everything after the prefix is the identifier verbatim.
// Lookup order does not matter: no entry may be a strict prefix of another
// entry mapped to a different namespace (tested).
var prefixMap = map[string]string{
	"doi.org/":                                           "doi",
	"dx.plos.org/":                                       "doi",
	"doi.wiley.com/":                                     "doi",
	"link.springer.com/":                                 "doi",
	"jvi.asm.org/cgi/doi/":                               "doi",
	"jcm.asm.org/lookup/doi/":                            "doi",
	"www.sciencemag.org/lookup/doi/":                     "doi",
	"www.pnas.org/cgi/doi/":                              "doi",
	"www.nejm.org/doi/":                                  "doi",
	"www.tandfonline.com/doi/":                           "doi",
	"www.annualreviews.org/doi/":                         "doi",
	"onlinelibrary.wiley.com/doi/full/":                  "doi",
	"onlinelibrary.wiley.com/doi/abs/":                   "doi",
	"bmcsystbiol.biomedcentral.com/articles/":            "doi",
	"bmcbioinformatics.biomedcentral.com/track/pdf/":     "doi",
	"www.microbiologyresearch.org/content/journal/jgv/":  "doi",
	"joss.theoj.org/papers/":                             "doi",
	"arxiv.org/abs/":                                     "arxiv",
	"arxiv.org/pdf/":                                     "arxiv",
	"biorxiv.org/lookup/doi/":                            "biorxiv",
	"medrxiv.org/lookup/doi/":                            "medrxiv",
}

// irreconcilablePrefixes are publisher URL shapes known to never contain a
// recoverable identifier. PNAS "early" links carry only a date and an
// internal manuscript number with no DOI segment. Checked before every
// other dispatcher rule so nothing downstream can claim them.
var irreconcilablePrefixes = []string{
	"www.pnas.org/content/pnas/early/",
}
