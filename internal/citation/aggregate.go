package citation

import "sort"

// Key is a total ordering over Results: successes first, then by namespace
// and identifier; failures order among themselves by identifier alone.
type Key struct {
	Rank       int
	Prefix     string
	Identifier string
}

// SortKey returns the ordering key for a result.
func SortKey(r Result) Key {
	if r.Status != StatusSuccess {
		return Key{Rank: 1, Identifier: r.Identifier}
	}
	return Key{Rank: 0, Prefix: r.Prefix, Identifier: r.Identifier}
}

// Less reports whether k orders before other.
func (k Key) Less(other Key) bool {
	if k.Rank != other.Rank {
		return k.Rank < other.Rank
	}
	if k.Prefix != other.Prefix {
		return k.Prefix < other.Prefix
	}
	return k.Identifier < other.Identifier
}

// SortResults sorts results in place by SortKey.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return SortKey(results[i]).Less(SortKey(results[j]))
	})
}

// ParseMany parses each input in order. With preSort, the inputs are
// sorted lexicographically before dispatch; this changes only the output
// order, never an individual outcome, since Parse has no cross-input state.
func ParseMany(texts []string, preSort bool) []Result {
	if preSort {
		sorted := make([]string, len(texts))
		copy(sorted, texts)
		sort.Strings(sorted)
		texts = sorted
	}
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = Parse(text)
	}
	return results
}

// Group buckets inputs by their resolved namespace. Inputs that fail to
// normalize land under their status tag ("unknown" or "irreconcilable")
// when keepNone is true and are dropped otherwise.
func Group(texts []string, keepNone bool) map[string]map[string]struct{} {
	groups := make(map[string]map[string]struct{})
	for _, text := range texts {
		res := Parse(text)
		tag := res.Prefix
		if res.Status != StatusSuccess {
			if !keepNone {
				continue
			}
			tag = res.Status.String()
		}
		if groups[tag] == nil {
			groups[tag] = make(map[string]struct{})
		}
		groups[tag][res.Identifier] = struct{}{}
	}
	return groups
}
