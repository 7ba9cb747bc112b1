package grep

import "sort"

// Location identifies one occurrence of the target within a document:
// a 0-based line index and a 0-based byte offset within that line.
type Location struct {
	Line   int `json:"line"`
	Offset int `json:"offset"`
}

// Matches maps a document ID to the ordered locations of every
// occurrence found in it. Documents without matches have no entry.
// Within a document, locations are in line-then-offset scan order.
type Matches map[string][]Location

// Merge combines two partial match maps into one. Every document is
// scanned by exactly one worker, so the key sets are disjoint under
// correct partitioning and the merge is a plain union. If a key
// nevertheless appears in both maps, the lists are concatenated with
// a's entries first; no entry is ever dropped.
func Merge(a, b Matches) Matches {
	if len(a) == 0 {
		return b
	}
	for doc, locs := range b {
		a[doc] = append(a[doc], locs...)
	}
	return a
}

// ExtraMatches reports occurrences in one document that a
// case-insensitive pass found beyond a case-sensitive pass.
type ExtraMatches struct {
	Document string
	Count    int
}

// CompareRuns diffs a case-sensitive and a case-insensitive result over
// the same corpus and target. It returns, ordered by document ID, every
// document where the insensitive pass found additional matches.
func CompareRuns(sensitive, insensitive Matches) []ExtraMatches {
	var extra []ExtraMatches
	for doc, locs := range insensitive {
		if diff := len(locs) - len(sensitive[doc]); diff > 0 {
			extra = append(extra, ExtraMatches{Document: doc, Count: diff})
		}
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].Document < extra[j].Document
	})
	return extra
}
