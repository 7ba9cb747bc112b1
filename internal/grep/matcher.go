package grep

import "strings"

// FindMatches returns the byte offset of every occurrence of target in
// line, in ascending order. The scan resumes one byte past each hit, so
// overlapping occurrences are all reported ("aa" in "aaa" yields 0 and 1).
//
// When caseSensitive is false both strings are lowercased before
// scanning. Offsets always index the original line, which assumes
// lowercasing preserves byte length; that holds for ASCII and most
// simple folds but not for every locale, so such matches may report
// shifted offsets.
func FindMatches(line, target string, caseSensitive bool) ([]int, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}

	if !caseSensitive {
		line = strings.ToLower(line)
		target = strings.ToLower(target)
	}

	var offsets []int
	for from := 0; ; {
		i := strings.Index(line[from:], target)
		if i < 0 {
			break
		}
		offsets = append(offsets, from+i)
		from += i + 1
	}
	return offsets, nil
}
