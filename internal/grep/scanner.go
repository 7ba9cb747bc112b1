package grep

import "fmt"

// Corpus is the engine's view of document storage. List returns the
// ordered IDs of every document; Lines returns one document's content
// split on newline boundaries. Implementations own enumeration and I/O;
// the engine only ever holds document IDs.
type Corpus interface {
	List() ([]string, error)
	Lines(id string) ([]string, error)
}

// Scanner applies the line matcher to every line of a document read
// through a Corpus. It holds the target and case flag for one search so
// workers stay pure functions of their chunk.
type Scanner struct {
	corpus        Corpus
	target        string
	caseSensitive bool
}

// NewScanner creates a scanner for one search configuration.
func NewScanner(c Corpus, target string, caseSensitive bool) *Scanner {
	return &Scanner{
		corpus:        c,
		target:        target,
		caseSensitive: caseSensitive,
	}
}

// ScanDocument returns every match location in the document in
// line-then-offset order, plus the number of bytes examined. The
// document's content is not retained after the scan; context extraction
// re-reads on demand.
func (s *Scanner) ScanDocument(doc string) ([]Location, int64, error) {
	lines, err := s.corpus.Lines(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
	}

	var locs []Location
	var bytesRead int64
	for i, line := range lines {
		bytesRead += int64(len(line))

		offsets, err := FindMatches(line, s.target, s.caseSensitive)
		if err != nil {
			return nil, bytesRead, err
		}
		for _, off := range offsets {
			locs = append(locs, Location{Line: i, Offset: off})
		}
	}
	return locs, bytesRead, nil
}
