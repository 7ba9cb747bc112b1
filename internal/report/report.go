// Package report renders aggregated match locations into rows for
// downstream inspection and persists them to a sink.
package report

import (
	"fmt"
	"sort"

	"mrgrep/internal/grep"
)

// Row is one reported occurrence: where the target was found and the
// text surrounding it.
type Row struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Offset   int    `json:"offset"`
	Context  string `json:"context"`
}

// Build renders match locations into report rows, re-reading each
// matched document once to extract context around every occurrence.
// Rows are ordered by document ID, then line, then offset.
//
// The corpus is expected to be unchanged since the matching pass;
// locations that no longer resolve to a line are skipped.
func Build(c grep.Corpus, m grep.Matches, targetLen, radius int) ([]Row, error) {
	docs := make([]string, 0, len(m))
	for doc := range m {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	var rows []Row
	for _, doc := range docs {
		lines, err := c.Lines(doc)
		if err != nil {
			return nil, fmt.Errorf("read %s for context: %w", doc, err)
		}
		for _, loc := range m[doc] {
			if loc.Line >= len(lines) {
				continue
			}
			rows = append(rows, Row{
				Document: doc,
				Line:     loc.Line,
				Offset:   loc.Offset,
				Context:  grep.ExtractContext(lines[loc.Line], loc.Offset, targetLen, radius),
			})
		}
	}
	return rows, nil
}
