package grep

import (
	"fmt"
	"sync/atomic"

	"mrgrep/internal/mapreduce"
)

// Options configures one search run.
type Options struct {
	// Target is the exact string to locate. Must be non-empty.
	Target string

	// CaseSensitive controls whether matching distinguishes case.
	CaseSensitive bool

	// Workers is the number of parallel scanners. It is a resource
	// budget, not a correctness parameter: any value >= 1 yields the
	// same result set.
	Workers int

	// Progress, when non-nil, is called once per scanned document from
	// worker goroutines. It must be safe for concurrent use.
	Progress func(doc string)
}

func (o Options) validate() error {
	if o.Target == "" {
		return ErrEmptyTarget
	}
	if o.Workers <= 0 {
		return fmt.Errorf("%w: %d", mapreduce.ErrInvalidWorkerCount, o.Workers)
	}
	return nil
}

// Stats summarizes a completed search run.
type Stats struct {
	DocumentsScanned int
	DocumentsMatched int
	TotalMatches     int
	BytesRead        int64
}

// Search locates every occurrence of opts.Target across the corpus using
// opts.Workers parallel scanners. Each document is scanned by exactly one
// worker; partial results are merged only after all workers complete.
//
// An empty Matches with a nil error means the search completed and found
// nothing. A non-nil error means the run did not complete and no result
// is returned — a failed worker fails the whole run, with no partial
// aggregate and no automatic retry.
func Search(c Corpus, opts Options) (Matches, *Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	docs, err := c.List()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
	}

	scanner := NewScanner(c, opts.Target, opts.CaseSensitive)

	var scanned, bytesRead atomic.Int64
	mapFn := func(chunk []string) (Matches, error) {
		partial := make(Matches)
		for _, doc := range chunk {
			locs, n, err := scanner.ScanDocument(doc)
			scanned.Add(1)
			bytesRead.Add(n)
			if err != nil {
				return nil, err
			}
			if opts.Progress != nil {
				opts.Progress(doc)
			}
			if len(locs) > 0 {
				partial[doc] = locs
			}
		}
		return partial, nil
	}

	result, err := mapreduce.Run(docs, opts.Workers, mapFn, Merge)
	if err != nil {
		return nil, nil, err
	}
	if result == nil {
		result = make(Matches)
	}

	stats := &Stats{
		DocumentsScanned: int(scanned.Load()),
		DocumentsMatched: len(result),
		BytesRead:        bytesRead.Load(),
	}
	for _, locs := range result {
		stats.TotalMatches += len(locs)
	}
	return result, stats, nil
}

// CountLines totals the number of lines across every document in the
// corpus, using the same partition-and-merge engine as Search.
func CountLines(c Corpus, workers int) (int, error) {
	docs, err := c.List()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
	}

	mapFn := func(chunk []string) (int, error) {
		total := 0
		for _, doc := range chunk {
			lines, err := c.Lines(doc)
			if err != nil {
				return 0, fmt.Errorf("%w: %w", ErrCorpusUnreadable, err)
			}
			total += len(lines)
		}
		return total, nil
	}

	return mapreduce.Run(docs, workers, mapFn, func(a, b int) int { return a + b })
}
