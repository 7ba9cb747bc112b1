package grep

import "errors"

// Sentinel errors for common error conditions
var (
	// ErrEmptyTarget is returned when a search is requested for the empty
	// string, which would otherwise match at every position.
	ErrEmptyTarget = errors.New("search target is empty")

	// ErrCorpusUnreadable is returned when document enumeration or content
	// access failed. The underlying I/O error is attached to the chain.
	ErrCorpusUnreadable = errors.New("corpus unreadable")
)
