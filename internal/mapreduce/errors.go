package mapreduce

import "errors"

// Sentinel errors for common error conditions
var (
	// ErrInvalidWorkerCount is returned when a run is requested with a
	// non-positive worker count.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")

	// ErrWorkerFailure is returned when one or more workers failed. The
	// underlying cause is attached to the error chain.
	ErrWorkerFailure = errors.New("worker failure")
)
