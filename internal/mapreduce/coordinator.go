package mapreduce

import (
	"fmt"
	"sync"
)

// Run executes a single-machine map-reduce pass over items.
//
// The input is partitioned into at most workerCount contiguous chunks,
// each chunk is handed to its own goroutine running mapFn, and once every
// worker has returned the partial results are folded left-to-right with
// mergeFn in chunk-dispatch order. The fold happens on the calling
// goroutine only; workers never touch the aggregate.
//
// If any worker returns an error the whole run fails with a
// ErrWorkerFailure-wrapped error and no aggregate is returned. mergeFn
// must be associative; chunks never overlap, so for disjoint-key map
// results it is only ever applied to disjoint partials.
func Run[T, R any](items []T, workerCount int, mapFn func([]T) (R, error), mergeFn func(R, R) R) (R, error) {
	var zero R

	chunks, err := Partition(items, workerCount)
	if err != nil {
		return zero, err
	}
	if len(chunks) == 0 {
		return zero, nil
	}

	partials := make([]R, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[i], errs[i] = mapFn(chunk)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return zero, fmt.Errorf("%w: chunk %d: %w", ErrWorkerFailure, i, err)
		}
	}

	aggregate := partials[0]
	for _, partial := range partials[1:] {
		aggregate = mergeFn(aggregate, partial)
	}
	return aggregate, nil
}
