package mapreduce

import "fmt"

// Partition splits items into at most workerCount contiguous chunks.
// Chunk size is ceil(len(items)/workerCount), so every chunk except
// possibly the last has the same length. Concatenating the chunks in
// order reproduces items exactly once.
func Partition[T any](items []T, workerCount int) ([][]T, error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, workerCount)
	}
	if len(items) == 0 {
		return nil, nil
	}

	chunkSize := (len(items) + workerCount - 1) / workerCount

	chunks := make([][]T, 0, workerCount)
	for start := 0; start < len(items); start += chunkSize {
		end := min(start+chunkSize, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
