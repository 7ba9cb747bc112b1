// Package corpus provides document enumeration and content access for
// the search engine. It owns all filesystem I/O; the engine only ever
// sees document IDs and line sequences.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// maxLineBytes bounds a single line during scanning. Scraped HTML pages
// routinely carry lines far beyond bufio's 64K default.
const maxLineBytes = 1 << 20

// Dir is a corpus over the regular files of one directory, mirroring a
// flat folder of scraped pages. Document IDs are bare file names.
type Dir struct {
	path   string
	filter *FileFilter
}

// NewDir creates a directory corpus with the default file filter.
func NewDir(path string) *Dir {
	return NewDirWithFilter(path, NewFileFilter(DefaultMaxFileSize))
}

// NewDirWithFilter creates a directory corpus with a custom file filter.
func NewDirWithFilter(path string, filter *FileFilter) *Dir {
	return &Dir{path: path, filter: filter}
}

// Path returns the directory backing this corpus.
func (d *Dir) Path() string {
	return d.path
}

// List returns the IDs of every document in the corpus, ordered by name.
// Sub-directories and filtered files are skipped.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("list corpus %s: %w", d.path, err)
	}

	// os.ReadDir returns entries sorted by name.
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if d.filter.ShouldExclude(entry.Name(), info.Size()) {
			continue
		}
		ids = append(ids, entry.Name())
	}
	return ids, nil
}

// Lines reads one document and returns its lines, split on newline
// boundaries. The document is read in full on every call; nothing is
// cached between calls.
func (d *Dir) Lines(id string) ([]string, error) {
	f, err := os.Open(filepath.Join(d.path, id))
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", id, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read document %s: %w", id, err)
	}
	return lines, nil
}
