package corpus

import "path/filepath"

// DefaultExcludePatterns contains file name patterns excluded from
// enumeration. These match binary and media formats that are not
// line-oriented text and would only produce garbage offsets.
var DefaultExcludePatterns = []string{
	// Images
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.bmp", "*.webp",

	// Archives
	"*.zip", "*.tar", "*.gz", "*.bz2", "*.xz", "*.7z", "*.rar",

	// Executables and libraries
	"*.exe", "*.dll", "*.so", "*.dylib", "*.a", "*.o",

	// Documents and databases
	"*.pdf", "*.doc", "*.docx", "*.xls", "*.xlsx",
	"*.db", "*.sqlite", "*.sqlite3",

	// Audio/video
	"*.mp3", "*.mp4", "*.wav", "*.avi", "*.mov", "*.mkv",
}

// DefaultMaxFileSize is the enumeration size cap when none is configured.
const DefaultMaxFileSize = int64(64 * 1024 * 1024)

// FileFilter determines which files belong in the corpus.
type FileFilter struct {
	patterns    []string
	maxFileSize int64
}

// NewFileFilter creates a FileFilter with the default exclusion patterns.
func NewFileFilter(maxFileSize int64) *FileFilter {
	return &FileFilter{
		patterns:    DefaultExcludePatterns,
		maxFileSize: maxFileSize,
	}
}

// NewFileFilterWithPatterns creates a FileFilter with custom patterns.
func NewFileFilterWithPatterns(patterns []string, maxFileSize int64) *FileFilter {
	return &FileFilter{
		patterns:    patterns,
		maxFileSize: maxFileSize,
	}
}

// MaxFileSize returns the configured size cap.
func (f *FileFilter) MaxFileSize() int64 {
	return f.maxFileSize
}

// ShouldExclude returns true if a file with the given name and size does
// not belong in the corpus.
func (f *FileFilter) ShouldExclude(name string, size int64) bool {
	if f.maxFileSize > 0 && size > f.maxFileSize {
		return true
	}
	for _, pattern := range f.patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
