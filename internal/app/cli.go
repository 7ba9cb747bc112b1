package app

import "github.com/spf13/pflag"

// RegisterFlags registers all search CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	RegisterCorpusFlags(flags)
	flags.StringP("target", "e", "", "Exact string to search for")
	flags.BoolP("ignore-case", "i", false, "Match case-insensitively")
	flags.IntP("context", "C", 30, "Bytes of context shown around each match")
	flags.StringP("output", "o", "", "Report output path")
	flags.StringP("format", "f", "", "Report format: csv or bolt")
	flags.Bool("progress", false, "Show a progress bar while scanning")
	flags.Bool("compare-case", false, "Also run the opposite case mode and report extra matches")
}

// RegisterCorpusFlags registers the flags shared by every command that
// walks the corpus
func RegisterCorpusFlags(flags *pflag.FlagSet) {
	flags.StringP("dir", "d", "", "Directory containing the corpus")
	flags.IntP("workers", "w", 0, "Number of parallel workers")
	flags.Int64("max-file-size", 0, "Skip files larger than this many bytes")
}
