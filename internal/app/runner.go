package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"mrgrep/internal/config"
	"mrgrep/internal/corpus"
	"mrgrep/internal/grep"
	mcputil "mrgrep/internal/mcp"
	"mrgrep/internal/report"
)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings  func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings func(*config.Settings) error
	OpenCorpus    func(*config.Settings) grep.Corpus
	Search        func(grep.Corpus, grep.Options) (grep.Matches, *grep.Stats, error)
	WriteReport   func(*config.Settings, grep.Corpus, grep.Matches, string) (int, error)
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
		OpenCorpus:    OpenCorpus,
		Search:        grep.Search,
		WriteReport:   WriteReport,
	}
}

// OpenCorpus opens the configured corpus directory
func OpenCorpus(settings *config.Settings) grep.Corpus {
	return corpus.NewDirWithFilter(settings.Dir, corpus.NewFileFilter(settings.MaxFileSize))
}

// RunWithDeps executes one search with the provided dependencies
func RunWithDeps(params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings before any work is dispatched
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogging(version)
	config.Log(settings)

	c := params.OpenCorpus(settings)

	opts := grep.Options{
		Target:        settings.Target,
		CaseSensitive: settings.CaseSensitive,
		Workers:       settings.Workers,
	}

	var bar *progressbar.ProgressBar
	if settings.Progress {
		bar = progressbar.Default(-1, "scanning")
		opts.Progress = func(string) { _ = bar.Add(1) }
	}

	start := time.Now()
	matches, stats, err := params.Search(c, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if settings.CompareCase {
		logCaseComparison(params, c, opts, matches, logger)
	}

	rows, err := params.WriteReport(settings, c, matches, logger.runID)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Search completed",
		"documents_scanned", stats.DocumentsScanned,
		"documents_matched", stats.DocumentsMatched,
		"matches", humanize.Comma(int64(stats.TotalMatches)),
		"bytes_read", humanize.Bytes(uint64(stats.BytesRead)),
		"rows", rows,
		"duration", time.Since(start).Round(time.Millisecond),
		"output", settings.Output)
	return nil
}

// logCaseComparison runs the opposite case mode over the same corpus and
// logs every document where the insensitive pass found extra matches.
// Comparison failures are logged, not fatal: the primary result is
// already in hand.
func logCaseComparison(params RunParams, c grep.Corpus, opts grep.Options, matches grep.Matches, logger *runLogger) {
	otherOpts := opts
	otherOpts.CaseSensitive = !opts.CaseSensitive
	otherOpts.Progress = nil

	other, _, err := params.Search(c, otherOpts)
	if err != nil {
		logger.Error("Case comparison pass failed", "error", err)
		return
	}

	sensitive, insensitive := matches, other
	if !opts.CaseSensitive {
		sensitive, insensitive = other, matches
	}

	extras := grep.CompareRuns(sensitive, insensitive)
	if len(extras) == 0 {
		logger.Info("Case-insensitive pass found no additional matches")
		return
	}
	for _, extra := range extras {
		logger.Info("Case-insensitive pass found additional matches",
			"document", extra.Document, "count", extra.Count)
	}
}

// WriteReport builds report rows and persists them in the configured format
func WriteReport(settings *config.Settings, c grep.Corpus, matches grep.Matches, runID string) (int, error) {
	rows, err := report.Build(c, matches, len(settings.Target), settings.ContextRadius)
	if err != nil {
		return 0, err
	}

	switch settings.Format {
	case config.FormatBolt:
		sink, err := report.OpenBoltSink(settings.Output)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := sink.Close(); cerr != nil {
				slog.Error("Failed to close report database", "error", cerr)
			}
		}()
		meta := report.Meta{RunID: runID, Target: settings.Target, CreatedAt: time.Now()}
		if err := sink.Write(meta, rows); err != nil {
			return 0, err
		}
	default:
		if err := report.WriteCSVFile(settings.Output, rows); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

// RunLines counts the total number of lines across the corpus using the
// same engine as the search and prints the total to stdout.
func RunLines(flags *pflag.FlagSet) error {
	settings, err := config.LoadSettingsWithFlags(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.ValidateCorpusSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c := OpenCorpus(settings)
	total, err := grep.CountLines(c, settings.Workers)
	if err != nil {
		return fmt.Errorf("line count failed: %w", err)
	}

	fmt.Println(total)
	return nil
}

// RunMCP serves the search as an MCP tool over stdio
func RunMCP(ctx context.Context, flags *pflag.FlagSet, version string) error {
	settings, err := config.LoadSettingsWithFlags(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.ValidateCorpusSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogging(version)
	logger.Info("Starting MCP server", "dir", settings.Dir)

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:          "mrgrep",
		Version:       version,
		Corpus:        OpenCorpus(settings),
		Workers:       settings.Workers,
		ContextRadius: settings.ContextRadius,
	})

	return server.Run(ctx, &mcp.StdioTransport{})
}

// runLogger tags every log line of one run with a short run ID.
type runLogger struct {
	*slog.Logger
	runID string
}

// setupLogging configures slog on stderr, keeping stdout clean for
// command output, and returns a logger scoped to a fresh run ID.
func setupLogging(version string) *runLogger {
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	runID := uuid.New().String()[:8]
	logger := slog.Default().With("run_id", runID)
	logger.Info("Starting mrgrep", "version", version)

	return &runLogger{Logger: logger, runID: runID}
}
