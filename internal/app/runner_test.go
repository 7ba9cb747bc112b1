package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"mrgrep/internal/config"
	"mrgrep/internal/grep"
	"mrgrep/internal/report"
)

type memCorpus map[string][]string

func (c memCorpus) List() ([]string, error) {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c memCorpus) Lines(id string) ([]string, error) {
	lines, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("no such document: %s", id)
	}
	return lines, nil
}

// noopValidate is a no-op validation function for tests
func noopValidate(*config.Settings) error {
	return nil
}

func validTestSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{
		Dir:           t.TempDir(),
		Target:        "data",
		CaseSensitive: true,
		Workers:       2,
		ContextRadius: 30,
		Output:        filepath.Join(t.TempDir(), "results.csv"),
		Format:        config.FormatCSV,
		MaxFileSize:   1024,
	}
}

func TestRunWithDeps_ErrorCases(t *testing.T) {
	tests := []struct {
		name           string
		params         RunParams
		wantErrContain string
	}{
		{
			name: "LoadSettings error",
			params: RunParams{
				LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
					return nil, errors.New("settings error")
				},
				ValidSettings: noopValidate,
			},
			wantErrContain: "failed to load settings",
		},
		{
			name: "ValidSettings error",
			params: RunParams{
				LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
					return &config.Settings{}, nil
				},
				ValidSettings: func(*config.Settings) error {
					return errors.New("validation error")
				},
			},
			wantErrContain: "invalid configuration",
		},
		{
			name: "Search error",
			params: RunParams{
				LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
					return &config.Settings{Workers: 1, Target: "x", Format: config.FormatCSV}, nil
				},
				ValidSettings: noopValidate,
				OpenCorpus: func(*config.Settings) grep.Corpus {
					return memCorpus{}
				},
				Search: func(grep.Corpus, grep.Options) (grep.Matches, *grep.Stats, error) {
					return nil, nil, errors.New("worker exploded")
				},
			},
			wantErrContain: "search failed",
		},
		{
			name: "WriteReport error",
			params: RunParams{
				LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
					return &config.Settings{Workers: 1, Target: "x", Format: config.FormatCSV}, nil
				},
				ValidSettings: noopValidate,
				OpenCorpus: func(*config.Settings) grep.Corpus {
					return memCorpus{}
				},
				Search: func(grep.Corpus, grep.Options) (grep.Matches, *grep.Stats, error) {
					return grep.Matches{}, &grep.Stats{}, nil
				},
				WriteReport: func(*config.Settings, grep.Corpus, grep.Matches, string) (int, error) {
					return 0, errors.New("disk full")
				},
			},
			wantErrContain: "failed to write report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunWithDeps(tt.params, nil, "test")
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErrContain) {
				t.Errorf("Error %q does not contain %q", err, tt.wantErrContain)
			}
		})
	}
}

func TestRunWithDeps_Success(t *testing.T) {
	settings := validTestSettings(t)

	var gotRunID string
	var gotMatches grep.Matches
	params := RunParams{
		LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
			return settings, nil
		},
		ValidSettings: config.ValidateSettings,
		OpenCorpus: func(*config.Settings) grep.Corpus {
			return memCorpus{"f1.txt": {"foo data bar"}}
		},
		Search: grep.Search,
		WriteReport: func(_ *config.Settings, _ grep.Corpus, m grep.Matches, runID string) (int, error) {
			gotMatches = m
			gotRunID = runID
			return len(m), nil
		},
	}

	if err := RunWithDeps(params, nil, "test"); err != nil {
		t.Fatalf("RunWithDeps returned error: %v", err)
	}

	if len(gotMatches) != 1 || len(gotMatches["f1.txt"]) != 1 {
		t.Errorf("WriteReport received %v", gotMatches)
	}
	if gotRunID == "" {
		t.Error("Expected a non-empty run ID")
	}
}

func TestRunWithDeps_CompareCase(t *testing.T) {
	settings := validTestSettings(t)
	settings.CompareCase = true

	searchCalls := 0
	params := RunParams{
		LoadSettings: func(*pflag.FlagSet) (*config.Settings, error) {
			return settings, nil
		},
		ValidSettings: config.ValidateSettings,
		OpenCorpus: func(*config.Settings) grep.Corpus {
			return memCorpus{"f1.txt": {"data and DATA"}}
		},
		Search: func(c grep.Corpus, opts grep.Options) (grep.Matches, *grep.Stats, error) {
			searchCalls++
			return grep.Search(c, opts)
		},
		WriteReport: func(*config.Settings, grep.Corpus, grep.Matches, string) (int, error) {
			return 0, nil
		},
	}

	if err := RunWithDeps(params, nil, "test"); err != nil {
		t.Fatalf("RunWithDeps returned error: %v", err)
	}
	if searchCalls != 2 {
		t.Errorf("Search called %d times, want 2 (primary plus comparison)", searchCalls)
	}
}

func TestWriteReport_CSV(t *testing.T) {
	settings := validTestSettings(t)
	c := memCorpus{"f1.txt": {"foo data bar"}}
	matches := grep.Matches{"f1.txt": {{Line: 0, Offset: 4}}}

	rows, err := WriteReport(settings, c, matches, "run1")
	if err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}
	if rows != 1 {
		t.Errorf("Got %d rows, want 1", rows)
	}

	data, err := os.ReadFile(settings.Output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "f1.txt,0,4,foo data bar") {
		t.Errorf("Report content %q missing expected row", data)
	}
}

func TestWriteReport_Bolt(t *testing.T) {
	settings := validTestSettings(t)
	settings.Format = config.FormatBolt
	settings.Output = filepath.Join(t.TempDir(), "results.db")

	c := memCorpus{"f1.txt": {"foo data bar"}}
	matches := grep.Matches{"f1.txt": {{Line: 0, Offset: 4}}}

	rows, err := WriteReport(settings, c, matches, "run1")
	if err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}
	if rows != 1 {
		t.Errorf("Got %d rows, want 1", rows)
	}

	sink, err := report.OpenBoltSink(settings.Output)
	if err != nil {
		t.Fatalf("Failed to reopen report database: %v", err)
	}
	defer sink.Close()

	stored, err := sink.Rows()
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}
	if len(stored) != 1 || stored[0].Document != "f1.txt" {
		t.Errorf("Stored rows = %v", stored)
	}

	meta, err := sink.Meta()
	if err != nil {
		t.Fatalf("Meta returned error: %v", err)
	}
	if meta == nil || meta.RunID != "run1" || meta.Target != "data" {
		t.Errorf("Meta = %+v", meta)
	}
}

func TestOpenCorpus(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("data\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	settings := &config.Settings{Dir: dir, MaxFileSize: 1024}
	c := OpenCorpus(settings)

	ids, err := c.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "f.txt" {
		t.Errorf("List = %v", ids)
	}
}

func TestRunLines(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterCorpusFlags(flags)
	if err := flags.Parse([]string{"--dir", dir}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := RunLines(flags); err != nil {
		t.Errorf("RunLines returned error: %v", err)
	}
}

func TestRunLines_MissingDir(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterCorpusFlags(flags)
	if err := flags.Parse([]string{"--dir", filepath.Join(t.TempDir(), "nope")}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := RunLines(flags); err == nil {
		t.Error("Expected error for missing corpus directory")
	}
}
