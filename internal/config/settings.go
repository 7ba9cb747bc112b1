package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Report format constants
const (
	FormatCSV  = "csv"
	FormatBolt = "bolt"
)

// Settings application settings
type Settings struct {
	Dir           string `mapstructure:"dir"`
	Target        string `mapstructure:"target"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
	Workers       int    `mapstructure:"workers"`
	ContextRadius int    `mapstructure:"context_radius"`
	Output        string `mapstructure:"output"`
	Format        string `mapstructure:"format"`
	Progress      bool   `mapstructure:"progress"`
	CompareCase   bool   `mapstructure:"compare_case"`
	MaxFileSize   int64  `mapstructure:"max_file_size"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("dir", ".")
	v.SetDefault("target", "")
	v.SetDefault("case_sensitive", true)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("context_radius", 30)
	v.SetDefault("output", "results.csv")
	v.SetDefault("format", FormatCSV)
	v.SetDefault("progress", false)
	v.SetDefault("compare_case", false)
	v.SetDefault("max_file_size", int64(64*1024*1024)) // 64MB

	// Environment variables
	v.SetEnvPrefix("MRGREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("dir", "MRGREP_DIR")
	_ = v.BindEnv("target", "MRGREP_TARGET")
	_ = v.BindEnv("case_sensitive", "MRGREP_CASE_SENSITIVE")
	_ = v.BindEnv("workers", "MRGREP_WORKERS")
	_ = v.BindEnv("context_radius", "MRGREP_CONTEXT_RADIUS")
	_ = v.BindEnv("output", "MRGREP_OUTPUT")
	_ = v.BindEnv("format", "MRGREP_FORMAT")
	_ = v.BindEnv("progress", "MRGREP_PROGRESS")
	_ = v.BindEnv("compare_case", "MRGREP_COMPARE_CASE")
	_ = v.BindEnv("max_file_size", "MRGREP_MAX_FILE_SIZE")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("dir", flags.Lookup("dir"))
		_ = v.BindPFlag("target", flags.Lookup("target"))
		_ = v.BindPFlag("workers", flags.Lookup("workers"))
		_ = v.BindPFlag("context_radius", flags.Lookup("context"))
		_ = v.BindPFlag("output", flags.Lookup("output"))
		_ = v.BindPFlag("format", flags.Lookup("format"))
		_ = v.BindPFlag("progress", flags.Lookup("progress"))
		_ = v.BindPFlag("compare_case", flags.Lookup("compare-case"))
		_ = v.BindPFlag("max_file_size", flags.Lookup("max-file-size"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// The CLI exposes case handling grep-style as --ignore-case, which is
	// the inverse of the stored setting.
	if flags != nil && flags.Changed("ignore-case") {
		ignoreCase, _ := flags.GetBool("ignore-case")
		settings.CaseSensitive = !ignoreCase
	}

	// Expand home directory in paths
	settings.Dir = expandHomeDir(settings.Dir)
	settings.Output = expandHomeDir(settings.Output)

	return &settings, nil
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ValidateSettings checks a full search configuration.
// Returns an error if any parameter is malformed, before any work starts.
func ValidateSettings(s *Settings) error {
	if err := ValidateCorpusSettings(s); err != nil {
		return err
	}

	if s.Target == "" {
		return errors.New("target must not be empty")
	}

	if s.ContextRadius < 0 {
		return errors.New("context must not be negative")
	}

	switch s.Format {
	case FormatCSV, FormatBolt:
		// valid
	default:
		return errors.New("format must be 'csv' or 'bolt', got: " + s.Format)
	}

	if s.Output == "" {
		return errors.New("output cannot be empty")
	}

	return nil
}

// ValidateCorpusSettings checks only the parameters needed to open and
// walk the corpus, for commands that do not search.
func ValidateCorpusSettings(s *Settings) error {
	if s.Dir == "" {
		return errors.New("dir cannot be empty")
	}

	if s.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	if s.MaxFileSize < 0 {
		return errors.New("max-file-size must not be negative")
	}

	return nil
}
