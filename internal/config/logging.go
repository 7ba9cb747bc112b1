package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: dir", "value", s.Dir)
	logger.InfoContext(ctx, "Config: target", "value", s.Target)
	logger.InfoContext(ctx, "Config: case_sensitive", "value", s.CaseSensitive)
	logger.InfoContext(ctx, "Config: workers", "value", s.Workers)
	logger.InfoContext(ctx, "Config: context_radius", "value", s.ContextRadius)
	logger.InfoContext(ctx, "Config: format", "value", s.Format)
	logger.InfoContext(ctx, "Config: output", "value", s.Output)
	logger.InfoContext(ctx, "Config: max_file_size", "value", s.MaxFileSize)
	if s.CompareCase {
		logger.InfoContext(ctx, "Config: compare_case", "value", s.CompareCase)
	}
}

// SettingsLogValue returns a slog.Value for Settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("dir", s.Dir),
		slog.String("target", s.Target),
		slog.Bool("case_sensitive", s.CaseSensitive),
		slog.Int("workers", s.Workers),
		slog.Int("context_radius", s.ContextRadius),
		slog.String("format", s.Format),
		slog.String("output", s.Output),
		slog.Int64("max_file_size", s.MaxFileSize),
	)
}
