package main

import (
	"os"

	"github.com/spf13/cobra"

	"mrgrep/internal/app"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "mrgrep"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:   programName + " [target] [dir]",
		Short: "Parallel substring search over a directory of text files",
		Long: "mrgrep locates every occurrence of a string across a directory of\n" +
			"text files using a map-reduce engine: the file set is partitioned\n" +
			"across parallel workers and per-file match locations are merged into\n" +
			"one report of file, line, offset and surrounding context.",
		Version: version,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Positional arguments are a grep-flavored spelling of the
			// --target and --dir flags.
			if len(args) >= 1 {
				if err := cmd.Flags().Set("target", args[0]); err != nil {
					return err
				}
			}
			if len(args) == 2 {
				if err := cmd.Flags().Set("dir", args[1]); err != nil {
					return err
				}
			}
			return app.RunWithDeps(app.DefaultRunParams(), cmd.Flags(), version)
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterFlags(rootCmd.Flags())

	linesCmd := &cobra.Command{
		Use:   "lines [dir]",
		Short: "Count the total number of lines across the corpus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("dir", args[0]); err != nil {
					return err
				}
			}
			return app.RunLines(cmd.Flags())
		},
	}
	app.RegisterCorpusFlags(linesCmd.Flags())

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the corpus search as an MCP tool over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunMCP(cmd.Context(), cmd.Flags(), version)
		},
	}
	app.RegisterCorpusFlags(mcpCmd.Flags())
	mcpCmd.Flags().IntP("context", "C", 30, "Bytes of context shown around each match")

	rootCmd.AddCommand(linesCmd, mcpCmd)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}
