package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sheetkit/pkg/xlsx"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	logLevel string

	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "xlsxctl",
	Short: "Inspect and build spreadsheet workbooks",
	Long: `xlsxctl reads and writes .xlsx workbooks. It lists sheets, streams rows,
pages through the shared string table, shows cell formats, classifies number
format codes and builds workbooks from a YAML description.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (implies --log-level debug)")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level on stderr: debug, info, warn, error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setupLogger installs a text handler on stderr at the requested level.
func setupLogger() error {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning", "":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// openWorkbook opens path with the CLI logger wired through every layer.
func openWorkbook(path string) (*xlsx.Workbook, error) {
	logger.Debug("opening workbook", "path", path)
	wb, err := xlsx.Open(path, &xlsx.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return wb, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
