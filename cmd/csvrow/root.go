package main

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shapestone/shape-csvrow/internal/logging"
	"github.com/shapestone/shape-csvrow/pkg/csv"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	delimiter string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "csvrow",
		Short:        "Parse delimited text into records",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.delimiter, "delimiter", "d", ",", `field delimiter (a single character, or "tab")`)
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format: text, json")

	rootCmd.AddCommand(newRowsCmd(flags))
	rootCmd.AddCommand(newFmtCmd(flags))

	return rootCmd
}

// readerOptions builds parse options from the global flags and wires
// recovered-row warnings into logger.
func (f *globalFlags) readerOptions(logger *slog.Logger) (csv.ReaderOptions, error) {
	delim, err := parseDelimiter(f.delimiter)
	if err != nil {
		return csv.ReaderOptions{}, err
	}

	opts := csv.DefaultReaderOptions()
	opts.Comma = delim
	opts.WarningCallback = func(line int, message string) {
		logger.Warn("recovered malformed row", "line", line, "reason", message)
	}
	return opts, opts.Validate()
}

func (f *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return logging.Setup(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
}

// parseDelimiter accepts a single character or one of the names "tab" and `\t`.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// loadDocument parses the named file, or stdin when args is empty.
func loadDocument(cmd *cobra.Command, args []string, opts csv.ReaderOptions, logger *slog.Logger) (*csv.Document, error) {
	if len(args) == 0 {
		logger.Debug("reading stdin")
		doc, err := csv.ParseDocumentReader(cmd.InOrStdin(), opts)
		if err != nil {
			return nil, fmt.Errorf("parse stdin: %w", err)
		}
		return doc, nil
	}

	path := args[0]
	logger.Debug("opening file", "path", path)
	doc, err := csv.ParseFileWithOptions(path, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed file", "path", path, "records", doc.RecordCount())
	return doc, nil
}
