package main

import (
	"fmt"

	"github.com/shapestone/shape-csvrow/pkg/csv"
	"github.com/spf13/cobra"
)

func newFmtCmd(flags *globalFlags) *cobra.Command {
	var (
		useCRLF  bool
		outDelim string
	)

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Re-render a delimited file with minimal quoting",
		Long: `Parse a delimited file and write it back out, quoting only fields that
contain the delimiter, a quote, CR or LF.

If no file is provided, reads from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(cmd)

			opts, err := flags.readerOptions(logger)
			if err != nil {
				return err
			}

			wopts := csv.WriterOptions{Comma: opts.Comma, UseCRLF: useCRLF}
			if outDelim != "" {
				if wopts.Comma, err = parseDelimiter(outDelim); err != nil {
					return fmt.Errorf("output delimiter: %w", err)
				}
			}

			doc, err := loadDocument(cmd, args, opts, logger)
			if err != nil {
				return err
			}

			out, err := doc.Render(wopts)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&useCRLF, "crlf", false, "terminate records with CRLF")
	cmd.Flags().StringVar(&outDelim, "out-delimiter", "", "output delimiter (default: the input delimiter)")

	return cmd
}
