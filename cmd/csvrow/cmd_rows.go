package main

import (
	"bufio"
	"fmt"

	"github.com/shapestone/shape-csvrow/pkg/csv"
	"github.com/spf13/cobra"
)

func newRowsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows [file]",
		Short: "Print each record as [field]<TAB>[field]<TAB>...",
		Long: `Parse a delimited file and print one line per record, each field
wrapped in brackets and followed by a tab.

If no file is provided, reads from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(cmd)

			opts, err := flags.readerOptions(logger)
			if err != nil {
				return err
			}

			doc, err := loadDocument(cmd, args, opts, logger)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, rec := range doc.Records() {
				if _, err := fmt.Fprintln(w, csv.FormatRow(rec.Fields())); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	return cmd
}
