package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/velo/component/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse component files and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read component file: %w", err)
				}

				opts := parser.DefaultOptions()
				opts.Loose = true
				opts.Filename = filename

				_, diagnostics, err := parser.ParseBytes(data, opts)
				if err != nil {
					return fmt.Errorf("parse component file: %w", err)
				}
				for _, d := range diagnostics {
					fmt.Printf("%s:%d-%d: %s (%s)\n", filename, d.Start, d.End, d.Message, d.Code)
				}
				total += len(diagnostics)
			}
			if total > 0 {
				return fmt.Errorf("%d problem(s) found", total)
			}
			return nil
		},
	}
}
