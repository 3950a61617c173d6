package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/velo/component/parser"
	"github.com/dhamidi/velo/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var loose bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a component file and dump the AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read component file: %w", err)
			}

			opts := parser.DefaultOptions()
			opts.Loose = loose
			opts.Filename = filename

			root, diagnostics, err := parser.ParseBytes(data, opts)
			if err != nil {
				return fmt.Errorf("parse component file: %w", err)
			}

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(os.Stdout)
				if err := enc.Encode(root); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			for _, d := range diagnostics {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json)")
	cmd.Flags().BoolVar(&loose, "loose", false, "recover from errors instead of aborting")

	return cmd
}
