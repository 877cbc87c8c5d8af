package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/output"
	"github.com/phyten/codecount/internal/report"
)

func newDiffCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two results.json files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := output.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			cur, err := output.LoadSnapshot(args[1])
			if err != nil {
				return err
			}
			t := report.DiffTable(cur.Directory, cur.Date, prev.Files, cur.Files)
			switch format {
			case "", "text":
				return output.WriteText(a.stdout, t, output.Options{})
			case "csv":
				return output.WriteCSV(a.stdout, t, output.Options{})
			case "markdown", "md":
				return output.WriteMarkdown(a.stdout, t, output.Options{})
			case "ndjson":
				return output.WriteNDJSON(a.stdout, t.Files())
			default:
				return fmt.Errorf("--format: unknown format %q (want text|csv|markdown|ndjson)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text|csv|markdown|ndjson")
	return cmd
}
