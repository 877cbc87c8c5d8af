package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/config"
	"github.com/phyten/codecount/internal/engine"
	"github.com/phyten/codecount/internal/report"
)

func newFileCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "file PATH",
		Short: "Count a single file and print Code/Comment/Blank/Total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ok, err := a.countOne(args[0], id)
			if err != nil {
				return err
			}
			printStatus(a.stdout, res, ok)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "lang", "", "language id or alias (default: resolved from the path)")
	return cmd
}

// countOne loads the same layered settings as count, using the file's
// directory for config lookup.
func (a *app) countOne(p, id string) (report.FileResult, bool, error) {
	s, err := a.loadSettings(".", config.EngineConfig{}, config.OutputConfig{})
	if err != nil {
		return report.FileResult{}, false, err
	}
	reg, err := a.registry(s)
	if err != nil {
		return report.FileResult{}, false, err
	}
	return engine.CountFile(p, id, reg, s.opts.Encoding)
}

// printStatus writes the one-line status, e.g. "Code:3 Comment:1 Blank:0 Total:4".
func printStatus(w io.Writer, r report.FileResult, ok bool) {
	if !ok {
		fmt.Fprintln(w, "Unsupported")
		return
	}
	fmt.Fprintf(w, "Code:%d Comment:%d Blank:%d Total:%d\n", r.Code, r.Comment, r.Blank, r.Total())
}
