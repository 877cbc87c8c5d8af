package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		id       string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch PATH",
		Short: "Reprint the status line of PATH every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := args[0]
			return watch.File(cmd.Context(), p, watch.Options{Debounce: debounce, Logger: a.logger}, func() {
				res, ok, err := a.countOne(p, id)
				if err != nil {
					a.logger.Warn("count failed", "path", p, "err", err)
					return
				}
				printStatus(a.stdout, res, ok)
			})
		},
	}
	cmd.Flags().StringVar(&id, "lang", "", "language id or alias (default: resolved from the path)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before recounting")
	return cmd
}
