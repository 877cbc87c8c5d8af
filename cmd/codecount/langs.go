package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/config"
	"github.com/phyten/codecount/internal/textutil"
)

func newLangsCmd(a *app) *cobra.Command {
	var extensionDirs []string
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List the registered languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSettings(".", config.EngineConfig{ExtensionDirs: changedList(cmd, "extension-dir", extensionDirs)}, config.OutputConfig{})
			if err != nil {
				return err
			}
			reg, err := a.registry(s)
			if err != nil {
				return err
			}
			langs := reg.Languages()
			ids := make([]string, 0, len(langs))
			for _, l := range langs {
				ids = append(ids, l.ID)
			}
			w := textutil.MaxWidth(4, ids...)
			for _, l := range langs {
				match := append(append([]string(nil), l.Extensions...), l.Filenames...)
				fmt.Fprintf(a.stdout, "%s  %s", textutil.PadRight(l.ID, w), strings.Join(match, " "))
				if len(l.Aliases) > 0 {
					fmt.Fprintf(a.stdout, "  (aliases: %s)", strings.Join(l.Aliases, ", "))
				}
				fmt.Fprintln(a.stdout)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&extensionDirs, "extension-dir", nil, "editor extension directory to harvest language rules from")
	return cmd
}
