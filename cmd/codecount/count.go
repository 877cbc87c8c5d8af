package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/config"
	"github.com/phyten/codecount/internal/engine"
	"github.com/phyten/codecount/internal/gitremote"
	"github.com/phyten/codecount/internal/output"
	"github.com/phyten/codecount/internal/progress"
	"github.com/phyten/codecount/internal/report"
)

type countFlags struct {
	include           []string
	exclude           []string
	extensionDirs     []string
	useGitignore      bool
	ignoreUnsupported bool
	discovery         string
	encoding          string
	jobs              int
	maxFileBytes      int
	progress          bool
	noProgress        bool

	eol       string
	outputDir string
	text      bool
	csv       bool
	markdown  bool
	json      bool
	preview   string
	diffWith  string
	linkBase  string
	ndjson    bool
}

func newCountCmd(a *app) *cobra.Command {
	fl := &countFlags{}
	cmd := &cobra.Command{
		Use:   "count [DIR]",
		Short: "Count every file under DIR and write results.{txt,csv,md,json}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return a.runCount(cmd, target, fl)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&fl.include, "include", nil, "glob of files to count, repeatable (default **/*)")
	f.StringSliceVar(&fl.exclude, "exclude", nil, "glob of files to skip, repeatable")
	f.StringSliceVar(&fl.extensionDirs, "extension-dir", nil, "editor extension directory to harvest language rules from")
	f.BoolVar(&fl.useGitignore, "gitignore", true, "honour .gitignore files")
	f.BoolVar(&fl.ignoreUnsupported, "ignore-unsupported", true, "leave files of unknown languages out of the report")
	f.StringVar(&fl.discovery, "discovery", "", "walk|git")
	f.StringVar(&fl.encoding, "encoding", "", "text encoding of the sources (default utf-8)")
	f.IntVarP(&fl.jobs, "jobs", "j", 0, "max files open at once (default: CPUs)")
	f.IntVar(&fl.maxFileBytes, "max-file-bytes", 0, "record larger files as read errors (0=unlimited)")
	f.BoolVar(&fl.progress, "progress", false, "force progress even when stderr is not a terminal")
	f.BoolVar(&fl.noProgress, "no-progress", false, "disable progress")

	f.StringVar(&fl.eol, "eol", "", "lf|crlf for written reports")
	f.StringVarP(&fl.outputDir, "output-dir", "o", "", "report directory, relative to DIR (default .codecount)")
	f.BoolVar(&fl.text, "text", true, "write results.txt")
	f.BoolVar(&fl.csv, "csv", true, "write results.csv")
	f.BoolVar(&fl.markdown, "markdown", true, "write results.md")
	f.BoolVar(&fl.json, "json", true, "write results.json")
	f.StringVar(&fl.preview, "preview", "", "open text|csv|markdown report when done")
	f.StringVar(&fl.diffWith, "diff-with", "", "results.json of an earlier run to diff against")
	f.StringVar(&fl.linkBase, "link-base", "", `prefix for Markdown file links; "git" links to the origin blob pages`)
	f.BoolVar(&fl.ndjson, "ndjson", false, "print one JSON object per file to stdout instead of the summary")
	return cmd
}

func (fl *countFlags) layers(cmd *cobra.Command) (config.EngineConfig, config.OutputConfig) {
	eng := config.EngineConfig{
		Include:           changedList(cmd, "include", fl.include),
		Exclude:           changedList(cmd, "exclude", fl.exclude),
		ExtensionDirs:     changedList(cmd, "extension-dir", fl.extensionDirs),
		UseGitignore:      changedBool(cmd, "gitignore", fl.useGitignore),
		IgnoreUnsupported: changedBool(cmd, "ignore-unsupported", fl.ignoreUnsupported),
		Discovery:         changedString(cmd, "discovery", fl.discovery),
		Encoding:          changedString(cmd, "encoding", fl.encoding),
		MaxOpenFiles:      changedInt(cmd, "jobs", fl.jobs),
		MaxFileBytes:      changedInt(cmd, "max-file-bytes", fl.maxFileBytes),
		Progress:          changedBool(cmd, "progress", fl.progress),
	}
	out := config.OutputConfig{
		EOL:            changedString(cmd, "eol", fl.eol),
		OutputDir:      changedString(cmd, "output-dir", fl.outputDir),
		OutputText:     changedBool(cmd, "text", fl.text),
		OutputCSV:      changedBool(cmd, "csv", fl.csv),
		OutputMarkdown: changedBool(cmd, "markdown", fl.markdown),
		OutputJSON:     changedBool(cmd, "json", fl.json),
		Preview:        changedString(cmd, "preview", fl.preview),
		DiffWith:       changedString(cmd, "diff-with", fl.diffWith),
		LinkBase:       changedString(cmd, "link-base", fl.linkBase),
	}
	return eng, out
}

func (a *app) runCount(cmd *cobra.Command, target string, fl *countFlags) error {
	flagEngine, flagOutput := fl.layers(cmd)
	s, err := a.loadSettings(target, flagEngine, flagOutput)
	if err != nil {
		return err
	}
	reg, err := a.registry(s)
	if err != nil {
		return err
	}

	opts := s.opts
	opts.Registry = reg
	opts.Logger = a.logger
	opts.Now = a.now()
	observers := []progress.Observer{progress.NewLogObserver(a.logger)}
	if progress.ShouldShowProgress(s.engine.Progress, fl.noProgress) {
		observers = append(observers, progress.NewTTYObserver(a.stderr))
	}
	opts.ProgressObserver = progress.NewMultiObserver(observers...)

	a.logger.Info("counting", "dir", opts.TargetDir, "discovery", opts.Discovery, "languages", reg.Len())
	res, err := engine.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	a.logger.Debug("count finished", "files", res.Table.Len(), "skipped", res.Skipped, "elapsed_ms", res.ElapsedMS)

	var diff *report.Table
	if s.output.DiffWith != "" {
		prev, err := output.LoadSnapshot(s.output.DiffWith)
		if err != nil {
			return fmt.Errorf("diff-with: %w", err)
		}
		diff = report.DiffTable(opts.TargetDir, opts.Now, prev.Files, res.Table.Files())
	}

	if fl.ndjson {
		if err := output.WriteNDJSON(a.stdout, res.Table.Files()); err != nil {
			return err
		}
	} else {
		painter, err := a.painter(s.output.Color)
		if err != nil {
			return err
		}
		writeSummary(a.stdout, painter, res.Table, diff)
	}

	eol, err := output.ParseEOL(s.output.EOL)
	if err != nil {
		return err
	}
	formats := output.Formats{
		Text:     s.output.OutputText,
		CSV:      s.output.OutputCSV,
		Markdown: s.output.OutputMarkdown,
		JSON:     s.output.OutputJSON,
	}
	renderOpts := output.Options{EOL: eol, LinkBase: a.linkBase(cmd.Context(), s)}
	written, err := output.WriteFiles(s.outputDir(), res.Table, diff, formats, renderOpts)
	if err != nil {
		return err
	}
	for _, key := range []string{"text", "csv", "markdown", "json", "diff-text", "diff-csv", "diff-markdown"} {
		if p, ok := written[key]; ok {
			a.logger.Info("wrote", "format", key, "path", p)
		}
	}

	if s.output.Preview != "" {
		key := s.output.Preview
		if diff != nil {
			key = "diff-" + key
		}
		if p, ok := written[key]; ok {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			if err := a.open(abs); err != nil {
				a.logger.Warn("preview failed", "path", abs, "err", err)
			}
		}
	}
	return nil
}

// linkBase resolves link_base. "git" asks the checkout for its origin and
// HEAD; failures fall back to relative links.
func (a *app) linkBase(ctx context.Context, s *settings) string {
	if s.output.LinkBase != "git" {
		return s.output.LinkBase
	}
	dir := s.opts.TargetDir
	prefix, err := gitremote.Prefix(ctx, s.opts.Runner, dir)
	if err == nil {
		var base string
		if base, err = gitremote.LinkBase(ctx, s.opts.Runner, dir, prefix); err == nil {
			a.logger.Debug("link base", "url", base)
			return base
		}
	}
	a.logger.Warn("link_base=git unavailable, using relative links", "err", err)
	return ""
}
