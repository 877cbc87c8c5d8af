package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phyten/codecount/internal/report"
)

// Formats selects which result files are written.
type Formats struct {
	Text     bool
	CSV      bool
	Markdown bool
	JSON     bool
}

// Written maps a format name (text|csv|markdown|json) to the file path.
type Written map[string]string

// WriteFiles writes results.{txt,csv,md,json} for t into dir, and
// diff-results.{txt,csv,md} for diff when it is non-nil.
func WriteFiles(dir string, t, diff *report.Table, formats Formats, opts Options) (Written, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if opts.LinkBase == "" {
		if rel, err := filepath.Rel(dir, t.TargetDir); err == nil {
			opts.LinkBase = filepath.ToSlash(rel)
		}
	}
	written := Written{}
	emit := func(key, name string, render func(io.Writer) error) error {
		p := filepath.Join(dir, name)
		if err := writeFile(p, render); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written[key] = p
		return nil
	}

	type job struct {
		on     bool
		key    string
		name   string
		render func(io.Writer) error
	}
	jobs := []job{
		{formats.Text, "text", "results.txt", func(w io.Writer) error { return WriteText(w, t, opts) }},
		{formats.CSV, "csv", "results.csv", func(w io.Writer) error { return WriteCSV(w, t, opts) }},
		{formats.Markdown, "markdown", "results.md", func(w io.Writer) error { return WriteMarkdown(w, t, opts) }},
		{formats.JSON, "json", "results.json", func(w io.Writer) error { return WriteJSON(w, t) }},
	}
	if diff != nil {
		jobs = append(jobs,
			job{formats.Text, "diff-text", "diff-results.txt", func(w io.Writer) error { return WriteText(w, diff, opts) }},
			job{formats.CSV, "diff-csv", "diff-results.csv", func(w io.Writer) error { return WriteCSV(w, diff, opts) }},
			job{formats.Markdown, "diff-markdown", "diff-results.md", func(w io.Writer) error { return WriteMarkdown(w, diff, opts) }},
		)
	}
	for _, j := range jobs {
		if !j.on {
			continue
		}
		if err := emit(j.key, j.name, j.render); err != nil {
			return written, err
		}
	}
	return written, nil
}

func writeFile(p string, render func(io.Writer) error) (err error) {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return err
	}
	return bw.Flush()
}
