package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phyten/codecount/internal/lang"
	"github.com/phyten/codecount/internal/progress"
	"github.com/phyten/codecount/internal/report"
)

type task struct {
	index int
	name  string
	lang  *lang.Language
}

// Run はオプションに従って対象ディレクトリを走査し、各ファイルの行を分類して集計します。
//
// 読み込みやデコードに失敗したファイルは (Read Error) 行として記録され、実行は中断しません。
// ctx がキャンセルされた場合はそのエラーを返します。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Now.IsZero() {
		opts.Now = start
	}
	if opts.Registry == nil {
		opts.Registry = lang.Default()
	}
	if opts.MaxOpenFiles <= 0 {
		opts.MaxOpenFiles = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	observer := opts.ProgressObserver
	if observer == nil {
		observer = progress.NoopObserver{}
	}
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", "dir", opts.TargetDir, "mode", opts.Discovery, "files", len(files))

	rows := make([]report.FileResult, len(files))
	keep := make([]bool, len(files))
	tasks := make([]task, 0, len(files))
	skipped := 0
	for i, name := range files {
		l, ok := opts.Registry.ResolvePath(name)
		if !ok {
			if opts.IgnoreUnsupported {
				skipped++
				continue
			}
			rows[i] = report.FileResult{Filename: name, Language: report.LangUnsupported}
			keep[i] = true
			continue
		}
		tasks = append(tasks, task{index: i, name: name, lang: l})
	}

	est := progress.NewEstimator(len(tasks), progress.Config{})
	observer.Publish(est.Snapshot())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxOpenFiles)
	for _, tk := range tasks {
		if gctx.Err() != nil {
			break
		}
		tk := tk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := readText(filepath.Join(opts.TargetDir, filepath.FromSlash(tk.name)), enc, opts.MaxFileBytes)
			var snap progress.Snapshot
			var notify bool
			if err != nil {
				logger.Warn("read failed", "file", tk.name, "err", err)
				rows[tk.index] = report.FileResult{Filename: tk.name, Language: report.LangReadError, Error: err.Error()}
				snap, notify = est.Advance(0, true)
			} else {
				cnt := tk.lang.Classify(text)
				rows[tk.index] = report.FileResult{Filename: tk.name, Language: tk.lang.ID, Count: cnt}
				snap, notify = est.Advance(cnt.Total(), false)
			}
			keep[tk.index] = true
			if notify {
				observer.Publish(snap)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	observer.Done(est.Complete())

	table := report.NewTable(opts.TargetDir, opts.Now)
	for i, row := range rows {
		if keep[i] {
			table.Add(row)
		}
	}
	return &Result{
		Table:      table,
		Discovered: len(files),
		Skipped:    skipped,
		ElapsedMS:  msSince(start),
	}, nil
}

// CountFile classifies a single file. id forces the language when set;
// otherwise the path decides. ok is false when no language matches.
func CountFile(p, id string, reg *lang.Registry, encodingName string) (res report.FileResult, ok bool, err error) {
	if reg == nil {
		reg = lang.Default()
	}
	var l *lang.Language
	if id != "" {
		var found bool
		if l, found = reg.ResolveID(id); !found {
			return report.FileResult{}, false, fmt.Errorf("%w: %s", lang.ErrUnknownLanguage, id)
		}
	} else {
		var found bool
		if l, found = reg.ResolvePath(filepath.ToSlash(p)); !found {
			return report.FileResult{Filename: p, Language: report.LangUnsupported}, false, nil
		}
	}
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return report.FileResult{}, false, err
	}
	text, err := readText(p, enc, 0)
	if err != nil {
		return report.FileResult{}, true, err
	}
	return report.FileResult{Filename: p, Language: l.ID, Count: l.Classify(text)}, true, nil
}

func msSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
