package engine

import (
	"log/slog"
	"time"

	"github.com/phyten/codecount/internal/execx"
	"github.com/phyten/codecount/internal/lang"
	"github.com/phyten/codecount/internal/progress"
	"github.com/phyten/codecount/internal/report"
)

const (
	DiscoveryWalk = "walk"
	DiscoveryGit  = "git"
)

// Options は実行オプション
type Options struct {
	TargetDir         string
	Include           []string // doublestar globs relative to TargetDir
	Exclude           []string
	UseGitignore      bool
	Discovery         string // walk|git
	IgnoreUnsupported bool
	Encoding          string
	MaxOpenFiles      int
	MaxFileBytes      int
	OutputDir         string // skipped during discovery
	Now               time.Time

	Registry         *lang.Registry    `json:"-"`
	ProgressObserver progress.Observer `json:"-"`
	Runner           execx.Runner      `json:"-"`
	Logger           *slog.Logger      `json:"-"`
}

// Result は 1 回の集計結果
type Result struct {
	Table      *report.Table
	Discovered int
	Skipped    int // unsupported files left out of the table
	ElapsedMS  int64
}
