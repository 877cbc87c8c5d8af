package progress

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

type MultiObserver struct {
	observers []Observer
}

func NewMultiObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, ob := range obs {
		if ob != nil {
			filtered = append(filtered, ob)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) Publish(s Snapshot) {
	for _, ob := range m.observers {
		ob.Publish(s)
	}
}

func (m *MultiObserver) Done(s Snapshot) {
	for _, ob := range m.observers {
		ob.Done(s)
	}
}

// ShouldShowProgress: --no-progress wins, then --progress, otherwise only
// when stderr is a terminal.
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTTYObserver redraws a single status line on w.
func NewTTYObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	return &ttyObserver{w: w}
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver reports snapshots as debug records and the final one at
// info level.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) Publish(s Snapshot) {
	o.logger.Debug("progress", snapshotAttrs(s)...)
}

func (o *logObserver) Done(s Snapshot) {
	o.logger.Info("counted", snapshotAttrs(s)...)
}

func snapshotAttrs(s Snapshot) []any {
	return []any{
		slog.String("stage", string(s.Stage)),
		slog.Int("done", s.Done),
		slog.Int("total", s.Total),
		slog.Int("failed", s.Failed),
		slog.Int("lines", s.Lines),
		slog.Duration("elapsed", s.Elapsed.Round(time.Millisecond)),
	}
}

// NewAutoObserver picks the TTY renderer for terminals and the slog
// renderer otherwise.
func NewAutoObserver(w io.Writer, logger *slog.Logger) Observer {
	if f, ok := w.(*os.File); ok && isTTY(f) {
		return NewTTYObserver(w)
	}
	return NewLogObserver(logger)
}

func renderTTY(s Snapshot) string {
	pct := percent(s.Done, s.Total)
	rate := "--/s"
	if !s.Warmup && s.RateEMA > 0 {
		rate = fmt.Sprintf("%.1f files/s", s.RateEMA)
	}
	eta := "--:--:--"
	if !s.Warmup && s.ETA > 0 {
		eta = formatETA(s.ETA)
	}
	failed := ""
	if s.Failed > 0 {
		failed = fmt.Sprintf(" (%d failed)", s.Failed)
	}
	return fmt.Sprintf("[%s] %3d%% %d/%d%s %d lines %s ETA %s", s.Stage, pct, s.Done, s.Total, failed, s.Lines, rate, eta)
}

func formatETA(d time.Duration) string {
	totalSeconds := int(math.Round(d.Seconds()))
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	if hours > 99 {
		hours = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, (totalSeconds%3600)/60, totalSeconds%60)
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	if a <= 0 {
		return 0
	}
	if p := a * 100 / b; p < 100 {
		return p
	}
	return 100
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
