package progress

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEstimatorAdvanceIsSequential(t *testing.T) {
	const workers = 128
	est := NewEstimator(workers, Config{NotifyInterval: time.Nanosecond})

	var wg sync.WaitGroup
	wg.Add(workers)

	start := make(chan struct{})
	results := make(chan int, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			snap, _ := est.Advance(10, false)
			results <- snap.Done
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	seen := make([]bool, workers)
	for r := range results {
		if r <= 0 || r > workers {
			t.Fatalf("進捗値が範囲外です: got=%d", r)
		}
		if seen[r-1] {
			t.Fatalf("進捗値が重複しました: got=%d", r)
		}
		seen[r-1] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("進捗値が欠落しています: index=%d", i+1)
		}
	}
	if got := est.Snapshot().Lines; got != workers*10 {
		t.Fatalf("行数の合計が一致しません: want=%d got=%d", workers*10, got)
	}
}

func TestEstimatorTracksFailuresAndCompletes(t *testing.T) {
	est := NewEstimator(3, Config{})
	est.Advance(5, false)
	snap, notify := est.Advance(0, true)
	if snap.Failed != 1 || snap.Done != 2 || snap.Remaining != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	_ = notify
	final := est.Complete()
	if final.Done != 3 || final.Remaining != 0 {
		t.Fatalf("Complete should finish every file: %+v", final)
	}
}

func TestEstimatorNotifiesOnLastFile(t *testing.T) {
	est := NewEstimator(1, Config{NotifyInterval: time.Hour})
	if _, notify := est.Advance(1, false); !notify {
		t.Fatal("the last file must always notify")
	}
}

func TestPercentClampsTo100(t *testing.T) {
	if got := percent(5, 4); got != 100 {
		t.Fatalf("5/4 は 100%% として扱うべきです: got=%d", got)
	}
	if got := percent(0, 0); got != 0 {
		t.Fatalf("0/0 should be 0, got %d", got)
	}
}

func TestWindowQuantile(t *testing.T) {
	w := newWindow(3)
	for _, v := range []float64{1, 2, 3, 4} {
		w.Add(v)
	}
	if got := w.Quantile(0.5); got != 3 {
		t.Fatalf("median of [2 3 4] = %v, want 3", got)
	}
	if got := w.Quantile(0); got != 2 {
		t.Fatalf("min = %v, want 2", got)
	}
}

func TestRenderTTY(t *testing.T) {
	line := renderTTY(Snapshot{Stage: StageCount, Total: 4, Done: 2, Failed: 1, Lines: 120, Warmup: true})
	for _, want := range []string{"[count]", " 50%", "2/4", "(1 failed)", "120 lines", "ETA --:--:--"} {
		if !strings.Contains(line, want) {
			t.Fatalf("renderTTY(%q) missing %q", line, want)
		}
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ob := NewMultiObserver(nil, NewLogObserver(logger))
	ob.Publish(Snapshot{Stage: StageCount, Done: 1, Total: 2})
	ob.Done(Snapshot{Stage: StageCount, Done: 2, Total: 2, Lines: 30})
	out := buf.String()
	if !strings.Contains(out, "msg=progress") || !strings.Contains(out, "msg=counted") || !strings.Contains(out, "lines=30") {
		t.Fatalf("unexpected log output:\n%s", out)
	}
}
