package progress

import (
	"math"
	"slices"
)

// window is a fixed-size ring of recent files-per-second samples.
type window struct {
	buf  []float64
	next int
	full bool
}

func newWindow(size int) *window {
	return &window{buf: make([]float64, max(size, 1))}
}

// Add drops NaN and ±Inf samples.
func (w *window) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.next == 0 {
		w.full = true
	}
}

func (w *window) Len() int {
	if w.full {
		return len(w.buf)
	}
	return w.next
}

// Quantile は線形補間した q 分位点 (0<=q<=1)。サンプルが無ければ 0
func (w *window) Quantile(q float64) float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(w.buf[:n])
	slices.Sort(sorted)
	q = min(max(q, 0), 1)
	pos := q * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
