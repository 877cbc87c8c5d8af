package report

import (
	"sort"
	"time"
)

// Diff compares two runs keyed by filename. Files present in both yield
// new minus old, files only in old yield the negated old count, and files
// only in new are returned unchanged. Error and unsupported rows are
// ignored on both sides. The result is sorted by filename.
func Diff(old, cur []FileResult) []FileResult {
	prev := make(map[string]FileResult, len(old))
	for _, r := range old {
		if r.Aggregated() {
			prev[r.Filename] = r
		}
	}
	out := make([]FileResult, 0, len(cur)+len(prev))
	seen := make(map[string]struct{}, len(cur))
	for _, r := range cur {
		if !r.Aggregated() {
			continue
		}
		seen[r.Filename] = struct{}{}
		if o, ok := prev[r.Filename]; ok {
			d := FileResult{Filename: r.Filename, Language: r.Language, Count: r.Count.Sub(o.Count)}
			out = append(out, d)
			continue
		}
		out = append(out, r)
	}
	for _, o := range old {
		if !o.Aggregated() {
			continue
		}
		if _, ok := seen[o.Filename]; ok {
			continue
		}
		seen[o.Filename] = struct{}{}
		out = append(out, FileResult{Filename: o.Filename, Language: o.Language, Count: o.Count.Neg()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// DiffTable aggregates the rows returned by Diff.
func DiffTable(targetDir string, date time.Time, old, cur []FileResult) *Table {
	return FromResults(targetDir, date, Diff(old, cur))
}
