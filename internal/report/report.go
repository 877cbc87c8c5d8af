// Package report aggregates per-file line counts into directory, language
// and total statistics.
package report

import (
	"path"
	"sort"
	"time"

	"github.com/phyten/codecount/internal/classify"
)

const (
	// LangReadError は読み込み・デコードに失敗したファイルの言語欄
	LangReadError = "(Read Error)"
	// LangUnsupported は対応言語が見つからなかったファイルの言語欄
	LangUnsupported = "(Unsupported)"
)

// FileResult は 1 ファイル分の集計結果
type FileResult struct {
	Filename string `json:"filename"`
	Language string `json:"language"`
	classify.Count
	Error string `json:"error,omitempty"`
}

// Aggregated reports whether the row takes part in directory, language and
// total statistics.
func (r FileResult) Aggregated() bool {
	return r.Error == "" && r.Language != LangReadError && r.Language != LangUnsupported
}

// Statistics は複数ファイルの合計
type Statistics struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
	classify.Count
}

func (s *Statistics) add(c classify.Count) {
	s.Files++
	s.Count = s.Count.Add(c)
}

// Table holds every file row of one run plus the roll-ups.
type Table struct {
	TargetDir string
	Date      time.Time

	files []FileResult
	dirs  map[string]*Statistics
	langs map[string]*Statistics
	order []string // languages in first-seen order
	total Statistics
}

func NewTable(targetDir string, date time.Time) *Table {
	return &Table{
		TargetDir: targetDir,
		Date:      date,
		dirs:      make(map[string]*Statistics),
		langs:     make(map[string]*Statistics),
		total:     Statistics{Name: "Total"},
	}
}

// Add appends r and, unless it is an error or unsupported row, adds its
// count to every ancestor directory (up to "."), its language and the total.
func (t *Table) Add(r FileResult) {
	t.files = append(t.files, r)
	if !r.Aggregated() {
		return
	}
	for _, dir := range Ancestors(r.Filename) {
		st, ok := t.dirs[dir]
		if !ok {
			st = &Statistics{Name: dir}
			t.dirs[dir] = st
		}
		st.add(r.Count)
	}
	st, ok := t.langs[r.Language]
	if !ok {
		st = &Statistics{Name: r.Language}
		t.langs[r.Language] = st
		t.order = append(t.order, r.Language)
	}
	st.add(r.Count)
	t.total.add(r.Count)
}

// Ancestors returns the directories containing a slash-separated relative
// path, innermost first and ending with ".".
func Ancestors(name string) []string {
	var out []string
	dir := path.Dir(name)
	for {
		out = append(out, dir)
		if dir == "." || dir == "/" {
			return out
		}
		dir = path.Dir(dir)
	}
}

// Files returns the rows sorted by filename.
func (t *Table) Files() []FileResult {
	out := append([]FileResult(nil), t.files...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// Len is the number of rows, including error and unsupported ones.
func (t *Table) Len() int { return len(t.files) }

// ErrorCount counts rows that carry an error message.
func (t *Table) ErrorCount() int {
	n := 0
	for _, r := range t.files {
		if r.Error != "" {
			n++
		}
	}
	return n
}

func (t *Table) Total() Statistics { return t.total }

// LanguageNames returns the aggregated languages in first-seen order. CSV
// columns follow this order.
func (t *Table) LanguageNames() []string {
	return append([]string(nil), t.order...)
}

// Languages returns language statistics by code descending, ties by name.
func (t *Table) Languages() []Statistics {
	return sortByCode(t.langs)
}

// Directories returns directory statistics by code descending, ties by name.
func (t *Table) Directories() []Statistics {
	return sortByCode(t.dirs)
}

// DirectoriesByName returns directory statistics sorted by path.
func (t *Table) DirectoriesByName() []Statistics {
	out := collect(t.dirs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func collect(m map[string]*Statistics) []Statistics {
	out := make([]Statistics, 0, len(m))
	for _, st := range m {
		out = append(out, *st)
	}
	return out
}

func sortByCode(m map[string]*Statistics) []Statistics {
	out := collect(m)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code > out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// FromResults builds a table from already computed rows.
func FromResults(targetDir string, date time.Time, rows []FileResult) *Table {
	t := NewTable(targetDir, date)
	for _, r := range rows {
		t.Add(r)
	}
	return t
}
