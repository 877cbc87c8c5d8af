package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/codecount/internal/classify"
	"github.com/phyten/codecount/internal/report"
)

func sampleTable() *report.Table {
	t := report.NewTable("/work/repo", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
	t.Add(report.FileResult{Filename: "cmd/main.go", Language: "go", Count: classify.Count{Code: 20, Comment: 3, Blank: 4}})
	t.Add(report.FileResult{Filename: "scripts/a|b.py", Language: "python", Count: classify.Count{Code: 5, Comment: 1}})
	t.Add(report.FileResult{Filename: "README.md", Language: "markdown", Count: classify.Count{Code: 7, Blank: 2}})
	t.Add(report.FileResult{Filename: "locked.go", Language: report.LangReadError, Error: "permission denied"})
	return t
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleTable(), Options{}))
	out := buf.String()

	assert.Contains(t, out, "Directory : /work/repo\n")
	assert.Contains(t, out, "Date : 2024-05-01 09:30:00\n")
	assert.Contains(t, out, "Total : 32 codes, 4 comments, 6 blanks, all 42 lines\n")
	assert.Contains(t, out, "Errors : 1 files could not be read\n")
	assert.Contains(t, out, "| cmd/main.go    | go           |         20 |          3 |          4 |         27 |")
	assert.Contains(t, out, "| locked.go      | (Read Error) |          0 |")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	width := len(lines[0])
	for _, l := range lines {
		if strings.HasPrefix(l, "| ") && strings.Contains(l, "main.go") {
			assert.Equal(t, width, len(l), "file rows span the full header width")
		}
	}

	// languages by code descending
	goIdx := strings.Index(out, "| go ")
	mdIdx := strings.Index(out, "| markdown ")
	pyIdx := strings.Index(out, "| python ")
	assert.True(t, goIdx < mdIdx && mdIdx < pyIdx, "language order")
}

func TestWriteTextCRLF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleTable(), Options{EOL: "\r\n"}))
	out := buf.String()
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(), Options{EOL: "\r\n"}))
	assert.Contains(t, buf.String(), "\r\n")

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"filename", "language", "go", "python", "markdown", "comment", "blank", "total"}, records[0])
	assert.Equal(t, []string{"README.md", "markdown", "0", "0", "7", "0", "2", "9"}, records[1])
	assert.Equal(t, []string{"scripts/a|b.py", "python", "0", "5", "0", "1", "0", "6"}, records[4])
	assert.Equal(t, []string{"Total", "-", "20", "5", "7", "4", "6", "42"}, records[5])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleTable(), Options{LinkBase: ".."}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# /work/repo\n"))
	assert.Contains(t, out, "| language | files | code | comment | blank | total |\n| :--- | ---: | ---: | ---: | ---: | ---: |")
	assert.Contains(t, out, "[cmd/main.go](../cmd/main.go)")
	assert.Contains(t, out, `scripts/a\|b.py`)

	buf.Reset()
	require.NoError(t, WriteMarkdown(&buf, sampleTable(), Options{LinkBase: "https://github.com/o/r/blob/abc/"}))
	assert.Contains(t, buf.String(), "[cmd/main.go](https://github.com/o/r/blob/abc/cmd/main.go)")

	// directories sorted by path
	dot := strings.Index(out, "| . |")
	cmd := strings.Index(out, "| cmd |")
	scripts := strings.Index(out, "| scripts |")
	assert.True(t, dot < cmd && cmd < scripts, "directory order")
}

func TestEscapeMarkdownCell(t *testing.T) {
	assert.Equal(t, `a\|b<br>c`, escapeMarkdownCell("a|b\r\nc"))
	assert.Equal(t, "", escapeMarkdownCell(""))
}

func TestSnapshotRoundTripKeepsRows(t *testing.T) {
	tbl := sampleTable()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tbl))

	snap, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "/work/repo", snap.Directory)
	assert.Equal(t, tbl.Files(), snap.Files)
	assert.Equal(t, 42, snap.Total.Total())
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	rows := sampleTable().Files()
	require.NoError(t, WriteNDJSON(&buf, rows))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(rows))
	for _, l := range lines {
		var r report.FileResult
		require.NoError(t, json.Unmarshal([]byte(l), &r))
	}
	assert.Contains(t, lines[2], `"error":"permission denied"`)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".codecount")
	cur := sampleTable()
	prev := report.FromResults("/work/repo", cur.Date, []report.FileResult{
		{Filename: "cmd/main.go", Language: "go", Count: classify.Count{Code: 10}},
	})
	diff := report.DiffTable("/work/repo", cur.Date, prev.Files(), cur.Files())

	written, err := WriteFiles(dir, cur, diff, Formats{Text: true, CSV: true, Markdown: true, JSON: true}, Options{})
	require.NoError(t, err)
	for _, key := range []string{"text", "csv", "markdown", "json", "diff-text", "diff-csv", "diff-markdown"} {
		p, ok := written[key]
		require.True(t, ok, key)
		_, err := os.Stat(p)
		require.NoError(t, err, key)
	}

	snap, err := LoadSnapshot(written["json"])
	require.NoError(t, err)
	assert.Len(t, snap.Files, 4)

	written, err = WriteFiles(dir, cur, nil, Formats{CSV: true}, Options{})
	require.NoError(t, err)
	assert.Len(t, written, 1)
}

func TestParseEOL(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "LF": "\n", "crlf": "\r\n", `\r\n`: "\r\n", "\r\n": "\r\n"} {
		got, err := ParseEOL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseEOL("cr")
	assert.Error(t, err)
}
