package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/phyten/codecount/internal/report"
	"github.com/phyten/codecount/internal/textutil"
)

const numberWidth = 10

type column struct {
	title string
	width int
}

type textFormat []column

func (f textFormat) separator() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = strings.Repeat("-", c.width)
	}
	return "+-" + strings.Join(parts, "-+-") + "-+"
}

func (f textFormat) header() []string {
	titles := make([]string, len(f))
	for i, c := range f {
		titles[i] = textutil.PadRight(c.title, c.width)
	}
	sep := f.separator()
	return []string{sep, "| " + strings.Join(titles, " | ") + " |", sep}
}

// row pads strings on the right and numbers on the left.
func (f textFormat) row(values ...any) string {
	cells := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case int:
			cells[i] = textutil.PadLeft(strconv.Itoa(x), f[i].width)
		default:
			cells[i] = textutil.PadRight(x.(string), f[i].width)
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func statsFormat(title string, width int) textFormat {
	return textFormat{
		{title, width},
		{"files", numberWidth},
		{"code", numberWidth},
		{"comment", numberWidth},
		{"blank", numberWidth},
		{"total", numberWidth},
	}
}

// WriteText renders the table as fixed-width text: a summary header, then
// languages and directories by code descending, then every file.
func WriteText(w io.Writer, t *report.Table, opts Options) error {
	files := t.Files()
	langs := t.Languages()
	dirs := t.Directories()

	names := make([]string, 0, len(files)+len(dirs))
	langNames := make([]string, 0, len(files))
	for _, r := range files {
		names = append(names, r.Filename)
		langNames = append(langNames, r.Language)
	}
	for _, d := range dirs {
		names = append(names, d.Name)
	}
	nameW := textutil.MaxWidth(len("filename"), names...)
	langW := textutil.MaxWidth(len("language"), langNames...)

	fileFmt := textFormat{
		{"filename", nameW},
		{"language", langW},
		{"code", numberWidth},
		{"comment", numberWidth},
		{"blank", numberWidth},
		{"total", numberWidth},
	}
	dirFmt := statsFormat("path", nameW)
	langFmt := statsFormat("language", langW)

	lw := newLineWriter(w, opts)
	lw.line(strings.Repeat("=", len(fileFmt.separator())))
	lw.linef("Directory : %s", t.TargetDir)
	lw.linef("Date : %s", t.Date.Format(dateLayout))
	lw.line(summaryLine(t.Total()))
	if n := t.ErrorCount(); n > 0 {
		lw.linef("Errors : %d files could not be read", n)
	}
	lw.line("")

	lw.line("Languages")
	for _, l := range langFmt.header() {
		lw.line(l)
	}
	for _, st := range langs {
		lw.line(langFmt.row(st.Name, st.Files, st.Code, st.Comment, st.Blank, st.Total()))
	}
	lw.line(langFmt.separator())
	lw.line("")

	lw.line("Directories")
	for _, l := range dirFmt.header() {
		lw.line(l)
	}
	for _, st := range dirs {
		lw.line(dirFmt.row(st.Name, st.Files, st.Code, st.Comment, st.Blank, st.Total()))
	}
	lw.line(dirFmt.separator())
	lw.line("")

	lw.line("Files")
	for _, l := range fileFmt.header() {
		lw.line(l)
	}
	for _, r := range files {
		lw.line(fileFmt.row(r.Filename, r.Language, r.Code, r.Comment, r.Blank, r.Total()))
	}
	total := t.Total()
	lw.line(fileFmt.row("Total", "", total.Code, total.Comment, total.Blank, total.Total()))
	lw.line(fileFmt.separator())
	return lw.err
}

func summaryLine(total report.Statistics) string {
	return "Total : " + strconv.Itoa(total.Code) + " codes, " +
		strconv.Itoa(total.Comment) + " comments, " +
		strconv.Itoa(total.Blank) + " blanks, all " +
		strconv.Itoa(total.Total()) + " lines"
}
