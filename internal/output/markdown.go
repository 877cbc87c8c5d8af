package output

import (
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/phyten/codecount/internal/report"
)

type mdColumn struct {
	title   string
	numeric bool
}

type mdFormat []mdColumn

func (f mdFormat) header() []string {
	titles := make([]string, len(f))
	align := make([]string, len(f))
	for i, c := range f {
		titles[i] = c.title
		if c.numeric {
			align[i] = "---:"
		} else {
			align[i] = ":---"
		}
	}
	return []string{
		"| " + strings.Join(titles, " | ") + " |",
		"| " + strings.Join(align, " | ") + " |",
	}
}

func mdRow(cells ...string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

var statsColumns = []mdColumn{
	{"files", true}, {"code", true}, {"comment", true}, {"blank", true}, {"total", true},
}

func statsRow(st report.Statistics) string {
	return mdRow(escapeMarkdownCell(st.Name), strconv.Itoa(st.Files), strconv.Itoa(st.Code),
		strconv.Itoa(st.Comment), strconv.Itoa(st.Blank), strconv.Itoa(st.Total()))
}

// WriteMarkdown renders the table as GitHub Flavored Markdown. Directories
// are listed by path and file names link to the file.
func WriteMarkdown(w io.Writer, t *report.Table, opts Options) error {
	lw := newLineWriter(w, opts)
	lw.linef("# %s", t.TargetDir)
	lw.line("")
	lw.linef("Date : %s", t.Date.Format(dateLayout))
	lw.line("")
	lw.line(summaryLine(t.Total()))
	lw.line("")

	lw.line("## Languages")
	for _, l := range append(mdFormat{{"language", false}}, statsColumns...).header() {
		lw.line(l)
	}
	for _, st := range t.Languages() {
		lw.line(statsRow(st))
	}
	lw.line("")

	lw.line("## Directories")
	for _, l := range append(mdFormat{{"path", false}}, statsColumns...).header() {
		lw.line(l)
	}
	for _, st := range t.DirectoriesByName() {
		lw.line(statsRow(st))
	}
	lw.line("")

	lw.line("## Files")
	fileFmt := mdFormat{{"filename", false}, {"language", false},
		{"code", true}, {"comment", true}, {"blank", true}, {"total", true}}
	for _, l := range fileFmt.header() {
		lw.line(l)
	}
	for _, r := range t.Files() {
		name := escapeMarkdownCell(r.Filename)
		link := "[" + escapeLinkText(name) + "](" + fileLink(opts.LinkBase, r.Filename) + ")"
		lw.line(mdRow(link, escapeMarkdownCell(r.Language), strconv.Itoa(r.Code),
			strconv.Itoa(r.Comment), strconv.Itoa(r.Blank), strconv.Itoa(r.Total())))
	}
	return lw.err
}

// fileLink joins base and name. base is either a relative directory or an
// absolute URL such as a blob page prefix.
func fileLink(base, name string) string {
	if strings.Contains(base, "://") {
		parts := strings.Split(name, "/")
		for i, part := range parts {
			parts[i] = url.PathEscape(part)
		}
		return strings.TrimSuffix(base, "/") + "/" + strings.Join(parts, "/")
	}
	p := name
	if base != "" {
		p = path.Join(base, name)
	}
	u := url.URL{Path: p}
	return u.EscapedPath()
}

func escapeLinkText(s string) string {
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
