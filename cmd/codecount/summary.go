package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phyten/codecount/internal/report"
	"github.com/phyten/codecount/internal/termcolor"
	"github.com/phyten/codecount/internal/textutil"
)

// writeSummary prints the per-language totals to the terminal. diff, when
// present, adds a second block with the change since the earlier run.
func writeSummary(w io.Writer, p termcolor.Painter, t *report.Table, diff *report.Table) {
	writeStats(w, p, "Language", t.Languages(), t.Total(), false)
	if n := t.ErrorCount(); n > 0 {
		fmt.Fprintln(w, p.Paint(p.Error, strconv.Itoa(n)+" file(s) could not be read"))
	}
	if diff != nil {
		fmt.Fprintln(w)
		writeStats(w, p, "Changed", diff.Languages(), diff.Total(), true)
	}
}

func writeStats(w io.Writer, p termcolor.Painter, title string, rows []report.Statistics, total report.Statistics, delta bool) {
	names := []string{title, total.Name}
	for _, r := range rows {
		names = append(names, r.Name)
	}
	nameW := textutil.MaxWidth(8, names...)
	const numW = 9

	header := textutil.PadRight(title, nameW) + " " +
		textutil.PadLeft("files", numW) + " " +
		textutil.PadLeft("code", numW) + " " +
		textutil.PadLeft("comment", numW) + " " +
		textutil.PadLeft("blank", numW) + " " +
		textutil.PadLeft("total", numW)
	fmt.Fprintln(w, p.Paint(p.Header, header))

	line := func(st report.Statistics) string {
		cell := func(n int, s termcolor.Style) string {
			text := strconv.Itoa(n)
			if delta {
				if n > 0 {
					text = "+" + text
				}
				s = p.DeltaStyle(n)
			}
			return p.Paint(s, textutil.PadLeft(text, numW))
		}
		return textutil.PadRight(st.Name, nameW) + " " +
			textutil.PadLeft(strconv.Itoa(st.Files), numW) + " " +
			cell(st.Code, p.Code) + " " +
			cell(st.Comment, p.Comment) + " " +
			cell(st.Blank, p.Blank) + " " +
			cell(st.Total(), termcolor.Style{Bold: true})
	}
	for _, r := range rows {
		fmt.Fprintln(w, line(r))
	}
	fmt.Fprintln(w, line(total))
}
