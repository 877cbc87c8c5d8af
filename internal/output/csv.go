package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/phyten/codecount/internal/report"
)

// WriteCSV renders one row per file with a code column per language,
// followed by comment, blank and total, and a closing Total row.
func WriteCSV(w io.Writer, t *report.Table, opts Options) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = opts.eol() == "\r\n"

	langs := t.LanguageNames()
	header := make([]string, 0, len(langs)+5)
	header = append(header, "filename", "language")
	header = append(header, langs...)
	header = append(header, "comment", "blank", "total")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range t.Files() {
		rec := make([]string, 0, len(header))
		rec = append(rec, r.Filename, r.Language)
		for _, l := range langs {
			if l == r.Language {
				rec = append(rec, strconv.Itoa(r.Code))
			} else {
				rec = append(rec, "0")
			}
		}
		rec = append(rec, strconv.Itoa(r.Comment), strconv.Itoa(r.Blank), strconv.Itoa(r.Total()))
		if err := writer.Write(rec); err != nil {
			return err
		}
	}

	byName := make(map[string]report.Statistics)
	for _, st := range t.Languages() {
		byName[st.Name] = st
	}
	total := t.Total()
	rec := make([]string, 0, len(header))
	rec = append(rec, "Total", "-")
	for _, l := range langs {
		rec = append(rec, strconv.Itoa(byName[l].Code))
	}
	rec = append(rec, strconv.Itoa(total.Comment), strconv.Itoa(total.Blank), strconv.Itoa(total.Total()))
	if err := writer.Write(rec); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
