package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/codecount/internal/report"
)

// WriteNDJSON streams file rows as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, rows []report.FileResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
