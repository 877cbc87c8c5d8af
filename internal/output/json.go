package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phyten/codecount/internal/report"
)

// Snapshot is the results.json document. A later run reloads it to diff
// against.
type Snapshot struct {
	Directory string              `json:"directory"`
	Date      time.Time           `json:"date"`
	Total     report.Statistics   `json:"total"`
	Files     []report.FileResult `json:"files"`
}

func NewSnapshot(t *report.Table) Snapshot {
	return Snapshot{
		Directory: t.TargetDir,
		Date:      t.Date,
		Total:     t.Total(),
		Files:     t.Files(),
	}
}

// WriteJSON writes the snapshot of t as indented JSON.
func WriteJSON(w io.Writer, t *report.Table) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSnapshot(t))
}

// ReadJSON decodes a snapshot written by WriteJSON.
func ReadJSON(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// LoadSnapshot reads a results.json file.
func LoadSnapshot(p string) (Snapshot, error) {
	f, err := os.Open(p)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = f.Close() }()
	s, err := ReadJSON(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", p, err)
	}
	return s, nil
}
