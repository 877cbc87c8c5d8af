// Package output renders report tables as text, CSV, Markdown and JSON.
package output

import (
	"fmt"
	"io"
	"strings"
)

const dateLayout = "2006-01-02 15:04:05"

// Options controls the rendering shared by every format.
type Options struct {
	// EOL は行末文字列 ("\n" or "\r\n")
	EOL string
	// LinkBase is prepended to filenames in Markdown links.
	LinkBase string
}

func (o Options) eol() string {
	if o.EOL == "" {
		return "\n"
	}
	return o.EOL
}

// lineWriter keeps the first write error so renderers can emit lines
// without checking each one.
type lineWriter struct {
	w   io.Writer
	eol string
	err error
}

func newLineWriter(w io.Writer, opts Options) *lineWriter {
	return &lineWriter{w: w, eol: opts.eol()}
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+lw.eol)
}

func (lw *lineWriter) linef(format string, args ...any) {
	lw.line(fmt.Sprintf(format, args...))
}

// ParseEOL maps lf/crlf (or the literal sequences) to an end-of-line string.
func ParseEOL(v string) (string, error) {
	if v == "\n" || v == "\r\n" {
		return v, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "lf", `\n`:
		return "\n", nil
	case "crlf", `\r\n`:
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown eol: %q (want lf|crlf)", v)
	}
}
